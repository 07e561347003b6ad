package entity

import (
	"time"
)

// Regulation types
const (
	RegTypeRoHS             = "rohs"
	RegTypeREACH            = "reach"
	RegTypeConflictMinerals = "conflict_minerals"
	RegTypeProp65           = "prop65"
	RegTypeOther            = "other"
)

// Compliance declaration states
const (
	ComplianceCompliant    = "compliant"
	ComplianceNonCompliant = "non_compliant"
	ComplianceExempt       = "exempt"
	ComplianceUnknown      = "unknown"
)

// Regulation is a regulatory framework parts must be declared against.
type Regulation struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Code          string     `json:"code" gorm:"size:32;not null;uniqueIndex"`
	Name          string     `json:"name" gorm:"size:128;not null"`
	RegType       string     `json:"reg_type" gorm:"size:24;not null;index"`
	Jurisdiction  string     `json:"jurisdiction" gorm:"size:64"`
	Description   string     `json:"description" gorm:"type:text"`
	EffectiveDate *time.Time `json:"effective_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Regulation) TableName() string {
	return "plm_regulations"
}

// ComplianceDeclaration records a part's declared status against a regulation.
type ComplianceDeclaration struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PartID       string     `json:"part_id" gorm:"type:uuid;not null;index:idx_decl_part_reg,unique"`
	RegulationID string     `json:"regulation_id" gorm:"type:uuid;not null;index:idx_decl_part_reg,unique"`
	Status       string     `json:"status" gorm:"size:16;not null;default:unknown;index"`
	ExemptionRef string     `json:"exemption_ref" gorm:"size:64"`
	Notes        string     `json:"notes" gorm:"type:text"`
	DeclaredBy   string     `json:"declared_by" gorm:"size:64"`
	DeclaredAt   *time.Time `json:"declared_at"`
	ExpiresAt    *time.Time `json:"expires_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Regulation *Regulation `json:"regulation,omitempty" gorm:"foreignKey:RegulationID"`
}

func (ComplianceDeclaration) TableName() string {
	return "plm_compliance_declarations"
}
