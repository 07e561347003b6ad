package entity

import (
	"time"
)

// Service bulletin types
const (
	BulletinAlert     = "alert"
	BulletinMandatory = "mandatory"
	BulletinOptional  = "optional"
	BulletinInfo      = "informational"
)

// Service bulletin states
const (
	BulletinStatusDraft    = "draft"
	BulletinStatusApproved = "approved"
	BulletinStatusReleased = "released"
	BulletinStatusExpired  = "expired"
)

// Per-unit bulletin compliance states
const (
	BulletinCompliancePending  = "pending"
	BulletinComplianceComplied = "complied"
	BulletinComplianceWaived   = "waived"
	BulletinComplianceOverdue  = "overdue"
)

// ServiceBulletin is a fielded-unit service instruction.
type ServiceBulletin struct {
	ID                 string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BulletinNumber     string     `json:"bulletin_number" gorm:"size:32;not null;uniqueIndex"`
	Title              string     `json:"title" gorm:"size:256;not null"`
	BulletinType       string     `json:"bulletin_type" gorm:"size:16;not null"`
	Status             string     `json:"status" gorm:"size:16;not null;default:draft;index"`
	SafetyIssue        bool       `json:"safety_issue" gorm:"default:false"`
	AffectedPartID     string     `json:"affected_part_id" gorm:"type:uuid;index"`
	Summary            string     `json:"summary" gorm:"type:text"`
	Instructions       string     `json:"instructions" gorm:"type:text"`
	ComplianceDeadline *time.Time `json:"compliance_deadline"`
	EstimatedLaborHrs  float64    `json:"estimated_labor_hours" gorm:"type:decimal(8,2);default:0"`
	ApprovedBy         string     `json:"approved_by" gorm:"size:64"`
	ApprovedAt         *time.Time `json:"approved_at"`
	IssuedAt           *time.Time `json:"issued_at"`
	CreatedBy          string     `json:"created_by" gorm:"size:64"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (ServiceBulletin) TableName() string {
	return "plm_service_bulletins"
}

// BulletinCompliance tracks one fielded unit against one bulletin.
type BulletinCompliance struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BulletinID   string     `json:"bulletin_id" gorm:"type:uuid;not null;index:idx_bc_bulletin_unit,unique"`
	UnitSerial   string     `json:"unit_serial" gorm:"size:64;not null;index:idx_bc_bulletin_unit,unique"`
	Status       string     `json:"status" gorm:"size:16;not null;default:pending;index"`
	CompliedBy   string     `json:"complied_by" gorm:"size:64"`
	CompliedAt   *time.Time `json:"complied_at"`
	WaivedReason string     `json:"waived_reason" gorm:"type:text"`
	Notes        string     `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (BulletinCompliance) TableName() string {
	return "plm_bulletin_compliance"
}
