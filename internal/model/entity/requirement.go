package entity

import (
	"time"
)

// Requirement types
const (
	ReqTypeFunctional  = "functional"
	ReqTypePerformance = "performance"
	ReqTypeInterface   = "interface"
	ReqTypeSafety      = "safety"
	ReqTypeRegulatory  = "regulatory"
)

// Requirement lifecycle states
const (
	ReqStatusDraft    = "draft"
	ReqStatusApproved = "approved"
	ReqStatusVerified = "verified"
	ReqStatusObsolete = "obsolete"
)

// Requirement priorities
const (
	ReqPriorityMustHave   = "must_have"
	ReqPriorityShouldHave = "should_have"
	ReqPriorityCouldHave  = "could_have"
)

// Verification methods
const (
	VerifyByTest          = "test"
	VerifyByAnalysis      = "analysis"
	VerifyByInspection    = "inspection"
	VerifyByDemonstration = "demonstration"
)

// Verification states
const (
	VerificationNotStarted = "not_started"
	VerificationInProgress = "in_progress"
	VerificationPassed     = "passed"
	VerificationFailed     = "failed"
)

// Requirement link target kinds
const (
	LinkTargetPart     = "part"
	LinkTargetBOM      = "bom"
	LinkTargetDocument = "document"
)

// Requirement is a single traced requirement within a project.
type Requirement struct {
	ID                 string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	RequirementNumber  string     `json:"requirement_number" gorm:"size:32;not null;uniqueIndex"`
	ProjectID          string     `json:"project_id" gorm:"type:uuid;not null;index"`
	Title              string     `json:"title" gorm:"size:256;not null"`
	Text               string     `json:"text" gorm:"type:text;not null"`
	ReqType            string     `json:"req_type" gorm:"size:16;not null;default:functional"`
	Status             string     `json:"status" gorm:"size:16;not null;default:draft;index"`
	Priority           string     `json:"priority" gorm:"size:16;not null;default:must_have"`
	VerificationMethod string     `json:"verification_method" gorm:"size:16;not null;default:test"`
	Rationale          string     `json:"rationale" gorm:"type:text"`
	ApprovedBy         string     `json:"approved_by" gorm:"size:64"`
	ApprovedAt         *time.Time `json:"approved_at"`
	CreatedBy          string     `json:"created_by" gorm:"size:64"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (Requirement) TableName() string {
	return "plm_requirements"
}

// RequirementLink traces a requirement to a design artifact.
type RequirementLink struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	RequirementID string    `json:"requirement_id" gorm:"type:uuid;not null;index"`
	TargetType    string    `json:"target_type" gorm:"size:16;not null"`
	TargetID      string    `json:"target_id" gorm:"type:uuid;not null;index"`
	LinkType      string    `json:"link_type" gorm:"size:16;not null;default:satisfies"`
	CreatedBy     string    `json:"created_by" gorm:"size:64"`
	CreatedAt     time.Time `json:"created_at"`
}

func (RequirementLink) TableName() string {
	return "plm_requirement_links"
}

// VerificationRecord captures one verification activity against a requirement.
type VerificationRecord struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	RequirementID string     `json:"requirement_id" gorm:"type:uuid;not null;index"`
	Method        string     `json:"method" gorm:"size:16;not null"`
	Status        string     `json:"status" gorm:"size:16;not null;default:not_started;index"`
	Result        string     `json:"result" gorm:"type:text"`
	Evidence      string     `json:"evidence" gorm:"size:512"`
	VerifiedBy    string     `json:"verified_by" gorm:"size:64"`
	VerifiedAt    *time.Time `json:"verified_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (VerificationRecord) TableName() string {
	return "plm_verification_records"
}
