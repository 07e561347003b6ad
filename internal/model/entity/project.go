package entity

import (
	"time"
)

// Project lifecycle states
const (
	ProjectStatusProposed  = "proposed"
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

// Project phases
const (
	PhaseConcept    = "concept"
	PhaseDesign     = "design"
	PhasePrototype  = "prototype"
	PhaseProduction = "production"
	PhaseSupport    = "support"
)

// Milestone states
const (
	MilestoneNotStarted = "not_started"
	MilestoneInProgress = "in_progress"
	MilestoneCompleted  = "completed"
	MilestoneSlipped    = "slipped"
)

// Project is a development program. TopPartID points at the part whose
// released BOM seeds the MRP explosion for the project.
type Project struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Code        string     `json:"code" gorm:"size:32;not null;uniqueIndex"`
	Name        string     `json:"name" gorm:"size:128;not null"`
	Description string     `json:"description" gorm:"type:text"`
	Status      string     `json:"status" gorm:"size:16;not null;default:proposed;index"`
	Phase       string     `json:"phase" gorm:"size:16;not null;default:concept"`
	TopPartID   string     `json:"top_part_id" gorm:"type:uuid;index"`
	ManagerID   string     `json:"manager_id" gorm:"size:64"`
	StartDate   *time.Time `json:"start_date"`
	TargetDate  *time.Time `json:"target_date"`
	Budget      float64    `json:"budget" gorm:"type:decimal(14,2);default:0"`
	CreatedBy   string     `json:"created_by" gorm:"size:64"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Milestones []Milestone `json:"milestones,omitempty" gorm:"foreignKey:ProjectID"`
}

func (Project) TableName() string {
	return "plm_projects"
}

// Milestone is a dated checkpoint within a project phase.
type Milestone struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ProjectID   string     `json:"project_id" gorm:"type:uuid;not null;index"`
	Name        string     `json:"name" gorm:"size:128;not null"`
	Phase       string     `json:"phase" gorm:"size:16"`
	Status      string     `json:"status" gorm:"size:16;not null;default:not_started;index"`
	DueDate     *time.Time `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Milestone) TableName() string {
	return "plm_milestones"
}
