package entity

import (
	"time"
)

// Document types
const (
	DocTypeDrawing       = "drawing"
	DocTypeSpecification = "specification"
	DocTypeProcedure     = "procedure"
	DocTypeReport        = "report"
	DocTypeOther         = "other"
)

// Document lifecycle states
const (
	DocStatusDraft    = "draft"
	DocStatusReleased = "released"
	DocStatusObsolete = "obsolete"
)

// Document is file metadata; the payload lives in object storage under
// ObjectKey.
type Document struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Code        string     `json:"code" gorm:"size:64;not null;uniqueIndex"`
	Title       string     `json:"title" gorm:"size:256;not null"`
	DocType     string     `json:"doc_type" gorm:"size:16;not null;default:other"`
	Status      string     `json:"status" gorm:"size:16;not null;default:draft;index"`
	Version     string     `json:"version" gorm:"size:16;not null;default:1.0"`
	RelatedType string     `json:"related_type" gorm:"size:16"`
	RelatedID   string     `json:"related_id" gorm:"type:uuid;index"`
	FileName    string     `json:"file_name" gorm:"size:256;not null"`
	ObjectKey   string     `json:"object_key" gorm:"size:512;not null"`
	FileSize    int64      `json:"file_size" gorm:"not null"`
	MimeType    string     `json:"mime_type" gorm:"size:128"`
	UploadedBy  string     `json:"uploaded_by" gorm:"size:64"`
	ReleasedBy  string     `json:"released_by" gorm:"size:64"`
	ReleasedAt  *time.Time `json:"released_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Document) TableName() string {
	return "plm_documents"
}
