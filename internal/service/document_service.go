package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/bitforge/plm/internal/model/entity"
	"github.com/bitforge/plm/internal/repository"
)

type DocumentService struct {
	docRepo *repository.DocumentRepository
	store   *minio.Client
	bucket  string
}

func NewDocumentService(docRepo *repository.DocumentRepository, store *minio.Client, bucket string) *DocumentService {
	return &DocumentService{docRepo: docRepo, store: store, bucket: bucket}
}

// EnsureBucket creates the document bucket if it does not exist yet.
func (s *DocumentService) EnsureBucket(ctx context.Context) error {
	exists, err := s.store.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.store.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}
	return nil
}

type UploadDocumentRequest struct {
	Code        string
	Title       string
	DocType     string
	RelatedType string
	RelatedID   string
	FileName    string
	FileSize    int64
	MimeType    string
}

// Upload stores the payload in object storage and records the metadata row.
func (s *DocumentService) Upload(ctx context.Context, req UploadDocumentRequest, reader io.Reader, userID string) (*entity.Document, error) {
	if req.DocType == "" {
		req.DocType = entity.DocTypeOther
	}
	id := uuid.New().String()
	objectKey := fmt.Sprintf("documents/%s/%s%s", time.Now().Format("2006/01"), id, path.Ext(req.FileName))

	_, err := s.store.PutObject(ctx, s.bucket, objectKey, reader, req.FileSize, minio.PutObjectOptions{
		ContentType: req.MimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("store object: %w", err)
	}

	doc := &entity.Document{
		ID:          id,
		Code:        req.Code,
		Title:       req.Title,
		DocType:     req.DocType,
		Status:      entity.DocStatusDraft,
		Version:     "1.0",
		RelatedType: req.RelatedType,
		RelatedID:   req.RelatedID,
		FileName:    req.FileName,
		ObjectKey:   objectKey,
		FileSize:    req.FileSize,
		MimeType:    req.MimeType,
		UploadedBy:  userID,
	}
	if err := s.docRepo.Create(doc); err != nil {
		// Roll back the stored object so metadata and storage stay in step.
		_ = s.store.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{})
		return nil, fmt.Errorf("create document record: %w", err)
	}
	return doc, nil
}

func (s *DocumentService) Get(id string) (*entity.Document, error) {
	return s.docRepo.GetByID(id)
}

func (s *DocumentService) List(params repository.DocumentListParams) ([]entity.Document, int64, error) {
	return s.docRepo.List(params)
}

// Download streams the payload of a document.
func (s *DocumentService) Download(ctx context.Context, id string) (*entity.Document, io.ReadCloser, error) {
	doc, err := s.docRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	obj, err := s.store.GetObject(ctx, s.bucket, doc.ObjectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("fetch object: %w", err)
	}
	return doc, obj, nil
}

// PresignedURL returns a short-lived direct download link.
func (s *DocumentService) PresignedURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	doc, err := s.docRepo.GetByID(id)
	if err != nil {
		return "", err
	}
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	u, err := s.store.PresignedGetObject(ctx, s.bucket, doc.ObjectKey, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign object: %w", err)
	}
	return u.String(), nil
}

func (s *DocumentService) Release(id, userID string) (*entity.Document, error) {
	doc, err := s.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc.Status != entity.DocStatusDraft {
		return nil, fmt.Errorf("only draft documents can be released")
	}
	now := time.Now()
	doc.Status = entity.DocStatusReleased
	doc.ReleasedBy = userID
	doc.ReleasedAt = &now
	if err := s.docRepo.Update(doc); err != nil {
		return nil, fmt.Errorf("release document: %w", err)
	}
	return doc, nil
}

// Delete removes a draft document and its stored payload. Released documents
// are retained.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	doc, err := s.docRepo.GetByID(id)
	if err != nil {
		return err
	}
	if doc.Status == entity.DocStatusReleased {
		return fmt.Errorf("released documents cannot be deleted")
	}
	if err := s.docRepo.Delete(id); err != nil {
		return err
	}
	return s.store.RemoveObject(ctx, s.bucket, doc.ObjectKey, minio.RemoveObjectOptions{})
}
