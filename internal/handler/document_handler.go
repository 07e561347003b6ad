package handler

import (
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/repository"
	"github.com/bitforge/plm/internal/service"
)

type DocumentHandler struct {
	svc *service.DocumentService
}

func NewDocumentHandler(svc *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// Upload accepts multipart form data: file plus metadata fields.
func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file")
		return
	}
	code := c.PostForm("code")
	title := c.PostForm("title")
	if code == "" || title == "" {
		BadRequest(c, "code and title are required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	defer file.Close()

	req := service.UploadDocumentRequest{
		Code:        code,
		Title:       title,
		DocType:     c.PostForm("doc_type"),
		RelatedType: c.PostForm("related_type"),
		RelatedID:   c.PostForm("related_id"),
		FileName:    fileHeader.Filename,
		FileSize:    fileHeader.Size,
		MimeType:    fileHeader.Header.Get("Content-Type"),
	}
	doc, err := h.svc.Upload(c.Request.Context(), req, file, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, doc)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.svc.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "document not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, doc)
}

func (h *DocumentHandler) List(c *gin.Context) {
	page, size := GetPagination(c)
	params := repository.DocumentListParams{
		DocType:     c.Query("doc_type"),
		Status:      c.Query("status"),
		RelatedType: c.Query("related_type"),
		RelatedID:   c.Query("related_id"),
		Page:        page,
		Size:        size,
	}
	docs, total, err := h.svc.List(params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListData(docs, total, page, size))
}

func (h *DocumentHandler) Download(c *gin.Context) {
	doc, body, err := h.svc.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "document not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", "attachment; filename="+doc.FileName)
	contentType := doc.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	io.Copy(c.Writer, body)
}

func (h *DocumentHandler) DownloadURL(c *gin.Context) {
	url, err := h.svc.PresignedURL(c.Request.Context(), c.Param("id"), 15*time.Minute)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "document not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"url": url})
}

func (h *DocumentHandler) Release(c *gin.Context) {
	doc, err := h.svc.Release(c.Param("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "document not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, doc)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "document not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, nil)
}
