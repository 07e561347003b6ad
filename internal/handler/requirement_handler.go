package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/repository"
	"github.com/bitforge/plm/internal/service"
)

type RequirementHandler struct {
	svc *service.RequirementService
}

func NewRequirementHandler(svc *service.RequirementService) *RequirementHandler {
	return &RequirementHandler{svc: svc}
}

func (h *RequirementHandler) Create(c *gin.Context) {
	var req service.CreateRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	r, err := h.svc.Create(req, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, r)
}

func (h *RequirementHandler) Get(c *gin.Context) {
	r, err := h.svc.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "requirement not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, r)
}

func (h *RequirementHandler) List(c *gin.Context) {
	page, size := GetPagination(c)
	params := repository.RequirementListParams{
		ProjectID: c.Query("project_id"),
		Status:    c.Query("status"),
		ReqType:   c.Query("req_type"),
		Priority:  c.Query("priority"),
		Page:      page,
		Size:      size,
	}
	reqs, total, err := h.svc.List(params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListData(reqs, total, page, size))
}

func (h *RequirementHandler) Update(c *gin.Context) {
	var req struct {
		Title     string `json:"title"`
		Text      string `json:"text"`
		Rationale string `json:"rationale"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	r, err := h.svc.UpdateText(c.Param("id"), req.Title, req.Text, req.Rationale)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, r)
}

func (h *RequirementHandler) Approve(c *gin.Context) {
	r, err := h.svc.Approve(c.Param("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "requirement not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, r)
}

func (h *RequirementHandler) Obsolete(c *gin.Context) {
	r, err := h.svc.Obsolete(c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, r)
}

func (h *RequirementHandler) AddLink(c *gin.Context) {
	var req service.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	link, err := h.svc.AddLink(c.Param("id"), req, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, link)
}

func (h *RequirementHandler) RemoveLink(c *gin.Context) {
	if err := h.svc.RemoveLink(c.Param("link_id")); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

func (h *RequirementHandler) ListLinks(c *gin.Context) {
	links, err := h.svc.ListLinks(c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, links)
}

func (h *RequirementHandler) RecordVerification(c *gin.Context) {
	var req service.RecordVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	record, err := h.svc.RecordVerification(c.Param("id"), req, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, record)
}

func (h *RequirementHandler) ListVerifications(c *gin.Context) {
	records, err := h.svc.ListVerifications(c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, records)
}

func (h *RequirementHandler) Traceability(c *gin.Context) {
	matrix, err := h.svc.Traceability(c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, matrix)
}
