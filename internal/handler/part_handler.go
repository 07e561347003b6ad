package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/repository"
	"github.com/bitforge/plm/internal/service"
)

type PartHandler struct {
	svc *service.PartService
}

func NewPartHandler(svc *service.PartService) *PartHandler {
	return &PartHandler{svc: svc}
}

func (h *PartHandler) Create(c *gin.Context) {
	var req service.CreatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	part, err := h.svc.Create(req, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, part)
}

func (h *PartHandler) Get(c *gin.Context) {
	part, err := h.svc.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "part not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, part)
}

func (h *PartHandler) List(c *gin.Context) {
	page, size := GetPagination(c)
	params := repository.PartListParams{
		Status:   c.Query("status"),
		PartType: c.Query("part_type"),
		Search:   c.Query("search"),
		Page:     page,
		Size:     size,
	}
	parts, total, err := h.svc.List(params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListData(parts, total, page, size))
}

func (h *PartHandler) Update(c *gin.Context) {
	var req service.UpdatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	part, err := h.svc.Update(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "part not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, part)
}

func (h *PartHandler) Release(c *gin.Context) {
	part, err := h.svc.Release(c.Param("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "part not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, part)
}

func (h *PartHandler) Revise(c *gin.Context) {
	var req struct {
		ChangeNote string `json:"change_note"`
	}
	c.ShouldBindJSON(&req)
	part, err := h.svc.Revise(c.Param("id"), req.ChangeNote, GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "part not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, part)
}

func (h *PartHandler) Obsolete(c *gin.Context) {
	part, err := h.svc.Obsolete(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "part not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, part)
}

func (h *PartHandler) ListRevisions(c *gin.Context) {
	revisions, err := h.svc.ListRevisions(c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, revisions)
}

func (h *PartHandler) WhereUsed(c *gin.Context) {
	boms, err := h.svc.WhereUsed(c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, boms)
}
