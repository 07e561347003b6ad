package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/repository"
	"github.com/bitforge/plm/internal/service"
)

type BulletinHandler struct {
	svc *service.BulletinService
}

func NewBulletinHandler(svc *service.BulletinService) *BulletinHandler {
	return &BulletinHandler{svc: svc}
}

func (h *BulletinHandler) Create(c *gin.Context) {
	var req service.CreateBulletinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	b, err := h.svc.Create(req, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, b)
}

func (h *BulletinHandler) Get(c *gin.Context) {
	b, err := h.svc.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "bulletin not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, b)
}

func (h *BulletinHandler) List(c *gin.Context) {
	page, size := GetPagination(c)
	params := repository.BulletinListParams{
		Status:       c.Query("status"),
		BulletinType: c.Query("bulletin_type"),
		SafetyOnly:   c.Query("safety_only") == "true",
		Page:         page,
		Size:         size,
	}
	bulletins, total, err := h.svc.List(params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListData(bulletins, total, page, size))
}

func (h *BulletinHandler) Approve(c *gin.Context) {
	b, err := h.svc.Approve(c.Param("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "bulletin not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, b)
}

func (h *BulletinHandler) Release(c *gin.Context) {
	var req struct {
		UnitSerials []string `json:"unit_serials"`
	}
	c.ShouldBindJSON(&req)
	b, err := h.svc.Release(c.Param("id"), req.UnitSerials)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "bulletin not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, b)
}

func (h *BulletinHandler) RecordCompliance(c *gin.Context) {
	var req struct {
		Notes string `json:"notes"`
	}
	c.ShouldBindJSON(&req)
	record, err := h.svc.RecordCompliance(c.Param("record_id"), req.Notes, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, record)
}

func (h *BulletinHandler) WaiveCompliance(c *gin.Context) {
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	record, err := h.svc.WaiveCompliance(c.Param("record_id"), req.Reason)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, record)
}

func (h *BulletinHandler) Compliance(c *gin.Context) {
	records, err := h.svc.ComplianceForBulletin(c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, records)
}

func (h *BulletinHandler) Overdue(c *gin.Context) {
	records, err := h.svc.OverdueCompliance()
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, records)
}

func (h *BulletinHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats()
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, stats)
}
