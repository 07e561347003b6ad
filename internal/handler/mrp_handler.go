package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/service"
)

type MRPHandler struct {
	svc *service.MRPService
}

func NewMRPHandler(svc *service.MRPService) *MRPHandler {
	return &MRPHandler{svc: svc}
}

func (h *MRPHandler) Run(c *gin.Context) {
	var req service.RunMRPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	report, err := h.svc.RunMRP(c.Request.Context(), req, GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "project not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, report)
}

func (h *MRPHandler) GetRun(c *gin.Context) {
	report, err := h.svc.GetRun(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "run not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, report)
}

func (h *MRPHandler) LatestRun(c *gin.Context) {
	report, err := h.svc.LatestRun(c.Request.Context(), c.Query("project_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "no runs recorded")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, report)
}

func (h *MRPHandler) ListRuns(c *gin.Context) {
	page, size := GetPagination(c)
	runs, total, err := h.svc.ListRuns(c.Query("project_id"), page, size)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListData(runs, total, page, size))
}

func (h *MRPHandler) ReleaseOrders(c *gin.Context) {
	var req struct {
		OrderIDs []string `json:"order_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	firmed, err := h.svc.ReleaseOrders(c.Param("id"), req.OrderIDs)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "run not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"released": firmed, "count": len(firmed)})
}

func (h *MRPHandler) CreateDemand(c *gin.Context) {
	var req service.CreateDemandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	d, err := h.svc.CreateDemand(req, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, d)
}

func (h *MRPHandler) UpdateDemandStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	d, err := h.svc.UpdateDemandStatus(c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "demand not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, d)
}

func (h *MRPHandler) DeleteDemand(c *gin.Context) {
	if err := h.svc.DeleteDemand(c.Param("id")); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

func (h *MRPHandler) ListDemands(c *gin.Context) {
	page, size := GetPagination(c)
	demands, total, err := h.svc.ListDemands(c.Query("project_id"), page, size)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListData(demands, total, page, size))
}
