package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/service"
)

type CostingHandler struct {
	svc *service.CostingService
}

func NewCostingHandler(svc *service.CostingService) *CostingHandler {
	return &CostingHandler{svc: svc}
}

func (h *CostingHandler) GetCost(c *gin.Context) {
	cost, err := h.svc.GetOrCreateCost(c.Param("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "part not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, cost)
}

func (h *CostingHandler) AddElement(c *gin.Context) {
	var req service.AddCostElementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	el, err := h.svc.AddElement(c.Param("id"), req, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, el)
}

func (h *CostingHandler) UpdateElement(c *gin.Context) {
	var req struct {
		Quantity   float64 `json:"quantity"`
		UnitAmount float64 `json:"unit_amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	el, err := h.svc.UpdateElement(c.Param("element_id"), req.Quantity, req.UnitAmount)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, el)
}

func (h *CostingHandler) RemoveElement(c *gin.Context) {
	if err := h.svc.RemoveElement(c.Param("element_id")); err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, nil)
}

func (h *CostingHandler) SetTarget(c *gin.Context) {
	var req struct {
		TargetCost float64 `json:"target_cost"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	cost, err := h.svc.SetTargetCost(c.Param("id"), req.TargetCost, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, cost)
}

func (h *CostingHandler) Approve(c *gin.Context) {
	cost, err := h.svc.Approve(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "cost estimate not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, cost)
}

func (h *CostingHandler) RecordVariance(c *gin.Context) {
	var req service.RecordVarianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	v, err := h.svc.RecordVariance(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "part not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Created(c, v)
}

func (h *CostingHandler) Variances(c *gin.Context) {
	variances, err := h.svc.VariancesForPart(c.Param("id"), c.Query("period"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, variances)
}

func (h *CostingHandler) UnfavorableVariances(c *gin.Context) {
	variances, err := h.svc.UnfavorableVariances(c.Query("period"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, variances)
}
