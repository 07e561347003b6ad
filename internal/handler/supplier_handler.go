package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/repository"
	"github.com/bitforge/plm/internal/service"
)

type SupplierHandler struct {
	svc *service.SupplierService
}

func NewSupplierHandler(svc *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{svc: svc}
}

func (h *SupplierHandler) Create(c *gin.Context) {
	var req service.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	supplier, err := h.svc.Create(req, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, supplier)
}

func (h *SupplierHandler) Get(c *gin.Context) {
	supplier, err := h.svc.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "supplier not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, supplier)
}

func (h *SupplierHandler) List(c *gin.Context) {
	page, size := GetPagination(c)
	params := repository.SupplierListParams{
		ApprovalStatus: c.Query("approval_status"),
		Tier:           c.Query("tier"),
		Search:         c.Query("search"),
		Page:           page,
		Size:           size,
	}
	suppliers, total, err := h.svc.List(params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListData(suppliers, total, page, size))
}

func (h *SupplierHandler) Approve(c *gin.Context) {
	var req struct {
		Conditional bool `json:"conditional"`
	}
	c.ShouldBindJSON(&req)
	supplier, err := h.svc.Approve(c.Param("id"), GetUserID(c), req.Conditional)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "supplier not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, supplier)
}

func (h *SupplierHandler) Suspend(c *gin.Context) {
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	supplier, err := h.svc.Suspend(c.Param("id"), req.Reason)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, supplier)
}

func (h *SupplierHandler) SetRating(c *gin.Context) {
	var req struct {
		Rating float64 `json:"rating"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	supplier, err := h.svc.SetRating(c.Param("id"), req.Rating)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, supplier)
}

func (h *SupplierHandler) AddVendor(c *gin.Context) {
	var req service.AddVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	av, err := h.svc.AddVendor(c.Param("id"), req, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, av)
}

func (h *SupplierHandler) SetQualification(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	av, err := h.svc.SetQualification(c.Param("avl_id"), req.Status)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, av)
}

func (h *SupplierHandler) RemoveVendor(c *gin.Context) {
	if err := h.svc.RemoveVendor(c.Param("avl_id")); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

func (h *SupplierHandler) VendorsForPart(c *gin.Context) {
	avl, err := h.svc.VendorsForPart(c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, avl)
}
