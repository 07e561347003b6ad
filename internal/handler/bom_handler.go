package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/repository"
	"github.com/bitforge/plm/internal/service"
)

type BOMHandler struct {
	svc *service.BOMService
}

func NewBOMHandler(svc *service.BOMService) *BOMHandler {
	return &BOMHandler{svc: svc}
}

func (h *BOMHandler) Create(c *gin.Context) {
	var req service.CreateBOMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	bom, err := h.svc.Create(req, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, bom)
}

func (h *BOMHandler) Get(c *gin.Context) {
	bom, err := h.svc.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "BOM not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, bom)
}

func (h *BOMHandler) List(c *gin.Context) {
	page, size := GetPagination(c)
	params := repository.BOMListParams{
		ProjectID: c.Query("project_id"),
		Status:    c.Query("status"),
		BOMType:   c.Query("bom_type"),
		Page:      page,
		Size:      size,
	}
	boms, total, err := h.svc.List(params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListData(boms, total, page, size))
}

func (h *BOMHandler) AddItem(c *gin.Context) {
	var req service.AddBOMItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	item, err := h.svc.AddItem(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "BOM not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Created(c, item)
}

func (h *BOMHandler) UpdateItem(c *gin.Context) {
	var req struct {
		Quantity            float64 `json:"quantity"`
		ReferenceDesignator string  `json:"reference_designator"`
		Notes               string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	item, err := h.svc.UpdateItem(c.Param("item_id"), req.Quantity, req.ReferenceDesignator, req.Notes)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, item)
}

func (h *BOMHandler) RemoveItem(c *gin.Context) {
	if err := h.svc.RemoveItem(c.Param("item_id")); err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, nil)
}

func (h *BOMHandler) Release(c *gin.Context) {
	bom, err := h.svc.Release(c.Param("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "BOM not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, bom)
}

func (h *BOMHandler) Explode(c *gin.Context) {
	levels, _ := strconv.Atoi(c.DefaultQuery("levels", "0"))
	lines, err := h.svc.Explode(c.Param("id"), levels)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "BOM not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, lines)
}

func (h *BOMHandler) RollupCost(c *gin.Context) {
	rollup, err := h.svc.RollupCost(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "BOM not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, rollup)
}

func (h *BOMHandler) Export(c *gin.Context) {
	f, err := h.svc.ExportExcel(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "BOM not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=bom-%s.xlsx", c.Param("id")))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
