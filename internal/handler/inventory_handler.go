package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/service"
)

type InventoryHandler struct {
	svc *service.InventoryService
}

func NewInventoryHandler(svc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

type stockMovementRequest struct {
	PartID    string  `json:"part_id" binding:"required"`
	Location  string  `json:"location" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required"`
	Reference string  `json:"reference"`
}

func (h *InventoryHandler) Receive(c *gin.Context) {
	var req stockMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	item, err := h.svc.Receive(req.PartID, req.Location, req.Quantity, req.Reference, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, item)
}

func (h *InventoryHandler) Issue(c *gin.Context) {
	var req stockMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	item, err := h.svc.Issue(req.PartID, req.Location, req.Quantity, req.Reference, GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrInsufficientStock) {
			Conflict(c, err.Error())
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "no stock record for part at location")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, item)
}

func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req struct {
		PartID     string  `json:"part_id" binding:"required"`
		Location   string  `json:"location" binding:"required"`
		CountedQty float64 `json:"counted_qty"`
		Notes      string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	item, err := h.svc.Adjust(req.PartID, req.Location, req.CountedQty, req.Notes, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, item)
}

func (h *InventoryHandler) SetReorderPoint(c *gin.Context) {
	var req struct {
		PartID       string  `json:"part_id" binding:"required"`
		Location     string  `json:"location" binding:"required"`
		ReorderPoint float64 `json:"reorder_point"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	item, err := h.svc.SetReorderPoint(req.PartID, req.Location, req.ReorderPoint)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, item)
}

func (h *InventoryHandler) StockForPart(c *gin.Context) {
	items, total, err := h.svc.StockForPart(c.Param("part_id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"items": items, "total_on_hand": total})
}

func (h *InventoryHandler) Transactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	txs, err := h.svc.Transactions(c.Param("part_id"), limit)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, txs)
}

func (h *InventoryHandler) CreateOpenOrder(c *gin.Context) {
	var req service.CreateOpenOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	order, err := h.svc.CreateOpenOrder(req, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, order)
}

func (h *InventoryHandler) ReceiveOpenOrder(c *gin.Context) {
	var req struct {
		Location string `json:"location"`
	}
	c.ShouldBindJSON(&req)
	order, err := h.svc.ReceiveOpenOrder(c.Param("id"), req.Location, GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "open order not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, order)
}

func (h *InventoryHandler) CancelOpenOrder(c *gin.Context) {
	order, err := h.svc.CancelOpenOrder(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "open order not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, order)
}

func (h *InventoryHandler) ListOpenOrders(c *gin.Context) {
	orders, err := h.svc.ListOpenOrders()
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, orders)
}

func (h *InventoryHandler) ReorderSuggestions(c *gin.Context) {
	suggestions, err := h.svc.ReorderSuggestions()
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, suggestions)
}
