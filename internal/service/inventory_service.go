package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/model/entity"
	"github.com/bitforge/plm/internal/repository"
)

// ErrInsufficientStock is returned when an issue would drive on-hand
// negative.
var ErrInsufficientStock = errors.New("insufficient stock")

type InventoryService struct {
	inventoryRepo *repository.InventoryRepository
	partRepo      *repository.PartRepository
}

func NewInventoryService(inventoryRepo *repository.InventoryRepository, partRepo *repository.PartRepository) *InventoryService {
	return &InventoryService{inventoryRepo: inventoryRepo, partRepo: partRepo}
}

func (s *InventoryService) getOrCreateItem(partID, location string) (*entity.InventoryItem, error) {
	item, err := s.inventoryRepo.GetItem(partID, location)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.partRepo.GetByID(partID); err != nil {
		return nil, fmt.Errorf("part not found: %w", err)
	}
	item = &entity.InventoryItem{
		ID:       uuid.New().String(),
		PartID:   partID,
		Location: location,
	}
	if err := s.inventoryRepo.CreateItem(item); err != nil {
		return nil, fmt.Errorf("create stock record: %w", err)
	}
	return item, nil
}

func (s *InventoryService) journal(partID, location, txType string, qty float64, reference, notes, userID string) error {
	tx := &entity.InventoryTransaction{
		ID:        uuid.New().String(),
		PartID:    partID,
		Location:  location,
		TxType:    txType,
		Quantity:  qty,
		Reference: reference,
		Notes:     notes,
		CreatedBy: userID,
	}
	return s.inventoryRepo.CreateTransaction(tx)
}

func (s *InventoryService) Receive(partID, location string, qty float64, reference, userID string) (*entity.InventoryItem, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("receipt quantity must be positive")
	}
	item, err := s.getOrCreateItem(partID, location)
	if err != nil {
		return nil, err
	}
	item.OnHand += qty
	if err := s.inventoryRepo.UpdateItem(item); err != nil {
		return nil, fmt.Errorf("update stock: %w", err)
	}
	if err := s.journal(partID, location, entity.TxReceipt, qty, reference, "", userID); err != nil {
		return nil, fmt.Errorf("journal receipt: %w", err)
	}
	return item, nil
}

func (s *InventoryService) Issue(partID, location string, qty float64, reference, userID string) (*entity.InventoryItem, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("issue quantity must be positive")
	}
	item, err := s.inventoryRepo.GetItem(partID, location)
	if err != nil {
		return nil, err
	}
	if item.OnHand < qty {
		return nil, fmt.Errorf("%w: part %s at %s has %.4f, requested %.4f",
			ErrInsufficientStock, partID, location, item.OnHand, qty)
	}
	item.OnHand -= qty
	if err := s.inventoryRepo.UpdateItem(item); err != nil {
		return nil, fmt.Errorf("update stock: %w", err)
	}
	if err := s.journal(partID, location, entity.TxIssue, -qty, reference, "", userID); err != nil {
		return nil, fmt.Errorf("journal issue: %w", err)
	}
	return item, nil
}

// Adjust sets on-hand to a counted quantity and journals the delta.
func (s *InventoryService) Adjust(partID, location string, countedQty float64, notes, userID string) (*entity.InventoryItem, error) {
	if countedQty < 0 {
		return nil, fmt.Errorf("counted quantity cannot be negative")
	}
	item, err := s.getOrCreateItem(partID, location)
	if err != nil {
		return nil, err
	}
	delta := countedQty - item.OnHand
	item.OnHand = countedQty
	if err := s.inventoryRepo.UpdateItem(item); err != nil {
		return nil, fmt.Errorf("update stock: %w", err)
	}
	if err := s.journal(partID, location, entity.TxAdjust, delta, "cycle-count", notes, userID); err != nil {
		return nil, fmt.Errorf("journal adjustment: %w", err)
	}
	return item, nil
}

func (s *InventoryService) SetReorderPoint(partID, location string, point float64) (*entity.InventoryItem, error) {
	item, err := s.getOrCreateItem(partID, location)
	if err != nil {
		return nil, err
	}
	item.ReorderPoint = point
	if err := s.inventoryRepo.UpdateItem(item); err != nil {
		return nil, fmt.Errorf("update stock: %w", err)
	}
	return item, nil
}

func (s *InventoryService) StockForPart(partID string) ([]entity.InventoryItem, float64, error) {
	items, err := s.inventoryRepo.ListItemsForPart(partID)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.inventoryRepo.TotalOnHand(partID)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *InventoryService) Transactions(partID string, limit int) ([]entity.InventoryTransaction, error) {
	return s.inventoryRepo.ListTransactions(partID, limit)
}

type CreateOpenOrderRequest struct {
	OrderNo    string     `json:"order_no" binding:"required"`
	PartID     string     `json:"part_id" binding:"required"`
	SupplierID string     `json:"supplier_id"`
	Quantity   float64    `json:"quantity" binding:"required"`
	DueDate    *time.Time `json:"due_date"`
}

func (s *InventoryService) CreateOpenOrder(req CreateOpenOrderRequest, userID string) (*entity.OpenOrder, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("order quantity must be positive")
	}
	if _, err := s.partRepo.GetByID(req.PartID); err != nil {
		return nil, fmt.Errorf("part not found: %w", err)
	}
	order := &entity.OpenOrder{
		ID:         uuid.New().String(),
		OrderNo:    req.OrderNo,
		PartID:     req.PartID,
		SupplierID: req.SupplierID,
		Quantity:   req.Quantity,
		DueDate:    req.DueDate,
		Status:     entity.OpenOrderOpen,
		CreatedBy:  userID,
	}
	if err := s.inventoryRepo.CreateOpenOrder(order); err != nil {
		return nil, fmt.Errorf("create open order: %w", err)
	}
	return order, nil
}

// ReceiveOpenOrder closes an open purchase order and books the stock.
func (s *InventoryService) ReceiveOpenOrder(orderID, location, userID string) (*entity.OpenOrder, error) {
	order, err := s.inventoryRepo.GetOpenOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OpenOrderOpen {
		return nil, fmt.Errorf("order %s is %s", order.OrderNo, order.Status)
	}
	if location == "" {
		location = "MAIN"
	}
	if _, err := s.Receive(order.PartID, location, order.Quantity, order.OrderNo, userID); err != nil {
		return nil, err
	}
	order.Status = entity.OpenOrderReceived
	if err := s.inventoryRepo.UpdateOpenOrder(order); err != nil {
		return nil, fmt.Errorf("close open order: %w", err)
	}
	return order, nil
}

func (s *InventoryService) CancelOpenOrder(orderID string) (*entity.OpenOrder, error) {
	order, err := s.inventoryRepo.GetOpenOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OpenOrderOpen {
		return nil, fmt.Errorf("order %s is %s", order.OrderNo, order.Status)
	}
	order.Status = entity.OpenOrderCancelled
	if err := s.inventoryRepo.UpdateOpenOrder(order); err != nil {
		return nil, fmt.Errorf("cancel open order: %w", err)
	}
	return order, nil
}

func (s *InventoryService) ListOpenOrders() ([]entity.OpenOrder, error) {
	return s.inventoryRepo.ListOpenOrders()
}

// ReorderSuggestion flags a stock record at or under its reorder point.
type ReorderSuggestion struct {
	PartID       string  `json:"part_id"`
	PartNumber   string  `json:"part_number"`
	Location     string  `json:"location"`
	OnHand       float64 `json:"on_hand"`
	ReorderPoint float64 `json:"reorder_point"`
	SuggestedQty float64 `json:"suggested_qty"`
}

func (s *InventoryService) ReorderSuggestions() ([]ReorderSuggestion, error) {
	items, err := s.inventoryRepo.ListBelowReorderPoint()
	if err != nil {
		return nil, err
	}
	suggestions := make([]ReorderSuggestion, 0, len(items))
	for _, item := range items {
		suggestion := ReorderSuggestion{
			PartID:       item.PartID,
			Location:     item.Location,
			OnHand:       item.OnHand,
			ReorderPoint: item.ReorderPoint,
			SuggestedQty: item.ReorderPoint - item.OnHand,
		}
		if part, err := s.partRepo.GetByID(item.PartID); err == nil {
			suggestion.PartNumber = part.PartNumber
			if part.MinOrderQty > suggestion.SuggestedQty {
				suggestion.SuggestedQty = part.MinOrderQty
			}
		}
		suggestions = append(suggestions, suggestion)
	}
	return suggestions, nil
}
