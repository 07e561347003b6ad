package service

import (
	"errors"
	"testing"
	"time"

	"github.com/bitforge/plm/internal/model/entity"
	"github.com/bitforge/plm/internal/repository"
	"github.com/bitforge/plm/internal/testutil"
)

func setupInventoryTest(t *testing.T) (*InventoryService, *entity.Part) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	part := testutil.SeedPart(t, db, "11111111-1111-1111-1111-111111111111", "P-9000", "Fastener")

	svc := NewInventoryService(
		repository.NewInventoryRepository(db),
		repository.NewPartRepository(db),
	)
	return svc, part
}

func TestInventoryReceiveAndIssue(t *testing.T) {
	svc, part := setupInventoryTest(t)

	item, err := svc.Receive(part.ID, "MAIN", 100, "GRN-1", "test-user-001")
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if item.OnHand != 100 {
		t.Fatalf("on hand after receive = %v, want 100", item.OnHand)
	}

	item, err = svc.Issue(part.ID, "MAIN", 30, "WO-1", "test-user-001")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if item.OnHand != 70 {
		t.Fatalf("on hand after issue = %v, want 70", item.OnHand)
	}

	txs, err := svc.Transactions(part.ID, 10)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("transaction count = %d, want 2", len(txs))
	}
}

func TestInventoryIssueInsufficientStock(t *testing.T) {
	svc, part := setupInventoryTest(t)

	if _, err := svc.Receive(part.ID, "MAIN", 5, "GRN-2", "test-user-001"); err != nil {
		t.Fatalf("receive: %v", err)
	}
	_, err := svc.Issue(part.ID, "MAIN", 10, "WO-2", "test-user-001")
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("issue beyond stock: err = %v, want ErrInsufficientStock", err)
	}
}

func TestInventoryAdjustWritesDelta(t *testing.T) {
	svc, part := setupInventoryTest(t)

	if _, err := svc.Receive(part.ID, "MAIN", 50, "GRN-3", "test-user-001"); err != nil {
		t.Fatalf("receive: %v", err)
	}
	item, err := svc.Adjust(part.ID, "MAIN", 42, "cycle count", "test-user-001")
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if item.OnHand != 42 {
		t.Fatalf("on hand after adjust = %v, want 42", item.OnHand)
	}
}

func TestOpenOrderReceiveBooksStock(t *testing.T) {
	svc, part := setupInventoryTest(t)

	due := time.Now().AddDate(0, 0, 14)
	order, err := svc.CreateOpenOrder(CreateOpenOrderRequest{
		OrderNo:  "PO-1001",
		PartID:   part.ID,
		Quantity: 25,
		DueDate:  &due,
	}, "test-user-001")
	if err != nil {
		t.Fatalf("create open order: %v", err)
	}

	order, err = svc.ReceiveOpenOrder(order.ID, "", "test-user-001")
	if err != nil {
		t.Fatalf("receive open order: %v", err)
	}
	if order.Status != entity.OpenOrderReceived {
		t.Fatalf("order status = %v, want received", order.Status)
	}

	_, total, err := svc.StockForPart(part.ID)
	if err != nil {
		t.Fatalf("stock for part: %v", err)
	}
	if total != 25 {
		t.Fatalf("total on hand = %v, want 25", total)
	}

	if _, err := svc.ReceiveOpenOrder(order.ID, "", "test-user-001"); err == nil {
		t.Fatal("receiving a closed order should fail")
	}
}

func TestReorderSuggestions(t *testing.T) {
	svc, part := setupInventoryTest(t)

	if _, err := svc.Receive(part.ID, "MAIN", 3, "GRN-4", "test-user-001"); err != nil {
		t.Fatalf("receive: %v", err)
	}
	if _, err := svc.SetReorderPoint(part.ID, "MAIN", 10); err != nil {
		t.Fatalf("set reorder point: %v", err)
	}

	suggestions, err := svc.ReorderSuggestions()
	if err != nil {
		t.Fatalf("reorder suggestions: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("suggestion count = %d, want 1", len(suggestions))
	}
	if suggestions[0].PartID != part.ID {
		t.Fatalf("suggestion part = %s, want %s", suggestions[0].PartID, part.ID)
	}
}
