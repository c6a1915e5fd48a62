package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"washpro-backend/models"
)

func TestStockStatus(t *testing.T) {
	cases := []struct {
		current, min int
		want         string
	}{
		{10, 10, models.StockStatusLow},
		{0, 0, models.StockStatusLow},
		{15, 10, models.StockStatusMedium},
		{20, 10, models.StockStatusMedium},
		{25, 10, models.StockStatusGood},
		{1, 0, models.StockStatusGood},
	}
	for _, tc := range cases {
		if got := StockStatus(tc.current, tc.min); got != tc.want {
			t.Errorf("StockStatus(%d, %d) = %s, want %s", tc.current, tc.min, got, tc.want)
		}
	}
}

func TestInventoryCreateRestockAndLowStock(t *testing.T) {
	f := newFixture(t)

	foam := f.item(t, "Foam Shampoo", 10, 10)
	if foam.StockStatus != models.StockStatusLow {
		t.Fatalf("expected low, got %s", foam.StockStatus)
	}
	if foam.SKU == "" {
		t.Fatalf("expected generated SKU")
	}
	f.item(t, "Wax", 25, 10)

	low, err := f.inventory.LowStock(f.ctx)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(low) != 1 || low[0].ID != foam.ID {
		t.Fatalf("expected only foam to be low, got %+v", low)
	}

	restocked, err := f.inventory.Restock(f.ctx, foam.ID, RestockInput{Quantity: 5})
	if err != nil {
		t.Fatalf("restock: %v", err)
	}
	if restocked.CurrentStock != 15 || restocked.StockStatus != models.StockStatusMedium {
		t.Fatalf("unexpected restock result: %+v", restocked)
	}

	if _, err := f.inventory.Restock(f.ctx, uuid.New(), RestockInput{Quantity: 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDecrementStockNeverGoesNegative(t *testing.T) {
	f := newFixture(t)
	item := f.item(t, "Towel", 2, 1)

	if err := decrementStock(f.db, item.ID, 3); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if got := f.stockOf(t, item.ID); got != 2 {
		t.Fatalf("stock changed to %d", got)
	}
	if err := decrementStock(f.db, item.ID, 2); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if got := f.stockOf(t, item.ID); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if err := decrementStock(f.db, uuid.New(), 1); !IsValidation(err) || errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected missing item validation error, got %v", err)
	}
}
