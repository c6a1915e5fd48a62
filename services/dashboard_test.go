package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"washpro-backend/models"
)

type mapCache struct {
	data    map[string][]byte
	deletes int
}

func (m *mapCache) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *mapCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
		m.deletes++
	}
	return nil
}

func TestDashboardMetricsAreCached(t *testing.T) {
	f := newFixture(t)
	mc := &mapCache{data: map[string][]byte{}}
	dashboard := NewDashboardService(f.dashboard.uow, mc, f.inventory, testConfig())

	customer := f.customer(t, "Ana", "+15550001111")
	svc := f.service(t, "Exterior", 15, 40, 60)
	f.item(t, "Foam", 1, 5)
	if _, err := f.checkIns.Create(f.ctx, CheckInInput{
		CustomerID: customer.ID,
		VehicleID:  customer.Vehicles[0].ID,
		ServiceIDs: []uuid.UUID{svc.ID},
	}); err != nil {
		t.Fatalf("check-in: %v", err)
	}

	first, err := dashboard.Metrics(f.ctx)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if first.TotalCustomers != 1 || first.ActiveCheckIns != 1 || len(first.LowStockItems) != 1 {
		t.Fatalf("unexpected metrics %+v", first)
	}

	f.customer(t, "Ben", "+15550002222")
	cached, err := dashboard.Metrics(f.ctx)
	if err != nil {
		t.Fatalf("cached metrics: %v", err)
	}
	if cached.TotalCustomers != 1 {
		t.Fatalf("expected cached value, got %d customers", cached.TotalCustomers)
	}

	dashboard.Invalidate(f.ctx)
	fresh, err := dashboard.Metrics(f.ctx)
	if err != nil {
		t.Fatalf("fresh metrics: %v", err)
	}
	if fresh.TotalCustomers != 2 || mc.deletes != 1 {
		t.Fatalf("expected recomputed metrics, got %+v", fresh)
	}
	if fresh.LowStockItems[0].StockStatus != models.StockStatusLow {
		t.Fatalf("unexpected low stock entry %+v", fresh.LowStockItems[0])
	}
}
