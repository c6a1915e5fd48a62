package services

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"washpro-backend/cache"
	"washpro-backend/config"
	"washpro-backend/models"
	"washpro-backend/store"
	"washpro-backend/utils"
)

const dashboardCacheKey = "dashboard:metrics"

type DashboardMetrics struct {
	TotalCustomers         int64           `json:"totalCustomers"`
	ActiveWashers          int64           `json:"activeWashers"`
	TodayRevenue           decimal.Decimal `json:"todayRevenue"`
	TodayCheckIns          int             `json:"todayCheckIns"`
	MonthRevenue           decimal.Decimal `json:"monthRevenue"`
	MonthCompanyIncome     decimal.Decimal `json:"monthCompanyIncome"`
	ActiveCheckIns         int64           `json:"activeCheckIns"`
	PendingBonuses         int64           `json:"pendingBonuses"`
	PendingPaymentRequests int64           `json:"pendingPaymentRequests"`
	LowStockItems          []InventoryView `json:"lowStockItems"`
	GeneratedAt            time.Time       `json:"generatedAt"`
}

type DashboardService struct {
	uow       *store.UnitOfWork
	cache     cache.MetricsCache
	inventory *InventoryService
	ttl       time.Duration
}

func NewDashboardService(uow *store.UnitOfWork, metricsCache cache.MetricsCache, inventory *InventoryService, cfg config.Config) *DashboardService {
	return &DashboardService{uow: uow, cache: metricsCache, inventory: inventory, ttl: cfg.DashboardCacheTTL}
}

// Metrics serves the cached snapshot when fresh. Cache failures fall through
// to the database.
func (s *DashboardService) Metrics(ctx context.Context) (*DashboardMetrics, error) {
	var cached DashboardMetrics
	hit, err := s.cache.Get(ctx, dashboardCacheKey, &cached)
	if err != nil {
		log.Printf("[dashboard] cache read failed: %v", err)
	}
	if hit {
		return &cached, nil
	}

	metrics, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	if s.ttl > 0 {
		if err := s.cache.Set(ctx, dashboardCacheKey, metrics, s.ttl); err != nil {
			log.Printf("[dashboard] cache write failed: %v", err)
		}
	}
	return metrics, nil
}

func (s *DashboardService) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, dashboardCacheKey); err != nil {
		log.Printf("[dashboard] cache invalidation failed: %v", err)
	}
}

func (s *DashboardService) compute(ctx context.Context) (*DashboardMetrics, error) {
	db := s.uow.DB(ctx)
	at := now()
	m := &DashboardMetrics{GeneratedAt: at}

	if err := db.Model(&models.Customer{}).Where("is_active = ?", true).Count(&m.TotalCustomers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Washer{}).Where("status = ?", models.WasherStatusActive).Count(&m.ActiveWashers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.CheckIn{}).
		Where("status IN ?", []string{models.CheckInStatusPending, models.CheckInStatusInProgress}).
		Count(&m.ActiveCheckIns).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Bonus{}).Where("status = ?", models.BonusStatusPending).Count(&m.PendingBonuses).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.PaymentRequest{}).Where("status = ?", models.PaymentRequestPending).Count(&m.PendingPaymentRequests).Error; err != nil {
		return nil, err
	}

	monthStart, monthEnd := utils.MonthRange(at)
	var checkIns []models.CheckIn
	err := db.Select("id", "total_amount", "company_income", "checked_in_at").
		Where("status IN ? AND checked_in_at >= ? AND checked_in_at < ?", models.CountedCheckInStatuses, monthStart, monthEnd).
		Find(&checkIns).Error
	if err != nil {
		return nil, err
	}

	today := utils.BeginningOfDay(at)
	for _, c := range checkIns {
		m.MonthRevenue = m.MonthRevenue.Add(money(c.TotalAmount))
		m.MonthCompanyIncome = m.MonthCompanyIncome.Add(money(c.CompanyIncome))
		if !c.CheckedInAt.Before(today) {
			m.TodayCheckIns++
			m.TodayRevenue = m.TodayRevenue.Add(money(c.TotalAmount))
		}
	}

	lowStock, err := s.inventory.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	m.LowStockItems = lowStock
	return m, nil
}
