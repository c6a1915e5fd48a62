package services

import (
	"context"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"gorm.io/gorm"

	"washpro-backend/cache"
	"washpro-backend/config"
	"washpro-backend/models"
	"washpro-backend/notify/mocks"
	"washpro-backend/store"
	"washpro-backend/testutil"
)

type fixture struct {
	ctx    context.Context
	db     *gorm.DB
	sms    *mocks.MockSMSSender
	mailer *mocks.MockMailer

	catalog    *CatalogService
	customers  *CustomerService
	inventory  *InventoryService
	settings   *SettingsService
	messaging  *MessagingService
	bonuses    *BonusService
	milestones *MilestoneService
	checkIns   *CheckInService
	sales      *SalesService
	tools      *ToolService
	payments   *PaymentService
	accounts   *AccountService
	reports    *ReportService
	dashboard  *DashboardService
}

func testConfig() config.Config {
	return config.Config{
		BusinessName:      "WashPro",
		JWTSecret:         "test-secret",
		TokenExpiry:       time.Hour,
		DashboardCacheTTL: time.Minute,
		SweepCron:         "0 2 * * *",
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	db := testutil.NewDB(t)
	uow := store.NewUnitOfWork(db)
	cfg := testConfig()

	f := &fixture{
		ctx:    context.Background(),
		db:     db,
		sms:    mocks.NewMockSMSSender(ctrl),
		mailer: mocks.NewMockMailer(ctrl),
	}
	f.catalog = NewCatalogService(uow)
	f.customers = NewCustomerService(uow)
	f.inventory = NewInventoryService(uow)
	f.settings = NewSettingsService(uow, cfg)
	f.messaging = NewMessagingService(uow, f.sms, f.settings)
	f.bonuses = NewBonusService(uow, f.messaging)
	f.milestones = NewMilestoneService(uow, f.messaging)
	f.checkIns = NewCheckInService(uow, f.milestones)
	f.sales = NewSalesService(uow)
	f.tools = NewToolService(uow)
	f.payments = NewPaymentService(uow)
	f.accounts = NewAccountService(uow, f.mailer, f.settings, cfg)
	f.reports = NewReportService(uow)
	f.dashboard = NewDashboardService(uow, cache.NoopMetricsCache{}, f.inventory, cfg)
	return f
}

func (f *fixture) customer(t *testing.T, name, phone string) *models.Customer {
	t.Helper()
	c, err := f.customers.Create(f.ctx, CustomerInput{
		Name:     name,
		Phone:    phone,
		Vehicles: []VehicleInput{{LicensePlate: phone[len(phone)-4:] + " AB", Make: "Toyota"}},
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return c
}

func (f *fixture) service(t *testing.T, name string, price, washerPct, companyPct float64) *models.Service {
	t.Helper()
	s, err := f.catalog.Create(f.ctx, ServiceInput{
		Name:                        name,
		Price:                       price,
		WasherCommissionPercentage:  washerPct,
		CompanyCommissionPercentage: companyPct,
	})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	return s
}

func (f *fixture) item(t *testing.T, name string, stock, minLevel int) *InventoryView {
	t.Helper()
	item, err := f.inventory.Create(f.ctx, InventoryInput{
		Name:          name,
		CurrentStock:  stock,
		MinStockLevel: minLevel,
		UnitCost:      2,
		SellingPrice:  5,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	return item
}

func (f *fixture) washer(t *testing.T, name, email string) *models.Washer {
	t.Helper()
	w := models.Washer{Name: name, Email: email, Password: "secret123", Status: models.WasherStatusActive}
	if err := f.db.Create(&w).Error; err != nil {
		t.Fatalf("create washer: %v", err)
	}
	return &w
}

func (f *fixture) stockOf(t *testing.T, id interface{}) int {
	t.Helper()
	var item models.InventoryItem
	if err := f.db.First(&item, "id = ?", id).Error; err != nil {
		t.Fatalf("load item: %v", err)
	}
	return item.CurrentStock
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
