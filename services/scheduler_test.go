package services

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"washpro-backend/models"
	"washpro-backend/store"
)

func TestLowStockScanMailsAdmins(t *testing.T) {
	f := newFixture(t)
	scheduler := NewScheduler(testConfig(), f.milestones, f.inventory, f.accounts, f.settings, f.mailer)

	admin := models.Admin{Name: "Owner", Email: "owner@example.com", Password: "secret123", Role: models.RoleSuperAdmin}
	if err := f.db.Create(&admin).Error; err != nil {
		t.Fatalf("create admin: %v", err)
	}
	f.item(t, "Foam", 2, 5)
	f.item(t, "Wax", 40, 5)

	f.mailer.EXPECT().
		SendMail(gomock.Any(), "owner@example.com", "WashPro: low stock", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, html string) error {
			if !strings.Contains(html, "Foam") || strings.Contains(html, "Wax") {
				t.Errorf("unexpected low-stock body: %s", html)
			}
			return nil
		}).
		Times(1)

	scheduler.RunLowStockScan()
}

func TestLowStockScanUsesConfiguredBusinessName(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig()
	cfg.BusinessName = "Sparkle Bay"
	settings := NewSettingsService(store.NewUnitOfWork(f.db), cfg)
	scheduler := NewScheduler(cfg, f.milestones, f.inventory, f.accounts, settings, f.mailer)

	admin := models.Admin{Name: "Owner", Email: "owner@example.com", Password: "secret123", Role: models.RoleSuperAdmin}
	if err := f.db.Create(&admin).Error; err != nil {
		t.Fatalf("create admin: %v", err)
	}
	f.item(t, "Foam", 2, 5)

	f.mailer.EXPECT().
		SendMail(gomock.Any(), "owner@example.com", "Sparkle Bay: low stock", gomock.Any()).
		Return(nil).
		Times(1)

	scheduler.RunLowStockScan()
}

func TestLowStockScanQuietWhenStocked(t *testing.T) {
	f := newFixture(t)
	scheduler := NewScheduler(testConfig(), f.milestones, f.inventory, f.accounts, f.settings, f.mailer)
	f.item(t, "Wax", 40, 5)

	// no SendMail expectation: any call fails the test
	scheduler.RunLowStockScan()
}
