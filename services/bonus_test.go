package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"washpro-backend/models"
)

func TestItemBonusRejectedWhenOutOfStock(t *testing.T) {
	f := newFixture(t)
	customer := f.customer(t, "Ana", "+15550001111")
	item := f.item(t, "Air Freshener", 0, 2)

	// no SMS expected: nothing was issued
	_, err := f.bonuses.Create(f.ctx, BonusInput{
		RecipientType:   models.RecipientCustomer,
		CustomerID:      &customer.ID,
		BonusType:       models.BonusTypeItem,
		InventoryItemID: &item.ID,
		Quantity:        1,
		Reason:          "Loyalty",
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if got := f.stockOf(t, item.ID); got != 0 {
		t.Fatalf("stock changed to %d", got)
	}
	if n := f.count(t, &models.Bonus{}); n != 0 {
		t.Fatalf("expected no bonus rows, got %d", n)
	}
}

func TestItemBonusTakesStockAndSendsOneSMS(t *testing.T) {
	f := newFixture(t)
	customer := f.customer(t, "Ana", "+15550001111")
	item := f.item(t, "Air Freshener", 3, 1)

	f.sms.EXPECT().
		SendSMS(gomock.Any(), "+15550001111", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, body string) error {
			if !strings.Contains(body, "Ana") || !strings.Contains(body, "1 x Air Freshener") {
				t.Errorf("unexpected body %q", body)
			}
			return nil
		}).
		Times(1)

	bonus, err := f.bonuses.Create(f.ctx, BonusInput{
		RecipientType:   models.RecipientCustomer,
		CustomerID:      &customer.ID,
		BonusType:       models.BonusTypeItem,
		InventoryItemID: &item.ID,
		Quantity:        1,
		Reason:          "Loyalty",
	})
	if err != nil {
		t.Fatalf("create bonus: %v", err)
	}
	if bonus.Status != models.BonusStatusPending {
		t.Fatalf("expected pending, got %s", bonus.Status)
	}
	if got := f.stockOf(t, item.ID); got != 2 {
		t.Fatalf("expected stock 2, got %d", got)
	}
	if n := f.count(t, &models.Bonus{}); n != 1 {
		t.Fatalf("expected exactly one bonus row, got %d", n)
	}

	var logEntry models.NotificationLog
	if err := f.db.First(&logEntry).Error; err != nil {
		t.Fatalf("notification log: %v", err)
	}
	if logEntry.Status != models.NotificationSent || logEntry.BonusID == nil || *logEntry.BonusID != bonus.ID {
		t.Fatalf("unexpected log entry %+v", logEntry)
	}
}

func TestSMSFailureLeavesBonusPending(t *testing.T) {
	f := newFixture(t)
	customer := f.customer(t, "Ben", "+15550002222")

	f.sms.EXPECT().SendSMS(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("twilio down")).Times(1)

	bonus, err := f.bonuses.Create(f.ctx, BonusInput{
		RecipientType: models.RecipientCustomer,
		CustomerID:    &customer.ID,
		BonusType:     models.BonusTypeMoney,
		Amount:        10,
		Reason:        "Referral",
	})
	if err != nil {
		t.Fatalf("SMS failure must not fail the bonus: %v", err)
	}

	var stored models.Bonus
	if err := f.db.First(&stored, "id = ?", bonus.ID).Error; err != nil {
		t.Fatalf("load bonus: %v", err)
	}
	if stored.Status != models.BonusStatusPending {
		t.Fatalf("expected pending, got %s", stored.Status)
	}

	var logEntry models.NotificationLog
	if err := f.db.First(&logEntry).Error; err != nil {
		t.Fatalf("notification log: %v", err)
	}
	if logEntry.Status != models.NotificationFailed || logEntry.ErrorMessage != "twilio down" {
		t.Fatalf("unexpected log entry %+v", logEntry)
	}
}

func TestWasherBonusSendsNoSMS(t *testing.T) {
	f := newFixture(t)
	washer := f.washer(t, "Carl", "carl@example.com")

	bonus, err := f.bonuses.Create(f.ctx, BonusInput{
		RecipientType: models.RecipientWasher,
		WasherID:      &washer.ID,
		BonusType:     models.BonusTypeMoney,
		Amount:        25,
		Reason:        "Best washer of the month",
	})
	if err != nil {
		t.Fatalf("create bonus: %v", err)
	}

	mine, err := f.bonuses.ListForWasher(f.ctx, washer.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != bonus.ID {
		t.Fatalf("unexpected washer bonuses %+v", mine)
	}
}

func TestBonusStatusMachine(t *testing.T) {
	f := newFixture(t)
	washer := f.washer(t, "Dee", "dee@example.com")
	item := f.item(t, "Gloves", 5, 1)

	bonus, err := f.bonuses.Create(f.ctx, BonusInput{
		RecipientType:   models.RecipientWasher,
		WasherID:        &washer.ID,
		BonusType:       models.BonusTypeItem,
		InventoryItemID: &item.ID,
		Quantity:        2,
		Reason:          "Kit",
	})
	if err != nil {
		t.Fatalf("create bonus: %v", err)
	}
	if got := f.stockOf(t, item.ID); got != 3 {
		t.Fatalf("expected stock 3, got %d", got)
	}

	if _, err := f.bonuses.UpdateStatus(f.ctx, bonus.ID, BonusStatusInput{Status: models.BonusStatusPaid}); !IsValidation(err) {
		t.Fatalf("pending -> paid must be rejected, got %v", err)
	}

	approved, err := f.bonuses.UpdateStatus(f.ctx, bonus.ID, BonusStatusInput{Status: models.BonusStatusApproved})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.ApprovedAt == nil {
		t.Fatalf("expected approvedAt to be set")
	}

	cancelled, err := f.bonuses.UpdateStatus(f.ctx, bonus.ID, BonusStatusInput{Status: models.BonusStatusCancelled})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != models.BonusStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	if got := f.stockOf(t, item.ID); got != 5 {
		t.Fatalf("cancelling must return stock, got %d", got)
	}

	if _, err := f.bonuses.UpdateStatus(f.ctx, bonus.ID, BonusStatusInput{Status: models.BonusStatusApproved}); !IsValidation(err) {
		t.Fatalf("cancelled is terminal, got %v", err)
	}
}

func TestBonusValidation(t *testing.T) {
	f := newFixture(t)
	customer := f.customer(t, "Eve", "+15550003333")

	cases := []struct {
		name string
		in   BonusInput
	}{
		{"missing recipient id", BonusInput{RecipientType: models.RecipientCustomer, BonusType: models.BonusTypeMoney, Amount: 5, Reason: "x"}},
		{"zero money", BonusInput{RecipientType: models.RecipientCustomer, CustomerID: &customer.ID, BonusType: models.BonusTypeMoney, Reason: "x"}},
		{"item without item", BonusInput{RecipientType: models.RecipientCustomer, CustomerID: &customer.ID, BonusType: models.BonusTypeItem, Reason: "x"}},
		{"no reason", BonusInput{RecipientType: models.RecipientCustomer, CustomerID: &customer.ID, BonusType: models.BonusTypeMoney, Amount: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.bonuses.Create(f.ctx, tc.in); !IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
