package services

import (
	"testing"

	"washpro-backend/models"
)

func TestToolAssignmentMovesStock(t *testing.T) {
	f := newFixture(t)
	washer := f.washer(t, "Carl", "carl@example.com")
	vacuum := f.item(t, "Vacuum", 2, 0)

	tool, err := f.tools.Assign(f.ctx, WasherToolInput{WasherID: washer.ID, InventoryItemID: vacuum.ID})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if tool.Quantity != 1 || tool.Status != models.ToolStatusAssigned {
		t.Fatalf("unexpected tool %+v", tool)
	}
	if got := f.stockOf(t, vacuum.ID); got != 1 {
		t.Fatalf("expected stock 1, got %d", got)
	}

	returned, err := f.tools.UpdateToolStatus(f.ctx, tool.ID, ToolStatusInput{Status: models.ToolStatusReturned})
	if err != nil {
		t.Fatalf("return: %v", err)
	}
	if returned.ReturnedAt == nil {
		t.Fatalf("expected returnedAt")
	}
	if got := f.stockOf(t, vacuum.ID); got != 2 {
		t.Fatalf("expected stock back to 2, got %d", got)
	}
	if _, err := f.tools.UpdateToolStatus(f.ctx, tool.ID, ToolStatusInput{Status: models.ToolStatusLost}); !IsValidation(err) {
		t.Fatalf("closed assignments cannot change, got %v", err)
	}
}

func TestLostToolRaisesCharge(t *testing.T) {
	f := newFixture(t)
	washer := f.washer(t, "Dee", "dee@example.com")
	brush := f.item(t, "Brush", 3, 0)

	tool, err := f.tools.Assign(f.ctx, WasherToolInput{WasherID: washer.ID, InventoryItemID: brush.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	amount := 12.5
	if _, err := f.tools.UpdateToolStatus(f.ctx, tool.ID, ToolStatusInput{Status: models.ToolStatusLost, ChargeAmount: &amount}); err != nil {
		t.Fatalf("lost: %v", err)
	}
	if got := f.stockOf(t, brush.ID); got != 1 {
		t.Fatalf("lost tools stay out of stock, got %d", got)
	}

	charges, err := f.tools.ListCharges(f.ctx, &washer.ID, models.ToolChargePending)
	if err != nil {
		t.Fatalf("list charges: %v", err)
	}
	if len(charges) != 1 || charges[0].Amount != 12.5 || charges[0].WasherToolID == nil {
		t.Fatalf("unexpected charges %+v", charges)
	}

	waived, err := f.tools.UpdateChargeStatus(f.ctx, charges[0].ID, ToolChargeStatusInput{Status: models.ToolChargeWaived})
	if err != nil {
		t.Fatalf("waive: %v", err)
	}
	if waived.Status != models.ToolChargeWaived {
		t.Fatalf("expected waived, got %s", waived.Status)
	}
	if _, err := f.tools.UpdateChargeStatus(f.ctx, charges[0].ID, ToolChargeStatusInput{Status: models.ToolChargeDeducted}); !IsValidation(err) {
		t.Fatalf("waived charges are final, got %v", err)
	}
}
