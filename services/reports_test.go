package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"washpro-backend/utils"
)

func TestFinancialReport(t *testing.T) {
	f := newFixture(t)
	customer := f.customer(t, "Ana", "+15550001111")
	washer := f.washer(t, "Carl", "carl@example.com")
	f.completedCheckIn(t, customer, washer)
	f.completedCheckIn(t, customer, washer)

	wax := f.item(t, "Wax", 10, 1)
	if _, err := f.sales.Create(f.ctx, SaleInput{Items: []SaleItemInput{{InventoryItemID: wax.ID, Quantity: 2}}}); err != nil {
		t.Fatalf("sale: %v", err)
	}

	from, to := utils.MonthRange(now())
	report, err := f.reports.Financial(f.ctx, from, to)
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	checks := map[string]struct{ got, want decimal.Decimal }{
		"revenue":       {report.Revenue, decimal.NewFromInt(30)},
		"companyIncome": {report.CompanyIncome, decimal.NewFromInt(18)},
		"washerIncome":  {report.WasherIncome, decimal.NewFromInt(12)},
		"salesRevenue":  {report.SalesRevenue, decimal.NewFromInt(10)},
		"salesCost":     {report.SalesCost, decimal.NewFromInt(4)},
		"netIncome":     {report.NetIncome, decimal.NewFromInt(24)},
	}
	for name, c := range checks {
		if !c.got.Equal(c.want) {
			t.Errorf("%s = %s, want %s", name, c.got, c.want)
		}
	}
	if report.CheckIns != 2 || len(report.TopServices) != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(report.Daily) != utils.DaysBetween(from, to) {
		t.Fatalf("expected one row per day, got %d", len(report.Daily))
	}

	today := now().Format(utils.DateLayout)
	for _, d := range report.Daily {
		if d.Date == today && d.CheckIns != 2 {
			t.Fatalf("expected today's check-ins in the daily row, got %+v", d)
		}
	}
}
