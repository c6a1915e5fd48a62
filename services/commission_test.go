package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"washpro-backend/models"
)

func TestValidateCommission(t *testing.T) {
	cases := []struct {
		washer, company float64
		ok              bool
	}{
		{40, 60, true},
		{0, 100, true},
		{33.5, 66.5, true},
		{40, 61, false},
		{-10, 110, false},
		{50, 49.99, false},
	}
	for _, tc := range cases {
		err := ValidateCommission(tc.washer, tc.company)
		if tc.ok && err != nil {
			t.Errorf("%v/%v: unexpected error %v", tc.washer, tc.company, err)
		}
		if !tc.ok && !IsValidation(err) {
			t.Errorf("%v/%v: expected validation error, got %v", tc.washer, tc.company, err)
		}
	}
}

func TestComputeSplit(t *testing.T) {
	snapshots := []models.CheckInService{
		{Price: 20, CompanyCommissionPercentage: 60, WasherCommissionPercentage: 40},
		{Price: 10.01, CompanyCommissionPercentage: 50, WasherCommissionPercentage: 50},
	}

	split := ComputeSplit(snapshots, 3)

	if !split.Total.Equal(decimal.RequireFromString("30.01")) {
		t.Fatalf("total = %s", split.Total)
	}
	// 12 + 5.005 rounds to 17.01
	if !split.CompanyIncome.Equal(decimal.RequireFromString("17.01")) {
		t.Fatalf("company = %s", split.CompanyIncome)
	}
	if !split.WasherIncome.Equal(decimal.RequireFromString("13")) {
		t.Fatalf("washer = %s", split.WasherIncome)
	}

	sum := decimal.Zero
	for _, e := range split.WasherEarnings {
		sum = sum.Add(e)
	}
	if !sum.Equal(split.WasherIncome) {
		t.Fatalf("earnings %v do not add up to %s", split.WasherEarnings, split.WasherIncome)
	}
	if !split.WasherEarnings[0].Equal(decimal.RequireFromString("4.34")) || !split.WasherEarnings[1].Equal(decimal.RequireFromString("4.33")) {
		t.Fatalf("unexpected earnings %v", split.WasherEarnings)
	}
}

func TestComputeSplitWithoutWashers(t *testing.T) {
	split := ComputeSplit([]models.CheckInService{{Price: 10, CompanyCommissionPercentage: 100}}, 0)
	if len(split.WasherEarnings) != 0 || !split.WasherIncome.IsZero() {
		t.Fatalf("unexpected split %+v", split)
	}
}
