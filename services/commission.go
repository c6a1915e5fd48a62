package services

import (
	"github.com/shopspring/decimal"

	"washpro-backend/models"
)

var hundred = decimal.NewFromInt(100)

// Split is the income breakdown of a finished check-in.
type Split struct {
	Total          decimal.Decimal
	CompanyIncome  decimal.Decimal
	WasherIncome   decimal.Decimal
	WasherEarnings []decimal.Decimal
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// ValidateCommission checks that a service's percentages are in range and sum to 100.
func ValidateCommission(washer, company float64) error {
	if washer < 0 || company < 0 || washer > 100 || company > 100 {
		return invalid("commission percentages must be between 0 and 100")
	}
	if !decimal.NewFromFloat(washer).Add(decimal.NewFromFloat(company)).Equal(hundred) {
		return ErrInvalidCommission
	}
	return nil
}

// ComputeSplit sums the service snapshots and divides the washer share equally
// between washerCount washers. Leftover cents go to the first washer.
func ComputeSplit(services []models.CheckInService, washerCount int) Split {
	total := decimal.Zero
	company := decimal.Zero
	for _, s := range services {
		price := money(s.Price)
		total = total.Add(price)
		company = company.Add(price.Mul(decimal.NewFromFloat(s.CompanyCommissionPercentage)).Div(hundred))
	}
	company = company.Round(2)
	washer := total.Sub(company)

	split := Split{Total: total, CompanyIncome: company, WasherIncome: washer}
	if washerCount <= 0 {
		return split
	}

	n := decimal.NewFromInt(int64(washerCount))
	share := washer.Div(n).RoundDown(2)
	remainder := washer.Sub(share.Mul(n))
	split.WasherEarnings = make([]decimal.Decimal, washerCount)
	for i := range split.WasherEarnings {
		split.WasherEarnings[i] = share
	}
	split.WasherEarnings[0] = share.Add(remainder)
	return split
}
