package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"washpro-backend/models"
	"washpro-backend/store"
	"washpro-backend/utils"
)

const topServicesLimit = 5

type DailyFinancials struct {
	Date          string          `json:"date"`
	CheckIns      int             `json:"checkIns"`
	Revenue       decimal.Decimal `json:"revenue"`
	CompanyIncome decimal.Decimal `json:"companyIncome"`
	SalesRevenue  decimal.Decimal `json:"salesRevenue"`
}

type ServiceRevenue struct {
	ServiceID   uuid.UUID       `json:"serviceId"`
	ServiceName string          `json:"serviceName"`
	Count       int             `json:"count"`
	Revenue     decimal.Decimal `json:"revenue"`
}

type FinancialReport struct {
	From          string            `json:"from"`
	To            string            `json:"to"`
	CheckIns      int               `json:"checkIns"`
	Revenue       decimal.Decimal   `json:"revenue"`
	CompanyIncome decimal.Decimal   `json:"companyIncome"`
	WasherIncome  decimal.Decimal   `json:"washerIncome"`
	SalesRevenue  decimal.Decimal   `json:"salesRevenue"`
	SalesCost     decimal.Decimal   `json:"salesCost"`
	BonusesPaid   decimal.Decimal   `json:"bonusesPaid"`
	ToolCharges   decimal.Decimal   `json:"toolCharges"`
	NetIncome     decimal.Decimal   `json:"netIncome"`
	Daily         []DailyFinancials `json:"daily"`
	TopServices   []ServiceRevenue  `json:"topServices"`
}

type WasherPayment struct {
	WasherID    uuid.UUID       `json:"washerId"`
	WasherName  string          `json:"washerName"`
	Status      string          `json:"status"`
	Earnings    decimal.Decimal `json:"earnings"`
	ToolCharges decimal.Decimal `json:"toolCharges"`
	Pending     decimal.Decimal `json:"pending"`
	Approved    decimal.Decimal `json:"approved"`
	Paid        decimal.Decimal `json:"paid"`
	Balance     decimal.Decimal `json:"balance"`
}

type PaymentReport struct {
	Washers       []WasherPayment `json:"washers"`
	TotalEarnings decimal.Decimal `json:"totalEarnings"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	TotalPending  decimal.Decimal `json:"totalPending"`
	TotalBalance  decimal.Decimal `json:"totalBalance"`
}

type ReportService struct {
	uow *store.UnitOfWork
}

func NewReportService(uow *store.UnitOfWork) *ReportService {
	return &ReportService{uow: uow}
}

// Financial sums the half-open range [from, to) day by day.
func (s *ReportService) Financial(ctx context.Context, from, to time.Time) (*FinancialReport, error) {
	db := s.uow.DB(ctx)

	var checkIns []models.CheckIn
	err := db.Preload("Services").
		Where("status IN ? AND checked_in_at >= ? AND checked_in_at < ?", models.CountedCheckInStatuses, from, to).
		Find(&checkIns).Error
	if err != nil {
		return nil, err
	}

	var sales []models.Sale
	if err := db.Where("sold_at >= ? AND sold_at < ?", from, to).Find(&sales).Error; err != nil {
		return nil, err
	}

	var bonusesPaid []float64
	err = db.Model(&models.Bonus{}).
		Where("bonus_type = ? AND status = ? AND paid_at >= ? AND paid_at < ?", models.BonusTypeMoney, models.BonusStatusPaid, from, to).
		Pluck("amount", &bonusesPaid).Error
	if err != nil {
		return nil, err
	}

	var charges []float64
	err = db.Model(&models.ToolCharge{}).
		Where("status = ? AND charged_at >= ? AND charged_at < ?", models.ToolChargeDeducted, from, to).
		Pluck("amount", &charges).Error
	if err != nil {
		return nil, err
	}

	report := &FinancialReport{
		From:        from.Format(utils.DateLayout),
		To:          to.AddDate(0, 0, -1).Format(utils.DateLayout),
		CheckIns:    len(checkIns),
		BonusesPaid: sum(bonusesPaid),
		ToolCharges: sum(charges),
	}

	days := utils.DaysBetween(from, to)
	daily := make([]DailyFinancials, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i).Format(utils.DateLayout)
		daily[i] = DailyFinancials{Date: date}
		index[date] = i
	}

	services := map[uuid.UUID]*ServiceRevenue{}
	for _, c := range checkIns {
		report.Revenue = report.Revenue.Add(money(c.TotalAmount))
		report.CompanyIncome = report.CompanyIncome.Add(money(c.CompanyIncome))
		report.WasherIncome = report.WasherIncome.Add(money(c.WasherIncome))

		if i, ok := index[c.CheckedInAt.In(from.Location()).Format(utils.DateLayout)]; ok {
			daily[i].CheckIns++
			daily[i].Revenue = daily[i].Revenue.Add(money(c.TotalAmount))
			daily[i].CompanyIncome = daily[i].CompanyIncome.Add(money(c.CompanyIncome))
		}

		for _, svc := range c.Services {
			entry, ok := services[svc.ServiceID]
			if !ok {
				entry = &ServiceRevenue{ServiceID: svc.ServiceID, ServiceName: svc.ServiceName}
				services[svc.ServiceID] = entry
			}
			entry.Count++
			entry.Revenue = entry.Revenue.Add(money(svc.Price))
		}
	}

	for _, sale := range sales {
		report.SalesRevenue = report.SalesRevenue.Add(money(sale.TotalAmount))
		report.SalesCost = report.SalesCost.Add(money(sale.TotalCost))
		if i, ok := index[sale.SoldAt.In(from.Location()).Format(utils.DateLayout)]; ok {
			daily[i].SalesRevenue = daily[i].SalesRevenue.Add(money(sale.TotalAmount))
		}
	}

	report.NetIncome = report.CompanyIncome.
		Add(report.SalesRevenue.Sub(report.SalesCost)).
		Sub(report.BonusesPaid).
		Add(report.ToolCharges)
	report.Daily = daily

	report.TopServices = make([]ServiceRevenue, 0, len(services))
	for _, entry := range services {
		report.TopServices = append(report.TopServices, *entry)
	}
	sort.Slice(report.TopServices, func(i, j int) bool {
		a, b := report.TopServices[i], report.TopServices[j]
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return a.ServiceName < b.ServiceName
	})
	if len(report.TopServices) > topServicesLimit {
		report.TopServices = report.TopServices[:topServicesLimit]
	}
	return report, nil
}

type earningRow struct {
	WasherID uuid.UUID
	Earning  float64
}

// Payments summarises every washer's earnings and payouts to date.
func (s *ReportService) Payments(ctx context.Context) (*PaymentReport, error) {
	db := s.uow.DB(ctx)

	var washers []models.Washer
	if err := db.Order("name").Find(&washers).Error; err != nil {
		return nil, err
	}

	var earnings []earningRow
	err := db.Table("check_in_washers").
		Select("check_in_washers.washer_id AS washer_id, check_in_washers.earning AS earning").
		Joins("JOIN check_ins ON check_ins.id = check_in_washers.check_in_id").
		Where("check_ins.status IN ? AND check_ins.deleted_at IS NULL", models.CountedCheckInStatuses).
		Scan(&earnings).Error
	if err != nil {
		return nil, err
	}

	var charges []models.ToolCharge
	if err := db.Where("status <> ?", models.ToolChargeWaived).Find(&charges).Error; err != nil {
		return nil, err
	}

	var requests []models.PaymentRequest
	if err := db.Where("status IN ?", claimedStatuses).Find(&requests).Error; err != nil {
		return nil, err
	}

	rows := make(map[uuid.UUID]*WasherPayment, len(washers))
	report := &PaymentReport{Washers: make([]WasherPayment, 0, len(washers))}
	for _, w := range washers {
		rows[w.ID] = &WasherPayment{WasherID: w.ID, WasherName: w.Name, Status: w.Status}
	}

	for _, e := range earnings {
		if row, ok := rows[e.WasherID]; ok {
			row.Earnings = row.Earnings.Add(money(e.Earning))
		}
	}
	for _, c := range charges {
		if row, ok := rows[c.WasherID]; ok {
			row.ToolCharges = row.ToolCharges.Add(money(c.Amount))
		}
	}
	for _, r := range requests {
		row, ok := rows[r.WasherID]
		if !ok {
			continue
		}
		switch r.Status {
		case models.PaymentRequestPending:
			row.Pending = row.Pending.Add(money(r.Amount))
		case models.PaymentRequestApproved:
			row.Approved = row.Approved.Add(money(r.Amount))
		case models.PaymentRequestPaid:
			row.Paid = row.Paid.Add(money(r.Amount))
		}
	}

	for _, w := range washers {
		row := rows[w.ID]
		row.Balance = row.Earnings.Sub(row.ToolCharges).Sub(row.Pending).Sub(row.Approved).Sub(row.Paid)
		report.TotalEarnings = report.TotalEarnings.Add(row.Earnings)
		report.TotalPaid = report.TotalPaid.Add(row.Paid)
		report.TotalPending = report.TotalPending.Add(row.Pending).Add(row.Approved)
		report.TotalBalance = report.TotalBalance.Add(row.Balance)
		report.Washers = append(report.Washers, *row)
	}
	return report, nil
}
