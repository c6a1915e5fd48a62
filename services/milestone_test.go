package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"washpro-backend/models"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		op     string
		value  float64
		actual float64
		want   bool
	}{
		{">=", 5, 5, true},
		{">=", 5, 4, false},
		{">", 5, 5, false},
		{"<=", 100, 99.99, true},
		{"<", 10, 10, false},
		{"=", 3, 3, true},
		{"==", 3, 3, true},
		{"=", 3, 3.001, true},
	}
	for _, tc := range cases {
		got, err := Evaluate(models.MilestoneCondition{Operator: tc.op, Value: tc.value}, tc.actual)
		if err != nil {
			t.Fatalf("%s %v: %v", tc.op, tc.value, err)
		}
		if got != tc.want {
			t.Errorf("%v %s %v = %v, want %v", tc.actual, tc.op, tc.value, got, tc.want)
		}
	}

	if _, err := Evaluate(models.MilestoneCondition{Operator: "~", Value: 1}, 1); !errors.Is(err, ErrInvalidOperator) {
		t.Fatalf("expected ErrInvalidOperator, got %v", err)
	}
}

func (f *fixture) setVisits(t *testing.T, id uuid.UUID, visits int, spent float64) {
	t.Helper()
	err := f.db.Model(&models.Customer{}).Where("id = ?", id).
		Updates(map[string]interface{}{"total_visits": visits, "total_spent": spent}).Error
	if err != nil {
		t.Fatalf("set totals: %v", err)
	}
}

func (f *fixture) milestone(t *testing.T, in MilestoneInput) *models.Milestone {
	t.Helper()
	m, err := f.milestones.Create(f.ctx, in)
	if err != nil {
		t.Fatalf("create milestone: %v", err)
	}
	return m
}

func TestMilestoneCreateValidation(t *testing.T) {
	f := newFixture(t)
	bad := []MilestoneInput{
		{Name: "x", Type: "washes", Condition: models.MilestoneCondition{Operator: ">=", Value: 1}},
		{Name: "x", Type: models.MilestoneTypeVisits, Condition: models.MilestoneCondition{Operator: "!=", Value: 1}},
		{Name: "x", Type: models.MilestoneTypeVisits, Condition: models.MilestoneCondition{Operator: ">=", Value: 1}, Period: "weekly"},
		{Name: "x", Type: models.MilestoneTypeVisits, Condition: models.MilestoneCondition{Operator: ">=", Value: 1}, RewardType: models.RewardTypeItem},
		{Name: "x", Type: models.MilestoneTypeVisits, Condition: models.MilestoneCondition{Operator: ">=", Value: 1}, RewardType: models.RewardTypeMoney},
	}
	for i, in := range bad {
		if _, err := f.milestones.Create(f.ctx, in); !IsValidation(err) {
			t.Errorf("case %d: expected validation error, got %v", i, err)
		}
	}

	m := f.milestone(t, MilestoneInput{Name: "Five visits", Type: models.MilestoneTypeVisits, Condition: models.MilestoneCondition{Operator: ">=", Value: 5}})
	if m.Period != models.MilestonePeriodAllTime || m.RewardType != models.RewardTypeNone || m.Condition.Data().Operator != ">=" {
		t.Fatalf("unexpected defaults %+v", m)
	}
}

func TestCheckCustomerIsIdempotent(t *testing.T) {
	f := newFixture(t)
	customer := f.customer(t, "Ana", "+15550001111")
	f.milestone(t, MilestoneInput{Name: "Five visits", Type: models.MilestoneTypeVisits, Condition: models.MilestoneCondition{Operator: ">=", Value: 5}})

	f.setVisits(t, customer.ID, 4, 40)
	res, err := f.milestones.CheckCustomer(f.ctx, customer.ID, false)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(res.NewAchievements) != 0 {
		t.Fatalf("4 visits must not qualify, got %+v", res.NewAchievements)
	}

	f.sms.EXPECT().SendSMS(gomock.Any(), "+15550001111", gomock.Any()).Return(nil).Times(1)

	f.setVisits(t, customer.ID, 5, 50)
	res, err = f.milestones.CheckCustomer(f.ctx, customer.ID, false)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(res.NewAchievements) != 1 || res.NewAchievements[0].AchievedValue != 5 {
		t.Fatalf("expected one achievement at 5, got %+v", res.NewAchievements)
	}

	res, err = f.milestones.CheckCustomer(f.ctx, customer.ID, false)
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if len(res.NewAchievements) != 0 || res.Refreshed != 0 {
		t.Fatalf("second check must be a no-op, got %+v", res)
	}
	if n := f.count(t, &models.MilestoneAchievement{}); n != 1 {
		t.Fatalf("expected one achievement row, got %d", n)
	}

	f.setVisits(t, customer.ID, 7, 70)
	res, err = f.milestones.CheckCustomer(f.ctx, customer.ID, true)
	if err != nil {
		t.Fatalf("forced check: %v", err)
	}
	if len(res.NewAchievements) != 0 || res.Refreshed != 1 {
		t.Fatalf("forced check must refresh, got %+v", res)
	}
	var stored models.MilestoneAchievement
	if err := f.db.First(&stored).Error; err != nil {
		t.Fatalf("load achievement: %v", err)
	}
	if stored.AchievedValue != 7 {
		t.Fatalf("expected refreshed value 7, got %v", stored.AchievedValue)
	}
	if n := f.count(t, &models.MilestoneAchievement{}); n != 1 {
		t.Fatalf("forced check must not duplicate, got %d rows", n)
	}
}

func TestCheckCustomerIssuesAutomaticBonus(t *testing.T) {
	f := newFixture(t)
	customer := f.customer(t, "Ben", "+15550002222")
	m := f.milestone(t, MilestoneInput{
		Name:           "Big spender",
		Type:           models.MilestoneTypeSpending,
		Condition:      models.MilestoneCondition{Operator: ">=", Value: 100},
		RewardType:     models.RewardTypeMoney,
		RewardAmount:   15,
		AutoIssueBonus: true,
	})
	f.setVisits(t, customer.ID, 3, 120.5)

	f.sms.EXPECT().SendSMS(gomock.Any(), "+15550002222", gomock.Any()).Return(nil).Times(1)

	res, err := f.milestones.CheckCustomer(f.ctx, customer.ID, false)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(res.NewAchievements) != 1 || res.NewAchievements[0].BonusID == nil {
		t.Fatalf("expected achievement linked to a bonus, got %+v", res.NewAchievements)
	}

	var bonus models.Bonus
	if err := f.db.First(&bonus, "id = ?", *res.NewAchievements[0].BonusID).Error; err != nil {
		t.Fatalf("load bonus: %v", err)
	}
	if bonus.Status != models.BonusStatusPending || bonus.Amount != 15 || bonus.MilestoneID == nil || *bonus.MilestoneID != m.ID {
		t.Fatalf("unexpected bonus %+v", bonus)
	}
}

func TestCheckCustomerItemRewardOutOfStock(t *testing.T) {
	f := newFixture(t)
	customer := f.customer(t, "Cat", "+15550004444")
	item := f.item(t, "Keychain", 0, 0)
	f.milestone(t, MilestoneInput{
		Name:           "First visit",
		Type:           models.MilestoneTypeVisits,
		Condition:      models.MilestoneCondition{Operator: ">=", Value: 1},
		RewardType:     models.RewardTypeItem,
		RewardItemID:   &item.ID,
		AutoIssueBonus: true,
	})
	f.setVisits(t, customer.ID, 1, 10)

	f.sms.EXPECT().SendSMS(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

	res, err := f.milestones.CheckCustomer(f.ctx, customer.ID, false)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(res.NewAchievements) != 1 || res.NewAchievements[0].BonusID != nil {
		t.Fatalf("expected achievement without bonus, got %+v", res.NewAchievements)
	}
	if n := f.count(t, &models.Bonus{}); n != 0 {
		t.Fatalf("expected no bonus, got %d", n)
	}
}

func TestCheckAllCountsCustomers(t *testing.T) {
	f := newFixture(t)
	a := f.customer(t, "Ana", "+15550001111")
	f.customer(t, "Ben", "+15550002222")
	f.milestone(t, MilestoneInput{Name: "Two visits", Type: models.MilestoneTypeVisits, Condition: models.MilestoneCondition{Operator: ">=", Value: 2}})
	f.setVisits(t, a.ID, 2, 20)

	f.sms.EXPECT().SendSMS(gomock.Any(), "+15550001111", gomock.Any()).Return(nil).Times(1)

	res, err := f.milestones.CheckAll(f.ctx, false)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if res.Processed != 2 || res.NewAchievements != 1 || res.Failures != 0 {
		t.Fatalf("unexpected sweep result %+v", res)
	}

	achievements, err := f.milestones.ListAchievements(f.ctx, &a.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(achievements) != 1 || achievements[0].Milestone == nil || achievements[0].Milestone.Name != "Two visits" {
		t.Fatalf("unexpected achievements %+v", achievements)
	}
}

func TestInactiveMilestoneGrantsNothing(t *testing.T) {
	f := newFixture(t)
	customer := f.customer(t, "Ana", "+15550001111")
	inactive := false
	m := f.milestone(t, MilestoneInput{
		Name:      "One visit",
		Type:      models.MilestoneTypeVisits,
		Condition: models.MilestoneCondition{Operator: ">=", Value: 1},
		IsActive:  &inactive,
	})

	var stored models.Milestone
	if err := f.db.First(&stored, "id = ?", m.ID).Error; err != nil {
		t.Fatalf("load milestone: %v", err)
	}
	if stored.IsActive {
		t.Fatal("milestone created with isActive=false was stored active")
	}

	f.setVisits(t, customer.ID, 3, 30)
	res, err := f.milestones.CheckCustomer(f.ctx, customer.ID, false)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(res.NewAchievements) != 0 {
		t.Fatalf("inactive milestone must not be granted, got %+v", res.NewAchievements)
	}
}

// setClock pins now() for the rest of the test.
func (f *fixture) setClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

// visitAt records a check-in at the given time and moves it to status.
func (f *fixture) visitAt(t *testing.T, at time.Time, customer *models.Customer, washer *models.Washer, svc *models.Service, status string) {
	t.Helper()
	f.setClock(t, at)
	checkIn, err := f.checkIns.Create(f.ctx, CheckInInput{
		CustomerID: customer.ID,
		VehicleID:  customer.Vehicles[0].ID,
		ServiceIDs: []uuid.UUID{svc.ID},
		WasherIDs:  []uuid.UUID{washer.ID},
	})
	if err != nil {
		t.Fatalf("create check-in: %v", err)
	}
	if _, err := f.checkIns.UpdateStatus(f.ctx, checkIn.ID, CheckInStatusInput{Status: status}); err != nil {
		t.Fatalf("move check-in to %s: %v", status, err)
	}
}

type visit struct {
	at     time.Time
	status string
}

func TestPeriodMilestones(t *testing.T) {
	today := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	completed := func(at time.Time) visit { return visit{at: at, status: models.CheckInStatusCompleted} }

	cases := []struct {
		name   string
		period string
		visits []visit
		want   int
	}{
		{"monthly both in month", models.MilestonePeriodMonthly,
			[]visit{completed(today), completed(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))}, 1},
		{"monthly one in previous month", models.MilestonePeriodMonthly,
			[]visit{completed(today), completed(time.Date(2024, time.May, 31, 23, 59, 0, 0, time.UTC))}, 0},
		{"monthly one cancelled", models.MilestonePeriodMonthly,
			[]visit{completed(today), {at: today, status: models.CheckInStatusCancelled}}, 0},
		{"yearly both in year", models.MilestonePeriodYearly,
			[]visit{completed(today), completed(time.Date(2024, time.February, 3, 9, 0, 0, 0, time.UTC))}, 1},
		{"yearly one in previous year", models.MilestonePeriodYearly,
			[]visit{completed(today), completed(time.Date(2023, time.December, 31, 18, 0, 0, 0, time.UTC))}, 0},
		{"all time ignores the calendar", models.MilestonePeriodAllTime,
			[]visit{completed(today), completed(time.Date(2023, time.December, 31, 18, 0, 0, 0, time.UTC))}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			customer := f.customer(t, "Ana", "+15550001111")
			washer := f.washer(t, "Carl", "carl@example.com")
			svc := f.service(t, "Exterior", 15, 40, 60)
			for _, v := range tc.visits {
				f.visitAt(t, v.at, customer, washer, svc, v.status)
			}

			f.setClock(t, today)
			f.milestone(t, MilestoneInput{
				Name:      "Two visits",
				Type:      models.MilestoneTypeVisits,
				Condition: models.MilestoneCondition{Operator: ">=", Value: 2},
				Period:    tc.period,
			})
			f.sms.EXPECT().SendSMS(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(tc.want)

			res, err := f.milestones.CheckCustomer(f.ctx, customer.ID, false)
			if err != nil {
				t.Fatalf("check: %v", err)
			}
			if len(res.NewAchievements) != tc.want {
				t.Fatalf("expected %d achievements, got %+v", tc.want, res.NewAchievements)
			}
		})
	}
}

func TestCompletingCheckInAwardsMonthlyMilestone(t *testing.T) {
	f := newFixture(t)
	customer := f.customer(t, "Ana", "+15550001111")
	washer := f.washer(t, "Carl", "carl@example.com")
	svc := f.service(t, "Exterior", 15, 40, 60)
	f.milestone(t, MilestoneInput{
		Name:      "Two this month",
		Type:      models.MilestoneTypeVisits,
		Condition: models.MilestoneCondition{Operator: ">=", Value: 2},
		Period:    models.MilestonePeriodMonthly,
	})

	// May's visit plus one in June is still only one visit this month.
	f.visitAt(t, time.Date(2024, time.May, 20, 10, 0, 0, 0, time.UTC), customer, washer, svc, models.CheckInStatusCompleted)
	f.visitAt(t, time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC), customer, washer, svc, models.CheckInStatusCompleted)
	if n := f.count(t, &models.MilestoneAchievement{}); n != 0 {
		t.Fatalf("expected no achievement yet, got %d", n)
	}

	f.sms.EXPECT().SendSMS(gomock.Any(), "+15550001111", gomock.Any()).Return(nil).Times(1)
	f.visitAt(t, time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC), customer, washer, svc, models.CheckInStatusCompleted)

	var achievement models.MilestoneAchievement
	if err := f.db.First(&achievement, "customer_id = ?", customer.ID).Error; err != nil {
		t.Fatalf("expected an achievement after the second June visit: %v", err)
	}
	if achievement.AchievedValue != 2 {
		t.Fatalf("expected achieved value 2, got %v", achievement.AchievedValue)
	}
}
