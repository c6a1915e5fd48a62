package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"washpro-backend/models"
	"washpro-backend/store"
	"washpro-backend/utils"
)

type MilestoneInput struct {
	Name              string                    `json:"name" binding:"required"`
	Description       string                    `json:"description"`
	Type              string                    `json:"type" binding:"required,oneof=visits spending"`
	Condition         models.MilestoneCondition `json:"condition"`
	Period            string                    `json:"period"`
	RewardType        string                    `json:"rewardType"`
	RewardAmount      float64                   `json:"rewardAmount" binding:"min=0"`
	RewardItemID      *uuid.UUID                `json:"rewardItemId"`
	RewardQuantity    int                       `json:"rewardQuantity" binding:"min=0"`
	RewardDescription string                    `json:"rewardDescription"`
	AutoIssueBonus    bool                      `json:"autoIssueBonus"`
	IsActive          *bool                     `json:"isActive"`
}

type AchievementCheckInput struct {
	CustomerID *uuid.UUID `json:"customerId"`
	ForceCheck bool       `json:"forceCheck"`
}

// CheckResult is the outcome of evaluating one customer.
type CheckResult struct {
	CustomerID      uuid.UUID                     `json:"customerId"`
	NewAchievements []models.MilestoneAchievement `json:"newAchievements"`
	Refreshed       int                           `json:"refreshed"`
}

// SweepResult summarises a run over every active customer.
type SweepResult struct {
	Processed       int `json:"processed"`
	NewAchievements int `json:"newAchievements"`
	Failures        int `json:"failures"`
}

// Evaluate applies a milestone condition to an observed value. "==" is
// accepted as an alias of "=".
func Evaluate(cond models.MilestoneCondition, actual float64) (bool, error) {
	a := decimal.NewFromFloat(actual).Round(2)
	target := decimal.NewFromFloat(cond.Value).Round(2)
	switch strings.TrimSpace(cond.Operator) {
	case ">=":
		return a.GreaterThanOrEqual(target), nil
	case "<=":
		return a.LessThanOrEqual(target), nil
	case "=", "==":
		return a.Equal(target), nil
	case ">":
		return a.GreaterThan(target), nil
	case "<":
		return a.LessThan(target), nil
	default:
		return false, ErrInvalidOperator
	}
}

type MilestoneService struct {
	uow       *store.UnitOfWork
	messaging *MessagingService
}

func NewMilestoneService(uow *store.UnitOfWork, messaging *MessagingService) *MilestoneService {
	return &MilestoneService{uow: uow, messaging: messaging}
}

func validateMilestone(in *MilestoneInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("milestone name is required")
	}
	if in.Type != models.MilestoneTypeVisits && in.Type != models.MilestoneTypeSpending {
		return invalid("type must be visits or spending")
	}
	if _, err := Evaluate(in.Condition, 0); err != nil {
		return err
	}
	if in.Condition.Value < 0 {
		return invalid("condition value must not be negative")
	}

	in.Period = defaultString(in.Period, models.MilestonePeriodAllTime)
	switch in.Period {
	case models.MilestonePeriodAllTime, models.MilestonePeriodMonthly, models.MilestonePeriodYearly:
	default:
		return invalid("period must be all_time, monthly or yearly")
	}

	in.RewardType = defaultString(in.RewardType, models.RewardTypeNone)
	switch in.RewardType {
	case models.RewardTypeNone, models.RewardTypeDiscount:
	case models.RewardTypeMoney:
		if in.RewardAmount <= 0 {
			return invalid("rewardAmount must be positive for a money reward")
		}
	case models.RewardTypeItem:
		if in.RewardItemID == nil || *in.RewardItemID == uuid.Nil {
			return invalid("rewardItemId is required for an item reward")
		}
	default:
		return invalid("rewardType must be none, money, item or discount")
	}
	if in.RewardQuantity <= 0 {
		in.RewardQuantity = 1
	}
	return nil
}

func (s *MilestoneService) apply(m *models.Milestone, in MilestoneInput) {
	m.Name = strings.TrimSpace(in.Name)
	m.Description = in.Description
	m.Type = in.Type
	m.Condition = datatypes.NewJSONType(models.MilestoneCondition{
		Operator: strings.TrimSpace(in.Condition.Operator),
		Value:    in.Condition.Value,
	})
	m.Period = in.Period
	m.RewardType = in.RewardType
	m.RewardAmount = money(in.RewardAmount).InexactFloat64()
	m.RewardItemID = in.RewardItemID
	m.RewardQuantity = in.RewardQuantity
	m.RewardDescription = in.RewardDescription
	m.AutoIssueBonus = in.AutoIssueBonus
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
}

func (s *MilestoneService) Create(ctx context.Context, in MilestoneInput) (*models.Milestone, error) {
	if err := validateMilestone(&in); err != nil {
		return nil, err
	}
	milestone := models.Milestone{IsActive: true}
	s.apply(&milestone, in)
	// default:true would drop an explicit isActive=false on insert
	if err := s.uow.DB(ctx).Select("*").Create(&milestone).Error; err != nil {
		return nil, err
	}
	return &milestone, nil
}

func (s *MilestoneService) List(ctx context.Context, activeOnly bool) ([]models.Milestone, error) {
	query := s.uow.DB(ctx).Order("type, name")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var milestones []models.Milestone
	if err := query.Find(&milestones).Error; err != nil {
		return nil, err
	}
	return milestones, nil
}

// Update replaces the milestone definition. Existing achievements are kept.
func (s *MilestoneService) Update(ctx context.Context, id uuid.UUID, in MilestoneInput) (*models.Milestone, error) {
	if err := validateMilestone(&in); err != nil {
		return nil, err
	}
	var milestone models.Milestone
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		if err := findByID(tx, &milestone, "milestone", id); err != nil {
			return err
		}
		s.apply(&milestone, in)
		return tx.Save(&milestone).Error
	})
	if err != nil {
		return nil, err
	}
	return &milestone, nil
}

func (s *MilestoneService) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.uow.DB(ctx).Where("id = ?", id).Delete(&models.Milestone{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("milestone")
	}
	return nil
}

func (s *MilestoneService) ListAchievements(ctx context.Context, customerID *uuid.UUID) ([]models.MilestoneAchievement, error) {
	query := s.uow.DB(ctx).Preload("Customer").Preload("Milestone").Order("achieved_at DESC")
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}
	var achievements []models.MilestoneAchievement
	if err := query.Find(&achievements).Error; err != nil {
		return nil, err
	}
	return achievements, nil
}

type periodTotals struct {
	visits int
	spent  decimal.Decimal
}

func loadPeriodTotals(tx *gorm.DB, customerID uuid.UUID, start, end time.Time) (periodTotals, error) {
	var amounts []float64
	err := tx.Model(&models.CheckIn{}).
		Where("customer_id = ? AND status IN ? AND checked_in_at >= ? AND checked_in_at < ?",
			customerID, models.CountedCheckInStatuses, start, end).
		Pluck("total_amount", &amounts).Error
	if err != nil {
		return periodTotals{}, err
	}
	return periodTotals{visits: len(amounts), spent: sum(amounts)}, nil
}

type pendingNotice struct {
	milestone models.Milestone
	bonusID   *uuid.UUID
	reward    string
}

// CheckCustomer evaluates every active milestone for one customer. Without
// force, milestones already achieved are skipped; with force they are
// re-evaluated and a still-qualifying achievement has its value refreshed.
// An achievement is never recorded twice.
func (s *MilestoneService) CheckCustomer(ctx context.Context, customerID uuid.UUID, force bool) (*CheckResult, error) {
	result := &CheckResult{CustomerID: customerID, NewAchievements: []models.MilestoneAchievement{}}
	var customer models.Customer
	var notices []pendingNotice

	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		if err := findByID(tx, &customer, "customer", customerID); err != nil {
			return err
		}

		var milestones []models.Milestone
		if err := tx.Where("is_active = ?", true).Order("created_at").Find(&milestones).Error; err != nil {
			return err
		}

		var existing []models.MilestoneAchievement
		if err := tx.Where("customer_id = ?", customerID).Find(&existing).Error; err != nil {
			return err
		}
		achieved := make(map[uuid.UUID]models.MilestoneAchievement, len(existing))
		for _, a := range existing {
			achieved[a.MilestoneID] = a
		}

		checkedAt := now()
		periods := map[string]periodTotals{
			models.MilestonePeriodAllTime: {visits: customer.TotalVisits, spent: money(customer.TotalSpent)},
		}

		for _, m := range milestones {
			prior, has := achieved[m.ID]
			if has && !force {
				continue
			}

			totals, ok := periods[m.Period]
			if !ok {
				var start, end time.Time
				switch m.Period {
				case models.MilestonePeriodMonthly:
					start, end = utils.MonthRange(checkedAt)
				case models.MilestonePeriodYearly:
					start, end = utils.YearRange(checkedAt)
				default:
					log.Printf("[milestone] %s has unknown period %q, skipping", m.ID, m.Period)
					continue
				}
				t, err := loadPeriodTotals(tx, customerID, start, end)
				if err != nil {
					return err
				}
				periods[m.Period] = t
				totals = t
			}

			actual := decimal.NewFromInt(int64(totals.visits))
			if m.Type == models.MilestoneTypeSpending {
				actual = totals.spent
			}

			qualifies, err := Evaluate(m.Condition.Data(), actual.InexactFloat64())
			if err != nil {
				log.Printf("[milestone] %s: %v, skipping", m.ID, err)
				continue
			}
			if !qualifies {
				continue
			}

			if has {
				err := tx.Model(&prior).Updates(map[string]interface{}{
					"achieved_value":  actual.InexactFloat64(),
					"last_checked_at": checkedAt,
				}).Error
				if err != nil {
					return err
				}
				result.Refreshed++
				continue
			}

			achievement := models.MilestoneAchievement{
				CustomerID:    customerID,
				MilestoneID:   m.ID,
				AchievedValue: actual.InexactFloat64(),
				AchievedAt:    checkedAt,
				LastCheckedAt: checkedAt,
			}
			created := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&achievement)
			if created.Error != nil {
				return created.Error
			}
			if created.RowsAffected == 0 {
				// a concurrent check recorded it first
				continue
			}

			notice := pendingNotice{milestone: m, reward: m.RewardDescription}
			bonus, err := s.rewardFor(tx, customerID, m)
			if err != nil {
				return err
			}
			if bonus != nil {
				if err := tx.Model(&achievement).Update("bonus_id", bonus.ID).Error; err != nil {
					return err
				}
				achievement.BonusID = &bonus.ID
				notice.bonusID = &bonus.ID
				if notice.reward == "" {
					notice.reward = "Your reward: " + describeBonus(tx, bonus) + "."
				}
			}

			achievement.Milestone = &m
			result.NewAchievements = append(result.NewAchievements, achievement)
			notices = append(notices, notice)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, n := range notices {
		vars := map[string]string{"Milestone": n.milestone.Name, "Reward": n.reward}
		if err := s.messaging.NotifyCustomer(ctx, customer, models.MessageMilestoneAchieved, n.bonusID, vars); err != nil {
			log.Printf("[milestone] notification for %s failed: %v", n.milestone.Name, err)
		}
	}
	return result, nil
}

// rewardFor issues the automatic bonus of a milestone, if it has one. An item
// reward that is out of stock is logged and the achievement stands without it.
func (s *MilestoneService) rewardFor(tx *gorm.DB, customerID uuid.UUID, m models.Milestone) (*models.Bonus, error) {
	if !m.AutoIssueBonus {
		return nil, nil
	}

	in := BonusInput{
		RecipientType: models.RecipientCustomer,
		CustomerID:    &customerID,
		Reason:        fmt.Sprintf("Milestone achieved: %s", m.Name),
		milestoneID:   &m.ID,
	}
	switch m.RewardType {
	case models.RewardTypeMoney:
		in.BonusType = models.BonusTypeMoney
		in.Amount = m.RewardAmount
	case models.RewardTypeItem:
		in.BonusType = models.BonusTypeItem
		in.InventoryItemID = m.RewardItemID
		in.Quantity = m.RewardQuantity
	default:
		return nil, nil
	}

	bonus, err := issueBonus(tx, in)
	if errors.Is(err, ErrInsufficientStock) {
		log.Printf("[milestone] %s: reward item out of stock, achievement recorded without bonus", m.Name)
		return nil, nil
	}
	return bonus, err
}

// CheckAll runs CheckCustomer for every active customer, one transaction each.
// A failing customer is logged and counted; the sweep continues.
func (s *MilestoneService) CheckAll(ctx context.Context, force bool) (*SweepResult, error) {
	var ids []uuid.UUID
	if err := s.uow.DB(ctx).Model(&models.Customer{}).Where("is_active = ?", true).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	result := &SweepResult{}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		res, err := s.CheckCustomer(ctx, id, force)
		result.Processed++
		if err != nil {
			result.Failures++
			log.Printf("[milestone] check for customer %s failed: %v", id, err)
			continue
		}
		result.NewAchievements += len(res.NewAchievements)
	}
	log.Printf("[milestone] sweep done: processed=%d new=%d failures=%d",
		result.Processed, result.NewAchievements, result.Failures)
	return result, nil
}
