package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"washpro-backend/models"
	"washpro-backend/store"
)

type BonusInput struct {
	RecipientType   string     `json:"recipientType" binding:"required,oneof=customer washer"`
	CustomerID      *uuid.UUID `json:"customerId"`
	WasherID        *uuid.UUID `json:"washerId"`
	BonusType       string     `json:"bonusType" binding:"required,oneof=money item"`
	Amount          float64    `json:"amount" binding:"min=0"`
	InventoryItemID *uuid.UUID `json:"inventoryItemId"`
	Quantity        int        `json:"quantity" binding:"min=0"`
	Reason          string     `json:"reason" binding:"required"`
	Notes           string     `json:"notes"`

	milestoneID *uuid.UUID
}

type BonusStatusInput struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

type BonusFilter struct {
	Status        string
	RecipientType string
	CustomerID    *uuid.UUID
	WasherID      *uuid.UUID
}

var bonusTransitions = map[string][]string{
	models.BonusStatusPending:  {models.BonusStatusApproved, models.BonusStatusRejected, models.BonusStatusCancelled},
	models.BonusStatusApproved: {models.BonusStatusPaid, models.BonusStatusCancelled},
}

func allowed(transitions map[string][]string, from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type BonusService struct {
	uow       *store.UnitOfWork
	messaging *MessagingService
}

func NewBonusService(uow *store.UnitOfWork, messaging *MessagingService) *BonusService {
	return &BonusService{uow: uow, messaging: messaging}
}

// Create issues a bonus. Item bonuses take their stock in the same transaction.
// A customer recipient gets one SMS after commit; its outcome does not affect
// the bonus.
func (s *BonusService) Create(ctx context.Context, in BonusInput) (*models.Bonus, error) {
	var bonus *models.Bonus
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		issued, err := issueBonus(tx, in)
		bonus = issued
		return err
	})
	if err != nil {
		return nil, err
	}

	if bonus.RecipientType == models.RecipientCustomer {
		s.notifyCustomer(ctx, bonus)
	}
	return s.Get(ctx, bonus.ID)
}

func (s *BonusService) notifyCustomer(ctx context.Context, bonus *models.Bonus) {
	var customer models.Customer
	if err := findByID(s.uow.DB(ctx), &customer, "customer", *bonus.CustomerID); err != nil {
		log.Printf("[bonus] cannot notify customer for bonus %s: %v", bonus.ID, err)
		return
	}
	vars := map[string]string{"Reward": describeBonus(s.uow.DB(ctx), bonus)}
	if err := s.messaging.NotifyCustomer(ctx, customer, models.MessageBonusIssued, &bonus.ID, vars); err != nil {
		log.Printf("[bonus] notification for bonus %s failed: %v", bonus.ID, err)
	}
}

func describeBonus(db *gorm.DB, bonus *models.Bonus) string {
	if bonus.BonusType == models.BonusTypeMoney {
		return money(bonus.Amount).StringFixed(2)
	}
	name := "item"
	if bonus.InventoryItemID != nil {
		var item models.InventoryItem
		if err := db.Select("name").First(&item, "id = ?", *bonus.InventoryItemID).Error; err == nil {
			name = item.Name
		}
	}
	return fmt.Sprintf("%d x %s", bonus.Quantity, name)
}

func validateBonus(in *BonusInput) error {
	switch in.RecipientType {
	case models.RecipientCustomer:
		if in.CustomerID == nil || *in.CustomerID == uuid.Nil {
			return invalid("customerId is required for a customer bonus")
		}
		in.WasherID = nil
	case models.RecipientWasher:
		if in.WasherID == nil || *in.WasherID == uuid.Nil {
			return invalid("washerId is required for a washer bonus")
		}
		in.CustomerID = nil
	default:
		return invalid("recipientType must be customer or washer")
	}

	if strings.TrimSpace(in.Reason) == "" {
		return invalid("reason is required")
	}

	switch in.BonusType {
	case models.BonusTypeMoney:
		if in.Amount <= 0 {
			return invalid("amount must be positive for a money bonus")
		}
		in.InventoryItemID = nil
		in.Quantity = 0
	case models.BonusTypeItem:
		if in.InventoryItemID == nil || *in.InventoryItemID == uuid.Nil {
			return invalid("inventoryItemId is required for an item bonus")
		}
		if in.Quantity < 0 {
			return invalid("quantity must be positive")
		}
		if in.Quantity == 0 {
			in.Quantity = 1
		}
		in.Amount = 0
	default:
		return invalid("bonusType must be money or item")
	}
	return nil
}

// issueBonus validates and inserts a pending bonus inside tx.
func issueBonus(tx *gorm.DB, in BonusInput) (*models.Bonus, error) {
	if err := validateBonus(&in); err != nil {
		return nil, err
	}

	if in.CustomerID != nil {
		found, err := exists(tx, &models.Customer{}, *in.CustomerID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, invalid("customer %s does not exist", *in.CustomerID)
		}
	}
	if in.WasherID != nil {
		found, err := exists(tx, &models.Washer{}, *in.WasherID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, invalid("washer %s does not exist", *in.WasherID)
		}
	}

	if in.BonusType == models.BonusTypeItem {
		if err := decrementStock(tx, *in.InventoryItemID, in.Quantity); err != nil {
			return nil, err
		}
	}

	bonus := models.Bonus{
		RecipientType:   in.RecipientType,
		CustomerID:      in.CustomerID,
		WasherID:        in.WasherID,
		BonusType:       in.BonusType,
		Amount:          money(in.Amount).InexactFloat64(),
		InventoryItemID: in.InventoryItemID,
		Quantity:        in.Quantity,
		Reason:          strings.TrimSpace(in.Reason),
		Status:          models.BonusStatusPending,
		MilestoneID:     in.milestoneID,
		Notes:           in.Notes,
	}
	if err := tx.Create(&bonus).Error; err != nil {
		return nil, err
	}
	return &bonus, nil
}

func (s *BonusService) UpdateStatus(ctx context.Context, id uuid.UUID, in BonusStatusInput) (*models.Bonus, error) {
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		var bonus models.Bonus
		if err := findByID(tx, &bonus, "bonus", id); err != nil {
			return err
		}
		if !allowed(bonusTransitions, bonus.Status, in.Status) {
			return invalid("cannot move bonus from %s to %s", bonus.Status, in.Status)
		}

		updates := map[string]interface{}{"status": in.Status}
		if in.Notes != "" {
			updates["notes"] = in.Notes
		}
		switch in.Status {
		case models.BonusStatusApproved:
			updates["approved_at"] = now()
		case models.BonusStatusPaid:
			updates["paid_at"] = now()
		case models.BonusStatusRejected, models.BonusStatusCancelled:
			if bonus.BonusType == models.BonusTypeItem && bonus.InventoryItemID != nil {
				if err := incrementStock(tx, *bonus.InventoryItemID, bonus.Quantity); err != nil {
					return fmt.Errorf("returning stock: %w", err)
				}
			}
		}
		return tx.Model(&bonus).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *BonusService) Get(ctx context.Context, id uuid.UUID) (*models.Bonus, error) {
	var bonus models.Bonus
	db := s.uow.DB(ctx).Preload("Customer").Preload("Washer").Preload("InventoryItem")
	if err := findByID(db, &bonus, "bonus", id); err != nil {
		return nil, err
	}
	return &bonus, nil
}

func (s *BonusService) List(ctx context.Context, filter BonusFilter) ([]models.Bonus, error) {
	query := s.uow.DB(ctx).
		Preload("Customer").Preload("Washer").Preload("InventoryItem").
		Order("created_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.RecipientType != "" {
		query = query.Where("recipient_type = ?", filter.RecipientType)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.WasherID != nil {
		query = query.Where("washer_id = ?", *filter.WasherID)
	}

	var bonuses []models.Bonus
	if err := query.Find(&bonuses).Error; err != nil {
		return nil, err
	}
	return bonuses, nil
}

func (s *BonusService) ListForWasher(ctx context.Context, washerID uuid.UUID) ([]models.Bonus, error) {
	return s.List(ctx, BonusFilter{RecipientType: models.RecipientWasher, WasherID: &washerID})
}
