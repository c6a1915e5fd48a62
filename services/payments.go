package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"washpro-backend/models"
	"washpro-backend/store"
)

type PaymentRequestInput struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Notes  string  `json:"notes"`
}

type PaymentStatusInput struct {
	Status     string `json:"status" binding:"required,oneof=approved paid rejected"`
	AdminNotes string `json:"adminNotes"`
}

// Balance is what a washer has earned against what is already claimed.
type Balance struct {
	Earnings    decimal.Decimal `json:"earnings"`
	ToolCharges decimal.Decimal `json:"toolCharges"`
	Requested   decimal.Decimal `json:"requested"`
	Available   decimal.Decimal `json:"available"`
}

var paymentTransitions = map[string][]string{
	models.PaymentRequestPending:  {models.PaymentRequestApproved, models.PaymentRequestRejected},
	models.PaymentRequestApproved: {models.PaymentRequestPaid},
}

// claimedStatuses hold money against the balance.
var claimedStatuses = []string{models.PaymentRequestPending, models.PaymentRequestApproved, models.PaymentRequestPaid}

type PaymentService struct {
	uow *store.UnitOfWork
}

func NewPaymentService(uow *store.UnitOfWork) *PaymentService {
	return &PaymentService{uow: uow}
}

func computeBalance(tx *gorm.DB, washerID uuid.UUID) (Balance, error) {
	var earnings []float64
	err := tx.Table("check_in_washers").
		Joins("JOIN check_ins ON check_ins.id = check_in_washers.check_in_id").
		Where("check_in_washers.washer_id = ? AND check_ins.status IN ? AND check_ins.deleted_at IS NULL",
			washerID, models.CountedCheckInStatuses).
		Pluck("check_in_washers.earning", &earnings).Error
	if err != nil {
		return Balance{}, err
	}

	var charges []float64
	err = tx.Model(&models.ToolCharge{}).
		Where("washer_id = ? AND status <> ?", washerID, models.ToolChargeWaived).
		Pluck("amount", &charges).Error
	if err != nil {
		return Balance{}, err
	}

	var requested []float64
	err = tx.Model(&models.PaymentRequest{}).
		Where("washer_id = ? AND status IN ?", washerID, claimedStatuses).
		Pluck("amount", &requested).Error
	if err != nil {
		return Balance{}, err
	}

	b := Balance{Earnings: sum(earnings), ToolCharges: sum(charges), Requested: sum(requested)}
	b.Available = b.Earnings.Sub(b.ToolCharges).Sub(b.Requested)
	return b, nil
}

func (s *PaymentService) Balance(ctx context.Context, washerID uuid.UUID) (Balance, error) {
	return computeBalance(s.uow.DB(ctx), washerID)
}

// CreateRequest files a payout request for a washer. The amount must fit in
// the available balance.
func (s *PaymentService) CreateRequest(ctx context.Context, washerID uuid.UUID, in PaymentRequestInput) (*models.PaymentRequest, error) {
	amount := money(in.Amount)
	if !amount.IsPositive() {
		return nil, invalid("amount must be positive")
	}

	var request models.PaymentRequest
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		lookup := tx
		if tx.Dialector.Name() == "postgres" {
			// serialise concurrent requests from the same washer
			lookup = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var washer models.Washer
		if err := findByID(lookup, &washer, "washer", washerID); err != nil {
			return err
		}

		balance, err := computeBalance(tx, washerID)
		if err != nil {
			return err
		}
		if amount.GreaterThan(balance.Available) {
			return ErrInsufficientBalance
		}

		request = models.PaymentRequest{
			WasherID: washerID,
			Amount:   amount.InexactFloat64(),
			Notes:    in.Notes,
			Status:   models.PaymentRequestPending,
		}
		return tx.Create(&request).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *PaymentService) UpdateStatus(ctx context.Context, id uuid.UUID, in PaymentStatusInput) (*models.PaymentRequest, error) {
	var request models.PaymentRequest
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		if err := findByID(tx, &request, "payment request", id); err != nil {
			return err
		}
		if !allowed(paymentTransitions, request.Status, in.Status) {
			return invalid("cannot move payment request from %s to %s", request.Status, in.Status)
		}

		at := now()
		updates := map[string]interface{}{"status": in.Status, "processed_at": at}
		if in.AdminNotes != "" {
			updates["admin_notes"] = in.AdminNotes
		}
		if in.Status == models.PaymentRequestPaid {
			updates["paid_at"] = at
		}
		if err := tx.Model(&models.PaymentRequest{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return findByID(tx.Preload("Washer"), &request, "payment request", id)
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *PaymentService) List(ctx context.Context, washerID *uuid.UUID, status string) ([]models.PaymentRequest, error) {
	query := s.uow.DB(ctx).Preload("Washer").Order("created_at DESC")
	if washerID != nil {
		query = query.Where("washer_id = ?", *washerID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var requests []models.PaymentRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
