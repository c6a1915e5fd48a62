package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"washpro-backend/models"
	"washpro-backend/store"
)

type CheckInInput struct {
	CustomerID    uuid.UUID   `json:"customerId" binding:"required"`
	VehicleID     uuid.UUID   `json:"vehicleId" binding:"required"`
	ServiceIDs    []uuid.UUID `json:"serviceIds" binding:"required,min=1"`
	WasherIDs     []uuid.UUID `json:"washerIds"`
	PaymentMethod string      `json:"paymentMethod"`
	Notes         string      `json:"notes"`
}

type CheckInStatusInput struct {
	Status        string `json:"status" binding:"required"`
	PaymentMethod string `json:"paymentMethod"`
}

type CheckInFilter struct {
	Status     string
	CustomerID *uuid.UUID
	WasherID   *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// Forward order of the check-in lifecycle. Cancelled sits outside it.
var checkInStage = map[string]int{
	models.CheckInStatusPending:    0,
	models.CheckInStatusInProgress: 1,
	models.CheckInStatusCompleted:  2,
	models.CheckInStatusPaid:       3,
}

func validCheckInTransition(from, to string) bool {
	if from == models.CheckInStatusCancelled || from == models.CheckInStatusPaid {
		return false
	}
	if to == models.CheckInStatusCancelled {
		return true
	}
	next, ok := checkInStage[to]
	return ok && next > checkInStage[from]
}

func isCounted(status string) bool {
	return status == models.CheckInStatusCompleted || status == models.CheckInStatusPaid
}

type CheckInService struct {
	uow        *store.UnitOfWork
	milestones *MilestoneService
}

func NewCheckInService(uow *store.UnitOfWork, milestones *MilestoneService) *CheckInService {
	return &CheckInService{uow: uow, milestones: milestones}
}

// Create opens a pending check-in with a snapshot of each requested service.
func (s *CheckInService) Create(ctx context.Context, in CheckInInput) (*models.CheckIn, error) {
	serviceIDs := uniqueIDs(in.ServiceIDs)
	washerIDs := uniqueIDs(in.WasherIDs)
	if in.CustomerID == uuid.Nil || in.VehicleID == uuid.Nil {
		return nil, invalid("customerId and vehicleId are required")
	}
	if len(serviceIDs) == 0 {
		return nil, invalid("at least one service is required")
	}

	var checkIn models.CheckIn
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		found, err := exists(tx, &models.Customer{}, in.CustomerID)
		if err != nil {
			return err
		}
		if !found {
			return invalid("customer %s does not exist", in.CustomerID)
		}

		var vehicle models.Vehicle
		if err := tx.Where("id = ? AND customer_id = ?", in.VehicleID, in.CustomerID).First(&vehicle).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalid("vehicle %s does not belong to customer", in.VehicleID)
			}
			return err
		}

		var services []models.Service
		if err := tx.Where("id IN ? AND is_active = ?", serviceIDs, true).Find(&services).Error; err != nil {
			return err
		}
		if len(services) != len(serviceIDs) {
			return invalid("%s", missingIDs("service", serviceIDs, serviceIDsOf(services)))
		}

		if len(washerIDs) > 0 {
			var washers []models.Washer
			if err := tx.Where("id IN ? AND status = ?", washerIDs, models.WasherStatusActive).Find(&washers).Error; err != nil {
				return err
			}
			if len(washers) != len(washerIDs) {
				return invalid("one or more washers are missing or not active")
			}
		}

		total := decimal.Zero
		for _, svc := range services {
			total = total.Add(money(svc.Price))
			checkIn.Services = append(checkIn.Services, models.CheckInService{
				ServiceID:                   svc.ID,
				ServiceName:                 svc.Name,
				Price:                       money(svc.Price).InexactFloat64(),
				WasherCommissionPercentage:  svc.WasherCommissionPercentage,
				CompanyCommissionPercentage: svc.CompanyCommissionPercentage,
			})
		}
		for _, id := range washerIDs {
			checkIn.Washers = append(checkIn.Washers, models.CheckInWasher{WasherID: id})
		}

		checkIn.CustomerID = in.CustomerID
		checkIn.VehicleID = in.VehicleID
		checkIn.Status = models.CheckInStatusPending
		checkIn.TotalAmount = total.InexactFloat64()
		checkIn.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
		checkIn.Notes = in.Notes
		checkIn.CheckedInAt = now()
		return tx.Create(&checkIn).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, checkIn.ID)
}

func serviceIDsOf(services []models.Service) map[uuid.UUID]bool {
	out := make(map[uuid.UUID]bool, len(services))
	for _, s := range services {
		out[s.ID] = true
	}
	return out
}

func missingIDs(entity string, want []uuid.UUID, got map[uuid.UUID]bool) string {
	var missing []string
	for _, id := range want {
		if !got[id] {
			missing = append(missing, id.String())
		}
	}
	return entity + " not found or inactive: " + strings.Join(missing, ", ")
}

// UpdateStatus moves a check-in through its lifecycle. The income split is
// computed the first time the check-in reaches completed or paid, and the
// customer's totals are rebuilt whenever it enters or leaves a counted status.
func (s *CheckInService) UpdateStatus(ctx context.Context, id uuid.UUID, in CheckInStatusInput) (*models.CheckIn, error) {
	var customerID uuid.UUID
	var countChanged bool

	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		var checkIn models.CheckIn
		if err := findByID(tx.Preload("Services").Preload("Washers"), &checkIn, "check-in", id); err != nil {
			return err
		}
		if !validCheckInTransition(checkIn.Status, in.Status) {
			return invalid("cannot move check-in from %s to %s", checkIn.Status, in.Status)
		}
		customerID = checkIn.CustomerID

		at := now()
		updates := map[string]interface{}{"status": in.Status}
		if pm := strings.TrimSpace(in.PaymentMethod); pm != "" {
			updates["payment_method"] = pm
		}

		switch in.Status {
		case models.CheckInStatusInProgress:
			updates["started_at"] = at
		case models.CheckInStatusCompleted, models.CheckInStatusPaid:
			if checkIn.CompletedAt == nil {
				updates["completed_at"] = at
				if err := applySplit(tx, &checkIn, updates); err != nil {
					return err
				}
			}
			if in.Status == models.CheckInStatusPaid {
				updates["paid_at"] = at
			}
		case models.CheckInStatusCancelled:
			updates["cancelled_at"] = at
		}

		if err := tx.Model(&models.CheckIn{}).Where("id = ?", checkIn.ID).Updates(updates).Error; err != nil {
			return err
		}

		countChanged = isCounted(checkIn.Status) != isCounted(in.Status)
		if countChanged {
			return RecomputeCustomerTotals(tx, checkIn.CustomerID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if countChanged && s.milestones != nil {
		if _, err := s.milestones.CheckCustomer(ctx, customerID, false); err != nil {
			log.Printf("[checkin] milestone check for customer %s failed: %v", customerID, err)
		}
	}
	return s.Get(ctx, id)
}

func applySplit(tx *gorm.DB, checkIn *models.CheckIn, updates map[string]interface{}) error {
	split := ComputeSplit(checkIn.Services, len(checkIn.Washers))
	updates["total_amount"] = split.Total.InexactFloat64()
	updates["company_income"] = split.CompanyIncome.InexactFloat64()
	updates["washer_income"] = split.WasherIncome.InexactFloat64()

	for i, w := range checkIn.Washers {
		err := tx.Model(&models.CheckInWasher{}).Where("id = ?", w.ID).
			Update("earning", split.WasherEarnings[i].InexactFloat64()).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *CheckInService) Get(ctx context.Context, id uuid.UUID) (*models.CheckIn, error) {
	var checkIn models.CheckIn
	db := s.uow.DB(ctx).
		Preload("Customer").Preload("Vehicle").
		Preload("Services").Preload("Washers.Washer")
	if err := findByID(db, &checkIn, "check-in", id); err != nil {
		return nil, err
	}
	return &checkIn, nil
}

func (s *CheckInService) List(ctx context.Context, filter CheckInFilter) ([]models.CheckIn, error) {
	query := s.uow.DB(ctx).
		Preload("Customer").Preload("Vehicle").
		Preload("Services").Preload("Washers.Washer").
		Order("checked_in_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.WasherID != nil {
		query = query.Where("id IN (?)",
			s.uow.DB(ctx).Model(&models.CheckInWasher{}).Select("check_in_id").Where("washer_id = ?", *filter.WasherID))
	}
	if filter.From != nil {
		query = query.Where("checked_in_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("checked_in_at < ?", *filter.To)
	}

	var checkIns []models.CheckIn
	if err := query.Find(&checkIns).Error; err != nil {
		return nil, err
	}
	return checkIns, nil
}
