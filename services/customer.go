package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"washpro-backend/models"
	"washpro-backend/store"
	"washpro-backend/utils"
)

type VehicleInput struct {
	LicensePlate string `json:"licensePlate" binding:"required"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Color        string `json:"color"`
	VehicleType  string `json:"vehicleType"`
}

type CustomerInput struct {
	Name         string         `json:"name" binding:"required"`
	Phone        string         `json:"phone" binding:"required"`
	Email        string         `json:"email" binding:"omitempty,email"`
	IsRegistered bool           `json:"isRegistered"`
	Notes        string         `json:"notes"`
	Vehicles     []VehicleInput `json:"vehicles" binding:"dive"`
}

type CustomerUpdate struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	IsRegistered *bool   `json:"isRegistered"`
	Notes        *string `json:"notes"`
	IsActive     *bool   `json:"isActive"`
}

type CustomerService struct {
	uow *store.UnitOfWork
}

func NewCustomerService(uow *store.UnitOfWork) *CustomerService {
	return &CustomerService{uow: uow}
}

func buildVehicle(in VehicleInput) (models.Vehicle, error) {
	plate := utils.NormalizePlate(in.LicensePlate)
	if plate == "" {
		return models.Vehicle{}, invalid("license plate is required")
	}
	return models.Vehicle{
		LicensePlate: plate,
		Make:         in.Make,
		Model:        in.Model,
		Color:        in.Color,
		VehicleType:  defaultString(in.VehicleType, "car"),
	}, nil
}

func (s *CustomerService) Create(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalid("customer name is required")
	}
	if !utils.ValidatePhone(in.Phone) {
		return nil, invalid("invalid phone number format")
	}

	customer := models.Customer{
		Name:         strings.TrimSpace(in.Name),
		Phone:        utils.CleanPhone(in.Phone),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		IsRegistered: in.IsRegistered,
		Notes:        in.Notes,
		IsActive:     true,
	}
	for _, v := range in.Vehicles {
		vehicle, err := buildVehicle(v)
		if err != nil {
			return nil, err
		}
		customer.Vehicles = append(customer.Vehicles, vehicle)
	}

	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		return tx.Create(&customer).Error
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// List returns customers, optionally filtered by a name, phone or plate fragment.
func (s *CustomerService) List(ctx context.Context, search string) ([]models.Customer, error) {
	query := s.uow.DB(ctx).Preload("Vehicles").Order("created_at DESC")
	if term := strings.ToLower(strings.TrimSpace(search)); term != "" {
		like := "%" + term + "%"
		plate := "%" + utils.NormalizePlate(search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR id IN (?)",
			like, like,
			s.uow.DB(ctx).Model(&models.Vehicle{}).Select("customer_id").Where("license_plate LIKE ?", plate),
		)
	}

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := findByID(s.uow.DB(ctx).Preload("Vehicles"), &customer, "customer", id); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, in CustomerUpdate) (*models.Customer, error) {
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		var customer models.Customer
		if err := findByID(tx, &customer, "customer", id); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return invalid("customer name is required")
			}
			updates["name"] = strings.TrimSpace(*in.Name)
		}
		if in.Phone != nil {
			if !utils.ValidatePhone(*in.Phone) {
				return invalid("invalid phone number format")
			}
			updates["phone"] = utils.CleanPhone(*in.Phone)
		}
		if in.Email != nil {
			updates["email"] = strings.ToLower(strings.TrimSpace(*in.Email))
		}
		if in.IsRegistered != nil {
			updates["is_registered"] = *in.IsRegistered
		}
		if in.Notes != nil {
			updates["notes"] = *in.Notes
		}
		if in.IsActive != nil {
			updates["is_active"] = *in.IsActive
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&customer).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.uow.DB(ctx).Where("id = ?", id).Delete(&models.Customer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("customer")
	}
	return nil
}

func (s *CustomerService) AddVehicle(ctx context.Context, customerID uuid.UUID, in VehicleInput) (*models.Vehicle, error) {
	vehicle, err := buildVehicle(in)
	if err != nil {
		return nil, err
	}
	vehicle.CustomerID = customerID

	err = s.uow.Do(ctx, func(tx *gorm.DB) error {
		found, err := exists(tx, &models.Customer{}, customerID)
		if err != nil {
			return err
		}
		if !found {
			return notFound("customer")
		}
		return tx.Create(&vehicle).Error
	})
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// RecomputeCustomerTotals rebuilds the cached visit count, spend and last visit
// from the customer's completed and paid check-ins. It must run inside the
// transaction that changed those check-ins.
func RecomputeCustomerTotals(tx *gorm.DB, customerID uuid.UUID) error {
	var checkIns []models.CheckIn
	err := tx.Select("id", "total_amount", "checked_in_at").
		Where("customer_id = ? AND status IN ?", customerID, models.CountedCheckInStatuses).
		Find(&checkIns).Error
	if err != nil {
		return err
	}

	spent := decimal.Zero
	var lastVisit *time.Time
	for _, c := range checkIns {
		spent = spent.Add(money(c.TotalAmount))
		if lastVisit == nil || c.CheckedInAt.After(*lastVisit) {
			lastVisit = timePtr(c.CheckedInAt)
		}
	}

	return tx.Model(&models.Customer{}).Where("id = ?", customerID).Updates(map[string]interface{}{
		"total_visits": len(checkIns),
		"total_spent":  spent.InexactFloat64(),
		"last_visit":   lastVisit,
	}).Error
}
