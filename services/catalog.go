package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"washpro-backend/models"
	"washpro-backend/store"
)

type ServiceInput struct {
	Name                        string  `json:"name" binding:"required"`
	Description                 string  `json:"description"`
	Price                       float64 `json:"price" binding:"min=0"`
	Duration                    int     `json:"duration" binding:"min=0"` // in minutes
	Category                    string  `json:"category"`
	WasherCommissionPercentage  float64 `json:"washerCommissionPercentage"`
	CompanyCommissionPercentage float64 `json:"companyCommissionPercentage"`
}

type ServiceUpdate struct {
	Name                        *string  `json:"name"`
	Description                 *string  `json:"description"`
	Price                       *float64 `json:"price"`
	Duration                    *int     `json:"duration"`
	Category                    *string  `json:"category"`
	WasherCommissionPercentage  *float64 `json:"washerCommissionPercentage"`
	CompanyCommissionPercentage *float64 `json:"companyCommissionPercentage"`
	IsActive                    *bool    `json:"isActive"`
}

// CatalogService manages the wash services offered at the counter.
type CatalogService struct {
	uow *store.UnitOfWork
}

func NewCatalogService(uow *store.UnitOfWork) *CatalogService {
	return &CatalogService{uow: uow}
}

func (s *CatalogService) Create(ctx context.Context, in ServiceInput) (*models.Service, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalid("service name is required")
	}
	if in.Price < 0 {
		return nil, invalid("price must not be negative")
	}
	if err := ValidateCommission(in.WasherCommissionPercentage, in.CompanyCommissionPercentage); err != nil {
		return nil, err
	}

	category := in.Category
	if category == "" {
		category = "General"
	}
	service := models.Service{
		Name:                        strings.TrimSpace(in.Name),
		Description:                 in.Description,
		Price:                       money(in.Price).InexactFloat64(),
		Duration:                    in.Duration,
		Category:                    category,
		WasherCommissionPercentage:  in.WasherCommissionPercentage,
		CompanyCommissionPercentage: in.CompanyCommissionPercentage,
		IsActive:                    true,
	}
	if err := s.uow.DB(ctx).Create(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (s *CatalogService) List(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	query := s.uow.DB(ctx).Order("category, name")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var services []models.Service
	if err := query.Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var service models.Service
	if err := findByID(s.uow.DB(ctx), &service, "service", id); err != nil {
		return nil, err
	}
	return &service, nil
}

func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, in ServiceUpdate) (*models.Service, error) {
	var service models.Service
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		if err := findByID(tx, &service, "service", id); err != nil {
			return err
		}

		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return invalid("service name is required")
			}
			service.Name = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			service.Description = *in.Description
		}
		if in.Price != nil {
			if *in.Price < 0 {
				return invalid("price must not be negative")
			}
			service.Price = money(*in.Price).InexactFloat64()
		}
		if in.Duration != nil {
			service.Duration = *in.Duration
		}
		if in.Category != nil {
			service.Category = *in.Category
		}
		if in.WasherCommissionPercentage != nil {
			service.WasherCommissionPercentage = *in.WasherCommissionPercentage
		}
		if in.CompanyCommissionPercentage != nil {
			service.CompanyCommissionPercentage = *in.CompanyCommissionPercentage
		}
		if in.IsActive != nil {
			service.IsActive = *in.IsActive
		}

		if err := ValidateCommission(service.WasherCommissionPercentage, service.CompanyCommissionPercentage); err != nil {
			return err
		}
		return tx.Save(&service).Error
	})
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// Delete soft deletes a service. Past check-ins keep their snapshot.
func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.uow.DB(ctx).Where("id = ?", id).Delete(&models.Service{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("service")
	}
	return nil
}
