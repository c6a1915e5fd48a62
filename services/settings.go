package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"washpro-backend/config"
	"washpro-backend/models"
	"washpro-backend/store"
)

type SettingsInput struct {
	Name             *string                `json:"name"`
	Address          *string                `json:"address"`
	Phone            *string                `json:"phone"`
	WorkingHours     map[string]interface{} `json:"workingHours"`
	SMSNotifications *bool                  `json:"smsNotifications"`
}

// SettingsService owns the single business profile row.
type SettingsService struct {
	uow         *store.UnitOfWork
	defaultName string
}

func NewSettingsService(uow *store.UnitOfWork, cfg config.Config) *SettingsService {
	return &SettingsService{uow: uow, defaultName: cfg.BusinessName}
}

// Get returns the stored profile, or an unsaved default when none exists yet.
func (s *SettingsService) Get(ctx context.Context) (*models.BusinessSettings, error) {
	return s.load(s.uow.DB(ctx))
}

func (s *SettingsService) load(db *gorm.DB) (*models.BusinessSettings, error) {
	var settings models.BusinessSettings
	err := db.Order("created_at").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.BusinessSettings{
			Name:             s.defaultName,
			WorkingHours:     datatypes.JSONMap{},
			SMSNotifications: true,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *SettingsService) Update(ctx context.Context, in SettingsInput) (*models.BusinessSettings, error) {
	var settings *models.BusinessSettings
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		current, err := s.load(tx)
		if err != nil {
			return err
		}
		settings = current

		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return invalid("business name is required")
			}
			settings.Name = strings.TrimSpace(*in.Name)
		}
		if in.Address != nil {
			settings.Address = *in.Address
		}
		if in.Phone != nil {
			settings.Phone = *in.Phone
		}
		if in.WorkingHours != nil {
			settings.WorkingHours = datatypes.JSONMap(in.WorkingHours)
		}
		if in.SMSNotifications != nil {
			settings.SMSNotifications = *in.SMSNotifications
		}

		if settings.ID == uuid.Nil {
			// default:true would swallow an explicit false on insert
			return tx.Select("*").Create(settings).Error
		}
		return tx.Save(settings).Error
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}
