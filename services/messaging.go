package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"washpro-backend/models"
	"washpro-backend/notify"
	"washpro-backend/store"
)

var defaultMessages = map[string]string{
	models.MessageBonusIssued:       "Hi [CustomerName], you have received a bonus from [Business]: [Reward]. Thank you for your loyalty!",
	models.MessageMilestoneAchieved: "Congratulations [CustomerName]! You reached \"[Milestone]\" at [Business]. [Reward]",
}

type TemplateInput struct {
	Message  string `json:"message" binding:"required"`
	IsActive *bool  `json:"isActive"`
}

// MessagingService sends customer SMS and keeps a log of every attempt.
type MessagingService struct {
	uow      *store.UnitOfWork
	sms      notify.SMSSender
	settings *SettingsService
}

func NewMessagingService(uow *store.UnitOfWork, sms notify.SMSSender, settings *SettingsService) *MessagingService {
	return &MessagingService{uow: uow, sms: sms, settings: settings}
}

// NotifyCustomer makes at most one SMS attempt. Failures are logged and
// returned for the caller's log only.
func (s *MessagingService) NotifyCustomer(ctx context.Context, customer models.Customer, msgType string, bonusID *uuid.UUID, vars map[string]string) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if !settings.SMSNotifications {
		log.Printf("[notify][sms] notifications disabled, skipping %s for customer %s", msgType, customer.ID)
		return nil
	}

	body, err := s.render(ctx, msgType, settings.Name, customer, vars)
	if err != nil {
		return err
	}

	entry := models.NotificationLog{
		CustomerID: customer.ID,
		BonusID:    bonusID,
		Type:       msgType,
		Message:    body,
		Status:     models.NotificationSent,
		Channel:    "sms",
		SentAt:     now(),
	}

	sendErr := s.sms.SendSMS(ctx, customer.Phone, body)
	if sendErr != nil {
		log.Printf("[notify][sms] failed to send %s to %s: %v", msgType, customer.Phone, sendErr)
		entry.Status = models.NotificationFailed
		entry.ErrorMessage = sendErr.Error()
	}

	if err := s.uow.DB(ctx).Create(&entry).Error; err != nil {
		log.Printf("[notify][sms] failed to log %s for customer %s: %v", msgType, customer.ID, err)
	}
	return sendErr
}

func (s *MessagingService) render(ctx context.Context, msgType, business string, customer models.Customer, vars map[string]string) (string, error) {
	message, ok := defaultMessages[msgType]
	if !ok {
		return "", fmt.Errorf("unknown message type %q", msgType)
	}

	var tpl models.MessageTemplate
	err := s.uow.DB(ctx).Where("type = ? AND is_active = ?", msgType, true).First(&tpl).Error
	switch {
	case err == nil:
		message = tpl.Message
	case !errors.Is(err, gorm.ErrRecordNotFound):
		log.Printf("[notify][sms] template lookup for %s failed, using default: %v", msgType, err)
	}

	replacements := []string{"[CustomerName]", customer.Name, "[Business]", business}
	for key, value := range vars {
		replacements = append(replacements, "["+key+"]", value)
	}
	return strings.TrimSpace(strings.NewReplacer(replacements...).Replace(message)), nil
}

// ListTemplates returns every message type, stored overrides first.
func (s *MessagingService) ListTemplates(ctx context.Context) ([]models.MessageTemplate, error) {
	var stored []models.MessageTemplate
	if err := s.uow.DB(ctx).Order("type").Find(&stored).Error; err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for _, t := range stored {
		seen[t.Type] = true
	}
	for _, msgType := range []string{models.MessageBonusIssued, models.MessageMilestoneAchieved} {
		if !seen[msgType] {
			stored = append(stored, models.MessageTemplate{Type: msgType, Message: defaultMessages[msgType], IsActive: true})
		}
	}
	return stored, nil
}

func (s *MessagingService) SaveTemplate(ctx context.Context, msgType string, in TemplateInput) (*models.MessageTemplate, error) {
	if _, ok := defaultMessages[msgType]; !ok {
		return nil, invalid("unknown message type %q", msgType)
	}
	if strings.TrimSpace(in.Message) == "" {
		return nil, invalid("message is required")
	}

	var tpl models.MessageTemplate
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		err := tx.Where("type = ?", msgType).First(&tpl).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tpl = models.MessageTemplate{Type: msgType, Message: in.Message, IsActive: true}
			if err := tx.Create(&tpl).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		updates := map[string]interface{}{"message": in.Message}
		if in.IsActive != nil {
			updates["is_active"] = *in.IsActive
		}
		if err := tx.Model(&tpl).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&tpl, "id = ?", tpl.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (s *MessagingService) ListNotifications(ctx context.Context, customerID *uuid.UUID) ([]models.NotificationLog, error) {
	query := s.uow.DB(ctx).Order("sent_at DESC").Limit(200)
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}
	var logs []models.NotificationLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
