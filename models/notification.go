package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MessageBonusIssued       = "bonus_issued"
	MessageMilestoneAchieved = "milestone_achieved"

	NotificationSent   = "sent"
	NotificationFailed = "failed"
)

// MessageTemplate overrides the built-in SMS text for one message type.
// Placeholders: [CustomerName], [Business], [Reward], [Milestone].
type MessageTemplate struct {
	BaseModel

	Type     string `gorm:"type:varchar(30);uniqueIndex;not null" json:"type"`
	Message  string `gorm:"type:text;not null" json:"message"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}

type NotificationLog struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"customerId"`
	BonusID      *uuid.UUID `gorm:"type:uuid;index" json:"bonusId"`
	Type         string     `gorm:"type:varchar(30)" json:"type"`
	Message      string     `gorm:"type:text" json:"message"`
	Status       string     `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage string     `gorm:"type:text" json:"errorMessage"`
	Channel      string     `gorm:"type:varchar(20)" json:"channel"`
	SentAt       time.Time  `json:"sentAt"`
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
