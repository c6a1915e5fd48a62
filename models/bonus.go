package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RecipientCustomer = "customer"
	RecipientWasher   = "washer"

	BonusTypeMoney = "money"
	BonusTypeItem  = "item"

	BonusStatusPending   = "pending"
	BonusStatusApproved  = "approved"
	BonusStatusPaid      = "paid"
	BonusStatusRejected  = "rejected"
	BonusStatusCancelled = "cancelled"
)

type Bonus struct {
	BaseModel

	RecipientType string     `gorm:"type:varchar(20);not null" json:"recipientType"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index" json:"customerId"`
	WasherID      *uuid.UUID `gorm:"type:uuid;index" json:"washerId"`

	BonusType       string     `gorm:"type:varchar(20);not null" json:"bonusType"`
	Amount          float64    `gorm:"type:decimal(12,2);default:0" json:"amount"`
	InventoryItemID *uuid.UUID `gorm:"type:uuid" json:"inventoryItemId"`
	Quantity        int        `gorm:"default:0" json:"quantity"`
	Reason          string     `gorm:"not null" json:"reason"`

	Status      string     `gorm:"type:varchar(20);index;not null" json:"status"`
	MilestoneID *uuid.UUID `gorm:"type:uuid" json:"milestoneId"`
	ApprovedAt  *time.Time `json:"approvedAt"`
	PaidAt      *time.Time `json:"paidAt"`
	Notes       string     `json:"notes"`

	Customer      *Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Washer        *Washer        `gorm:"foreignKey:WasherID" json:"washer,omitempty"`
	InventoryItem *InventoryItem `gorm:"foreignKey:InventoryItemID" json:"inventoryItem,omitempty"`
}

func (Bonus) TableName() string {
	return "bonuses"
}
