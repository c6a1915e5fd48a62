package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ToolStatusAssigned = "assigned"
	ToolStatusReturned = "returned"
	ToolStatusLost     = "lost"
	ToolStatusDamaged  = "damaged"

	ToolChargePending  = "pending"
	ToolChargeDeducted = "deducted"
	ToolChargeWaived   = "waived"
)

type WasherTool struct {
	BaseModel

	WasherID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"washerId"`
	InventoryItemID uuid.UUID  `gorm:"type:uuid;index;not null" json:"inventoryItemId"`
	Quantity        int        `gorm:"not null;default:1" json:"quantity"`
	Status          string     `gorm:"type:varchar(20);not null" json:"status"`
	AssignedAt      time.Time  `gorm:"not null" json:"assignedAt"`
	ReturnedAt      *time.Time `json:"returnedAt"`
	Notes           string     `json:"notes"`

	Washer        *Washer        `gorm:"foreignKey:WasherID" json:"washer,omitempty"`
	InventoryItem *InventoryItem `gorm:"foreignKey:InventoryItemID" json:"inventoryItem,omitempty"`
}

type ToolCharge struct {
	BaseModel

	WasherID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"washerId"`
	WasherToolID *uuid.UUID `gorm:"type:uuid" json:"washerToolId"`
	Amount       float64    `gorm:"type:decimal(12,2);not null" json:"amount"`
	Reason       string     `gorm:"not null" json:"reason"`
	Status       string     `gorm:"type:varchar(20);not null" json:"status"`
	ChargedAt    time.Time  `gorm:"index;not null" json:"chargedAt"`

	Washer *Washer `gorm:"foreignKey:WasherID" json:"washer,omitempty"`
}

const (
	PaymentRequestPending  = "pending"
	PaymentRequestApproved = "approved"
	PaymentRequestPaid     = "paid"
	PaymentRequestRejected = "rejected"
)

type PaymentRequest struct {
	BaseModel

	WasherID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"washerId"`
	Amount      float64    `gorm:"type:decimal(12,2);not null" json:"amount"`
	Notes       string     `json:"notes"`
	Status      string     `gorm:"type:varchar(20);index;not null" json:"status"`
	AdminNotes  string     `json:"adminNotes"`
	ProcessedAt *time.Time `json:"processedAt"`
	PaidAt      *time.Time `json:"paidAt"`

	Washer *Washer `gorm:"foreignKey:WasherID" json:"washer,omitempty"`
}
