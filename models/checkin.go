package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CheckInStatusPending    = "pending"
	CheckInStatusInProgress = "in_progress"
	CheckInStatusCompleted  = "completed"
	CheckInStatusPaid       = "paid"
	CheckInStatusCancelled  = "cancelled"
)

// CountedCheckInStatuses are the statuses that contribute to customer totals,
// washer earnings and revenue.
var CountedCheckInStatuses = []string{CheckInStatusCompleted, CheckInStatusPaid}

type CheckIn struct {
	BaseModel

	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	VehicleID  uuid.UUID `gorm:"type:uuid;index;not null" json:"vehicleId"`
	Status     string    `gorm:"type:varchar(20);index;not null" json:"status"`

	TotalAmount   float64 `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	CompanyIncome float64 `gorm:"type:decimal(12,2);default:0" json:"companyIncome"`
	WasherIncome  float64 `gorm:"type:decimal(12,2);default:0" json:"washerIncome"`

	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes"`

	CheckedInAt time.Time  `gorm:"index;not null" json:"checkedInAt"`
	StartedAt   *time.Time `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	PaidAt      *time.Time `json:"paidAt"`
	CancelledAt *time.Time `json:"cancelledAt"`

	Customer *Customer        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Vehicle  *Vehicle         `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Services []CheckInService `gorm:"foreignKey:CheckInID" json:"services"`
	Washers  []CheckInWasher  `gorm:"foreignKey:CheckInID" json:"washers"`
}

// CheckInService snapshots the catalog entry at check-in time so later price or
// commission edits do not rewrite history.
type CheckInService struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CheckInID   uuid.UUID `gorm:"type:uuid;index;not null" json:"checkInId"`
	ServiceID   uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`
	ServiceName string    `gorm:"not null" json:"serviceName"`
	Price       float64   `gorm:"type:decimal(12,2);not null" json:"price"`

	WasherCommissionPercentage  float64 `gorm:"type:decimal(5,2);not null" json:"washerCommissionPercentage"`
	CompanyCommissionPercentage float64 `gorm:"type:decimal(5,2);not null" json:"companyCommissionPercentage"`
}

func (s *CheckInService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type CheckInWasher struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CheckInID uuid.UUID `gorm:"type:uuid;index;not null" json:"checkInId"`
	WasherID  uuid.UUID `gorm:"type:uuid;index;not null" json:"washerId"`
	Earning   float64   `gorm:"type:decimal(12,2);default:0" json:"earning"`

	Washer *Washer `gorm:"foreignKey:WasherID" json:"washer,omitempty"`
}

func (w *CheckInWasher) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
