package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	BaseModel

	Name         string `gorm:"not null" json:"name"`
	Phone        string `gorm:"uniqueIndex;not null" json:"phone"`
	Email        string `json:"email"`
	IsRegistered bool   `gorm:"default:false" json:"isRegistered"`
	Notes        string `json:"notes"`

	// Cached from check-ins by RecomputeCustomerTotals; never written by hand.
	TotalVisits int        `gorm:"default:0" json:"totalVisits"`
	TotalSpent  float64    `gorm:"type:decimal(12,2);default:0" json:"totalSpent"`
	LastVisit   *time.Time `json:"lastVisit"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`

	Vehicles []Vehicle `gorm:"foreignKey:CustomerID" json:"vehicles,omitempty"`
}

type Vehicle struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID   uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	LicensePlate string    `gorm:"uniqueIndex;not null" json:"licensePlate"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Color        string    `json:"color"`
	VehicleType  string    `gorm:"default:'car'" json:"vehicleType"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
