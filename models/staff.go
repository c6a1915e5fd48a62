package models

import (
	"time"

	"gorm.io/gorm"

	"washpro-backend/utils"
)

const (
	WasherStatusActive    = "active"
	WasherStatusInactive  = "inactive"
	WasherStatusSuspended = "suspended"

	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleWasher     = "washer"
)

type Washer struct {
	BaseModel

	Name     string     `gorm:"not null" json:"name"`
	Email    string     `gorm:"uniqueIndex;not null" json:"email"`
	Phone    string     `json:"phone"`
	Password string     `gorm:"not null" json:"-"`
	Status   string     `gorm:"type:varchar(20);default:'active'" json:"status"`
	HireDate *time.Time `json:"hireDate"`

	LastLogin *time.Time `json:"lastLogin"`
}

// Hash the plain password before it reaches the table.
func (w *Washer) BeforeCreate(tx *gorm.DB) error {
	if err := w.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	hashed, err := utils.HashPassword(w.Password)
	if err != nil {
		return err
	}
	w.Password = hashed
	return nil
}

type Admin struct {
	BaseModel

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"type:varchar(20);not null" json:"role"`
	IsActive bool   `gorm:"default:true" json:"isActive"`

	LastLogin *time.Time `json:"lastLogin"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if err := a.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	hashed, err := utils.HashPassword(a.Password)
	if err != nil {
		return err
	}
	a.Password = hashed
	return nil
}
