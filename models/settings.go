package models

import "gorm.io/datatypes"

// BusinessSettings is a single-row table with the shop profile.
type BusinessSettings struct {
	BaseModel

	Name             string            `gorm:"not null" json:"name"`
	Address          string            `json:"address"`
	Phone            string            `json:"phone"`
	WorkingHours     datatypes.JSONMap `json:"workingHours"`
	SMSNotifications bool              `gorm:"default:true" json:"smsNotifications"`
}
