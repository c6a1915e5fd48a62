package models

type Service struct {
	BaseModel

	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"type:decimal(12,2);not null" json:"price"`
	Duration    int     `json:"duration"` // in minutes
	Category    string  `gorm:"default:'General'" json:"category"`

	WasherCommissionPercentage  float64 `gorm:"type:decimal(5,2);not null" json:"washerCommissionPercentage"`
	CompanyCommissionPercentage float64 `gorm:"type:decimal(5,2);not null" json:"companyCommissionPercentage"`

	IsActive bool `gorm:"default:true" json:"isActive"`
}
