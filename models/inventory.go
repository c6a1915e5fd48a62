package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StockStatusLow    = "low"
	StockStatusMedium = "medium"
	StockStatusGood   = "good"
)

type InventoryItem struct {
	BaseModel

	Name          string  `gorm:"not null" json:"name"`
	SKU           string  `gorm:"uniqueIndex" json:"sku"`
	Category      string  `gorm:"default:'General'" json:"category"`
	Unit          string  `gorm:"default:'pcs'" json:"unit"`
	CurrentStock  int     `gorm:"not null;default:0" json:"currentStock"`
	MinStockLevel int     `gorm:"default:0" json:"minStockLevel"`
	MaxStockLevel int     `gorm:"default:0" json:"maxStockLevel"`
	UnitCost      float64 `gorm:"type:decimal(12,2);default:0" json:"unitCost"`
	SellingPrice  float64 `gorm:"type:decimal(12,2);default:0" json:"sellingPrice"`
	IsActive      bool    `gorm:"default:true" json:"isActive"`
}

type Sale struct {
	BaseModel

	CustomerID    *uuid.UUID `gorm:"type:uuid;index" json:"customerId"`
	PaymentMethod string     `gorm:"default:'cash'" json:"paymentMethod"`
	TotalAmount   float64    `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	TotalCost     float64    `gorm:"type:decimal(12,2);default:0" json:"totalCost"`
	Notes         string     `json:"notes"`
	SoldAt        time.Time  `gorm:"index;not null" json:"soldAt"`

	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
}

type SaleItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SaleID          uuid.UUID `gorm:"type:uuid;index;not null" json:"saleId"`
	InventoryItemID uuid.UUID `gorm:"type:uuid;index;not null" json:"inventoryItemId"`
	ItemName        string    `gorm:"not null" json:"itemName"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	UnitPrice       float64   `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	UnitCost        float64   `gorm:"type:decimal(12,2);default:0" json:"unitCost"`
	TotalPrice      float64   `gorm:"type:decimal(12,2);not null" json:"totalPrice"`
}

func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
