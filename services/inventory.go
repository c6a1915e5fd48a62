package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"washpro-backend/models"
	"washpro-backend/store"
	"washpro-backend/utils"
)

type InventoryInput struct {
	Name          string  `json:"name" binding:"required"`
	SKU           string  `json:"sku"`
	Category      string  `json:"category"`
	Unit          string  `json:"unit"`
	CurrentStock  int     `json:"currentStock" binding:"min=0"`
	MinStockLevel int     `json:"minStockLevel" binding:"min=0"`
	MaxStockLevel int     `json:"maxStockLevel" binding:"min=0"`
	UnitCost      float64 `json:"unitCost" binding:"min=0"`
	SellingPrice  float64 `json:"sellingPrice" binding:"min=0"`
}

// InventoryUpdate does not touch current stock; use Restock, sales or bonuses.
type InventoryUpdate struct {
	Name          *string  `json:"name"`
	SKU           *string  `json:"sku"`
	Category      *string  `json:"category"`
	Unit          *string  `json:"unit"`
	MinStockLevel *int     `json:"minStockLevel"`
	MaxStockLevel *int     `json:"maxStockLevel"`
	UnitCost      *float64 `json:"unitCost"`
	SellingPrice  *float64 `json:"sellingPrice"`
	IsActive      *bool    `json:"isActive"`
}

type RestockInput struct {
	Quantity int      `json:"quantity" binding:"required,min=1"`
	UnitCost *float64 `json:"unitCost"`
}

type InventoryFilter struct {
	Category     string
	LowStockOnly bool
}

// InventoryView is an item with its computed stock badge.
type InventoryView struct {
	models.InventoryItem
	StockStatus string `json:"stockStatus"`
}

// StockStatus classifies an item: low at or under the minimum, medium up to
// twice the minimum, good above that.
func StockStatus(current, minLevel int) string {
	switch {
	case current <= minLevel:
		return models.StockStatusLow
	case current <= 2*minLevel:
		return models.StockStatusMedium
	default:
		return models.StockStatusGood
	}
}

func viewOf(item models.InventoryItem) InventoryView {
	return InventoryView{InventoryItem: item, StockStatus: StockStatus(item.CurrentStock, item.MinStockLevel)}
}

type InventoryService struct {
	uow *store.UnitOfWork
}

func NewInventoryService(uow *store.UnitOfWork) *InventoryService {
	return &InventoryService{uow: uow}
}

func (s *InventoryService) Create(ctx context.Context, in InventoryInput) (*InventoryView, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalid("item name is required")
	}
	if in.CurrentStock < 0 || in.MinStockLevel < 0 || in.MaxStockLevel < 0 {
		return nil, invalid("stock levels must not be negative")
	}
	if in.MaxStockLevel > 0 && in.MaxStockLevel < in.MinStockLevel {
		return nil, invalid("max stock level must not be below min stock level")
	}

	sku := strings.ToUpper(strings.TrimSpace(in.SKU))
	if sku == "" {
		sku = "INV-" + strings.ToUpper(utils.GenerateRandomString(8))
	}
	item := models.InventoryItem{
		Name:          strings.TrimSpace(in.Name),
		SKU:           sku,
		Category:      defaultString(in.Category, "General"),
		Unit:          defaultString(in.Unit, "pcs"),
		CurrentStock:  in.CurrentStock,
		MinStockLevel: in.MinStockLevel,
		MaxStockLevel: in.MaxStockLevel,
		UnitCost:      money(in.UnitCost).InexactFloat64(),
		SellingPrice:  money(in.SellingPrice).InexactFloat64(),
		IsActive:      true,
	}
	if err := s.uow.DB(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	view := viewOf(item)
	return &view, nil
}

func (s *InventoryService) List(ctx context.Context, filter InventoryFilter) ([]InventoryView, error) {
	query := s.uow.DB(ctx).Order("name")
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.LowStockOnly {
		query = query.Where("current_stock <= min_stock_level")
	}

	var items []models.InventoryItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	views := make([]InventoryView, 0, len(items))
	for _, item := range items {
		views = append(views, viewOf(item))
	}
	return views, nil
}

// LowStock returns the active items at or under their minimum level.
func (s *InventoryService) LowStock(ctx context.Context) ([]InventoryView, error) {
	var items []models.InventoryItem
	err := s.uow.DB(ctx).
		Where("is_active = ? AND current_stock <= min_stock_level", true).
		Order("current_stock").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	views := make([]InventoryView, 0, len(items))
	for _, item := range items {
		views = append(views, viewOf(item))
	}
	return views, nil
}

func (s *InventoryService) Get(ctx context.Context, id uuid.UUID) (*InventoryView, error) {
	var item models.InventoryItem
	if err := findByID(s.uow.DB(ctx), &item, "inventory item", id); err != nil {
		return nil, err
	}
	view := viewOf(item)
	return &view, nil
}

func (s *InventoryService) Update(ctx context.Context, id uuid.UUID, in InventoryUpdate) (*InventoryView, error) {
	var item models.InventoryItem
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		if err := findByID(tx, &item, "inventory item", id); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return invalid("item name is required")
			}
			updates["name"] = strings.TrimSpace(*in.Name)
		}
		if in.SKU != nil && strings.TrimSpace(*in.SKU) != "" {
			updates["sku"] = strings.ToUpper(strings.TrimSpace(*in.SKU))
		}
		if in.Category != nil {
			updates["category"] = *in.Category
		}
		if in.Unit != nil {
			updates["unit"] = *in.Unit
		}
		if in.MinStockLevel != nil {
			if *in.MinStockLevel < 0 {
				return invalid("stock levels must not be negative")
			}
			updates["min_stock_level"] = *in.MinStockLevel
		}
		if in.MaxStockLevel != nil {
			if *in.MaxStockLevel < 0 {
				return invalid("stock levels must not be negative")
			}
			updates["max_stock_level"] = *in.MaxStockLevel
		}
		if in.UnitCost != nil {
			updates["unit_cost"] = money(*in.UnitCost).InexactFloat64()
		}
		if in.SellingPrice != nil {
			updates["selling_price"] = money(*in.SellingPrice).InexactFloat64()
		}
		if in.IsActive != nil {
			updates["is_active"] = *in.IsActive
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&item).Updates(updates).Error; err != nil {
			return err
		}
		return findByID(tx, &item, "inventory item", id)
	})
	if err != nil {
		return nil, err
	}
	view := viewOf(item)
	return &view, nil
}

func (s *InventoryService) Restock(ctx context.Context, id uuid.UUID, in RestockInput) (*InventoryView, error) {
	if in.Quantity <= 0 {
		return nil, invalid("restock quantity must be positive")
	}
	var item models.InventoryItem
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		if err := incrementStock(tx, id, in.Quantity); err != nil {
			return err
		}
		if in.UnitCost != nil {
			if err := tx.Model(&models.InventoryItem{}).Where("id = ?", id).
				Update("unit_cost", money(*in.UnitCost).InexactFloat64()).Error; err != nil {
				return err
			}
		}
		return findByID(tx, &item, "inventory item", id)
	})
	if err != nil {
		return nil, err
	}
	view := viewOf(item)
	return &view, nil
}

func (s *InventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.uow.DB(ctx).Where("id = ?", id).Delete(&models.InventoryItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("inventory item")
	}
	return nil
}

// decrementStock takes qty units in a single conditional UPDATE so concurrent
// writers cannot drive stock below zero.
func decrementStock(tx *gorm.DB, itemID uuid.UUID, qty int) error {
	if qty <= 0 {
		return invalid("quantity must be positive")
	}
	result := tx.Model(&models.InventoryItem{}).
		Where("id = ? AND current_stock >= ?", itemID, qty).
		Update("current_stock", gorm.Expr("current_stock - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	found, err := exists(tx, &models.InventoryItem{}, itemID)
	if err != nil {
		return err
	}
	if !found {
		return invalid("inventory item %s does not exist", itemID)
	}
	return ErrInsufficientStock
}

func incrementStock(tx *gorm.DB, itemID uuid.UUID, qty int) error {
	result := tx.Model(&models.InventoryItem{}).
		Where("id = ?", itemID).
		Update("current_stock", gorm.Expr("current_stock + ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("inventory item")
	}
	return nil
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return strings.TrimSpace(v)
}
