package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"washpro-backend/models"
	"washpro-backend/store"
)

type SaleItemInput struct {
	InventoryItemID uuid.UUID `json:"inventoryItemId" binding:"required"`
	Quantity        int       `json:"quantity" binding:"required,min=1"`
}

type SaleInput struct {
	CustomerID    *uuid.UUID      `json:"customerId"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes"`
	Items         []SaleItemInput `json:"items" binding:"required,min=1,dive"`
}

type SalesService struct {
	uow *store.UnitOfWork
}

func NewSalesService(uow *store.UnitOfWork) *SalesService {
	return &SalesService{uow: uow}
}

// Create records a counter sale. Every line takes its stock conditionally; one
// short line aborts the whole sale.
func (s *SalesService) Create(ctx context.Context, in SaleInput) (*models.Sale, error) {
	if len(in.Items) == 0 {
		return nil, invalid("a sale needs at least one item")
	}

	var sale models.Sale
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		if in.CustomerID != nil {
			found, err := exists(tx, &models.Customer{}, *in.CustomerID)
			if err != nil {
				return err
			}
			if !found {
				return invalid("customer %s does not exist", *in.CustomerID)
			}
		}

		total := decimal.Zero
		cost := decimal.Zero
		for _, line := range in.Items {
			if line.Quantity <= 0 {
				return invalid("quantity must be positive")
			}
			var item models.InventoryItem
			err := tx.Where("id = ? AND is_active = ?", line.InventoryItemID, true).First(&item).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalid("inventory item %s not found or inactive", line.InventoryItemID)
			}
			if err != nil {
				return err
			}
			if err := decrementStock(tx, item.ID, line.Quantity); err != nil {
				if errors.Is(err, ErrInsufficientStock) {
					return fmt.Errorf("%s: %w", item.Name, err)
				}
				return err
			}

			qty := decimal.NewFromInt(int64(line.Quantity))
			lineTotal := money(item.SellingPrice).Mul(qty)
			total = total.Add(lineTotal)
			cost = cost.Add(money(item.UnitCost).Mul(qty))
			sale.Items = append(sale.Items, models.SaleItem{
				InventoryItemID: item.ID,
				ItemName:        item.Name,
				Quantity:        line.Quantity,
				UnitPrice:       money(item.SellingPrice).InexactFloat64(),
				UnitCost:        money(item.UnitCost).InexactFloat64(),
				TotalPrice:      lineTotal.InexactFloat64(),
			})
		}

		sale.CustomerID = in.CustomerID
		sale.PaymentMethod = defaultString(strings.ToLower(in.PaymentMethod), "cash")
		sale.Notes = in.Notes
		sale.TotalAmount = total.Round(2).InexactFloat64()
		sale.TotalCost = cost.Round(2).InexactFloat64()
		sale.SoldAt = now()
		return tx.Create(&sale).Error
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (s *SalesService) List(ctx context.Context, from, to *time.Time) ([]models.Sale, error) {
	query := s.uow.DB(ctx).Preload("Items").Order("sold_at DESC")
	if from != nil {
		query = query.Where("sold_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("sold_at < ?", *to)
	}
	var sales []models.Sale
	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}
