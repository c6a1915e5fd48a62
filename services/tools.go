package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"washpro-backend/models"
	"washpro-backend/store"
)

type WasherToolInput struct {
	WasherID        uuid.UUID `json:"washerId" binding:"required"`
	InventoryItemID uuid.UUID `json:"inventoryItemId" binding:"required"`
	Quantity        int       `json:"quantity" binding:"min=0"`
	Notes           string    `json:"notes"`
}

// ToolStatusInput closes an assignment. ChargeAmount only applies to lost or
// damaged tools.
type ToolStatusInput struct {
	Status       string   `json:"status" binding:"required,oneof=returned lost damaged"`
	ChargeAmount *float64 `json:"chargeAmount"`
	Notes        string   `json:"notes"`
}

type ToolChargeInput struct {
	WasherID     uuid.UUID  `json:"washerId" binding:"required"`
	WasherToolID *uuid.UUID `json:"washerToolId"`
	Amount       float64    `json:"amount" binding:"required,gt=0"`
	Reason       string     `json:"reason" binding:"required"`
}

type ToolChargeStatusInput struct {
	Status string `json:"status" binding:"required,oneof=deducted waived"`
}

type ToolService struct {
	uow *store.UnitOfWork
}

func NewToolService(uow *store.UnitOfWork) *ToolService {
	return &ToolService{uow: uow}
}

func (s *ToolService) Assign(ctx context.Context, in WasherToolInput) (*models.WasherTool, error) {
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 0 {
		return nil, invalid("quantity must be positive")
	}

	var tool models.WasherTool
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		var washer models.Washer
		if err := findByID(tx, &washer, "washer", in.WasherID); err != nil {
			return err
		}
		if washer.Status != models.WasherStatusActive {
			return invalid("washer %s is not active", washer.Name)
		}
		if err := decrementStock(tx, in.InventoryItemID, in.Quantity); err != nil {
			return err
		}

		tool = models.WasherTool{
			WasherID:        in.WasherID,
			InventoryItemID: in.InventoryItemID,
			Quantity:        in.Quantity,
			Status:          models.ToolStatusAssigned,
			AssignedAt:      now(),
			Notes:           in.Notes,
		}
		return tx.Create(&tool).Error
	})
	if err != nil {
		return nil, err
	}
	return s.getTool(ctx, tool.ID)
}

// UpdateToolStatus closes an assigned tool. Returned tools go back into stock;
// lost or damaged ones may raise a charge against the washer.
func (s *ToolService) UpdateToolStatus(ctx context.Context, id uuid.UUID, in ToolStatusInput) (*models.WasherTool, error) {
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		var tool models.WasherTool
		if err := findByID(tx.Preload("InventoryItem"), &tool, "washer tool", id); err != nil {
			return err
		}
		if tool.Status != models.ToolStatusAssigned {
			return invalid("tool is already %s", tool.Status)
		}

		at := now()
		updates := map[string]interface{}{"status": in.Status}
		if in.Notes != "" {
			updates["notes"] = in.Notes
		}

		switch in.Status {
		case models.ToolStatusReturned:
			updates["returned_at"] = at
			if err := incrementStock(tx, tool.InventoryItemID, tool.Quantity); err != nil {
				return err
			}
		case models.ToolStatusLost, models.ToolStatusDamaged:
			if in.ChargeAmount != nil && *in.ChargeAmount > 0 {
				name := "tool"
				if tool.InventoryItem != nil {
					name = tool.InventoryItem.Name
				}
				charge := models.ToolCharge{
					WasherID:     tool.WasherID,
					WasherToolID: &tool.ID,
					Amount:       money(*in.ChargeAmount).InexactFloat64(),
					Reason:       fmt.Sprintf("%s tool: %s", in.Status, name),
					Status:       models.ToolChargePending,
					ChargedAt:    at,
				}
				if err := tx.Create(&charge).Error; err != nil {
					return err
				}
			}
		default:
			return invalid("status must be returned, lost or damaged")
		}

		return tx.Model(&models.WasherTool{}).Where("id = ?", tool.ID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.getTool(ctx, id)
}

func (s *ToolService) getTool(ctx context.Context, id uuid.UUID) (*models.WasherTool, error) {
	var tool models.WasherTool
	db := s.uow.DB(ctx).Preload("Washer").Preload("InventoryItem")
	if err := findByID(db, &tool, "washer tool", id); err != nil {
		return nil, err
	}
	return &tool, nil
}

func (s *ToolService) ListTools(ctx context.Context, washerID *uuid.UUID, status string) ([]models.WasherTool, error) {
	query := s.uow.DB(ctx).Preload("Washer").Preload("InventoryItem").Order("assigned_at DESC")
	if washerID != nil {
		query = query.Where("washer_id = ?", *washerID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var tools []models.WasherTool
	if err := query.Find(&tools).Error; err != nil {
		return nil, err
	}
	return tools, nil
}

func (s *ToolService) CreateCharge(ctx context.Context, in ToolChargeInput) (*models.ToolCharge, error) {
	if in.Amount <= 0 {
		return nil, invalid("amount must be positive")
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, invalid("reason is required")
	}

	var charge models.ToolCharge
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		found, err := exists(tx, &models.Washer{}, in.WasherID)
		if err != nil {
			return err
		}
		if !found {
			return invalid("washer %s does not exist", in.WasherID)
		}
		if in.WasherToolID != nil {
			var tool models.WasherTool
			if err := findByID(tx, &tool, "washer tool", *in.WasherToolID); err != nil {
				return err
			}
			if tool.WasherID != in.WasherID {
				return invalid("tool is not assigned to this washer")
			}
		}

		charge = models.ToolCharge{
			WasherID:     in.WasherID,
			WasherToolID: in.WasherToolID,
			Amount:       money(in.Amount).InexactFloat64(),
			Reason:       strings.TrimSpace(in.Reason),
			Status:       models.ToolChargePending,
			ChargedAt:    now(),
		}
		return tx.Create(&charge).Error
	})
	if err != nil {
		return nil, err
	}
	return &charge, nil
}

func (s *ToolService) UpdateChargeStatus(ctx context.Context, id uuid.UUID, in ToolChargeStatusInput) (*models.ToolCharge, error) {
	if in.Status != models.ToolChargeDeducted && in.Status != models.ToolChargeWaived {
		return nil, invalid("status must be deducted or waived")
	}
	var charge models.ToolCharge
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		if err := findByID(tx, &charge, "tool charge", id); err != nil {
			return err
		}
		if charge.Status != models.ToolChargePending {
			return invalid("cannot move tool charge from %s to %s", charge.Status, in.Status)
		}
		charge.Status = in.Status
		return tx.Model(&models.ToolCharge{}).Where("id = ?", id).Update("status", in.Status).Error
	})
	if err != nil {
		return nil, err
	}
	return &charge, nil
}

func (s *ToolService) ListCharges(ctx context.Context, washerID *uuid.UUID, status string) ([]models.ToolCharge, error) {
	query := s.uow.DB(ctx).Preload("Washer").Order("charged_at DESC")
	if washerID != nil {
		query = query.Where("washer_id = ?", *washerID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var charges []models.ToolCharge
	if err := query.Find(&charges).Error; err != nil {
		return nil, err
	}
	return charges, nil
}
