package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// now is replaced in tests that need a fixed clock. Business days are UTC.
var now = func() time.Time {
	return time.Now().UTC()
}

// findByID loads dest by primary key, mapping a missing row to ErrNotFound.
func findByID(db *gorm.DB, dest interface{}, entity string, id uuid.UUID) error {
	if err := db.First(dest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(entity)
		}
		return err
	}
	return nil
}

// exists reports whether a non-deleted row of model has the given id.
func exists(db *gorm.DB, model interface{}, id uuid.UUID) (bool, error) {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func sum(values []float64) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(money(v))
	}
	return total
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	return &t
}
