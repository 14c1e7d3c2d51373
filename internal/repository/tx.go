package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
)

// locking adds SELECT ... FOR UPDATE where the dialect supports it. SQLite
// serialises writers on its own.
func locking(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// lockSlot reads a slot and holds its row lock until the transaction ends.
// Apply, confirm and both cancellations go through it, so they run one at a
// time per slot.
func lockSlot(tx *gorm.DB, slot *model.Slot, id uuid.UUID) error {
	if err := locking(tx).First(slot, "id = ?", id).Error; err != nil {
		return notFound(err)
	}
	return nil
}
