package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
)

// EventRepository reads the audit trail. Events are written by the other
// repositories inside their own transactions.
type EventRepository interface {
	ListByProgram(ctx context.Context, programID uuid.UUID, limit, offset int) ([]model.Event, int64, error)
	ListBySlot(ctx context.Context, slotID uuid.UUID) ([]model.Event, error)
}

type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) ListByProgram(
	ctx context.Context,
	programID uuid.UUID,
	limit, offset int,
) ([]model.Event, int64, error) {
	var events []model.Event
	q := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("program_id = ?", programID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	if err := q.Order("created_at ASC").Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *GormEventRepository) ListBySlot(ctx context.Context, slotID uuid.UUID) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", slotID).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
