package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
)

type ProgramRepository interface {
	// Создать программу.
	Create(ctx context.Context, program *model.Program) error
	// Получить программу по ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Program, error)
	// Заменить базовые условия программы.
	UpdateConditions(ctx context.Context, id uuid.UUID, conditions datatypes.JSON) error
	// Обновить статус программы.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ProgramStatus) error
}

type GormProgramRepository struct {
	db *gorm.DB
}

func NewGormProgramRepository(db *gorm.DB) *GormProgramRepository {
	return &GormProgramRepository{db: db}
}

func (r *GormProgramRepository) Create(ctx context.Context, program *model.Program) error {
	return r.db.WithContext(ctx).Create(program).Error
}

func (r *GormProgramRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Program, error) {
	var p model.Program
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *GormProgramRepository) UpdateConditions(ctx context.Context, id uuid.UUID, conditions datatypes.JSON) error {
	return r.update(ctx, id, "conditions", conditions)
}

func (r *GormProgramRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ProgramStatus) error {
	return r.update(ctx, id, "status", status)
}

func (r *GormProgramRepository) update(ctx context.Context, id uuid.UUID, column string, value any) error {
	res := r.db.WithContext(ctx).
		Model(&model.Program{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
