package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
)

type ApplicationRepository interface {
	// Создать заявку на открытый слот опубликованной программы.
	Create(ctx context.Context, app *model.Application) ([]model.Event, error)
	// Получить заявку по ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Application, error)
	// Заявки слота в порядке подачи.
	ListBySlot(ctx context.Context, slotID uuid.UUID) ([]model.Application, error)
	// Отозвать ожидающую заявку.
	Withdraw(ctx context.Context, id uuid.UUID) (*model.Application, []model.Event, error)
}

type GormApplicationRepository struct {
	db *gorm.DB
}

func NewGormApplicationRepository(db *gorm.DB) *GormApplicationRepository {
	return &GormApplicationRepository{db: db}
}

func (r *GormApplicationRepository) Create(ctx context.Context, app *model.Application) ([]model.Event, error) {
	var events []model.Event

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slot model.Slot
		if err := lockSlot(tx, &slot, app.SlotID); err != nil {
			return err
		}
		if slot.Status != model.SlotStatusOpen {
			return model.ErrSlotNotOpen
		}

		var program model.Program
		if err := tx.First(&program, "id = ?", slot.ProgramID).Error; err != nil {
			return notFound(err)
		}
		if program.Status != model.ProgramStatusPublished {
			return model.ErrSlotNotOpen
		}

		app.Status = model.ApplicationStatusPending
		app.ActiveKey = nil
		if err := tx.Create(app).Error; err != nil {
			if isUniqueViolation(err) {
				return model.ErrDuplicateApplication
			}
			return err
		}

		events = []model.Event{model.NewEvent(model.EventTypeApplicationReceived, &slot).WithApplication(app)}
		return tx.Create(&events).Error
	})
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *GormApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	var app model.Application
	if err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &app, nil
}

func (r *GormApplicationRepository) ListBySlot(ctx context.Context, slotID uuid.UUID) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", slotID).
		Order("created_at ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *GormApplicationRepository) Withdraw(ctx context.Context, id uuid.UUID) (*model.Application, []model.Event, error) {
	var (
		app    model.Application
		events []model.Event
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := locking(tx).First(&app, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if app.Status != model.ApplicationStatusPending {
			return model.ErrNotPending
		}

		// Условное обновление: параллельное подтверждение выигрывает.
		res := tx.Model(&model.Application{}).
			Where("id = ? AND status = ?", id, model.ApplicationStatusPending).
			Updates(map[string]any{
				"status":     model.ApplicationStatusCancelled,
				"active_key": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrNotPending
		}
		app.Status = model.ApplicationStatusCancelled
		app.ActiveKey = nil

		var slot model.Slot
		if err := tx.First(&slot, "id = ?", app.SlotID).Error; err != nil {
			return notFound(err)
		}

		events = []model.Event{model.NewEvent(model.EventTypeApplicationWithdrawn, &slot).WithApplication(&app)}
		return tx.Create(&events).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return &app, events, nil
}
