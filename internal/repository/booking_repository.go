package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
)

// SnapshotFunc computes the conditions snapshot stored on a new booking. It
// runs inside the confirming transaction on the rows it has read.
type SnapshotFunc func(program *model.Program, slot *model.Slot, app *model.Application) (datatypes.JSON, error)

type ConfirmResult struct {
	Booking  model.Booking
	Slot     model.Slot
	Rejected []model.Application
	Events   []model.Event
}

type CancelResult struct {
	Booking  model.Booking
	Slot     model.Slot
	Reopened []model.Application
	Events   []model.Event
}

type BookingRepository interface {
	// Атомарно подтвердить заявку: бронь, закрытие слота и отклонение
	// конкурирующих заявок в одной транзакции. Проигравший получает
	// model.ErrAlreadyBooked.
	Confirm(ctx context.Context, slotID, applicationID uuid.UUID, snapshot SnapshotFunc) (*ConfirmResult, error)
	// Административная отмена брони: слот снова открыт.
	Cancel(ctx context.Context, id uuid.UUID, reason string) (*CancelResult, error)
	// Получить бронь по ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	// Активная бронь слота.
	GetActiveBySlot(ctx context.Context, slotID uuid.UUID) (*model.Booking, error)
}

// Реализация на GORM.
type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) Confirm(
	ctx context.Context,
	slotID, applicationID uuid.UUID,
	snapshot SnapshotFunc,
) (*ConfirmResult, error) {
	var res ConfirmResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slot := &res.Slot
		if err := lockSlot(tx, slot, slotID); err != nil {
			return err
		}
		switch slot.Status {
		case model.SlotStatusClosed:
			return model.ErrAlreadyBooked
		case model.SlotStatusCancelled:
			return model.ErrSlotNotOpen
		}

		var app model.Application
		if err := tx.First(&app, "id = ? AND slot_id = ?", applicationID, slotID).Error; err != nil {
			return notFound(err)
		}
		if app.Status != model.ApplicationStatusPending {
			return model.ErrNotPending
		}

		var program model.Program
		if err := tx.First(&program, "id = ?", slot.ProgramID).Error; err != nil {
			return notFound(err)
		}

		var snap datatypes.JSON
		if snapshot != nil {
			var err error
			if snap, err = snapshot(&program, slot, &app); err != nil {
				return fmt.Errorf("conditions snapshot: %w", err)
			}
		}

		// Уникальный индекс по active_slot_id гарантирует,
		// что вторая активная бронь на слот не вставится.
		booking := &res.Booking
		*booking = model.Booking{
			SlotID:             slotID,
			ProgramID:          slot.ProgramID,
			ApplicationID:      app.ID,
			ArtistID:           app.ArtistID,
			Status:             model.BookingStatusConfirmed,
			Option:             app.Option,
			ConditionsSnapshot: snap,
		}
		if err := tx.Create(booking).Error; err != nil {
			if isUniqueViolation(err) {
				return model.ErrAlreadyBooked
			}
			return err
		}

		upd := tx.Model(&model.Slot{}).
			Where("id = ? AND status = ?", slotID, model.SlotStatusOpen).
			Update("status", model.SlotStatusClosed)
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return model.ErrAlreadyBooked
		}
		slot.Status = model.SlotStatusClosed

		upd = tx.Model(&model.Application{}).
			Where("id = ? AND status = ?", app.ID, model.ApplicationStatusPending).
			Update("status", model.ApplicationStatusConfirmed)
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return model.ErrNotPending
		}

		rejected, err := rejectPending(tx, slotID, app.ID)
		if err != nil {
			return err
		}
		res.Rejected = rejected

		res.Events = append(res.Events, model.NewEvent(model.EventTypeBookingConfirmed, slot).WithBooking(booking))
		for i := range rejected {
			res.Events = append(res.Events, model.NewEvent(model.EventTypeApplicationRejected, slot).WithApplication(&rejected[i]))
		}
		return tx.Create(&res.Events).Error
	})
	if err != nil {
		return nil, err
	}

	return &res, nil
}

func (r *GormBookingRepository) Cancel(ctx context.Context, id uuid.UUID, reason string) (*CancelResult, error) {
	var res CancelResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking := &res.Booking
		if err := locking(tx).First(booking, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if !booking.IsActive() {
			return model.ErrBookingNotActive
		}

		now := time.Now().UTC()
		upd := tx.Model(&model.Booking{}).
			Where("id = ? AND status = ?", id, model.BookingStatusConfirmed).
			Updates(map[string]any{
				"status":         model.BookingStatusCancelled,
				"active_slot_id": nil,
				"cancelled_at":   now,
				"comment":        reason,
			})
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return model.ErrBookingNotActive
		}
		booking.Status = model.BookingStatusCancelled
		booking.ActiveSlotID = nil
		booking.CancelledAt = &now
		booking.Comment = reason

		slot := &res.Slot
		if err := lockSlot(tx, slot, booking.SlotID); err != nil {
			return err
		}
		if slot.Status == model.SlotStatusClosed {
			if err := tx.Model(&model.Slot{}).
				Where("id = ?", slot.ID).
				Update("status", model.SlotStatusOpen).Error; err != nil {
				return err
			}
			slot.Status = model.SlotStatusOpen
		}

		// Выигравшая заявка отменяется, отклонённые снова ждут решения.
		if err := tx.Model(&model.Application{}).
			Where("id = ?", booking.ApplicationID).
			Updates(map[string]any{
				"status":     model.ApplicationStatusCancelled,
				"active_key": nil,
			}).Error; err != nil {
			return err
		}

		if err := tx.Where("slot_id = ? AND status = ?", slot.ID, model.ApplicationStatusRejected).
			Order("created_at ASC").
			Find(&res.Reopened).Error; err != nil {
			return err
		}
		if len(res.Reopened) > 0 {
			if err := tx.Model(&model.Application{}).
				Where("slot_id = ? AND status = ?", slot.ID, model.ApplicationStatusRejected).
				Update("status", model.ApplicationStatusPending).Error; err != nil {
				return err
			}
			for i := range res.Reopened {
				res.Reopened[i].Status = model.ApplicationStatusPending
			}
		}

		e := model.NewEvent(model.EventTypeBookingCancelled, slot).WithBooking(booking)
		e.Details = reason
		res.Events = []model.Event{e}
		return tx.Create(&res.Events).Error
	})
	if err != nil {
		return nil, err
	}

	return &res, nil
}

func (r *GormBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *GormBookingRepository) GetActiveBySlot(ctx context.Context, slotID uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	err := r.db.WithContext(ctx).
		Where("slot_id = ? AND status = ?", slotID, model.BookingStatusConfirmed).
		First(&b).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}
