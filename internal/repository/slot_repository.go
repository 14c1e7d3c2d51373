package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/calendar"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
)

type SlotRepository interface {
	// Вставить пачку слотов программы: либо все, либо ни одного.
	// Пересечение с существующими неотменёнными слотами -> *model.OverlapError.
	CreateBatch(ctx context.Context, programID uuid.UUID, slots []model.Slot) ([]model.Slot, []model.Event, error)
	// Найти слот по ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Slot, error)
	// Слоты программы по дате начала с пагинацией.
	ListByProgram(ctx context.Context, programID uuid.UUID, limit, offset int) ([]model.Slot, int64, error)
	// Неотменённые слоты программы, пересекающие интервал.
	ListOverlapping(ctx context.Context, programID uuid.UUID, r calendar.DateRange) ([]model.Slot, error)
	// Отменить слот без брони. Ожидающие заявки отклоняются.
	Cancel(ctx context.Context, id uuid.UUID) (*model.Slot, []model.Event, error)
	// Заменить переопределение условий слота.
	UpdateOverride(ctx context.Context, id uuid.UUID, override datatypes.JSON) error
}

type GormSlotRepository struct {
	db *gorm.DB
}

func NewGormSlotRepository(db *gorm.DB) *GormSlotRepository {
	return &GormSlotRepository{db: db}
}

func (r *GormSlotRepository) CreateBatch(
	ctx context.Context,
	programID uuid.UUID,
	slots []model.Slot,
) ([]model.Slot, []model.Event, error) {
	if len(slots) == 0 {
		return nil, nil, nil
	}

	created := make([]model.Slot, len(slots))
	copy(created, slots)

	var events []model.Event
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Блокируем программу, чтобы параллельные генерации шли по очереди.
		var program model.Program
		if err := locking(tx).First(&program, "id = ?", programID).Error; err != nil {
			return notFound(err)
		}

		for i := range created {
			s := &created[i]
			s.ProgramID = programID
			if s.Status == "" {
				s.Status = model.SlotStatusOpen
			}
			if !s.EndDate.After(s.StartDate) {
				return model.ErrInvalidRange
			}

			candidate := s.Range()
			existing, err := listOverlapping(tx, programID, candidate)
			if err != nil {
				return err
			}
			// Earlier candidates of the batch count as existing slots.
			others := append(model.Ranges(created[:i]), model.Ranges(existing)...)
			if has, conflicts := calendar.HasOverlap(candidate, others); has {
				return &model.OverlapError{Candidate: candidate, Conflicts: conflicts}
			}
		}

		if err := tx.CreateInBatches(&created, 100).Error; err != nil {
			return err
		}

		e := model.NewEvent(model.EventTypeSlotsCreated, nil)
		e.ProgramID = &programID
		e.Details = fmt.Sprintf("%d slot(s) from %s to %s",
			len(created),
			created[0].StartDate.Format(calendar.ISODate),
			created[len(created)-1].EndDate.Format(calendar.ISODate),
		)
		events = []model.Event{e}
		return tx.Create(&events).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return created, events, nil
}

func (r *GormSlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Slot, error) {
	var slot model.Slot
	if err := r.db.WithContext(ctx).First(&slot, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &slot, nil
}

func (r *GormSlotRepository) ListByProgram(
	ctx context.Context,
	programID uuid.UUID,
	limit, offset int,
) ([]model.Slot, int64, error) {
	var slots []model.Slot
	q := r.db.WithContext(ctx).
		Model(&model.Slot{}).
		Where("program_id = ?", programID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	if err := q.Order("start_date ASC").Find(&slots).Error; err != nil {
		return nil, 0, err
	}

	return slots, total, nil
}

func (r *GormSlotRepository) ListOverlapping(
	ctx context.Context,
	programID uuid.UUID,
	dr calendar.DateRange,
) ([]model.Slot, error) {
	return listOverlapping(r.db.WithContext(ctx), programID, dr)
}

func (r *GormSlotRepository) Cancel(ctx context.Context, id uuid.UUID) (*model.Slot, []model.Event, error) {
	var (
		slot   model.Slot
		events []model.Event
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockSlot(tx, &slot, id); err != nil {
			return err
		}

		switch slot.Status {
		case model.SlotStatusCancelled:
			return model.ErrSlotNotOpen
		case model.SlotStatusClosed:
			return model.ErrSlotAlreadyBooked
		}

		var active int64
		if err := tx.Model(&model.Booking{}).
			Where("slot_id = ? AND status = ?", id, model.BookingStatusConfirmed).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return model.ErrSlotAlreadyBooked
		}

		res := tx.Model(&model.Slot{}).
			Where("id = ? AND status = ?", id, model.SlotStatusOpen).
			Update("status", model.SlotStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrSlotAlreadyBooked
		}
		slot.Status = model.SlotStatusCancelled

		rejected, err := rejectPending(tx, id, uuid.Nil)
		if err != nil {
			return err
		}

		events = append(events, model.NewEvent(model.EventTypeSlotCancelled, &slot))
		for i := range rejected {
			events = append(events, model.NewEvent(model.EventTypeApplicationRejected, &slot).WithApplication(&rejected[i]))
		}
		return tx.Create(&events).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return &slot, events, nil
}

func (r *GormSlotRepository) UpdateOverride(ctx context.Context, id uuid.UUID, override datatypes.JSON) error {
	res := r.db.WithContext(ctx).
		Model(&model.Slot{}).
		Where("id = ?", id).
		Update("conditions_override", override)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// listOverlapping: start < end(other) && end > start(other), cancelled slots
// excluded.
func listOverlapping(db *gorm.DB, programID uuid.UUID, dr calendar.DateRange) ([]model.Slot, error) {
	var slots []model.Slot
	err := db.
		Where("program_id = ?", programID).
		Where("status <> ?", model.SlotStatusCancelled).
		Where("start_date < ? AND end_date > ?", dr.End, dr.Start).
		Order("start_date ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// rejectPending marks every pending application of the slot, except keep,
// as rejected and returns them.
func rejectPending(tx *gorm.DB, slotID, keep uuid.UUID) ([]model.Application, error) {
	var pending []model.Application
	q := tx.Where("slot_id = ? AND status = ?", slotID, model.ApplicationStatusPending)
	if keep != uuid.Nil {
		q = q.Where("id <> ?", keep)
	}
	if err := locking(q).Order("created_at ASC").Find(&pending).Error; err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, nil
	}

	idList := make([]uuid.UUID, 0, len(pending))
	for i := range pending {
		idList = append(idList, pending[i].ID)
		pending[i].Status = model.ApplicationStatusRejected
	}

	if err := tx.Model(&model.Application{}).
		Where("id IN ? AND status = ?", idList, model.ApplicationStatusPending).
		Update("status", model.ApplicationStatusRejected).Error; err != nil {
		return nil, err
	}
	return pending, nil
}
