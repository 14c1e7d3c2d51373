package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/calendar"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/repository"
)

type SlotRepository struct{ s *Store }

func (r *SlotRepository) CreateBatch(
	_ context.Context,
	programID uuid.UUID,
	slots []model.Slot,
) ([]model.Slot, []model.Event, error) {
	if len(slots) == 0 {
		return nil, nil, nil
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.programs[programID]; !ok {
		return nil, nil, repository.ErrNotFound
	}

	created := make([]model.Slot, len(slots))
	copy(created, slots)

	for i := range created {
		sl := &created[i]
		if !sl.EndDate.After(sl.StartDate) {
			return nil, nil, model.ErrInvalidRange
		}
		candidate := sl.Range()
		others := append(model.Ranges(created[:i]), model.Ranges(r.overlapping(programID, candidate))...)
		if has, conflicts := calendar.HasOverlap(candidate, others); has {
			return nil, nil, &model.OverlapError{Candidate: candidate, Conflicts: conflicts}
		}
	}

	now := r.s.now()
	for i := range created {
		sl := &created[i]
		if sl.ID == uuid.Nil {
			sl.ID = uuid.New()
		}
		sl.ProgramID = programID
		if sl.Status == "" {
			sl.Status = model.SlotStatusOpen
		}
		sl.CreatedAt, sl.UpdatedAt = now, now
		r.s.slots[sl.ID] = *sl
	}

	e := model.NewEvent(model.EventTypeSlotsCreated, nil)
	e.ProgramID = &programID
	e.Details = fmt.Sprintf("%d slot(s) from %s to %s",
		len(created),
		created[0].StartDate.Format(calendar.ISODate),
		created[len(created)-1].EndDate.Format(calendar.ISODate),
	)
	return created, r.s.record(e), nil
}

func (r *SlotRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sl, ok := r.s.slots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &sl, nil
}

func (r *SlotRepository) ListByProgram(_ context.Context, programID uuid.UUID, limit, offset int) ([]model.Slot, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []model.Slot
	for _, sl := range r.s.slots {
		if sl.ProgramID == programID {
			all = append(all, sl)
		}
	}
	sortSlots(all)
	return page(all, limit, offset), int64(len(all)), nil
}

func (r *SlotRepository) ListOverlapping(_ context.Context, programID uuid.UUID, dr calendar.DateRange) ([]model.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.overlapping(programID, dr), nil
}

func (r *SlotRepository) Cancel(_ context.Context, id uuid.UUID) (*model.Slot, []model.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sl, ok := r.s.slots[id]
	if !ok {
		return nil, nil, repository.ErrNotFound
	}
	switch sl.Status {
	case model.SlotStatusCancelled:
		return nil, nil, model.ErrSlotNotOpen
	case model.SlotStatusClosed:
		return nil, nil, model.ErrSlotAlreadyBooked
	}
	if _, booked := r.s.activeBookings[id]; booked {
		return nil, nil, model.ErrSlotAlreadyBooked
	}

	now := r.s.now()
	sl.Status = model.SlotStatusCancelled
	sl.UpdatedAt = now
	r.s.slots[id] = sl

	events := []model.Event{model.NewEvent(model.EventTypeSlotCancelled, &sl)}
	for _, a := range r.s.pendingOf(id, uuid.Nil) {
		a.Status = model.ApplicationStatusRejected
		a.UpdatedAt = now
		r.s.applications[a.ID] = a
		events = append(events, model.NewEvent(model.EventTypeApplicationRejected, &sl).WithApplication(&a))
	}

	return &sl, r.s.record(events...), nil
}

func (r *SlotRepository) UpdateOverride(_ context.Context, id uuid.UUID, override datatypes.JSON) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sl, ok := r.s.slots[id]
	if !ok {
		return repository.ErrNotFound
	}
	sl.ConditionsOverride = append(datatypes.JSON(nil), override...)
	sl.UpdatedAt = r.s.now()
	r.s.slots[id] = sl
	return nil
}

func (r *SlotRepository) overlapping(programID uuid.UUID, dr calendar.DateRange) []model.Slot {
	var out []model.Slot
	for _, sl := range r.s.slots {
		if sl.ProgramID == programID && sl.Status != model.SlotStatusCancelled && sl.Range().Overlaps(dr) {
			out = append(out, sl)
		}
	}
	sortSlots(out)
	return out
}

func sortSlots(slots []model.Slot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartDate.Before(slots[j].StartDate)
	})
}
