package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
)

type EventRepository struct{ s *Store }

func (r *EventRepository) ListByProgram(_ context.Context, programID uuid.UUID, limit, offset int) ([]model.Event, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []model.Event
	for _, e := range r.s.events {
		if e.ProgramID != nil && *e.ProgramID == programID {
			out = append(out, e)
		}
	}
	return page(out, limit, offset), int64(len(out)), nil
}

func (r *EventRepository) ListBySlot(_ context.Context, slotID uuid.UUID) ([]model.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []model.Event
	for _, e := range r.s.events {
		if e.SlotID != nil && *e.SlotID == slotID {
			out = append(out, e)
		}
	}
	return out, nil
}
