// Package memory is an in-process implementation of the repository
// interfaces. One mutex guards the whole store, which plays the role of the
// unique constraints and row locks of the SQL implementation.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/repository"
)

type Store struct {
	mu sync.Mutex

	programs     map[uuid.UUID]model.Program
	slots        map[uuid.UUID]model.Slot
	applications map[uuid.UUID]model.Application
	bookings     map[uuid.UUID]model.Booking
	events       []model.Event

	// unique indexes
	activeApps     map[string]uuid.UUID
	activeBookings map[uuid.UUID]uuid.UUID

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		programs:       make(map[uuid.UUID]model.Program),
		slots:          make(map[uuid.UUID]model.Slot),
		applications:   make(map[uuid.UUID]model.Application),
		bookings:       make(map[uuid.UUID]model.Booking),
		activeApps:     make(map[string]uuid.UUID),
		activeBookings: make(map[uuid.UUID]uuid.UUID),
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Programs() *ProgramRepository { return &ProgramRepository{s} }

func (s *Store) Slots() *SlotRepository { return &SlotRepository{s} }

func (s *Store) Applications() *ApplicationRepository { return &ApplicationRepository{s} }

func (s *Store) Bookings() *BookingRepository { return &BookingRepository{s} }

func (s *Store) Events() *EventRepository { return &EventRepository{s} }

var (
	_ repository.ProgramRepository     = (*ProgramRepository)(nil)
	_ repository.SlotRepository        = (*SlotRepository)(nil)
	_ repository.ApplicationRepository = (*ApplicationRepository)(nil)
	_ repository.BookingRepository     = (*BookingRepository)(nil)
	_ repository.EventRepository       = (*EventRepository)(nil)
)

// tick returns strictly increasing timestamps so that creation order is
// preserved even when the clock does not move between calls.
func (s *Store) tick() time.Time {
	t := s.now()
	if n := len(s.events); n > 0 && !t.After(s.events[n-1].CreatedAt) {
		t = s.events[n-1].CreatedAt.Add(time.Microsecond)
	}
	return t
}

func (s *Store) record(events ...model.Event) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		e.CreatedAt = s.tick()
		s.events = append(s.events, e)
		out = append(out, e)
	}
	return out
}

func (s *Store) pendingOf(slotID, keep uuid.UUID) []model.Application {
	var out []model.Application
	for _, a := range s.applications {
		if a.SlotID == slotID && a.ID != keep && a.Status == model.ApplicationStatusPending {
			out = append(out, a)
		}
	}
	sortApplications(out)
	return out
}

func (s *Store) ofSlot(slotID uuid.UUID, status model.ApplicationStatus) []model.Application {
	var out []model.Application
	for _, a := range s.applications {
		if a.SlotID == slotID && a.Status == status {
			out = append(out, a)
		}
	}
	sortApplications(out)
	return out
}

func sortApplications(apps []model.Application) {
	sort.Slice(apps, func(i, j int) bool {
		if apps[i].CreatedAt.Equal(apps[j].CreatedAt) {
			return apps[i].ID.String() < apps[j].ID.String()
		}
		return apps[i].CreatedAt.Before(apps[j].CreatedAt)
	})
}

func page[T any](items []T, limit, offset int) []T {
	if offset > len(items) {
		offset = len(items)
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
