package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/repository"
)

type BookingRepository struct{ s *Store }

// Confirm is a compare-and-set on the per-slot active booking, done under
// the store lock.
func (r *BookingRepository) Confirm(
	_ context.Context,
	slotID, applicationID uuid.UUID,
	snapshot repository.SnapshotFunc,
) (*repository.ConfirmResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sl, ok := r.s.slots[slotID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	switch sl.Status {
	case model.SlotStatusClosed:
		return nil, model.ErrAlreadyBooked
	case model.SlotStatusCancelled:
		return nil, model.ErrSlotNotOpen
	}
	if _, taken := r.s.activeBookings[slotID]; taken {
		return nil, model.ErrAlreadyBooked
	}

	app, ok := r.s.applications[applicationID]
	if !ok || app.SlotID != slotID {
		return nil, repository.ErrNotFound
	}
	if app.Status != model.ApplicationStatusPending {
		return nil, model.ErrNotPending
	}

	p, ok := r.s.programs[sl.ProgramID]
	if !ok {
		return nil, repository.ErrNotFound
	}

	booking := model.Booking{
		ID:            uuid.New(),
		SlotID:        slotID,
		ProgramID:     sl.ProgramID,
		ApplicationID: app.ID,
		ArtistID:      app.ArtistID,
		Status:        model.BookingStatusConfirmed,
		Option:        app.Option,
	}
	if snapshot != nil {
		pc, sc, ac := clone(p), sl, app
		snap, err := snapshot(&pc, &sc, &ac)
		if err != nil {
			return nil, fmt.Errorf("conditions snapshot: %w", err)
		}
		booking.ConditionsSnapshot = snap
	}

	now := r.s.now()
	active := slotID
	booking.ActiveSlotID = &active
	booking.CreatedAt, booking.UpdatedAt = now, now
	r.s.bookings[booking.ID] = booking
	r.s.activeBookings[slotID] = booking.ID

	sl.Status = model.SlotStatusClosed
	sl.UpdatedAt = now
	r.s.slots[slotID] = sl

	app.Status = model.ApplicationStatusConfirmed
	app.UpdatedAt = now
	r.s.applications[app.ID] = app

	res := &repository.ConfirmResult{Booking: booking, Slot: sl}
	events := []model.Event{model.NewEvent(model.EventTypeBookingConfirmed, &sl).WithBooking(&booking)}
	for _, other := range r.s.pendingOf(slotID, app.ID) {
		other.Status = model.ApplicationStatusRejected
		other.UpdatedAt = now
		r.s.applications[other.ID] = other
		res.Rejected = append(res.Rejected, other)
		events = append(events, model.NewEvent(model.EventTypeApplicationRejected, &sl).WithApplication(&other))
	}
	res.Events = r.s.record(events...)

	return res, nil
}

func (r *BookingRepository) Cancel(_ context.Context, id uuid.UUID, reason string) (*repository.CancelResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if !b.IsActive() {
		return nil, model.ErrBookingNotActive
	}

	now := r.s.now()
	b.Status = model.BookingStatusCancelled
	b.ActiveSlotID = nil
	b.CancelledAt = &now
	b.Comment = reason
	b.UpdatedAt = now
	r.s.bookings[id] = b
	delete(r.s.activeBookings, b.SlotID)

	sl := r.s.slots[b.SlotID]
	if sl.Status == model.SlotStatusClosed {
		sl.Status = model.SlotStatusOpen
		sl.UpdatedAt = now
		r.s.slots[sl.ID] = sl
	}

	if a, ok := r.s.applications[b.ApplicationID]; ok {
		if a.ActiveKey != nil {
			delete(r.s.activeApps, *a.ActiveKey)
		}
		a.Status = model.ApplicationStatusCancelled
		a.ActiveKey = nil
		a.UpdatedAt = now
		r.s.applications[a.ID] = a
	}

	res := &repository.CancelResult{Booking: b, Slot: sl}
	for _, a := range r.s.ofSlot(sl.ID, model.ApplicationStatusRejected) {
		a.Status = model.ApplicationStatusPending
		a.UpdatedAt = now
		r.s.applications[a.ID] = a
		res.Reopened = append(res.Reopened, a)
	}

	e := model.NewEvent(model.EventTypeBookingCancelled, &sl).WithBooking(&b)
	e.Details = reason
	res.Events = r.s.record(e)
	return res, nil
}

func (r *BookingRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *BookingRepository) GetActiveBySlot(_ context.Context, slotID uuid.UUID) (*model.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, ok := r.s.activeBookings[slotID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	b := r.s.bookings[id]
	return &b, nil
}
