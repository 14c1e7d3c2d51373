package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/calendar"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/repository"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func setup(t *testing.T) (*Store, *model.Program, *model.Slot) {
	t.Helper()
	s := NewStore()
	ctx := context.Background()

	p := &model.Program{
		ClientID: uuid.New(),
		Title:    "Summer dates",
		Type:     model.ProgramTypeMultiDates,
		Status:   model.ProgramStatusPublished,
	}
	require.NoError(t, s.Programs().Create(ctx, p))

	created, events, err := s.Slots().CreateBatch(ctx, p.ID, []model.Slot{model.NewDateSlot(p.ID, day(2025, 6, 21))})
	require.NoError(t, err)
	require.Len(t, events, 1)
	return s, p, &created[0]
}

func apply(t *testing.T, s *Store, slotID uuid.UUID) *model.Application {
	t.Helper()
	app := &model.Application{SlotID: slotID, ArtistID: uuid.New()}
	_, err := s.Applications().Create(context.Background(), app)
	require.NoError(t, err)
	return app
}

func snapshot(*model.Program, *model.Slot, *model.Application) (datatypes.JSON, error) {
	return datatypes.JSON(`{"mode":"FIXED"}`), nil
}

func TestStore_ConfirmConcurrent(t *testing.T) {
	s, _, slot := setup(t)
	ctx := context.Background()

	const n = 32
	apps := make([]*model.Application, n)
	for i := range apps {
		apps[i] = apply(t, s, slot.ID)
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		wins   int
		losses int
	)
	for _, a := range apps {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := s.Bookings().Confirm(ctx, slot.ID, id, snapshot)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
			} else if errors.Is(err, model.ErrAlreadyBooked) {
				losses++
			}
		}(a.ID)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, n-1, losses)

	got, err := s.Slots().GetByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusClosed, got.Status)

	listed, err := s.Applications().ListBySlot(ctx, slot.ID)
	require.NoError(t, err)
	confirmed := 0
	for _, a := range listed {
		if a.Status == model.ApplicationStatusConfirmed {
			confirmed++
		} else {
			assert.Equal(t, model.ApplicationStatusRejected, a.Status)
		}
	}
	assert.Equal(t, 1, confirmed)
}

func TestStore_DuplicateApplicationAndWithdraw(t *testing.T) {
	s, _, slot := setup(t)
	ctx := context.Background()

	a := apply(t, s, slot.ID)
	_, err := s.Applications().Create(ctx, &model.Application{SlotID: slot.ID, ArtistID: a.ArtistID})
	assert.ErrorIs(t, err, model.ErrDuplicateApplication)

	_, _, err = s.Applications().Withdraw(ctx, a.ID)
	require.NoError(t, err)

	_, err = s.Applications().Create(ctx, &model.Application{SlotID: slot.ID, ArtistID: a.ArtistID})
	assert.NoError(t, err)

	_, _, err = s.Applications().Withdraw(ctx, a.ID)
	assert.ErrorIs(t, err, model.ErrNotPending)
}

func TestStore_ApplyRequiresPublishedOpenSlot(t *testing.T) {
	s, p, slot := setup(t)
	ctx := context.Background()

	require.NoError(t, s.Programs().UpdateStatus(ctx, p.ID, model.ProgramStatusDraft))
	_, err := s.Applications().Create(ctx, &model.Application{SlotID: slot.ID, ArtistID: uuid.New()})
	assert.ErrorIs(t, err, model.ErrSlotNotOpen)

	_, err = s.Applications().Create(ctx, &model.Application{SlotID: uuid.New(), ArtistID: uuid.New()})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_CancelSlot(t *testing.T) {
	s, _, slot := setup(t)
	ctx := context.Background()
	a := apply(t, s, slot.ID)

	cancelled, events, err := s.Slots().Cancel(ctx, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusCancelled, cancelled.Status)
	require.Len(t, events, 2)
	assert.Equal(t, model.EventTypeSlotCancelled, events[0].EventType)
	assert.Equal(t, model.EventTypeApplicationRejected, events[1].EventType)

	got, err := s.Applications().GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusRejected, got.Status)

	_, _, err = s.Slots().Cancel(ctx, slot.ID)
	assert.ErrorIs(t, err, model.ErrSlotNotOpen)

	_, err = s.Bookings().Confirm(ctx, slot.ID, a.ID, snapshot)
	assert.ErrorIs(t, err, model.ErrSlotNotOpen)
}

func TestStore_CancelBookedSlot(t *testing.T) {
	s, _, slot := setup(t)
	ctx := context.Background()
	a := apply(t, s, slot.ID)

	_, err := s.Bookings().Confirm(ctx, slot.ID, a.ID, snapshot)
	require.NoError(t, err)

	_, _, err = s.Slots().Cancel(ctx, slot.ID)
	assert.ErrorIs(t, err, model.ErrSlotAlreadyBooked)
}

func TestStore_CancelBookingReopens(t *testing.T) {
	s, _, slot := setup(t)
	ctx := context.Background()
	winner := apply(t, s, slot.ID)
	other := apply(t, s, slot.ID)

	res, err := s.Bookings().Confirm(ctx, slot.ID, winner.ID, snapshot)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"FIXED"}`, string(res.Booking.ConditionsSnapshot))

	cancel, err := s.Bookings().Cancel(ctx, res.Booking.ID, "rain")
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusOpen, cancel.Slot.Status)
	require.Len(t, cancel.Reopened, 1)
	assert.Equal(t, other.ID, cancel.Reopened[0].ID)

	_, err = s.Bookings().GetActiveBySlot(ctx, slot.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = s.Bookings().Cancel(ctx, res.Booking.ID, "rain")
	assert.ErrorIs(t, err, model.ErrBookingNotActive)

	// The winner lost its active key and may apply again.
	_, err = s.Applications().Create(ctx, &model.Application{SlotID: slot.ID, ArtistID: winner.ArtistID})
	assert.NoError(t, err)
}

func TestStore_CreateBatchOverlap(t *testing.T) {
	s, p, _ := setup(t)
	ctx := context.Background()

	_, _, err := s.Slots().CreateBatch(ctx, p.ID, []model.Slot{
		model.NewDateSlot(p.ID, day(2025, 6, 22)),
		model.NewDateSlot(p.ID, day(2025, 6, 21)),
	})
	var overlap *model.OverlapError
	require.ErrorAs(t, err, &overlap)
	assert.True(t, overlap.Candidate.Start.Equal(day(2025, 6, 21)))

	slots, total, err := s.Slots().ListByProgram(ctx, p.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, slots, 1)

	overlapping, err := s.Slots().ListOverlapping(ctx, p.ID, calendar.DateRange{Start: day(2025, 6, 1), End: day(2025, 7, 1)})
	require.NoError(t, err)
	assert.Len(t, overlapping, 1)
}

func TestStore_EventsInOrder(t *testing.T) {
	s, p, slot := setup(t)
	ctx := context.Background()
	apply(t, s, slot.ID)
	apply(t, s, slot.ID)

	events, total, err := s.Events().ListByProgram(ctx, p.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	for i := 1; i < len(events); i++ {
		assert.True(t, events[i].CreatedAt.After(events[i-1].CreatedAt))
	}

	bySlot, err := s.Events().ListBySlot(ctx, slot.ID)
	require.NoError(t, err)
	assert.Len(t, bySlot, 2)
}

func TestStore_ProgramIsolation(t *testing.T) {
	s, p, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, s.Programs().UpdateConditions(ctx, p.ID, datatypes.JSON(`{"notes":"a"}`)))
	got, err := s.Programs().GetByID(ctx, p.ID)
	require.NoError(t, err)
	got.Conditions[2] = 'X'

	again, err := s.Programs().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"notes":"a"}`, string(again.Conditions))
}
