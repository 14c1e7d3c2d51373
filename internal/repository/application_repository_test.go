package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
)

func TestApplicationRepository_Create(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	repo := NewGormApplicationRepository(gdb)
	p := seedProgram(t, gdb, model.ProgramStatusPublished)
	slot := seedSlot(t, gdb, p.ID, day(2025, 1, 5))

	app := &model.Application{SlotID: slot.ID, ArtistID: uuid.New(), Option: "Duo"}
	events, err := repo.Create(ctx, app)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, app.ID)
	assert.Equal(t, model.ApplicationStatusPending, app.Status)
	require.Len(t, events, 1)
	assert.Equal(t, model.EventTypeApplicationReceived, events[0].EventType)
	assert.Equal(t, p.ID, *events[0].ProgramID)

	dup := &model.Application{SlotID: slot.ID, ArtistID: app.ArtistID}
	_, err = repo.Create(ctx, dup)
	assert.ErrorIs(t, err, model.ErrDuplicateApplication)

	// After withdrawing, the same artist may apply again.
	withdrawn, _, err := repo.Withdraw(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusCancelled, withdrawn.Status)

	again := &model.Application{SlotID: slot.ID, ArtistID: app.ArtistID}
	_, err = repo.Create(ctx, again)
	require.NoError(t, err)

	listed, err := repo.ListBySlot(ctx, slot.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, app.ID, listed[0].ID)
}

func TestApplicationRepository_Create_SlotNotOpen(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	repo := NewGormApplicationRepository(gdb)

	draft := seedProgram(t, gdb, model.ProgramStatusDraft)
	draftSlot := seedSlot(t, gdb, draft.ID, day(2025, 1, 5))
	_, err := repo.Create(ctx, &model.Application{SlotID: draftSlot.ID, ArtistID: uuid.New()})
	assert.ErrorIs(t, err, model.ErrSlotNotOpen)

	p := seedProgram(t, gdb, model.ProgramStatusPublished)
	slot := seedSlot(t, gdb, p.ID, day(2025, 1, 5))
	_, _, err = NewGormSlotRepository(gdb).Cancel(ctx, slot.ID)
	require.NoError(t, err)
	_, err = repo.Create(ctx, &model.Application{SlotID: slot.ID, ArtistID: uuid.New()})
	assert.ErrorIs(t, err, model.ErrSlotNotOpen)

	_, err = repo.Create(ctx, &model.Application{SlotID: uuid.New(), ArtistID: uuid.New()})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplicationRepository_Withdraw_NotPending(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	repo := NewGormApplicationRepository(gdb)
	p := seedProgram(t, gdb, model.ProgramStatusPublished)
	slot := seedSlot(t, gdb, p.ID, day(2025, 1, 5))
	app := seedApplication(t, gdb, slot.ID)

	_, err := NewGormBookingRepository(gdb).Confirm(ctx, slot.ID, app.ID, staticSnapshot)
	require.NoError(t, err)

	_, _, err = repo.Withdraw(ctx, app.ID)
	assert.ErrorIs(t, err, model.ErrNotPending)

	_, _, err = repo.Withdraw(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
