package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
)

func TestEventRepository_ListByProgram(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	p := seedProgram(t, gdb, model.ProgramStatusPublished)
	slot := seedSlot(t, gdb, p.ID, day(2025, 1, 5))
	seedApplication(t, gdb, slot.ID)
	seedApplication(t, gdb, slot.ID)

	repo := NewGormEventRepository(gdb)

	all, total, err := repo.ListByProgram(ctx, p.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)
	assert.Equal(t, model.EventTypeSlotsCreated, all[0].EventType)

	page, total, err := repo.ListByProgram(ctx, p.ID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, model.EventTypeApplicationReceived, page[0].EventType)
}
