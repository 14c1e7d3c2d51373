package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
)

func TestProgramRepository_CRUD(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	repo := NewGormProgramRepository(gdb)

	p := seedProgram(t, gdb, model.ProgramStatusDraft)
	assert.NotEqual(t, uuid.Nil, p.ID)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jazz residency", got.Title)
	assert.True(t, got.IsWeekly())

	require.NoError(t, repo.UpdateStatus(ctx, p.ID, model.ProgramStatusPublished))
	require.NoError(t, repo.UpdateConditions(ctx, p.ID, datatypes.JSON(`{"notes":"updated"}`)))

	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ProgramStatusPublished, got.Status)
	assert.JSONEq(t, `{"notes":"updated"}`, string(got.Conditions))

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), model.ProgramStatusCancelled), ErrNotFound)
}

func TestCachedProgramRepository_NilClientPassesThrough(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	p := seedProgram(t, gdb, model.ProgramStatusDraft)

	cached := NewCachedProgramRepository(NewGormProgramRepository(gdb), nil, 0, "")

	got, err := cached.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	require.NoError(t, cached.UpdateStatus(ctx, p.ID, model.ProgramStatusPublished))
	got, err = cached.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ProgramStatusPublished, got.Status)
}

func TestCachedProgramRepository_UnreachableRedisFallsBack(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	p := seedProgram(t, gdb, model.ProgramStatusDraft)

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	t.Cleanup(func() { _ = client.Close() })

	cached := NewCachedProgramRepository(NewGormProgramRepository(gdb), client, time.Minute, "test:program")

	got, err := cached.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Title, got.Title)

	require.NoError(t, cached.UpdateConditions(ctx, p.ID, datatypes.JSON(`{"fee_cents": 1}`)))

	_, err = cached.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
