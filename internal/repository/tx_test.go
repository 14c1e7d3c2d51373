package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
)

// dryPostgres builds statements for the postgres dialect without a server.
func dryPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(
		postgres.New(postgres.Config{DSN: "host=localhost user=booking dbname=swingbooking sslmode=disable"}),
		&gorm.Config{DryRun: true, DisableAutomaticPing: true},
	)
	require.NoError(t, err)
	return gdb
}

func TestLockSlot_SelectsForUpdateOnPostgres(t *testing.T) {
	gdb := dryPostgres(t)

	var queries []string
	require.NoError(t, gdb.Callback().Query().After("gorm:query").Register("test:capture", func(d *gorm.DB) {
		queries = append(queries, d.Statement.SQL.String())
	}))

	var slot model.Slot
	require.NoError(t, lockSlot(gdb, &slot, uuid.New()))

	require.Len(t, queries, 1)
	assert.Contains(t, queries[0], `FROM "slots"`)
	assert.Contains(t, queries[0], "FOR UPDATE")
}

func TestLocking_NoClauseOnSQLite(t *testing.T) {
	gdb := newTestDB(t)

	sql := gdb.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var slot model.Slot
		return locking(tx).First(&slot, "id = ?", uuid.New())
	})
	assert.NotContains(t, sql, "FOR UPDATE")
}

func TestRejectPending_KeepsConcurrentWithdraw(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	p := seedProgram(t, gdb, model.ProgramStatusPublished)
	slot := seedSlot(t, gdb, p.ID, day(2025, 1, 5))
	first := seedApplication(t, gdb, slot.ID)
	second := seedApplication(t, gdb, slot.ID)

	// The artist withdraws between the read and the update of rejectPending.
	withdrawn := false
	require.NoError(t, gdb.Callback().Update().Before("gorm:update").Register("test:withdraw", func(d *gorm.DB) {
		if withdrawn || d.Statement.Table != "applications" {
			return
		}
		withdrawn = true
		d.Session(&gorm.Session{NewDB: true}).Exec(
			"UPDATE applications SET status = ?, active_key = NULL WHERE id = ?",
			model.ApplicationStatusCancelled, second.ID,
		)
	}))

	err := gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := rejectPending(tx, slot.ID, uuid.Nil)
		return err
	})
	require.NoError(t, err)
	require.True(t, withdrawn)

	repo := NewGormApplicationRepository(gdb)
	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusRejected, got.Status)

	got, err = repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusCancelled, got.Status)
	assert.Nil(t, got.ActiveKey)
}
