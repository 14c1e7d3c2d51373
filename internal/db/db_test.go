package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/config"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "app.db?_foreign_keys=on&_busy_timeout=5000", SQLiteDSN("app.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on&_busy_timeout=5000", SQLiteDSN("file:x?mode=memory"))
}

func TestNewGormDB_SQLiteFile(t *testing.T) {
	cfg := &config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: t.TempDir() + "/swingbooking.db",
	}

	gormDB, err := NewGormDB(cfg)
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(gormDB))

	assert.True(t, gormDB.Migrator().HasTable(&model.Booking{}))
	assert.True(t, gormDB.Migrator().HasIndex(&model.Booking{}, "ActiveSlotID"))

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	require.NoError(t, sqlDB.Close())
}

func TestNewTestDB_Migrated(t *testing.T) {
	gormDB, err := NewTestDB(t.Name())
	require.NoError(t, err)

	for _, m := range []any{&model.Program{}, &model.Slot{}, &model.Application{}, &model.Booking{}, &model.Event{}} {
		assert.True(t, gormDB.Migrator().HasTable(m))
	}
}
