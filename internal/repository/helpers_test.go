package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/calendar"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/db"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := db.NewTestDB(name)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func week(programID uuid.UUID, start time.Time) model.Slot {
	return model.NewWeekSlot(programID, calendar.WeekSeed{
		Start:            start,
		End:              start.AddDate(0, 0, 7),
		Tier:             calendar.TierStandard,
		PerformanceCount: 2,
		FeeCents:         60000,
	})
}

func seedProgram(t *testing.T, gdb *gorm.DB, status model.ProgramStatus) *model.Program {
	t.Helper()
	p := &model.Program{
		ClientID:   uuid.New(),
		Title:      "Jazz residency",
		Type:       model.ProgramTypeWeeklyResidency,
		Status:     status,
		Conditions: []byte(`{"fee_cents": 15000, "lodging_included": true}`),
	}
	require.NoError(t, NewGormProgramRepository(gdb).Create(context.Background(), p))
	return p
}

func seedSlot(t *testing.T, gdb *gorm.DB, programID uuid.UUID, start time.Time) *model.Slot {
	t.Helper()
	created, _, err := NewGormSlotRepository(gdb).CreateBatch(context.Background(), programID, []model.Slot{week(programID, start)})
	require.NoError(t, err)
	require.Len(t, created, 1)
	return &created[0]
}

func seedApplication(t *testing.T, gdb *gorm.DB, slotID uuid.UUID) *model.Application {
	t.Helper()
	app := &model.Application{SlotID: slotID, ArtistID: uuid.New(), Option: "Trio"}
	_, err := NewGormApplicationRepository(gdb).Create(context.Background(), app)
	require.NoError(t, err)
	return app
}

func staticSnapshot(*model.Program, *model.Slot, *model.Application) (datatypes.JSON, error) {
	return datatypes.JSON(`{"mode":"FIXED","fee_cents":15000,"currency":"EUR","is_net":true,"performance_count":0,"lodging_included":true,"meals_included":false,"defrayal_included":false}`), nil
}
