package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/calendar"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/conditions"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "swingbooking dev")
}

func TestWeeksCmd_JSON(t *testing.T) {
	t.Setenv("VACATION_WINDOWS", "12-20:01-05")

	out, err := execute(t, "weeks", "2025-01-03", "2025-01-20", "--json")
	require.NoError(t, err)

	var seeds []calendar.WeekSeed
	require.NoError(t, json.Unmarshal([]byte(out), &seeds))
	require.Len(t, seeds, 4)
	assert.Equal(t, calendar.TierHighDemand, seeds[0].Tier)
	assert.Equal(t, calendar.TierStandard, seeds[3].Tier)
}

func TestWeeksCmd_Table(t *testing.T) {
	out, err := execute(t, "weeks", "2025-03-05", "2025-03-05")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-03-02")
	assert.Contains(t, out, "2025-03-09")
}

func TestWeeksCmd_InvalidDate(t *testing.T) {
	_, err := execute(t, "weeks", "2025-13-01", "2025-03-05")
	assert.Error(t, err)
}

func TestRoadmapCmd_RequiresOneTarget(t *testing.T) {
	_, err := execute(t, "roadmap")
	assert.ErrorContains(t, err, "exactly one of --slot or --booking")

	_, err = execute(t, "roadmap", "--slot", "x", "--booking", "y")
	assert.ErrorContains(t, err, "exactly one of --slot or --booking")
}

func TestApplyCmd_InvalidID(t *testing.T) {
	_, err := execute(t, "apply", "not-a-uuid", "also-not")
	assert.ErrorContains(t, err, "invalid slot")
}

func TestOverrideFromFlags_OnlySetFields(t *testing.T) {
	cmd := newOverrideCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--fee-cents", "20000", "--notes", "Bring a tux", "--meals=false"}))

	raw, err := overrideFromFlags(cmd, overrideFlags{fee: 20000, notes: "Bring a tux"})
	require.NoError(t, err)

	c := conditions.Parse(raw)
	require.NotNil(t, c.Remuneration.FeeCents)
	assert.Equal(t, int64(20000), *c.Remuneration.FeeCents)
	assert.Nil(t, c.Remuneration.PerformanceCount, "unset flags stay inherited")
	require.NotNil(t, c.Notes)
	assert.Equal(t, "Bring a tux", *c.Notes)
	require.NotNil(t, c.Meals.Included)
	assert.False(t, *c.Meals.Included, "an explicit false overrides the program")
	assert.Nil(t, c.Lodging.Included)
}

func TestOverrideFromFlags_Invalid(t *testing.T) {
	cmd := newOverrideCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--performances=-1"}))
	_, err := overrideFromFlags(cmd, overrideFlags{performances: -1})
	assert.ErrorContains(t, err, "--performances")

	_, err = execute(t, "override", uuid.NewString())
	assert.ErrorContains(t, err, "give a FILE")

	_, err = execute(t, "override", "not-a-uuid", "--notes", "x")
	assert.ErrorContains(t, err, "invalid slot")
}
