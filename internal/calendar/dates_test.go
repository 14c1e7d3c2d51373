package calendar

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func mustDate(t *testing.T, year int, month time.Month, d int) time.Time {
	t.Helper()
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func equalRange(a, b DateRange) bool {
	return a.Start.Equal(b.Start) && a.End.Equal(b.End)
}

//
// NewDateRange / SingleDay
//

func TestNewDateRange_DropsClock(t *testing.T) {
	start := time.Date(2025, 3, 2, 18, 30, 0, 0, time.UTC)
	end := time.Date(2025, 3, 4, 1, 0, 0, 0, time.UTC)

	r, err := NewDateRange(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := DateRange{Start: mustDate(t, 2025, 3, 2), End: mustDate(t, 2025, 3, 4)}
	if !equalRange(r, want) {
		t.Fatalf("expected %v, got %v", want, r)
	}
	if r.Days() != 2 {
		t.Fatalf("expected 2 days, got %d", r.Days())
	}
}

func TestNewDateRange_Inverted(t *testing.T) {
	_, err := NewDateRange(mustDate(t, 2025, 3, 4), mustDate(t, 2025, 3, 2))
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestNewDateRange_Zero(t *testing.T) {
	_, err := NewDateRange(time.Time{}, mustDate(t, 2025, 3, 2))
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestSingleDay(t *testing.T) {
	r := SingleDay(time.Date(2025, 6, 21, 20, 0, 0, 0, time.UTC))
	if r.Days() != 1 || !r.Start.Equal(mustDate(t, 2025, 6, 21)) {
		t.Fatalf("unexpected single day range %v", r)
	}
}

//
// HasOverlap
//

func TestHasOverlap_TouchingIsNotOverlap(t *testing.T) {
	newRange := DateRange{Start: mustDate(t, 2025, 1, 5), End: mustDate(t, 2025, 1, 12)}
	existing := []DateRange{
		{Start: mustDate(t, 2024, 12, 29), End: mustDate(t, 2025, 1, 5)},
		{Start: mustDate(t, 2025, 1, 12), End: mustDate(t, 2025, 1, 19)},
	}

	has, conflicts := HasOverlap(newRange, existing)
	if has {
		t.Fatalf("expected no overlap, got conflicts: %+v", conflicts)
	}
}

func TestHasOverlap_Containment(t *testing.T) {
	week := DateRange{Start: mustDate(t, 2025, 1, 5), End: mustDate(t, 2025, 1, 12)}
	existing := []DateRange{
		SingleDay(mustDate(t, 2025, 1, 5)),
		SingleDay(mustDate(t, 2025, 1, 11)),
		SingleDay(mustDate(t, 2025, 1, 12)),
	}

	has, conflicts := HasOverlap(week, existing)
	if !has || len(conflicts) != 2 {
		t.Fatalf("expected the first and last day of the week, got %+v", conflicts)
	}
	if !equalRange(conflicts[0], existing[0]) || !equalRange(conflicts[1], existing[1]) {
		t.Fatalf("unexpected conflicts %+v", conflicts)
	}
}

func TestHasOverlap_OverlapFound(t *testing.T) {
	newRange := SingleDay(mustDate(t, 2025, 1, 8))
	existing := []DateRange{
		{Start: mustDate(t, 2024, 12, 29), End: mustDate(t, 2025, 1, 5)},
		{Start: mustDate(t, 2025, 1, 5), End: mustDate(t, 2025, 1, 12)},
	}

	has, conflicts := HasOverlap(newRange, existing)
	if !has {
		t.Fatalf("expected overlap, got none")
	}
	if len(conflicts) != 1 || !equalRange(conflicts[0], existing[1]) {
		t.Fatalf("expected conflict %v, got %+v", existing[1], conflicts)
	}
}

//
// Week alignment
//

func TestStartOfWeek(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{mustDate(t, 2025, 1, 3), mustDate(t, 2024, 12, 29)}, // Friday
		{mustDate(t, 2025, 1, 5), mustDate(t, 2025, 1, 5)},   // Sunday
		{mustDate(t, 2025, 1, 11), mustDate(t, 2025, 1, 5)},  // Saturday
		{mustDate(t, 2024, 3, 1), mustDate(t, 2024, 2, 25)},  // leap February
	}
	for _, c := range cases {
		if got := StartOfWeek(c.in); !got.Equal(c.want) {
			t.Fatalf("StartOfWeek(%s) = %s, want %s", c.in.Format(ISODate), got.Format(ISODate), c.want.Format(ISODate))
		}
	}
}

func TestNextSunday(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{mustDate(t, 2025, 1, 20), mustDate(t, 2025, 1, 26)}, // Monday
		{mustDate(t, 2025, 1, 26), mustDate(t, 2025, 1, 26)}, // Sunday
		{mustDate(t, 2024, 12, 31), mustDate(t, 2025, 1, 5)},
	}
	for _, c := range cases {
		if got := NextSunday(c.in); !got.Equal(c.want) {
			t.Fatalf("NextSunday(%s) = %s, want %s", c.in.Format(ISODate), got.Format(ISODate), c.want.Format(ISODate))
		}
	}
}

func TestAlignToWeeks_Inverted(t *testing.T) {
	_, err := AlignToWeeks(mustDate(t, 2025, 2, 10), mustDate(t, 2025, 1, 1))
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestAlignToWeeks_SameWeekIsAccepted(t *testing.T) {
	// Wednesday -> Tuesday of the following week still aligns to a valid range.
	r, err := AlignToWeeks(mustDate(t, 2025, 1, 8), mustDate(t, 2025, 1, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Start.Equal(mustDate(t, 2025, 1, 5)) || !r.End.Equal(mustDate(t, 2025, 1, 12)) {
		t.Fatalf("unexpected aligned range %v", r)
	}
}

//
// Formatting
//

func TestFormatDay(t *testing.T) {
	d := mustDate(t, 2025, 1, 5)
	if got := FormatDay(d, LocaleEN); got != "Sunday 5 January 2025" {
		t.Fatalf("unexpected english format: %q", got)
	}
	if got := FormatDay(d, LocaleFR); got != "dimanche 5 janvier 2025" {
		t.Fatalf("unexpected french format: %q", got)
	}
	if got := FormatDay(d, Locale("de")); !strings.HasPrefix(got, "Sunday") {
		t.Fatalf("unknown locale should fall back to english, got %q", got)
	}
}

func TestFormatRange(t *testing.T) {
	week := DateRange{Start: mustDate(t, 2025, 1, 5), End: mustDate(t, 2025, 1, 12)}
	got := FormatRange(week, LocaleFR)
	if got != "dimanche 5 janvier 2025 au samedi 11 janvier 2025" {
		t.Fatalf("unexpected range format: %q", got)
	}

	single := SingleDay(mustDate(t, 2025, 1, 8))
	if got := FormatRange(single, LocaleEN); got != "Wednesday 8 January 2025" {
		t.Fatalf("unexpected single day format: %q", got)
	}
}
