package calendar

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidRange = errors.New("invalid date range")
)

const (
	// ISODate is the wire format for plain calendar dates.
	ISODate = "2006-01-02"

	day = 24 * time.Hour
)

// DateRange is a half-open interval of calendar days [Start, End).
// Both bounds are kept at midnight UTC.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange normalizes both bounds to calendar days and rejects
// zero or inverted bounds. An empty range (Start == End) is valid.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, ErrInvalidRange
	}
	start, end = DateOnly(start), DateOnly(end)
	if end.Before(start) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{Start: start, End: end}, nil
}

// SingleDay returns the one-day range [d, d+1).
func SingleDay(d time.Time) DateRange {
	d = DateOnly(d)
	return DateRange{Start: d, End: d.AddDate(0, 0, 1)}
}

// Days returns the number of calendar days covered by the range.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start) / day)
}

func (r DateRange) IsEmpty() bool {
	return !r.End.After(r.Start)
}

// Overlaps reports whether two half-open ranges intersect. Ranges that only
// touch (one ends the day the other starts) do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	// startA < endB && startB < endA
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.Format(ISODate), r.End.Format(ISODate))
}

// HasOverlap checks newRange against existing ranges and returns the conflicts
// in the order they were given.
func HasOverlap(newRange DateRange, existing []DateRange) (bool, []DateRange) {
	var conflicts []DateRange

	for _, r := range existing {
		if newRange.Overlaps(r) {
			conflicts = append(conflicts, r)
		}
	}

	return len(conflicts) > 0, conflicts
}

// DateOnly drops the clock part and pins the date to UTC, keeping the
// calendar day as seen in t's own location.
func DateOnly(t time.Time) time.Time {
	year, month, d := t.Date()
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO date (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// StartOfWeek returns the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	t = DateOnly(t)
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// NextSunday returns the Sunday on or after t.
func NextSunday(t time.Time) time.Time {
	t = DateOnly(t)
	if t.Weekday() == time.Sunday {
		return t
	}
	return t.AddDate(0, 0, 7-int(t.Weekday()))
}

// AlignToWeeks widens a range so that both bounds fall on Sundays.
func AlignToWeeks(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, ErrInvalidRange
	}
	return NewDateRange(StartOfWeek(start), NextSunday(end))
}

// ===== Localized formatting =====

type Locale string

const (
	LocaleEN Locale = "en"
	LocaleFR Locale = "fr"
)

var weekdayNames = map[Locale]map[time.Weekday]string{
	LocaleEN: {
		time.Monday:    "Monday",
		time.Tuesday:   "Tuesday",
		time.Wednesday: "Wednesday",
		time.Thursday:  "Thursday",
		time.Friday:    "Friday",
		time.Saturday:  "Saturday",
		time.Sunday:    "Sunday",
	},
	LocaleFR: {
		time.Monday:    "lundi",
		time.Tuesday:   "mardi",
		time.Wednesday: "mercredi",
		time.Thursday:  "jeudi",
		time.Friday:    "vendredi",
		time.Saturday:  "samedi",
		time.Sunday:    "dimanche",
	},
}

var monthNames = map[Locale][12]string{
	LocaleEN: {"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	LocaleFR: {"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre"},
}

// ParseLocale falls back to English for anything it does not know.
func ParseLocale(s string) Locale {
	if Locale(s) == LocaleFR {
		return LocaleFR
	}
	return LocaleEN
}

// FormatDay renders a date as "Sunday 5 January 2025" / "dimanche 5 janvier 2025".
func FormatDay(t time.Time, loc Locale) string {
	if _, ok := weekdayNames[loc]; !ok {
		loc = LocaleEN
	}
	t = DateOnly(t)
	return fmt.Sprintf("%s %d %s %d",
		weekdayNames[loc][t.Weekday()],
		t.Day(),
		monthNames[loc][t.Month()-1],
		t.Year(),
	)
}

// FormatRange renders the inclusive days of r. A one-day range renders as a
// single day; the exclusive end is shown as the last covered day.
func FormatRange(r DateRange, loc Locale) string {
	if r.Days() <= 1 {
		return FormatDay(r.Start, loc)
	}
	last := r.End.AddDate(0, 0, -1)
	sep := " to "
	if loc == LocaleFR {
		sep = " au "
	}
	return FormatDay(r.Start, loc) + sep + FormatDay(last, loc)
}
