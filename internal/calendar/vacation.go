package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MonthDay is a day of the year without a year.
type MonthDay struct {
	Month time.Month
	Day   int
}

func (md MonthDay) in(year int) time.Time {
	return time.Date(year, md.Month, md.Day, 0, 0, 0, 0, time.UTC)
}

func (md MonthDay) before(other MonthDay) bool {
	if md.Month != other.Month {
		return md.Month < other.Month
	}
	return md.Day < other.Day
}

func (md MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(md.Month), md.Day)
}

// VacationWindow is a yearly recurring half-open window [From, To).
// When To is not after From the window wraps over New Year (e.g. 12-20 -> 01-05).
type VacationWindow struct {
	From MonthDay
	To   MonthDay
}

func (w VacationWindow) wrapsYear() bool {
	return !w.From.before(w.To)
}

// occurrence returns the window instance starting in the given year.
func (w VacationWindow) occurrence(year int) DateRange {
	end := w.To.in(year)
	if w.wrapsYear() {
		end = w.To.in(year + 1)
	}
	return DateRange{Start: w.From.in(year), End: end}
}

// Overlaps reports whether r intersects any yearly instance of the window.
// Instances starting the year before r.Start cover windows spanning New Year.
func (w VacationWindow) Overlaps(r DateRange) bool {
	if r.IsEmpty() {
		return false
	}
	for year := r.Start.Year() - 1; year <= r.End.Year(); year++ {
		if w.occurrence(year).Overlaps(r) {
			return true
		}
	}
	return false
}

func (w VacationWindow) String() string {
	return w.From.String() + ":" + w.To.String()
}

// ParseVacationWindows parses "MM-DD:MM-DD" windows separated by commas.
func ParseVacationWindows(s string) ([]VacationWindow, error) {
	var windows []VacationWindow
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bounds := strings.Split(part, ":")
		if len(bounds) != 2 {
			return nil, fmt.Errorf("vacation window %q: expected MM-DD:MM-DD", part)
		}
		from, err := parseMonthDay(bounds[0])
		if err != nil {
			return nil, fmt.Errorf("vacation window %q: %w", part, err)
		}
		to, err := parseMonthDay(bounds[1])
		if err != nil {
			return nil, fmt.Errorf("vacation window %q: %w", part, err)
		}
		if from == to {
			return nil, fmt.Errorf("vacation window %q: empty window", part)
		}
		windows = append(windows, VacationWindow{From: from, To: to})
	}
	return windows, nil
}

func parseMonthDay(s string) (MonthDay, error) {
	fields := strings.Split(strings.TrimSpace(s), "-")
	if len(fields) != 2 {
		return MonthDay{}, fmt.Errorf("invalid month-day %q", s)
	}
	m, err := strconv.Atoi(fields[0])
	if err != nil || m < 1 || m > 12 {
		return MonthDay{}, fmt.Errorf("invalid month in %q", s)
	}
	d, err := strconv.Atoi(fields[1])
	// 2024 is a leap year, so Feb 29 is accepted.
	if err != nil || d < 1 || d > time.Date(2024, time.Month(m)+1, 0, 0, 0, 0, 0, time.UTC).Day() {
		return MonthDay{}, fmt.Errorf("invalid day in %q", s)
	}
	return MonthDay{Month: time.Month(m), Day: d}, nil
}
