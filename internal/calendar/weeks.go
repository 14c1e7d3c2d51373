package calendar

import "time"

// Tier classifies a residency week.
type Tier string

const (
	TierStandard   Tier = "STANDARD"
	TierHighDemand Tier = "HIGH_DEMAND"
)

// TierDefaults are the fee/performance defaults seeded into a generated week.
type TierDefaults struct {
	FeeCents         int64
	PerformanceCount int
}

// WeekSeed is a generated week before it is persisted as a slot.
type WeekSeed struct {
	Start            time.Time
	End              time.Time
	Tier             Tier
	PerformanceCount int
	FeeCents         int64
}

func (s WeekSeed) Range() DateRange {
	return DateRange{Start: s.Start, End: s.End}
}

// WeekPlanner generates Sunday-aligned weeks and classifies them against the
// configured vacation windows.
type WeekPlanner struct {
	Standard   TierDefaults
	HighDemand TierDefaults
	Vacations  []VacationWindow
}

// DefaultVacationWindows approximates the French school holiday calendar.
func DefaultVacationWindows() []VacationWindow {
	return []VacationWindow{
		{From: MonthDay{time.December, 20}, To: MonthDay{time.January, 5}},
		{From: MonthDay{time.February, 8}, To: MonthDay{time.March, 10}},
		{From: MonthDay{time.April, 5}, To: MonthDay{time.May, 5}},
		{From: MonthDay{time.July, 5}, To: MonthDay{time.September, 1}},
		{From: MonthDay{time.October, 18}, To: MonthDay{time.November, 3}},
	}
}

func NewWeekPlanner(standard, highDemand TierDefaults, vacations []VacationWindow) WeekPlanner {
	return WeekPlanner{Standard: standard, HighDemand: highDemand, Vacations: vacations}
}

// Classify returns the tier of a week: any overlap with a vacation window
// makes it high-demand.
func (p WeekPlanner) Classify(r DateRange) Tier {
	for _, w := range p.Vacations {
		if w.Overlaps(r) {
			return TierHighDemand
		}
	}
	return TierStandard
}

// Defaults returns the seed values for a tier.
func (p WeekPlanner) Defaults(t Tier) TierDefaults {
	if t == TierHighDemand {
		return p.HighDemand
	}
	return p.Standard
}

// Generate aligns [start, end] to Sundays and walks the aligned range in
// 7-day steps. The result is contiguous and non-overlapping.
func (p WeekPlanner) Generate(start, end time.Time) ([]WeekSeed, error) {
	aligned, err := AlignToWeeks(start, end)
	if err != nil {
		return nil, err
	}

	seeds := make([]WeekSeed, 0, aligned.Days()/7)
	for cur := aligned.Start; cur.Before(aligned.End); cur = cur.AddDate(0, 0, 7) {
		r := DateRange{Start: cur, End: cur.AddDate(0, 0, 7)}
		tier := p.Classify(r)
		def := p.Defaults(tier)
		seeds = append(seeds, WeekSeed{
			Start:            r.Start,
			End:              r.End,
			Tier:             tier,
			PerformanceCount: def.PerformanceCount,
			FeeCents:         def.FeeCents,
		})
	}

	return seeds, nil
}
