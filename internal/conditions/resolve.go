package conditions

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/calendar"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
)

const DefaultCurrency = "EUR"

// Effective is the resolved, flattened set of conditions of one slot.
// FeeCents is nil while the amount is still to be defined.
type Effective struct {
	Mode             Mode          `json:"mode"`
	Tier             calendar.Tier `json:"tier,omitempty"`
	FeeCents         *int64        `json:"fee_cents,omitempty"`
	Currency         string        `json:"currency"`
	IsNet            bool          `json:"is_net"`
	PerformanceCount int           `json:"performance_count"`
	Options          []FeeOption   `json:"options,omitempty"`

	LodgingIncluded bool   `json:"lodging_included"`
	LodgingDetails  string `json:"lodging_details,omitempty"`
	MealsIncluded   bool   `json:"meals_included"`
	MealsDetails    string `json:"meals_details,omitempty"`

	DefrayalIncluded bool   `json:"defrayal_included"`
	DefrayalCents    *int64 `json:"defrayal_cents,omitempty"`
	DefrayalDetails  string `json:"defrayal_details,omitempty"`

	Locations []Entry         `json:"locations,omitempty"`
	Contacts  []Entry         `json:"contacts,omitempty"`
	Access    []Entry         `json:"access,omitempty"`
	Logistics []Entry         `json:"logistics,omitempty"`
	Schedule  []ScheduleEntry `json:"schedule,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// Input is everything resolution depends on.
type Input struct {
	ProgramType model.ProgramType
	// Week tier and generator defaults; empty for single dates.
	Tier     calendar.Tier
	Seed     *calendar.TierDefaults
	Baseline Conditions
	Override Conditions
}

// InputFor parses the stored blobs of a program and (optionally) one of its
// slots.
func InputFor(program *model.Program, slot *model.Slot) Input {
	in := Input{
		ProgramType: program.Type,
		Baseline:    Parse(program.Conditions),
	}
	if slot != nil {
		in.Tier = slot.Tier
		in.Seed = slot.Seed()
		in.Override = Parse(slot.ConditionsOverride)
	}
	return in
}

// Resolver resolves conditions with a configurable default currency.
type Resolver struct {
	Currency string
}

func NewResolver(currency string) Resolver {
	return Resolver{Currency: strings.ToUpper(strings.TrimSpace(currency))}
}

// Resolve uses the package default currency.
func Resolve(in Input) Effective {
	return Resolver{}.Resolve(in)
}

// Resolve merges override over baseline field by field and fills the system
// defaults. It never fails.
func (r Resolver) Resolve(in Input) Effective {
	merged := Merge(in.Baseline, in.Override)
	rem := merged.Remuneration

	currency := r.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	eff := Effective{
		Currency:         valueOr(rem.Currency, currency),
		IsNet:            valueOr(rem.IsNet, true),
		PerformanceCount: valueOr(rem.PerformanceCount, 0),

		LodgingIncluded: valueOr(merged.Lodging.Included, false),
		LodgingDetails:  strings.TrimSpace(valueOr(merged.Lodging.Details, "")),
		MealsIncluded:   valueOr(merged.Meals.Included, false),
		MealsDetails:    strings.TrimSpace(valueOr(merged.Meals.Details, "")),

		DefrayalIncluded: valueOr(merged.Defrayal.Included, false),
		DefrayalCents:    copyInt64(merged.Defrayal.AmountCents),
		DefrayalDetails:  strings.TrimSpace(valueOr(merged.Defrayal.Details, "")),

		Locations: cloneEntries(merged.Locations),
		Contacts:  cloneEntries(merged.Contacts),
		Access:    cloneEntries(merged.Access),
		Logistics: cloneEntries(merged.Logistics),
		Schedule:  cloneSchedule(merged.Schedule),

		Notes: strings.TrimSpace(valueOr(merged.Notes, "")),
	}
	if eff.Currency == "" {
		eff.Currency = currency
	}

	switch {
	case in.ProgramType == model.ProgramTypeWeeklyResidency:
		tier := in.Tier
		if tier == "" {
			tier = calendar.TierStandard
		}
		rate := rem.Tiers.For(tier)
		base := in.Baseline.Remuneration
		over := in.Override.Remuneration

		var seedFee *int64
		var seedPerf *int
		if in.Seed != nil {
			seedFee = &in.Seed.FeeCents
			seedPerf = &in.Seed.PerformanceCount
		}

		eff.Mode = ModePerTier
		eff.Tier = tier
		eff.FeeCents = copyInt64(first(over.FeeCents, rate.FeeCents, seedFee, base.FeeCents))
		eff.PerformanceCount = valueOr(first(over.PerformanceCount, rate.PerformanceCount, seedPerf, base.PerformanceCount), 0)

	case rem.Mode != nil && *rem.Mode == ModeArtistChoice:
		eff.Mode = ModeArtistChoice
		eff.Options = cloneOptions(rem.Options)
		if eff.Options == nil {
			eff.Options = []FeeOption{}
		}

	default:
		eff.Mode = ModeFixed
		eff.FeeCents = copyInt64(rem.FeeCents)
	}

	return eff
}

// Merge coalesces two layers field by field: a value set on override wins,
// otherwise the baseline value is kept. Blank strings count as unset and
// lists are replaced as a whole.
func Merge(baseline, override Conditions) Conditions {
	b, o := baseline.Remuneration, override.Remuneration
	return Conditions{
		Remuneration: Remuneration{
			Mode:             first(o.Mode, b.Mode),
			FeeCents:         first(o.FeeCents, b.FeeCents),
			Currency:         firstText(o.Currency, b.Currency),
			IsNet:            first(o.IsNet, b.IsNet),
			PerformanceCount: first(o.PerformanceCount, b.PerformanceCount),
			Tiers: Tiers{
				Standard:   mergeRate(b.Tiers.Standard, o.Tiers.Standard),
				HighDemand: mergeRate(b.Tiers.HighDemand, o.Tiers.HighDemand),
			},
			Options: firstList(o.Options, b.Options),
		},
		Lodging: Provision{
			Included: first(override.Lodging.Included, baseline.Lodging.Included),
			Details:  firstText(override.Lodging.Details, baseline.Lodging.Details),
		},
		Meals: Provision{
			Included: first(override.Meals.Included, baseline.Meals.Included),
			Details:  firstText(override.Meals.Details, baseline.Meals.Details),
		},
		Defrayal: Defrayal{
			Included:    first(override.Defrayal.Included, baseline.Defrayal.Included),
			AmountCents: first(override.Defrayal.AmountCents, baseline.Defrayal.AmountCents),
			Details:     firstText(override.Defrayal.Details, baseline.Defrayal.Details),
		},
		Locations: firstList(override.Locations, baseline.Locations),
		Contacts:  firstList(override.Contacts, baseline.Contacts),
		Access:    firstList(override.Access, baseline.Access),
		Logistics: firstList(override.Logistics, baseline.Logistics),
		Schedule:  firstList(override.Schedule, baseline.Schedule),
		Notes:     firstText(override.Notes, baseline.Notes),
	}
}

// For returns the table row of a tier.
func (t Tiers) For(tier calendar.Tier) TierRate {
	if tier == calendar.TierHighDemand {
		return t.HighDemand
	}
	return t.Standard
}

func mergeRate(b, o TierRate) TierRate {
	return TierRate{
		FeeCents:         first(o.FeeCents, b.FeeCents),
		PerformanceCount: first(o.PerformanceCount, b.PerformanceCount),
	}
}

// Snapshot encodes resolved conditions for storage on a booking.
func (e Effective) Snapshot() ([]byte, error) {
	return json.Marshal(e)
}

// DecodeSnapshot reads back a booking snapshot.
func DecodeSnapshot(raw []byte) (Effective, error) {
	var e Effective
	if err := json.Unmarshal(raw, &e); err != nil {
		return Effective{}, fmt.Errorf("decode conditions snapshot: %w", err)
	}
	return e, nil
}

// Option finds a fee option by label.
func (e Effective) Option(label string) (FeeOption, bool) {
	label = strings.TrimSpace(label)
	for _, o := range e.Options {
		if strings.EqualFold(o.Label, label) {
			return o, true
		}
	}
	return FeeOption{}, false
}

func first[T any](values ...*T) *T {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// firstText treats blank strings as unset.
func firstText(values ...*string) *string {
	for _, v := range values {
		if v != nil && strings.TrimSpace(*v) != "" {
			return v
		}
	}
	return nil
}

func firstList[T any](override, baseline []T) []T {
	if override != nil {
		return override
	}
	return baseline
}

func valueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneEntries(in []Entry) []Entry {
	if in == nil {
		return nil
	}
	return append([]Entry(nil), in...)
}

func cloneSchedule(in []ScheduleEntry) []ScheduleEntry {
	if in == nil {
		return nil
	}
	return append([]ScheduleEntry(nil), in...)
}

func cloneOptions(in []FeeOption) []FeeOption {
	if in == nil {
		return nil
	}
	out := make([]FeeOption, len(in))
	for i, o := range in {
		out[i] = FeeOption{Label: o.Label, AmountCents: copyInt64(o.AmountCents)}
	}
	return out
}
