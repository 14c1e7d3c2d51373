// Package conditions holds the typed condition blocks stored on programs and
// slots, and resolves the effective conditions of a slot.
package conditions

import "encoding/json"

// Mode selects how remuneration is expressed.
type Mode string

const (
	ModeFixed        Mode = "FIXED"
	ModePerTier      Mode = "PER_TIER"
	ModeArtistChoice Mode = "ARTIST_CHOICE"
)

// Conditions is one layer of conditions (program baseline or slot override).
// A nil pointer or nil slice means "not set at this layer".
type Conditions struct {
	Remuneration Remuneration    `json:"remuneration"`
	Lodging      Provision       `json:"lodging"`
	Meals        Provision       `json:"meals"`
	Defrayal     Defrayal        `json:"defrayal"`
	Locations    []Entry         `json:"locations,omitempty"`
	Contacts     []Entry         `json:"contacts,omitempty"`
	Access       []Entry         `json:"access,omitempty"`
	Logistics    []Entry         `json:"logistics,omitempty"`
	Schedule     []ScheduleEntry `json:"schedule,omitempty"`
	Notes        *string         `json:"notes,omitempty"`
}

type Remuneration struct {
	Mode             *Mode       `json:"mode,omitempty"`
	FeeCents         *int64      `json:"fee_cents,omitempty"`
	Currency         *string     `json:"currency,omitempty"`
	IsNet            *bool       `json:"is_net,omitempty"`
	PerformanceCount *int        `json:"performance_count,omitempty"`
	Tiers            Tiers       `json:"tiers"`
	Options          []FeeOption `json:"options,omitempty"`
}

// Tiers is the per-tier remuneration table of a weekly residency.
type Tiers struct {
	Standard   TierRate `json:"standard"`
	HighDemand TierRate `json:"high_demand"`
}

type TierRate struct {
	FeeCents         *int64 `json:"fee_cents,omitempty"`
	PerformanceCount *int   `json:"performance_count,omitempty"`
}

// FeeOption is one choice offered to the artist. A nil amount is still to be
// defined.
type FeeOption struct {
	Label       string `json:"label"`
	AmountCents *int64 `json:"amount_cents,omitempty"`
}

// Provision covers lodging and meals.
type Provision struct {
	Included *bool   `json:"included,omitempty"`
	Details  *string `json:"details,omitempty"`
}

// Defrayal covers travel expenses.
type Defrayal struct {
	Included    *bool   `json:"included,omitempty"`
	AmountCents *int64  `json:"amount_cents,omitempty"`
	Details     *string `json:"details,omitempty"`
}

type Entry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type ScheduleEntry struct {
	Day   string `json:"day"`
	Time  string `json:"time"`
	Place string `json:"place"`
	Notes string `json:"notes"`
}

// Marshal encodes the layer in its canonical nested form.
func (c Conditions) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

// Int64 and friends build the optional fields of a layer.
func Int64(v int64) *int64 { return &v }

func Int(v int) *int { return &v }

func Bool(v bool) *bool { return &v }

func String(v string) *string { return &v }

