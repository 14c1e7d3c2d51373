package conditions

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/logger"
)

// Parse decodes a stored conditions blob. Decoding is lenient: a malformed
// document, category or field is treated as absent, never as an error.
//
// Besides the nested form, the flat shorthand keys fee_cents, currency,
// is_net, performance_count, lodging_included, meals_included and notes are
// accepted at the top level. Nested values win over the shorthand.
func Parse(raw []byte) Conditions {
	var c Conditions

	root := object(raw)
	if root == nil {
		if present(raw) {
			logger.Debug("conditions: ignoring malformed document", "size", len(raw))
		}
		return c
	}

	c.Remuneration = parseRemuneration(object(root["remuneration"]))
	c.Lodging = parseProvision(object(root["lodging"]))
	c.Meals = parseProvision(object(root["meals"]))
	c.Defrayal = parseDefrayal(object(root["defrayal"]))
	c.Locations = parseEntries(root["locations"])
	c.Contacts = parseEntries(root["contacts"])
	c.Access = parseEntries(root["access"])
	c.Logistics = parseEntries(root["logistics"])
	c.Schedule = parseSchedule(root["schedule"])
	c.Notes = str(root["notes"])

	// shorthand
	r := &c.Remuneration
	r.FeeCents = first(r.FeeCents, number(root["fee_cents"]))
	r.Currency = first(r.Currency, str(root["currency"]))
	r.IsNet = first(r.IsNet, boolean(root["is_net"]))
	r.PerformanceCount = first(r.PerformanceCount, integer(root["performance_count"]))
	c.Lodging.Included = first(c.Lodging.Included, boolean(root["lodging_included"]))
	c.Meals.Included = first(c.Meals.Included, boolean(root["meals_included"]))

	return c
}

func parseRemuneration(m map[string]json.RawMessage) Remuneration {
	var r Remuneration
	if m == nil {
		return r
	}
	if s := str(m["mode"]); s != nil {
		switch mode := Mode(strings.ToUpper(strings.TrimSpace(*s))); mode {
		case ModeFixed, ModePerTier, ModeArtistChoice:
			r.Mode = &mode
		}
	}
	r.FeeCents = number(m["fee_cents"])
	r.Currency = str(m["currency"])
	r.IsNet = boolean(m["is_net"])
	r.PerformanceCount = integer(m["performance_count"])

	if tiers := object(m["tiers"]); tiers != nil {
		r.Tiers.Standard = parseTierRate(object(tiers["standard"]))
		r.Tiers.HighDemand = parseTierRate(object(tiers["high_demand"]))
	}

	if items := array(m["options"]); items != nil {
		r.Options = make([]FeeOption, 0, len(items))
		for _, item := range items {
			o := object(item)
			if o == nil {
				continue
			}
			label := str(o["label"])
			if label == nil || strings.TrimSpace(*label) == "" {
				continue
			}
			r.Options = append(r.Options, FeeOption{
				Label:       strings.TrimSpace(*label),
				AmountCents: number(o["amount_cents"]),
			})
		}
	}
	return r
}

func parseTierRate(m map[string]json.RawMessage) TierRate {
	if m == nil {
		return TierRate{}
	}
	return TierRate{
		FeeCents:         number(m["fee_cents"]),
		PerformanceCount: integer(m["performance_count"]),
	}
}

func parseProvision(m map[string]json.RawMessage) Provision {
	if m == nil {
		return Provision{}
	}
	return Provision{
		Included: boolean(m["included"]),
		Details:  str(m["details"]),
	}
}

func parseDefrayal(m map[string]json.RawMessage) Defrayal {
	if m == nil {
		return Defrayal{}
	}
	return Defrayal{
		Included:    boolean(m["included"]),
		AmountCents: number(m["amount_cents"]),
		Details:     str(m["details"]),
	}
}

func parseEntries(raw json.RawMessage) []Entry {
	items := array(raw)
	if items == nil {
		return nil
	}
	out := make([]Entry, 0, len(items))
	for _, item := range items {
		o := object(item)
		if o == nil {
			continue
		}
		out = append(out, Entry{
			Label: deref(str(o["label"])),
			Value: deref(str(o["value"])),
		})
	}
	return out
}

func parseSchedule(raw json.RawMessage) []ScheduleEntry {
	items := array(raw)
	if items == nil {
		return nil
	}
	out := make([]ScheduleEntry, 0, len(items))
	for _, item := range items {
		o := object(item)
		if o == nil {
			continue
		}
		out = append(out, ScheduleEntry{
			Day:   deref(str(o["day"])),
			Time:  deref(str(o["time"])),
			Place: deref(str(o["place"])),
			Notes: deref(str(o["notes"])),
		})
	}
	return out
}

// ===== lenient scalar decoding =====

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func object(raw json.RawMessage) map[string]json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

func array(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var a []json.RawMessage
	if err := json.Unmarshal(raw, &a); err != nil || a == nil {
		return nil
	}
	return a
}

func str(raw json.RawMessage) *string {
	if !present(raw) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

func boolean(raw json.RawMessage) *bool {
	if !present(raw) {
		return nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return &b
	}
	if s := str(raw); s != nil {
		if b, err := strconv.ParseBool(strings.TrimSpace(*s)); err == nil {
			return &b
		}
	}
	return nil
}

// number accepts a JSON number or a numeric string. Fractions are rounded.
func number(raw json.RawMessage) *int64 {
	if !present(raw) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		s := str(raw)
		if s == nil {
			return nil
		}
		f, err = strconv.ParseFloat(strings.TrimSpace(*s), 64)
		if err != nil {
			return nil
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt64/2 {
		return nil
	}
	v := int64(math.Round(f))
	return &v
}

func integer(raw json.RawMessage) *int {
	n := number(raw)
	if n == nil || *n < 0 || *n > math.MaxInt32 {
		return nil
	}
	v := int(*n)
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
