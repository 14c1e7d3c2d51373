// Package roadmap assembles the document handed to an artist for a slot:
// the resolved conditions laid out as ordered sections of label/value lines.
package roadmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/calendar"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/conditions"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
)

type SectionKey string

const (
	SectionRemuneration SectionKey = "remuneration"
	SectionLodging      SectionKey = "lodging"
	SectionMeals        SectionKey = "meals"
	SectionDefrayal     SectionKey = "defrayal"
	SectionLocations    SectionKey = "locations"
	SectionContacts     SectionKey = "contacts"
	SectionAccess       SectionKey = "access"
	SectionLogistics    SectionKey = "logistics"
	SectionSchedule     SectionKey = "schedule"
	SectionNotes        SectionKey = "notes"
)

// Line is one rendered entry. Label may be empty.
type Line struct {
	Label string `json:"label,omitempty"`
	Value string `json:"value"`
}

type Section struct {
	Key   SectionKey `json:"key"`
	Title string     `json:"title"`
	Lines []Line     `json:"lines"`
	// Raw entries of the schedule section, for renderers that lay out a table.
	Schedule []conditions.ScheduleEntry `json:"schedule,omitempty"`
}

type Roadmap struct {
	ProgramID uuid.UUID  `json:"program_id"`
	SlotID    uuid.UUID  `json:"slot_id"`
	BookingID *uuid.UUID `json:"booking_id,omitempty"`
	ArtistID  *uuid.UUID `json:"artist_id,omitempty"`

	Title  string          `json:"title"`
	Period string          `json:"period"`
	Status string          `json:"status"`
	Locale calendar.Locale `json:"locale"`

	Sections []Section `json:"sections"`
}

// Section returns the section with the given key, if present.
func (r Roadmap) Section(key SectionKey) (Section, bool) {
	for _, s := range r.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

// Assembler builds roadmaps in one locale.
type Assembler struct {
	Locale calendar.Locale
}

func NewAssembler(locale calendar.Locale) Assembler {
	return Assembler{Locale: calendar.ParseLocale(string(locale))}
}

// Assemble lays out eff for the given slot. booking is nil for a preview.
// Inputs are only read; calling it twice with the same inputs yields the same
// roadmap.
func (a Assembler) Assemble(
	program *model.Program,
	slot *model.Slot,
	booking *model.Booking,
	eff conditions.Effective,
) Roadmap {
	rm := Roadmap{
		Locale: a.Locale,
		Status: a.t(lblPreview),
	}
	if program != nil {
		rm.ProgramID = program.ID
		rm.Title = strings.TrimSpace(program.Title)
	}
	if slot != nil {
		rm.SlotID = slot.ID
		rm.Period = calendar.FormatRange(slot.Range(), a.Locale)
	}
	if booking != nil {
		id, artist := booking.ID, booking.ArtistID
		rm.BookingID = &id
		rm.ArtistID = &artist
		rm.Status = a.t(lblConfirmed)
		if !booking.IsActive() {
			rm.Status = a.t(lblCancelled)
		}
	}

	programType := model.ProgramTypeMultiDates
	if program != nil {
		programType = program.Type
	}

	candidates := []Section{
		a.remuneration(programType, booking, eff),
		a.provision(SectionLodging, lblLodging, eff.LodgingIncluded, eff.LodgingDetails),
		a.provision(SectionMeals, lblMeals, eff.MealsIncluded, eff.MealsDetails),
		a.defrayal(eff),
		a.entries(SectionLocations, lblLocations, eff.Locations),
		a.entries(SectionContacts, lblContacts, eff.Contacts),
		a.entries(SectionAccess, lblAccess, eff.Access),
		a.entries(SectionLogistics, lblLogistics, eff.Logistics),
		a.schedule(eff.Schedule),
		a.notes(eff.Notes),
	}

	for _, s := range candidates {
		if hasContent(s.Lines) {
			rm.Sections = append(rm.Sections, s)
		}
	}
	return rm
}

func (a Assembler) section(key SectionKey, title label) Section {
	return Section{Key: key, Title: a.t(title)}
}

func (a Assembler) remuneration(programType model.ProgramType, booking *model.Booking, eff conditions.Effective) Section {
	s := a.section(SectionRemuneration, lblRemuneration)

	switch {
	case programType == model.ProgramTypeWeeklyResidency || eff.Mode == conditions.ModePerTier:
		tierLabel := lblStandardWeek
		if eff.Tier == calendar.TierHighDemand {
			tierLabel = lblHighDemandWeek
		}
		s.Lines = append(s.Lines, Line{Label: a.t(tierLabel), Value: a.fee(eff.FeeCents, eff)})

	case eff.Mode == conditions.ModeArtistChoice:
		for _, o := range eff.Options {
			s.Lines = append(s.Lines, Line{Label: strings.TrimSpace(o.Label), Value: a.fee(o.AmountCents, eff)})
		}
		if len(eff.Options) == 0 {
			s.Lines = append(s.Lines, Line{Label: a.t(lblFee), Value: a.t(lblToBeDefined)})
		}

	default:
		s.Lines = append(s.Lines, Line{Label: a.t(lblFee), Value: a.fee(eff.FeeCents, eff)})
	}

	if eff.PerformanceCount > 0 {
		s.Lines = append(s.Lines, Line{Label: a.t(lblPerformances), Value: strconv.Itoa(eff.PerformanceCount)})
	}
	if booking != nil {
		if opt := strings.TrimSpace(booking.Option); opt != "" {
			value := opt
			if o, ok := eff.Option(opt); ok && o.AmountCents != nil {
				value = opt + " (" + a.fee(o.AmountCents, eff) + ")"
			}
			s.Lines = append(s.Lines, Line{Label: a.t(lblChosenOption), Value: value})
		}
	}
	return s
}

func (a Assembler) provision(key SectionKey, title label, included bool, details string) Section {
	s := a.section(key, title)
	s.Lines = append(s.Lines, Line{Value: a.included(included)})
	if d := strings.TrimSpace(details); d != "" {
		s.Lines = append(s.Lines, Line{Label: a.t(lblDetails), Value: d})
	}
	return s
}

// Travel expenses only show up once something is said about them.
func (a Assembler) defrayal(eff conditions.Effective) Section {
	s := a.section(SectionDefrayal, lblDefrayal)
	details := strings.TrimSpace(eff.DefrayalDetails)
	if !eff.DefrayalIncluded && eff.DefrayalCents == nil && details == "" {
		return s
	}
	s.Lines = append(s.Lines, Line{Value: a.included(eff.DefrayalIncluded)})
	if eff.DefrayalCents != nil {
		s.Lines = append(s.Lines, Line{Label: a.t(lblAmount), Value: a.money(*eff.DefrayalCents, eff.Currency)})
	}
	if details != "" {
		s.Lines = append(s.Lines, Line{Label: a.t(lblDetails), Value: details})
	}
	return s
}

func (a Assembler) entries(key SectionKey, title label, in []conditions.Entry) Section {
	s := a.section(key, title)
	for _, e := range in {
		l, v := strings.TrimSpace(e.Label), strings.TrimSpace(e.Value)
		if l == "" && v == "" {
			continue
		}
		s.Lines = append(s.Lines, Line{Label: l, Value: v})
	}
	return s
}

func (a Assembler) schedule(in []conditions.ScheduleEntry) Section {
	s := a.section(SectionSchedule, lblSchedule)
	for _, e := range in {
		e = conditions.ScheduleEntry{
			Day:   strings.TrimSpace(e.Day),
			Time:  strings.TrimSpace(e.Time),
			Place: strings.TrimSpace(e.Place),
			Notes: strings.TrimSpace(e.Notes),
		}
		line := joinNonEmpty(" | ", e.Day, e.Time, e.Place, e.Notes)
		if line == "" {
			continue
		}
		s.Lines = append(s.Lines, Line{Value: line})
		s.Schedule = append(s.Schedule, e)
	}
	return s
}

func (a Assembler) notes(note string) Section {
	s := a.section(SectionNotes, lblNotes)
	if n := strings.TrimSpace(note); n != "" {
		s.Lines = append(s.Lines, Line{Value: n})
	}
	return s
}

func (a Assembler) included(v bool) string {
	if v {
		return a.t(lblIncluded)
	}
	return a.t(lblNotIncluded)
}

func (a Assembler) fee(cents *int64, eff conditions.Effective) string {
	if cents == nil {
		return a.t(lblToBeDefined)
	}
	basis := a.t(lblGross)
	if eff.IsNet {
		basis = a.t(lblNet)
	}
	return a.money(*cents, eff.Currency) + " " + basis
}

// money renders cents as "1500.00 EUR" (en) or "1500,00 EUR" (fr).
func (a Assembler) money(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	sep := "."
	if a.Locale == calendar.LocaleFR {
		sep = ","
	}
	s := fmt.Sprintf("%s%d%s%02d", sign, cents/100, sep, cents%100)
	if currency = strings.TrimSpace(currency); currency != "" {
		s += " " + currency
	}
	return s
}

func hasContent(lines []Line) bool {
	for _, l := range lines {
		if l.Label != "" || l.Value != "" {
			return true
		}
	}
	return false
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
