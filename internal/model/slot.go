package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/calendar"
)

// Тип бронируемой единицы.
type SlotItemType string

const (
	SlotItemDate SlotItemType = "DATE"
	SlotItemWeek SlotItemType = "WEEK"
)

// Статус слота программы.
type SlotStatus string

const (
	SlotStatusOpen      SlotStatus = "OPEN"
	SlotStatusClosed    SlotStatus = "CLOSED"
	SlotStatusCancelled SlotStatus = "CANCELLED"
)

// slots — дата или неделя внутри программы. EndDate исключительная.
type Slot struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ProgramID uuid.UUID    `gorm:"type:uuid;not null;index:idx_slots_program_start,priority:1" json:"program_id"`
	ItemType  SlotItemType `gorm:"type:varchar(16);not null" json:"item_type"`

	StartDate time.Time `gorm:"not null;index:idx_slots_program_start,priority:2" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`

	Status SlotStatus `gorm:"type:varchar(16);not null;index" json:"status"`

	// Для недель: категория и значения по умолчанию из генератора.
	Tier             calendar.Tier `gorm:"type:varchar(16)" json:"tier,omitempty"`
	SeedFeeCents     *int64        `json:"seed_fee_cents,omitempty"`
	SeedPerformances *int          `json:"seed_performances,omitempty"`

	ConditionsOverride datatypes.JSON `json:"conditions_override,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Program *Program `gorm:"foreignKey:ProgramID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (s *Slot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = SlotStatusOpen
	}
	return nil
}

func (s *Slot) Range() calendar.DateRange {
	return calendar.DateRange{Start: s.StartDate, End: s.EndDate}
}

// Ranges returns the ranges of the slots that are not cancelled.
func Ranges(slots []Slot) []calendar.DateRange {
	out := make([]calendar.DateRange, 0, len(slots))
	for i := range slots {
		if slots[i].Status != SlotStatusCancelled {
			out = append(out, slots[i].Range())
		}
	}
	return out
}

// Seed returns the generator defaults stored on a week slot, or nil.
func (s *Slot) Seed() *calendar.TierDefaults {
	if s.SeedFeeCents == nil && s.SeedPerformances == nil {
		return nil
	}
	var d calendar.TierDefaults
	if s.SeedFeeCents != nil {
		d.FeeCents = *s.SeedFeeCents
	}
	if s.SeedPerformances != nil {
		d.PerformanceCount = *s.SeedPerformances
	}
	return &d
}

// NewDateSlot builds an open single-day slot.
func NewDateSlot(programID uuid.UUID, day time.Time) Slot {
	r := calendar.SingleDay(day)
	return Slot{
		ProgramID: programID,
		ItemType:  SlotItemDate,
		StartDate: r.Start,
		EndDate:   r.End,
		Status:    SlotStatusOpen,
	}
}

// NewWeekSlot builds an open week slot from a generated seed.
func NewWeekSlot(programID uuid.UUID, seed calendar.WeekSeed) Slot {
	fee := seed.FeeCents
	perf := seed.PerformanceCount
	return Slot{
		ProgramID:        programID,
		ItemType:         SlotItemWeek,
		StartDate:        seed.Start,
		EndDate:          seed.End,
		Status:           SlotStatusOpen,
		Tier:             seed.Tier,
		SeedFeeCents:     &fee,
		SeedPerformances: &perf,
	}
}
