package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Тип события аудита.
type EventType string

const (
	EventTypeSlotsCreated         EventType = "slots_created"
	EventTypeApplicationReceived  EventType = "application_received"
	EventTypeApplicationWithdrawn EventType = "application_withdrawn"
	EventTypeApplicationRejected  EventType = "application_rejected"
	EventTypeBookingConfirmed     EventType = "booking_confirmed"
	EventTypeBookingCancelled     EventType = "booking_cancelled"
	EventTypeSlotCancelled        EventType = "slot_cancelled"
)

// events — события аудита. Пишутся в той же транзакции, что и изменение
// состояния, и публикуются наружу после коммита.
type Event struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	EventType EventType `gorm:"type:varchar(64);not null;index" json:"event_type"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`

	ProgramID     *uuid.UUID `gorm:"type:uuid;index" json:"program_id,omitempty"`
	SlotID        *uuid.UUID `gorm:"type:uuid;index" json:"slot_id,omitempty"`
	ApplicationID *uuid.UUID `gorm:"type:uuid" json:"application_id,omitempty"`
	BookingID     *uuid.UUID `gorm:"type:uuid;index" json:"booking_id,omitempty"`
	ArtistID      *uuid.UUID `gorm:"type:uuid" json:"artist_id,omitempty"`

	Details string `gorm:"type:text" json:"details,omitempty"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// NewEvent fills the identifiers that are known from the slot.
func NewEvent(t EventType, slot *Slot) Event {
	e := Event{EventType: t, CreatedAt: time.Now().UTC()}
	if slot != nil {
		e.ProgramID = ptr(slot.ProgramID)
		e.SlotID = ptr(slot.ID)
	}
	return e
}

func (e Event) WithApplication(a *Application) Event {
	if a != nil {
		e.ApplicationID = ptr(a.ID)
		e.ArtistID = ptr(a.ArtistID)
	}
	return e
}

func (e Event) WithBooking(b *Booking) Event {
	if b != nil {
		e.BookingID = ptr(b.ID)
		e.ApplicationID = ptr(b.ApplicationID)
		e.ArtistID = ptr(b.ArtistID)
	}
	return e
}

func ptr(id uuid.UUID) *uuid.UUID {
	return &id
}
