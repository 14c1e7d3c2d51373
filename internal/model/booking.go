package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// bookings
type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	SlotID uuid.UUID `gorm:"type:uuid;not null;index" json:"slot_id"`
	// Равен SlotID пока бронь подтверждена; уникальный индекс
	// гарантирует не больше одной активной брони на слот.
	ActiveSlotID *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"-"`

	ProgramID     uuid.UUID `gorm:"type:uuid;not null;index" json:"program_id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;index" json:"application_id"`
	ArtistID      uuid.UUID `gorm:"type:uuid;not null;index" json:"artist_id"`

	Status BookingStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	Option string        `gorm:"type:varchar(255)" json:"option,omitempty"`

	// Снимок эффективных условий на момент подтверждения.
	ConditionsSnapshot datatypes.JSON `json:"conditions_snapshot"`

	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	Comment     string     `gorm:"type:text" json:"comment,omitempty"`

	Slot *Slot `gorm:"foreignKey:SlotID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = BookingStatusConfirmed
	}
	if b.Status == BookingStatusConfirmed && b.ActiveSlotID == nil {
		slotID := b.SlotID
		b.ActiveSlotID = &slotID
	}
	return nil
}

func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusConfirmed
}
