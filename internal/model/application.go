package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "PENDING"
	ApplicationStatusConfirmed ApplicationStatus = "CONFIRMED"
	ApplicationStatusRejected  ApplicationStatus = "REJECTED"
	ApplicationStatusCancelled ApplicationStatus = "CANCELLED"
)

// applications — заявка артиста на слот.
type Application struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	SlotID   uuid.UUID `gorm:"type:uuid;not null;index" json:"slot_id"`
	ArtistID uuid.UUID `gorm:"type:uuid;not null;index" json:"artist_id"`

	// Выбранный вариант вознаграждения.
	Option string `gorm:"type:varchar(255)" json:"option,omitempty"`

	Status ApplicationStatus `gorm:"type:varchar(16);not null;index" json:"status"`

	// slot/artist while the application is not cancelled, NULL otherwise.
	ActiveKey *string `gorm:"type:varchar(80);uniqueIndex" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Slot *Slot `gorm:"foreignKey:SlotID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = ApplicationStatusPending
	}
	if a.ActiveKey == nil && a.Status != ApplicationStatusCancelled {
		key := ApplicationKey(a.SlotID, a.ArtistID)
		a.ActiveKey = &key
	}
	return nil
}

// ApplicationKey is the uniqueness key of a non-cancelled application.
func ApplicationKey(slotID, artistID uuid.UUID) string {
	return slotID.String() + "/" + artistID.String()
}
