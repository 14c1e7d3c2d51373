package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Тип программы.
type ProgramType string

const (
	ProgramTypeMultiDates      ProgramType = "MULTI_DATES"
	ProgramTypeWeeklyResidency ProgramType = "WEEKLY_RESIDENCY"
)

type ProgramStatus string

const (
	ProgramStatusDraft     ProgramStatus = "DRAFT"
	ProgramStatusPublished ProgramStatus = "PUBLISHED"
	ProgramStatusCancelled ProgramStatus = "CANCELLED"
)

// programs — кампания бронирования клиента.
type Program struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`

	Title  string        `gorm:"type:varchar(255);not null" json:"title"`
	Type   ProgramType   `gorm:"type:varchar(32);not null" json:"program_type"`
	Status ProgramStatus `gorm:"type:varchar(32);not null;index" json:"status"`

	// Базовые условия программы (см. пакет conditions).
	Conditions datatypes.JSON `json:"conditions,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (p *Program) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ProgramStatusDraft
	}
	return nil
}

func (p *Program) IsWeekly() bool {
	return p.Type == ProgramTypeWeeklyResidency
}

func (t ProgramType) Valid() bool {
	return t == ProgramTypeMultiDates || t == ProgramTypeWeeklyResidency
}

func (s ProgramStatus) Valid() bool {
	switch s {
	case ProgramStatusDraft, ProgramStatusPublished, ProgramStatusCancelled:
		return true
	}
	return false
}
