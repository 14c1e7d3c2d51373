package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/calendar"
)

var (
	ErrInvalidRange         = calendar.ErrInvalidRange
	ErrOverlapConflict      = errors.New("slot overlaps an existing slot")
	ErrSlotNotOpen          = errors.New("slot is not open")
	ErrDuplicateApplication = errors.New("artist already applied to this slot")
	ErrAlreadyBooked        = errors.New("slot is already booked")
	ErrSlotAlreadyBooked    = errors.New("slot has a booking and cannot be cancelled")
	ErrNotPending           = errors.New("application is not pending")
	ErrBookingNotActive     = errors.New("booking is not active")
	ErrStorageFailure       = errors.New("storage failure")
)

// OverlapError lists the existing ranges a candidate slot collides with.
type OverlapError struct {
	Candidate calendar.DateRange
	Conflicts []calendar.DateRange
}

func (e *OverlapError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, c.String())
	}
	return fmt.Sprintf("%s: %s conflicts with %s", ErrOverlapConflict, e.Candidate, strings.Join(parts, ", "))
}

func (e *OverlapError) Is(target error) bool {
	return target == ErrOverlapConflict
}

// StorageError wraps a persistence failure that is not part of the domain
// taxonomy.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorageFailure, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorageFailure
}
