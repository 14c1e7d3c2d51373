package service

import (
	"errors"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/repository"
)

var (
	ErrInvalidProgram    = errors.New("invalid program")
	ErrInvalidConditions = errors.New("conditions must be a JSON object")
	ErrWrongProgramType  = errors.New("operation does not apply to this program type")
)

// storageErr passes domain errors through and wraps anything else as a
// storage failure.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		model.ErrInvalidRange,
		model.ErrOverlapConflict,
		model.ErrSlotNotOpen,
		model.ErrDuplicateApplication,
		model.ErrAlreadyBooked,
		model.ErrSlotAlreadyBooked,
		model.ErrNotPending,
		model.ErrBookingNotActive,
		model.ErrStorageFailure,
		repository.ErrNotFound,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return &model.StorageError{Op: op, Err: err}
}

// UserMessage maps an engine error to the message shown to a user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, model.ErrInvalidRange):
		return "The end date must not be before the start date."
	case errors.Is(err, model.ErrOverlapConflict):
		return "These dates overlap a slot that already exists in this program."
	case errors.Is(err, model.ErrSlotNotOpen):
		return "This slot is not open for applications."
	case errors.Is(err, model.ErrDuplicateApplication):
		return "You have already applied to this slot."
	case errors.Is(err, model.ErrAlreadyBooked):
		return "Another artist has just been confirmed for this slot."
	case errors.Is(err, model.ErrSlotAlreadyBooked):
		return "This slot is booked and cannot be cancelled. Cancel the booking first."
	case errors.Is(err, model.ErrNotPending):
		return "This application is no longer pending."
	case errors.Is(err, model.ErrBookingNotActive):
		return "This booking has already been cancelled."
	case errors.Is(err, repository.ErrNotFound):
		return "The requested item does not exist."
	case errors.Is(err, ErrInvalidProgram):
		return "The program needs a title and a valid type."
	case errors.Is(err, ErrInvalidConditions):
		return "The conditions could not be read."
	case errors.Is(err, ErrWrongProgramType):
		return "This action is not available for this kind of program."
	case errors.Is(err, model.ErrStorageFailure):
		return "The service is temporarily unavailable. Please try again."
	default:
		return "Something went wrong."
	}
}
