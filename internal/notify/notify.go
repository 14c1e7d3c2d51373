// Package notify delivers engine state changes (application received,
// booking confirmed, application rejected, slot cancelled...) to outside
// consumers. Events are opaque facts; formatting is up to the consumer.
package notify

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/logger"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
)

// Notifier is called after the state change is committed. Failures are
// reported to the caller, which logs them; they never roll anything back.
type Notifier interface {
	Notify(ctx context.Context, events ...model.Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Notify(context.Context, ...model.Event) error { return nil }

// LogNotifier writes events to the application log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, events ...model.Event) error {
	for _, e := range events {
		logger.Info("event",
			"type", e.EventType,
			"program", idString(e.ProgramID),
			"slot", idString(e.SlotID),
			"application", idString(e.ApplicationID),
			"booking", idString(e.BookingID),
		)
	}
	return nil
}

// Multi fans out to several notifiers and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, events ...model.Event) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, events...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func idString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
