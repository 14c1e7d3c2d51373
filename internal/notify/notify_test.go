package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/logger"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
)

type failing struct{ err error }

func (f failing) Notify(context.Context, ...model.Event) error { return f.err }

type counting struct{ n int }

func (c *counting) Notify(_ context.Context, events ...model.Event) error {
	c.n += len(events)
	return nil
}

func testEvent() model.Event {
	slot := &model.Slot{ID: uuid.New(), ProgramID: uuid.New()}
	e := model.NewEvent(model.EventTypeSlotCancelled, slot)
	e.ID = uuid.New()
	return e
}

func TestMulti_FansOutAndJoinsErrors(t *testing.T) {
	errA := errors.New("a down")
	c := &counting{}

	m := Multi{c, failing{errA}, nil, Nop{}}
	err := m.Notify(context.Background(), testEvent(), testEvent())

	assert.ErrorIs(t, err, errA)
	assert.Equal(t, 2, c.n)
}

func TestLogNotifier_WritesEvent(t *testing.T) {
	var buf bytes.Buffer
	logger.Logger = logger.New(&buf, log.InfoLevel, false)
	t.Cleanup(func() { logger.Logger = nil })

	e := testEvent()
	require.NoError(t, LogNotifier{}.Notify(context.Background(), e))

	out := buf.String()
	assert.Contains(t, out, string(model.EventTypeSlotCancelled))
	assert.Contains(t, out, e.SlotID.String())
}

func TestPublishing_Payload(t *testing.T) {
	e := testEvent()
	e.CreatedAt = time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)

	pub, err := publishing(e)
	require.NoError(t, err)

	assert.Equal(t, "application/json", pub.ContentType)
	assert.Equal(t, amqp.Persistent, pub.DeliveryMode)
	assert.Equal(t, e.ID.String(), pub.MessageId)
	assert.Equal(t, "slot_cancelled", pub.Type)
	assert.Equal(t, e.CreatedAt, pub.Timestamp)

	var decoded model.Event
	require.NoError(t, json.Unmarshal(pub.Body, &decoded))
	assert.Equal(t, e.EventType, decoded.EventType)
	assert.Equal(t, *e.SlotID, *decoded.SlotID)
}

func TestAMQPPublisher_DialFailure(t *testing.T) {
	p := NewAMQPPublisher("amqp://invalid", "")
	p.dial = func(string) (*amqp.Connection, error) { return nil, amqp.ErrClosed }

	assert.Equal(t, DefaultQueue, p.Queue())
	err := p.Notify(context.Background(), testEvent())
	assert.ErrorIs(t, err, amqp.ErrClosed)

	// Nothing to send, nothing dialed.
	assert.NoError(t, p.Notify(context.Background()))
}
