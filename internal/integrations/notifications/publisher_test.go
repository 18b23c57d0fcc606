package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireService/pkg/logger"
)

type fakeChannel struct {
	mu        sync.Mutex
	published []amqp.Publishing
	keys      []string
	err       error
	closed    bool
	notify    chan *amqp.Error
}

func (c *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.keys = append(c.keys, key)
	c.published = append(c.published, msg)
	return nil
}

func (c *fakeChannel) NotifyClose(receiver chan *amqp.Error) chan *amqp.Error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notify = receiver
	return receiver
}

func (c *fakeChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed && c.notify != nil {
		close(c.notify)
	}
	c.closed = true
	return nil
}

func (c *fakeChannel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// brokerClose имитирует закрытие канала со стороны брокера
func (c *fakeChannel) brokerClose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notify <- &amqp.Error{Code: amqp.ConnectionForced, Reason: "CONNECTION_FORCED"}
}

// fakeDialer выдает каналы по очереди
type fakeDialer struct {
	mu       sync.Mutex
	channels []*fakeChannel
	err      error
	calls    int
}

func (d *fakeDialer) dial() (channel, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	ch := d.channels[0]
	d.channels = d.channels[1:]
	return ch, nil
}

func (d *fakeDialer) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

func newTestPublisher(t *testing.T, m Metrics, channels ...*fakeChannel) (*Publisher, *fakeDialer) {
	t.Helper()
	d := &fakeDialer{channels: channels}
	p, err := newPublisher(d.dial, "tireservice.events", m, logger.Nop())
	require.NoError(t, err)
	return p, d
}

type fakeMetrics struct {
	results map[string]int
}

func (m *fakeMetrics) RecordEvent(key string, err error) {
	if m.results == nil {
		m.results = make(map[string]int)
	}
	if err != nil {
		key += ":error"
	}
	m.results[key]++
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	m := &fakeMetrics{}
	p, _ := newTestPublisher(t, m, ch)
	p.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }

	err := p.Publish(context.Background(), BookingCreated, BookingEvent{BookingID: 7, Reference: "ref-7", Status: "confirmed"})
	require.NoError(t, err)

	require.Len(t, ch.published, 1)
	assert.Equal(t, "booking.created", ch.keys[0])
	assert.Equal(t, "application/json", ch.published[0].ContentType)
	assert.Equal(t, amqp.Persistent, ch.published[0].DeliveryMode)

	var envelope struct {
		ID         string       `json:"id"`
		Type       string       `json:"type"`
		OccurredAt time.Time    `json:"occurredAt"`
		Payload    BookingEvent `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(ch.published[0].Body, &envelope))
	assert.Equal(t, ch.published[0].MessageId, envelope.ID)
	assert.Equal(t, "booking.created", envelope.Type)
	assert.Equal(t, int64(7), envelope.Payload.BookingID)
	assert.Equal(t, 1, m.results["booking.created"])
}

func TestPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("no route")}
	m := &fakeMetrics{}
	p, d := newTestPublisher(t, m, ch)

	err := p.Publish(context.Background(), BookingCancelled, BookingEvent{})
	assert.ErrorIs(t, err, ErrPublish)
	assert.Equal(t, 1, m.results["booking.cancelled:error"])
	assert.Equal(t, 1, d.callCount())
}

func TestPublisher_ReconnectsAfterClosedChannel(t *testing.T) {
	stale := &fakeChannel{err: amqp.ErrClosed}
	fresh := &fakeChannel{}
	m := &fakeMetrics{}
	p, d := newTestPublisher(t, m, stale, fresh)

	err := p.Publish(context.Background(), BookingCreated, BookingEvent{BookingID: 1})
	require.NoError(t, err)

	assert.Equal(t, 2, d.callCount())
	assert.True(t, stale.isClosed())
	assert.Len(t, fresh.published, 1)
	assert.Equal(t, 1, m.results["booking.created"])
}

func TestPublisher_ReconnectsAfterBrokerClose(t *testing.T) {
	first := &fakeChannel{}
	second := &fakeChannel{}
	p, d := newTestPublisher(t, nil, first, second)

	first.brokerClose()
	require.Eventually(t, first.isClosed, time.Second, 5*time.Millisecond)

	require.NoError(t, p.Publish(context.Background(), BookingCreated, BookingEvent{BookingID: 2}))
	assert.Equal(t, 2, d.callCount())
	assert.Empty(t, first.published)
	assert.Len(t, second.published, 1)
}

func TestPublisher_ReconnectFailure(t *testing.T) {
	stale := &fakeChannel{err: amqp.ErrClosed}
	m := &fakeMetrics{}
	p, d := newTestPublisher(t, m, stale)
	d.err = fmt.Errorf("%w: dial: connection refused", ErrConnect)

	err := p.Publish(context.Background(), BookingCompleted, BookingEvent{})
	assert.ErrorIs(t, err, ErrPublish)
	assert.ErrorIs(t, err, ErrConnect)
	assert.Equal(t, 1, m.results["booking.completed:error"])

	// следующая публикация снова пытается подключиться
	err = p.Publish(context.Background(), BookingCompleted, BookingEvent{})
	assert.ErrorIs(t, err, ErrConnect)
	assert.Equal(t, 3, d.callCount())
}

func TestPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p, d := newTestPublisher(t, nil, ch)
	require.NoError(t, p.Close())
	assert.True(t, ch.isClosed())

	err := p.Publish(context.Background(), BookingCreated, BookingEvent{})
	assert.ErrorIs(t, err, ErrPublish)
	assert.Equal(t, 1, d.callCount())
}

func TestNewPublisher_DialFailure(t *testing.T) {
	d := &fakeDialer{err: ErrConnect}
	_, err := newPublisher(d.dial, "x", nil, logger.Nop())
	assert.ErrorIs(t, err, ErrConnect)
}

func TestNoopPublisher(t *testing.T) {
	p := NewNoopPublisher(logger.Nop())
	assert.NoError(t, p.Publish(context.Background(), TimeSlotsRegenerated, nil))
	assert.NoError(t, p.Close())
}
