package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// dialFunc открывает новый канал к брокеру с объявленным exchange
type dialFunc func() (channel, error)

// Publisher публикует доменные события в topic exchange RabbitMQ.
// Если брокер закрыл канал или соединение, публикатор переподключается
// при следующей публикации
type Publisher struct {
	mu       sync.Mutex
	dial     dialFunc
	channel  channel // nil, пока канал не восстановлен
	closed   bool
	exchange string
	metrics  Metrics
	logger   Logger
	now      func() time.Time
}

// session канал вместе с соединением, которому он принадлежит
type session struct {
	*amqp.Channel
	conn *amqp.Connection
}

// Close закрывает канал и соединение
func (s *session) Close() error {
	if err := s.Channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		s.conn.Close()
		return err
	}
	if err := s.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return err
	}
	return nil
}

func amqpDialer(url, exchange string) dialFunc {
	return func() (channel, error) {
		conn, err := amqp.DialConfig(url, amqp.Config{Dial: amqp.DefaultDial(publishTimeout)})
		if err != nil {
			return nil, fmt.Errorf("%w: dial: %w", ErrConnect, err)
		}

		ch, err := conn.Channel()
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("%w: open channel: %w", ErrConnect, err)
		}

		if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("%w: declare exchange %s: %w", ErrConnect, exchange, err)
		}

		return &session{Channel: ch, conn: conn}, nil
	}
}

// NewPublisher подключается к брокеру и объявляет exchange
func NewPublisher(url, exchange string, metrics Metrics, logger Logger) (*Publisher, error) {
	p, err := newPublisher(amqpDialer(url, exchange), exchange, metrics, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("Notifications: connected to RabbitMQ, exchange=%s", exchange)
	return p, nil
}

func newPublisher(dial dialFunc, exchange string, metrics Metrics, logger Logger) (*Publisher, error) {
	p := &Publisher{
		dial:     dial,
		exchange: exchange,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}

	if err := p.connectLocked(); err != nil {
		return nil, err
	}
	return p, nil
}

// connectLocked открывает канал и следит за его закрытием. Вызывается под p.mu
func (p *Publisher) connectLocked() error {
	ch, err := p.dial()
	if err != nil {
		return err
	}

	p.channel = ch
	go p.watch(ch, ch.NotifyClose(make(chan *amqp.Error, 1)))
	return nil
}

// watch сбрасывает канал, закрытый брокером
func (p *Publisher) watch(ch channel, closed <-chan *amqp.Error) {
	amqpErr, ok := <-closed
	if !ok || amqpErr == nil {
		// штатное закрытие через Close
		return
	}

	p.logger.Warn("Notifications: channel closed by broker, reconnecting on next publish: %v", amqpErr)

	p.mu.Lock()
	if p.channel == ch {
		p.channel = nil
	}
	p.mu.Unlock()

	ch.Close()
}

// Publish отправляет событие с ключом маршрутизации key
func (p *Publisher) Publish(ctx context.Context, key RoutingKey, payload interface{}) error {
	envelope := Envelope{
		ID:         uuid.NewString(),
		Type:       key,
		OccurredAt: p.now().UTC(),
		Payload:    payload,
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %w", ErrPublish, key, err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    envelope.ID,
		Timestamp:    envelope.OccurredAt,
		Type:         string(key),
		Body:         body,
	}

	// amqp.Channel нельзя использовать из нескольких горутин одновременно
	p.mu.Lock()
	err = p.publishLocked(ctx, key, msg)
	if errors.Is(err, amqp.ErrClosed) && !p.closed {
		p.logger.Warn("Notifications: channel closed while publishing %s, reconnecting", key)
		p.dropLocked()
		err = p.publishLocked(ctx, key, msg)
	}
	p.mu.Unlock()

	if p.metrics != nil {
		p.metrics.RecordEvent(string(key), err)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPublish, key, err)
	}

	p.logger.Debug("Notifications: published %s id=%s", key, envelope.ID)
	return nil
}

func (p *Publisher) publishLocked(ctx context.Context, key RoutingKey, msg amqp.Publishing) error {
	if p.closed {
		return amqp.ErrClosed
	}
	if p.channel == nil {
		if err := p.connectLocked(); err != nil {
			return err
		}
		p.logger.Info("Notifications: reconnected to RabbitMQ, exchange=%s", p.exchange)
	}
	return p.channel.PublishWithContext(ctx, p.exchange, string(key), false, false, msg)
}

func (p *Publisher) dropLocked() {
	if p.channel == nil {
		return
	}
	p.channel.Close()
	p.channel = nil
}

// Close закрывает канал и соединение. Повторные публикации возвращают ошибку
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.channel == nil {
		return nil
	}
	err := p.channel.Close()
	p.channel = nil
	return err
}

// NoopPublisher используется, когда RabbitMQ выключен
type NoopPublisher struct {
	logger Logger
}

// NewNoopPublisher создает публикатор-заглушку
func NewNoopPublisher(logger Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

// Publish только логирует событие
func (p *NoopPublisher) Publish(_ context.Context, key RoutingKey, _ interface{}) error {
	p.logger.Debug("Notifications: broker disabled, event %s skipped", key)
	return nil
}

// Close ничего не делает
func (p *NoopPublisher) Close() error {
	return nil
}
