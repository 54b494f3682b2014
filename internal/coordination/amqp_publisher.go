package coordination

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tableside/internal/core/ports"

	"github.com/rabbitmq/amqp091-go"
)

// EventsExchange is the fanout exchange carrying coordination events for
// off-process consumers such as printer daemons or analytics collectors.
const EventsExchange = "tableside.events"

const (
	dialAttempts   = 5
	publishTimeout = 10 * time.Second
)

// AMQPPublisher republishes coordination events to RabbitMQ. Implements
// ports.EventPublisher; delivery failures are logged and absorbed since the
// in-process bus and database remain the sources of truth.
type AMQPPublisher struct {
	mu      sync.Mutex
	url     string
	conn    *amqp091.Connection
	channel *amqp091.Channel
	logger  *slog.Logger
}

// NewAMQPPublisher connects to RabbitMQ and declares the events exchange.
// Dialing retries with a linear backoff before giving up.
func NewAMQPPublisher(url string, logger *slog.Logger) (*AMQPPublisher, error) {
	p := &AMQPPublisher{url: url, logger: logger}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *AMQPPublisher) connect() error {
	var err error
	for i := 0; i < dialAttempts; i++ {
		if err = p.dial(); err == nil {
			return nil
		}
		if i < dialAttempts-1 {
			wait := time.Duration(i+1) * 2 * time.Second
			p.logger.Warn("rabbitmq connection failed, retrying",
				"wait", wait, "error", err)
			time.Sleep(wait)
		}
	}
	return fmt.Errorf("connect to rabbitmq after %d attempts: %w", dialAttempts, err)
}

func (p *AMQPPublisher) dial() error {
	conn, err := amqp091.Dial(p.url)
	if err != nil {
		return err
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}

	err = channel.ExchangeDeclare(
		EventsExchange,
		"fanout",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return fmt.Errorf("declare %s exchange: %w", EventsExchange, err)
	}

	p.conn = conn
	p.channel = channel
	return nil
}

// Publish sends the event as JSON to the events exchange. Reconnects once on
// a closed connection; on failure logs and drops the event.
func (p *AMQPPublisher) Publish(ctx context.Context, event ports.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		if err := p.dial(); err != nil {
			p.logger.Error("rabbitmq reconnect failed, dropping event",
				"kind", event.Kind, "error", err)
			return
		}
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal coordination event failed",
			"kind", event.Kind, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		EventsExchange,
		string(event.Kind), // routing key, informational for a fanout exchange
		false,              // mandatory
		false,              // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.logger.Error("publish coordination event failed",
			"kind", event.Kind, "error", err)
	}
}

// Close closes the channel and connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
