package amqp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/core/ports"
	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// ReminderPublisher publishes reminder messages to a topic exchange.
type ReminderPublisher struct {
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	exchange   string
	routingKey string
}

var _ ports.ReminderPublisher = (*ReminderPublisher)(nil)

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}

// NewReminderPublisher dials the broker and declares the durable topic exchange.
func NewReminderPublisher(amqpURL, exchange, routingKey string) (*ReminderPublisher, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("invalid AMQP URL: %w", err)
	}

	// Bounded dial timeout so startup does not hang on an unreachable broker.
	conn, err := amqp091.DialConfig(cleanURL, amqp091.Config{Dial: amqp091.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &ReminderPublisher{
		conn:       conn,
		channel:    channel,
		exchange:   exchange,
		routingKey: routingKey,
	}, nil
}

// PublishReminder publishes one persistent reminder message.
func (p *ReminderPublisher) PublishReminder(ctx context.Context, reminder domain.Reminder) error {
	body, err := NewReminderMessage(reminder).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal reminder: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,   // exchange
		p.routingKey, // routing key
		false,        // mandatory
		false,        // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    reminder.ComposedAt,
			Type:         ReminderMessageType,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish reminder: %w", err)
	}

	slog.InfoContext(ctx, "Published debt reminder",
		"account_id", reminder.AccountID,
		"exchange", p.exchange,
		"routing_key", p.routingKey)
	return nil
}

// Close releases the channel and connection.
func (p *ReminderPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// LogPublisher is the fallback used when no broker is configured: reminders are only logged.
type LogPublisher struct {
	Logger *slog.Logger
}

var _ ports.ReminderPublisher = (*LogPublisher)(nil)

func (p *LogPublisher) PublishReminder(ctx context.Context, reminder domain.Reminder) error {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.WarnContext(ctx, "No reminder broker configured, reminder not dispatched",
		slog.String("account_id", reminder.AccountID),
		slog.Int64("amount", reminder.Amount))
	return nil
}
