package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageType — тип сообщения в очереди.
type MessageType string

// MessageTypeRotationTrigger — пора выполнить ротацию.
const MessageTypeRotationTrigger MessageType = "rotation.trigger"

// Message — конверт сообщения.
type Message struct {
	// ID — уникальный идентификатор сообщения.
	ID string `json:"id"`

	// Type — тип сообщения.
	Type MessageType `json:"type"`

	// Payload — полезная нагрузка.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Timestamp — время создания.
	Timestamp time.Time `json:"timestamp"`
}

// TriggerPayload — payload триггера ротации.
// Ротатор его не читает, поля нужны только для логов.
type TriggerPayload struct {
	// Source — кто отправил триггер: "scheduler", "cli".
	Source string `json:"source"`

	// DueAt — время по расписанию, если триггер от планировщика.
	DueAt *time.Time `json:"due_at,omitempty"`
}

// NewTriggerMessage создаёт сообщение rotation.trigger.
func NewTriggerMessage(payload TriggerPayload, now time.Time) (*Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal trigger payload: %w", err)
	}

	return &Message{
		ID:        uuid.New().String(),
		Type:      MessageTypeRotationTrigger,
		Payload:   body,
		Timestamp: now,
	}, nil
}

// Publisher публикует сообщения в RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// Publish публикует сообщение в указанный exchange с routing key.
func (p *Publisher) Publish(ctx context.Context, exchange Exchange, routingKey RoutingKey, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(exchange),   // exchange
			string(routingKey), // routing key
			false,              // mandatory
			false,              // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent, // триггер переживёт рестарт RabbitMQ
				MessageId:    msg.ID,
				Timestamp:    msg.Timestamp,
				Type:         string(msg.Type),
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s/%s: %w", exchange, routingKey, err)
		}

		p.logger.Debug("published message",
			"exchange", exchange,
			"routing_key", routingKey,
			"message_id", msg.ID,
			"type", msg.Type,
		)
		return nil
	})
}

// PublishTrigger публикует триггер ротации.
// Потребитель: chorewheel-worker.
func (p *Publisher) PublishTrigger(ctx context.Context, payload TriggerPayload) (*Message, error) {
	msg, err := NewTriggerMessage(payload, time.Now())
	if err != nil {
		return nil, err
	}

	if err := p.Publish(ctx, ExchangeRotations, RoutingKeyTrigger, msg); err != nil {
		return nil, err
	}
	return msg, nil
}
