package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Lead event names
const (
	EventLeadCreated   = "lead.created"
	EventLeadScored    = "lead.scored"
	EventLeadContacted = "lead.contacted"
	EventStageChanged  = "lead.stage_changed"
)

// LeadEventPayload is published after a successful lead mutation. It is a
// notification, never part of the workflow's control flow.
type LeadEventPayload struct {
	LeadID     string    `json:"lead_id"`
	Event      string    `json:"event"`
	Stage      string    `json:"stage"`
	Score      float64   `json:"score"`
	Detail     string    `json:"detail"`
	OccurredAt time.Time `json:"occurred_at"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishLeadEvent(ctx context.Context, payload LeadEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish lead event: %w", err)
	}

	return nil
}
