package mq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher handles message publishing to RabbitMQ
type Publisher struct {
	conn     *Connection
	channel  *amqp.Channel
	exchange string
	logger   *zap.Logger
}

// NewPublisher creates a new RabbitMQ publisher
func NewPublisher(conn *Connection, exchange string, logger *zap.Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	// Declare exchange
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Publisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		logger:   logger,
	}, nil
}

// RunSummary is the event published after a reconciliation run completes.
// A run with zero intervals is still a completed run; it simply carries
// zero counts and no report paths.
type RunSummary struct {
	JobID                string `json:"job_id"`
	EventCount           int    `json:"event_count"`
	IntervalCount        int    `json:"interval_count"`
	ValidCount           int    `json:"valid_count"`
	MismatchCount        int    `json:"mismatch_count"`
	UnregisteredCount    int    `json:"unregistered_count"`
	LightReportPath      string `json:"light_report_path,omitempty"`
	ComparisonReportPath string `json:"comparison_report_path,omitempty"`
	CompletedAt          string `json:"completed_at"`
}

// PublishRunSummary publishes a reconciliation run summary event
func (p *Publisher) PublishRunSummary(ctx context.Context, summary RunSummary, routingKey string) error {
	body, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)

	if err != nil {
		return fmt.Errorf("failed to publish summary: %w", err)
	}

	p.logger.Debug("published run summary",
		zap.String("routing_key", routingKey),
		zap.String("job_id", summary.JobID),
		zap.Int("interval_count", summary.IntervalCount),
	)

	return nil
}

// Close closes the publisher channel
func (p *Publisher) Close() error {
	if p.channel != nil {
		return p.channel.Close()
	}
	return nil
}
