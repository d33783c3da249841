package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes appointment lifecycle events to a Kafka topic for
// the downstream notification pipeline.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 5 * time.Second,
		},
	}
}

type eventEnvelope struct {
	EventType     string          `json:"event_type"`
	AppointmentID string          `json:"appointment_id"`
	Payload       json.RawMessage `json:"payload,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, appointmentID uuid.UUID, payload []byte) error {
	value, err := json.Marshal(eventEnvelope{
		EventType:     eventType,
		AppointmentID: appointmentID.String(),
		Payload:       payload,
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		// Key by appointment so events for one appointment stay ordered.
		Key:   []byte(appointmentID.String()),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("write event message: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher is used when no Kafka brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, uuid.UUID, []byte) error {
	return nil
}
