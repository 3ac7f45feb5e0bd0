package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"slotbook/pkg/kafka"
)

// BookingConfirmed is emitted after a booking has been committed.
type BookingConfirmed struct {
	BookingID    string    `json:"booking_id"`
	SlotID       string    `json:"slot_id"`
	CreatorID    string    `json:"creator_id"`
	SponsorEmail string    `json:"sponsor_email"`
	Date         string    `json:"date"`
	SlotTypeName string    `json:"slot_type_name"`
	Amount       float64   `json:"amount"`
	ConfirmedAt  time.Time `json:"confirmed_at"`
}

// Publisher writes booking events to the broker. A nil Publisher is a
// valid no-op so the application can run without Kafka configured.
type Publisher struct {
	producer *kafka.Producer
}

func NewPublisher(producer *kafka.Producer) *Publisher {
	return &Publisher{producer: producer}
}

func (p *Publisher) PublishBookingConfirmed(ctx context.Context, event BookingConfirmed) error {
	if p == nil || p.producer == nil {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	return p.producer.Publish(ctx, kafka.Message{
		Key:       event.SlotID,
		Value:     payload,
		Timestamp: event.ConfirmedAt,
	})
}

func (p *Publisher) Close() error {
	if p == nil || p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
