// Package kafka streams order events to a Kafka topic so downstream
// consumers (analytics, audit, fulfillment partners) can follow the order
// lifecycle without touching the database.
package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"marketplace/internal/core/ports"
)

// OrderEventSink publishes order events as JSON messages.
// The event name keys the message so all events of one order family hash
// to a stable partition.
type OrderEventSink struct {
	writer *kafka.Writer
}

// envelope is the wire format of one streamed event.
type envelope struct {
	Event   string   `json:"event"`
	Rooms   []string `json:"rooms"`
	Payload any      `json:"payload"`
	SentAt  string   `json:"sentAt"`
}

// NewOrderEventSink creates a sink writing to the given topic.
// brokersCSV is a comma separated broker list; empty entries are ignored.
func NewOrderEventSink(brokersCSV, topic string) *OrderEventSink {
	brokers := make([]string, 0)
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	return &OrderEventSink{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Name identifies the sink in dispatcher logs.
func (s *OrderEventSink) Name() string {
	return "kafka"
}

// Deliver publishes one event to the topic.
func (s *OrderEventSink) Deliver(ctx context.Context, event ports.Event) error {
	data, err := json.Marshal(envelope{
		Event:   event.Name,
		Rooms:   event.Rooms,
		Payload: event.Payload,
		SentAt:  time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Name),
		Value: data,
		Time:  time.Now().UTC(),
	})
}

// Close flushes and closes the underlying writer.
func (s *OrderEventSink) Close() error {
	return s.writer.Close()
}
