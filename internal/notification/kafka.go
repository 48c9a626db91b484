package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaDispatcher publishes notifications keyed by client so one client's
// messages stay ordered.
type KafkaDispatcher struct {
	w     messageWriter
	topic string
}

func NewKafkaDispatcher(brokers, topic string) *KafkaDispatcher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(SplitBrokers(brokers)...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &KafkaDispatcher{w: w, topic: topic}
}

func (d *KafkaDispatcher) Send(ctx context.Context, m Message) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(m.ClientID), 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(m.Kind)},
			{Key: "barbershop_id", Value: []byte(strconv.FormatUint(uint64(m.BarbershopID), 10))},
		},
	}
	if err := d.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish notification to %s: %w", d.topic, err)
	}
	return nil
}

func (d *KafkaDispatcher) Close() error {
	return d.w.Close()
}

func SplitBrokers(s string) []string {
	var out []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
