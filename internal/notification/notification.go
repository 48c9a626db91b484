package notification

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type Kind string

const (
	KindBookingConfirmed Kind = "booking_confirmed"
	KindBookingCancelled Kind = "booking_cancelled"
	KindStatusChanged    Kind = "booking_status_changed"
	KindWaitlistOpening  Kind = "waitlist_slot_opened"
)

// Message is a client-facing notification. Delivery (SMS, email, push) is
// done by a downstream consumer.
type Message struct {
	Kind          Kind              `json:"kind"`
	BarbershopID  uint              `json:"barbershop_id"`
	AppointmentID uint              `json:"appointment_id,omitempty"`
	ClientID      uint              `json:"client_id"`
	Recipient     string            `json:"recipient"`
	Email         string            `json:"email,omitempty"`
	Body          string            `json:"body"`
	Data          map[string]string `json:"data,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

type Dispatcher interface {
	Send(ctx context.Context, m Message) error
}

// LogDispatcher only records messages. Used when no broker is configured.
type LogDispatcher struct {
	log zerolog.Logger
}

func NewLogDispatcher(log zerolog.Logger) *LogDispatcher {
	return &LogDispatcher{log: log.With().Str("component", "notification").Logger()}
}

func (d *LogDispatcher) Send(_ context.Context, m Message) error {
	d.log.Info().
		Str("kind", string(m.Kind)).
		Uint("appointment_id", m.AppointmentID).
		Uint("client_id", m.ClientID).
		Msg("notification queued")
	return nil
}
