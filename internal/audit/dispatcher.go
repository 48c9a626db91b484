package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Event struct {
	BarbershopID uint
	ActorID      *uint
	Action       string
	Entity       string
	EntityID     *uint
	Metadata     any
}

// Dispatcher writes audit events off the request path. A full queue drops
// the event; audit never fails a booking.
type Dispatcher struct {
	logger *Logger
	log    zerolog.Logger
	queue  chan Event

	once sync.Once
	done chan struct{}
}

func NewDispatcher(logger *Logger, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log.With().Str("component", "audit").Logger(),
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.logger.Log(ctx, ev); err != nil {
			d.log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close drains pending events. Dispatch must not be called afterwards.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() { close(d.queue) })
	<-d.done
}
