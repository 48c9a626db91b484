package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type State string

const (
	StateIdle         State = "idle"
	StateConnected    State = "connected"
	StateReconnecting State = "reconnecting"
	StateFailed       State = "failed"
	StateStopped      State = "stopped"
)

// Transport opens the upstream stream of updates.
type Transport interface {
	Open(ctx context.Context) (Stream, error)
}

// Stream yields updates until the connection drops.
type Stream interface {
	Next(ctx context.Context) (Update, error)
	Close() error
}

// Backoff is base * 2^attempt.
func Backoff(base time.Duration, attempt int) time.Duration {
	if attempt > 30 {
		attempt = 30
	}
	return base << uint(attempt)
}

type RelayConfig struct {
	Base        time.Duration
	MaxAttempts int
}

// Relay copies updates from the transport into a Hub and reconnects on
// drops. After MaxAttempts consecutive failures it fails every subscriber.
type Relay struct {
	transport Transport
	hub       *Hub
	cfg       RelayConfig
	log       zerolog.Logger
	sleep     func(ctx context.Context, d time.Duration) error

	mu      sync.Mutex
	state   State
	running bool
}

func NewRelay(t Transport, hub *Hub, cfg RelayConfig, log zerolog.Logger) *Relay {
	if cfg.Base <= 0 {
		cfg.Base = 500 * time.Millisecond
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 6
	}
	return &Relay{
		transport: t,
		hub:       hub,
		cfg:       cfg,
		log:       log.With().Str("component", "availability_relay").Logger(),
		sleep:     sleepCtx,
		state:     StateIdle,
	}
}

func (r *Relay) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Relay) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

// Start runs the relay in the background unless it is already running.
func (r *Relay) Start(ctx context.Context) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go func() { _ = r.Run(ctx) }()
}

// finish records the exit state before subscribers learn about it, so a
// resubscribe can start a fresh run.
func (r *Relay) finish(s State) {
	r.mu.Lock()
	r.state = s
	r.running = false
	r.mu.Unlock()
}

func (r *Relay) Run(ctx context.Context) error {
	attempt := 0
	for {
		stream, err := r.transport.Open(ctx)
		if err == nil {
			r.setState(StateConnected)
			r.log.Info().Msg("availability stream connected")
			var received bool
			received, err = r.pump(ctx, stream)
			_ = stream.Close()
			// a connection only counts as healthy once it delivered something
			if received {
				attempt = 0
			}
		}

		if ctx.Err() != nil {
			r.finish(StateStopped)
			return ctx.Err()
		}

		if attempt >= r.cfg.MaxAttempts {
			r.finish(StateFailed)
			r.log.Error().Err(err).Int("attempts", attempt).Msg("availability stream gave up")
			r.hub.Fail(ErrPermanent)
			return ErrPermanent
		}

		delay := Backoff(r.cfg.Base, attempt)
		attempt++
		r.setState(StateReconnecting)
		r.log.Warn().Err(err).Int("attempt", attempt).Dur("delay", delay).Msg("availability stream dropped, reconnecting")

		if err := r.sleep(ctx, delay); err != nil {
			r.finish(StateStopped)
			return err
		}
	}
}

func (r *Relay) pump(ctx context.Context, s Stream) (bool, error) {
	received := false
	for {
		u, err := s.Next(ctx)
		if err != nil {
			return received, err
		}
		received = true
		r.hub.Publish(u)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
