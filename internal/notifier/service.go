package notifier

import (
	"context"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// Service is the entry point used by the booking flow and the stream
// handler. Without Redis it delivers in-process only.
type Service struct {
	hub       *Hub
	publisher Broadcaster
	relay     *Relay

	mu   sync.Mutex
	root context.Context
}

func NewLocal() *Service {
	hub := NewHub()
	return &Service{hub: hub, publisher: hub, root: context.Background()}
}

func NewRedis(client *redis.Client, cfg RelayConfig, log zerolog.Logger) *Service {
	return NewWithTransport(NewRedisPublisher(client), NewRedisTransport(client), cfg, log)
}

func NewWithTransport(pub Broadcaster, t Transport, cfg RelayConfig, log zerolog.Logger) *Service {
	hub := NewHub()
	return &Service{
		hub:       hub,
		publisher: pub,
		relay:     NewRelay(t, hub, cfg, log),
		root:      context.Background(),
	}
}

// Start begins relaying upstream updates until ctx ends.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	s.root = ctx
	s.mu.Unlock()
	if s.relay != nil {
		s.relay.Start(ctx)
	}
}

func (s *Service) Broadcast(ctx context.Context, u Update) error {
	return s.publisher.Broadcast(ctx, u)
}

// Subscribe restarts a relay that had permanently failed.
func (s *Service) Subscribe(barberIDs []uint) *Subscription {
	if s.relay != nil && s.relay.State() == StateFailed {
		s.mu.Lock()
		root := s.root
		s.mu.Unlock()
		s.relay.Start(root)
	}
	return s.hub.Subscribe(barberIDs)
}

func (s *Service) State() State {
	if s.relay == nil {
		return StateConnected
	}
	return s.relay.State()
}
