package notifier

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrPermanent is reported to subscribers once the relay gave up
// reconnecting. They must subscribe again.
var ErrPermanent = errors.New("availability stream permanently disconnected")

// Update tells subscribers that a barber's availability for a date changed.
type Update struct {
	BarberID       uint      `json:"barber_id"`
	Date           string    `json:"date"`
	AvailableSlots int       `json:"available_slots"`
	At             time.Time `json:"at"`
}

type Broadcaster interface {
	Broadcast(ctx context.Context, u Update) error
}

// ======================================================
// SUBSCRIPTION
// ======================================================

type Subscription struct {
	id      int
	barbers map[uint]struct{}
	ch      chan Update
	done    chan struct{}
	hub     *Hub

	mu  sync.Mutex
	err error
}

func (s *Subscription) C() <-chan Update {
	return s.ch
}

// Done is closed when the subscription ends, by Close or by a permanent
// upstream failure.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Subscription) Close() {
	s.hub.remove(s.id, nil)
}

func (s *Subscription) wants(barberID uint) bool {
	if len(s.barbers) == 0 {
		return true
	}
	_, ok := s.barbers[barberID]
	return ok
}

// ======================================================
// HUB
// ======================================================

// Hub fans updates out to in-process subscribers. Slow subscribers lose
// updates instead of blocking the publisher.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]*Subscription
	buffer int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]*Subscription), buffer: 16}
}

// Subscribe listens for the given barbers; none means every barber.
func (h *Hub) Subscribe(barberIDs []uint) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	s := &Subscription{
		id:      h.nextID,
		barbers: make(map[uint]struct{}, len(barberIDs)),
		ch:      make(chan Update, h.buffer),
		done:    make(chan struct{}),
		hub:     h,
	}
	for _, id := range barberIDs {
		s.barbers[id] = struct{}{}
	}
	h.subs[s.id] = s
	return s
}

func (h *Hub) Publish(u Update) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, s := range h.subs {
		if !s.wants(u.BarberID) {
			continue
		}
		select {
		case s.ch <- u:
			delivered++
		default:
		}
	}
	return delivered
}

func (h *Hub) Broadcast(_ context.Context, u Update) error {
	h.Publish(u)
	return nil
}

// Fail ends every current subscription with err.
func (h *Hub) Fail(err error) {
	h.mu.RLock()
	ids := make([]int, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	for _, id := range ids {
		h.remove(id, err)
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) remove(id int, err error) {
	h.mu.Lock()
	s, ok := h.subs[id]
	delete(h.subs, id)
	h.mu.Unlock()

	if !ok {
		return
	}
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	close(s.done)
}
