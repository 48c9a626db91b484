package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ScheduleCache keeps read-mostly schedule configuration for a short TTL.
// Appointments, breaks and time off are never stored here.
type ScheduleCache struct {
	c *gocache.Cache

	onHit  func()
	onMiss func()
}

func NewScheduleCache(ttl time.Duration) *ScheduleCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ScheduleCache{c: gocache.New(ttl, 2*ttl)}
}

// Observe registers hit/miss callbacks, used for metrics.
func (s *ScheduleCache) Observe(onHit, onMiss func()) {
	s.onHit, s.onMiss = onHit, onMiss
}

func (s *ScheduleCache) Get(key string) (any, bool) {
	v, ok := s.c.Get(key)
	if ok && s.onHit != nil {
		s.onHit()
	}
	if !ok && s.onMiss != nil {
		s.onMiss()
	}
	return v, ok
}

func (s *ScheduleCache) Set(key string, v any) {
	s.c.SetDefault(key, v)
}

func (s *ScheduleCache) DeletePrefix(prefix string) {
	for k := range s.c.Items() {
		if strings.HasPrefix(k, prefix) {
			s.c.Delete(k)
		}
	}
}

func (s *ScheduleCache) Flush() {
	s.c.Flush()
}
