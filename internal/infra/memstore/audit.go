package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func (s *Store) SaveAuditLog(_ context.Context, l *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = s.id()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	s.auditLogs = append(s.auditLogs, *l)
	return nil
}

func (s *Store) ListAuditLogs(_ context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var match []models.AuditLog
	for _, l := range s.auditLogs {
		if l.BarbershopID != f.BarbershopID {
			continue
		}
		if f.Action != "" && l.Action != f.Action {
			continue
		}
		if f.Entity != "" && l.Entity != f.Entity {
			continue
		}
		if f.From != nil && l.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && l.CreatedAt.After(*f.To) {
			continue
		}
		match = append(match, l)
	}
	sort.Slice(match, func(i, j int) bool { return match[i].CreatedAt.After(match[j].CreatedAt) })

	total := int64(len(match))
	if f.Offset >= len(match) {
		return []models.AuditLog{}, total, nil
	}
	match = match[f.Offset:]
	if f.Limit > 0 && len(match) > f.Limit {
		match = match[:f.Limit]
	}
	return match, total, nil
}
