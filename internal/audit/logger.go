package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Filter narrows an audit listing. Zero values mean "any".
type Filter struct {
	BarbershopID uint
	Action       string
	Entity       string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

type Store interface {
	SaveAuditLog(ctx context.Context, log *models.AuditLog) error
	ListAuditLogs(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}

type Logger struct {
	store Store
}

func New(store Store) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	log := models.AuditLog{
		BarbershopID: ev.BarbershopID,
		ActorID:      ev.ActorID,
		Action:       ev.Action,
		Entity:       ev.Entity,
		EntityID:     ev.EntityID,
		Metadata:     metaJSON,
	}

	return l.store.SaveAuditLog(ctx, &log)
}

func (l *Logger) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	return l.store.ListAuditLogs(ctx, f)
}
