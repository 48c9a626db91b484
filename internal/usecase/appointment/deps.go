package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
	"github.com/BruksfildServices01/barber-booking/internal/notifier"
	ucschedule "github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

var tracer = otel.Tracer("github.com/BruksfildServices01/barber-booking/usecase/appointment")

// Deps are the collaborators shared by the appointment use cases.
// Notifier, Messages, Audit and Metrics are optional.
type Deps struct {
	Repo     domain.Repository
	Schedule schedule.Repository
	Resolver *ucschedule.Resolver
	Notifier notifier.Broadcaster
	Messages notification.Dispatcher
	Audit    *audit.Dispatcher
	Metrics  *metrics.Metrics
	Log      zerolog.Logger
	Now      func() time.Time
	Codes    domain.CodeSource
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) shop(ctx context.Context, id uint) (*models.Barbershop, error) {
	shop, err := d.Repo.GetBarbershopByID(ctx, id)
	if err != nil {
		return nil, httperr.Persistence("load barbershop", err)
	}
	return shop, nil
}

func (d Deps) activeBarber(ctx context.Context, shopID, barberID uint) (*models.Barber, error) {
	b, err := d.Repo.GetBarber(ctx, shopID, barberID)
	if err != nil {
		return nil, httperr.Persistence("load barber", err)
	}
	if !b.Active {
		return nil, httperr.NotFoundErr("barber")
	}
	return b, nil
}

// services loads the requested services in request order and fails if any
// is missing or inactive.
func (d Deps) services(ctx context.Context, shopID uint, ids []uint) ([]models.Service, error) {
	if len(ids) == 0 {
		return nil, httperr.Validation("missing_services", "at least one service is required")
	}
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, httperr.Validation("duplicate_service", fmt.Sprintf("service %d listed twice", id))
		}
		seen[id] = true
	}

	found, err := d.Repo.GetServices(ctx, shopID, ids)
	if err != nil {
		return nil, httperr.Persistence("load services", err)
	}
	byID := make(map[uint]models.Service, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	out := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok || !s.IsActive || s.DurationMinutes <= 0 {
			return nil, httperr.New(
				httperr.KindServiceUnavailable,
				"service_unavailable",
				fmt.Sprintf("Service %d is not available", id),
			)
		}
		out = append(out, s)
	}
	return out, nil
}

func totalDuration(svcs []models.Service) int {
	n := 0
	for _, s := range svcs {
		n += s.DurationMinutes
	}
	return n
}
