package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	BarbershopID uint
	BarberID     uint
	ActorID      *uint

	// ClientID selects a registered client; otherwise a guest profile is
	// found or created by phone.
	ClientID    *uint
	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceIDs []uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	d         Deps
	announcer *Announcer
	waitlist  *Waitlist
}

func NewCreateBooking(d Deps, announcer *Announcer, waitlist *Waitlist) *CreateBooking {
	return &CreateBooking{d: d, announcer: announcer, waitlist: waitlist}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute validates the request against fresh schedule data, then commits
// the appointment and its service lines. A rejected request returns a
// *domain.Rejection listing every violation.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (_ *models.Appointment, err error) {

	started := time.Now()
	ctx, span := tracer.Start(ctx, "booking.create")
	defer func() {
		outcome := "committed"
		var rej *domain.Rejection
		switch {
		case errors.As(err, &rej):
			outcome = "rejected"
		case err != nil:
			outcome = "failed"
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(attribute.String("booking.outcome", outcome))
		span.End()
		uc.d.Metrics.Booking(outcome, started)
	}()

	// --------------------------------------------------
	// 1️⃣ Barbershop / barber
	// --------------------------------------------------
	shop, err := uc.d.shop(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.d.activeBarber(ctx, shop.ID, in.BarberID); err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	start, err := timezone.ParseDateTime(shop.Timezone, in.Date, in.Time)
	if err != nil {
		return nil, httperr.Validation("invalid_date_or_time", "date must be YYYY-MM-DD and time HH:MM")
	}

	// --------------------------------------------------
	// 2️⃣ Client
	// --------------------------------------------------
	client, err := resolveClient(ctx, uc.d, shop.ID, in.ClientID, in.ClientName, in.ClientPhone, in.ClientEmail)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Services and totals
	// --------------------------------------------------
	svcs, err := uc.d.services(ctx, shop.ID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	lines := make([]models.AppointmentService, 0, len(svcs))
	var totalPrice float64
	totalMinutes := 0
	for i, s := range svcs {
		totalPrice += s.Price
		totalMinutes += s.DurationMinutes
		lines = append(lines, models.AppointmentService{
			ServiceID:       s.ID,
			ServiceName:     s.Name,
			OrderIndex:      i,
			UnitPrice:       s.Price,
			DurationMinutes: s.DurationMinutes,
		})
	}
	end := start.Add(time.Duration(totalMinutes) * time.Minute)

	// --------------------------------------------------
	// 4️⃣ Schedule conflicts (fresh, accumulated)
	// --------------------------------------------------
	dy, err := uc.d.loadDay(ctx, shop, in.BarberID, start, true)
	if err != nil {
		return nil, err
	}
	// End is not clamped to midnight so a service running past close is
	// reported as outside hours.
	iv := schedule.Interval{Start: schedule.MinuteOfDay(dy.start, start)}
	iv.End = iv.Start + totalMinutes
	violations := schedule.CollectViolations(dy.hours, dy.occ, iv)
	scheduleViolations := len(violations)

	// --------------------------------------------------
	// 5️⃣ Business rules
	// --------------------------------------------------
	for _, msg := range domain.RulesFor(shop).Check(uc.d.now().In(loc), start) {
		violations = append(violations, schedule.Violation{Reason: domain.ReasonBusinessRule, Message: msg})
	}

	// --------------------------------------------------
	// 6️⃣ Rejection
	// --------------------------------------------------
	if len(violations) > 0 {
		kind := httperr.KindBusinessRule
		if scheduleViolations > 0 {
			kind = httperr.KindSlotConflict
		}
		return nil, &domain.Rejection{
			Kind:        kind,
			Violations:  violations,
			Suggestions: uc.suggest(ctx, dy, in.BarberID, totalMinutes, iv.Start),
		}
	}

	// --------------------------------------------------
	// 7️⃣ Commit header + lines
	// --------------------------------------------------
	ap := &models.Appointment{
		BarbershopID:         shop.ID,
		BarberID:             in.BarberID,
		ClientID:             client.ID,
		StartAt:              start,
		EndAt:                end,
		Status:               string(domain.InitialStatus()),
		TotalPrice:           totalPrice,
		TotalDurationMinutes: totalMinutes,
		Notes:                in.Notes,
	}

	if err := uc.commit(ctx, ap, lines); err != nil {
		if httperr.IsKind(err, httperr.KindSlotConflict) {
			return nil, &domain.Rejection{
				Kind: httperr.KindSlotConflict,
				Violations: []schedule.Violation{{
					Reason:  schedule.ReasonAppointment,
					Message: "Time slot occupied",
				}},
				Suggestions: []domain.Suggestion{},
			}
		}
		return nil, err
	}
	ap.Client = *client

	// --------------------------------------------------
	// 8️⃣ Post-commit (best effort)
	// --------------------------------------------------
	uc.d.Audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		ActorID:      in.ActorID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata: map[string]any{
			"confirmation_code": ap.ConfirmationCode,
			"barber_id":         ap.BarberID,
			"start_at":          ap.StartAt,
		},
	})

	if uc.d.Messages != nil {
		msg := notification.Message{
			Kind:          notification.KindBookingConfirmed,
			BarbershopID:  shop.ID,
			AppointmentID: ap.ID,
			ClientID:      client.ID,
			Recipient:     client.Phone,
			Email:         client.Email,
			Body: fmt.Sprintf(
				"Booking %s at %s on %s %s.",
				ap.ConfirmationCode, shop.Name, in.Date, start.Format("15:04"),
			),
			Data: map[string]string{"confirmation_code": ap.ConfirmationCode},
		}
		if err := uc.d.Messages.Send(ctx, msg); err != nil {
			uc.d.Log.Warn().Err(err).Uint("appointment_id", ap.ID).Msg("booking message failed")
		}
	}

	if uc.announcer != nil {
		uc.announcer.AvailabilityChanged(ctx, shop, ap.BarberID, start)
	}
	if uc.waitlist != nil {
		uc.waitlist.fulfil(ctx, ap.BarberID, client.ID, schedule.CivilDate(dy.start))
	}

	return ap, nil
}

// suggest offers free starts of the requested barber first, then of the
// other active barbers of the shop. Starts that break booking rules are
// skipped.
func (uc *CreateBooking) suggest(ctx context.Context, dy *day, barberID uint, duration, requested int) []domain.Suggestion {
	rules := domain.RulesFor(dy.shop)
	now := uc.d.now().In(dy.start.Location())

	pick := func(from *day, id uint, room int) []domain.Suggestion {
		slots := from.slots(duration)
		for i := range slots {
			if slots[i].Available && len(rules.Check(now, schedule.At(from.start, slots[i].StartMinute))) > 0 {
				slots[i].Available = false
			}
		}
		out := domain.SuggestFrom(slots, requested)
		if len(out) > room {
			out = out[:room]
		}
		for i := range out {
			out[i].BarberID = id
		}
		return out
	}

	out := pick(dy, barberID, domain.MaxSuggestions)
	if len(out) == domain.MaxSuggestions {
		return out
	}

	barbers, err := uc.d.Repo.ListBarbers(ctx, dy.shop.ID)
	if err != nil {
		uc.d.Log.Warn().Err(err).Msg("suggestions limited to requested barber")
		return out
	}
	for _, b := range barbers {
		if b.ID == barberID || !b.Active {
			continue
		}
		other, err := uc.d.loadDay(ctx, dy.shop, b.ID, dy.start, false)
		if err != nil {
			continue
		}
		out = append(out, pick(other, b.ID, domain.MaxSuggestions-len(out))...)
		if len(out) == domain.MaxSuggestions {
			break
		}
	}
	return out
}

// commit inserts the header under the store's overlap guard, then the
// lines. If the lines fail the header is deleted again.
func (uc *CreateBooking) commit(ctx context.Context, ap *models.Appointment, lines []models.AppointmentService) error {
	for attempt := 1; ; attempt++ {
		code, err := domain.GenerateUniqueCode(ctx, uc.d.Codes, uc.d.Repo.ConfirmationCodeExists)
		if err != nil {
			return err
		}
		ap.ConfirmationCode = code

		err = uc.d.Repo.CreateAppointmentExclusive(ctx, ap)
		if errors.Is(err, domain.ErrDuplicateCode) {
			if attempt < domain.MaxCodeAttempts {
				continue
			}
			return httperr.New(httperr.KindCodeExhausted, "code_generation_exhausted", "Could not allocate a confirmation code, try again.")
		}
		if err != nil {
			return httperr.Persistence("create appointment", err)
		}
		break
	}

	if err := uc.d.Repo.CreateAppointmentServices(ctx, ap.ID, lines); err != nil {
		if derr := uc.d.Repo.DeleteAppointment(context.WithoutCancel(ctx), ap.ID); derr != nil {
			uc.d.Log.Error().Err(derr).Uint("appointment_id", ap.ID).Msg("compensating delete failed")
		}
		uc.d.Metrics.Compensated()
		return httperr.Persistence("create appointment services", err)
	}

	ap.Services = lines
	for i := range ap.Services {
		ap.Services[i].AppointmentID = ap.ID
	}
	return nil
}
