package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type JoinWaitlistInput struct {
	BarbershopID uint
	BarberID     uint
	Date         string

	ClientID    *uint
	ClientName  string
	ClientPhone string
	ClientEmail string
}

// Waitlist keeps clients who want a day that is full and tells them when a
// slot opens.
type Waitlist struct {
	d Deps
}

func NewWaitlist(d Deps) *Waitlist {
	return &Waitlist{d: d}
}

func (uc *Waitlist) Join(ctx context.Context, in JoinWaitlistInput) (*models.WaitlistEntry, error) {
	shop, err := uc.d.shop(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.d.activeBarber(ctx, shop.ID, in.BarberID); err != nil {
		return nil, err
	}

	date, err := timezone.ParseDate(shop.Timezone, in.Date)
	if err != nil {
		return nil, httperr.Validation("invalid_date", "date must be YYYY-MM-DD")
	}
	today := schedule.DayStart(uc.d.now(), timezone.Location(shop.Timezone))
	if date.Before(today) {
		return nil, httperr.Validation("invalid_date", "date is in the past")
	}

	client, err := resolveClient(ctx, uc.d, shop.ID, in.ClientID, in.ClientName, in.ClientPhone, in.ClientEmail)
	if err != nil {
		return nil, err
	}

	civil := schedule.CivilDate(date)
	waiting, err := uc.d.Repo.ListWaitlist(ctx, in.BarberID, civil, models.WaitlistWaiting)
	if err != nil {
		return nil, httperr.Persistence("list waitlist", err)
	}
	for i := range waiting {
		if waiting[i].ClientID == client.ID {
			return &waiting[i], nil
		}
	}

	e := &models.WaitlistEntry{
		BarbershopID: shop.ID,
		BarberID:     in.BarberID,
		ClientID:     client.ID,
		Date:         civil,
		Status:       models.WaitlistWaiting,
	}
	if err := uc.d.Repo.CreateWaitlistEntry(ctx, e); err != nil {
		return nil, httperr.Persistence("join waitlist", err)
	}
	e.Client = *client

	uc.d.Audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		Action:       "waitlist_joined",
		Entity:       "waitlist_entry",
		EntityID:     &e.ID,
		Metadata:     map[string]any{"barber_id": in.BarberID, "date": in.Date},
	})
	return e, nil
}

func (uc *Waitlist) List(ctx context.Context, barbershopID, barberID uint, date string) ([]models.WaitlistEntry, error) {
	shop, err := uc.d.shop(ctx, barbershopID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.d.Repo.GetBarber(ctx, shop.ID, barberID); err != nil {
		return nil, httperr.Persistence("load barber", err)
	}
	day, err := timezone.ParseDate(shop.Timezone, date)
	if err != nil {
		return nil, httperr.Validation("invalid_date", "date must be YYYY-MM-DD")
	}
	out, err := uc.d.Repo.ListWaitlist(ctx, barberID, schedule.CivilDate(day), "")
	if err != nil {
		return nil, httperr.Persistence("list waitlist", err)
	}
	return out, nil
}

// notifyOpening messages every waiting client of the day. Best effort.
func (uc *Waitlist) notifyOpening(ctx context.Context, shop *models.Barbershop, barberID uint, date time.Time) {
	civil := schedule.CivilDate(schedule.DayStart(date, timezone.Location(shop.Timezone)))
	log := uc.d.Log.With().Uint("barber_id", barberID).Str("date", civil.Format("2006-01-02")).Logger()

	waiting, err := uc.d.Repo.ListWaitlist(ctx, barberID, civil, models.WaitlistWaiting)
	if err != nil {
		log.Warn().Err(err).Msg("waitlist lookup failed")
		return
	}

	for i := range waiting {
		e := &waiting[i]
		if uc.d.Messages != nil {
			err := uc.d.Messages.Send(ctx, notification.Message{
				Kind:         notification.KindWaitlistOpening,
				BarbershopID: shop.ID,
				ClientID:     e.ClientID,
				Recipient:    e.Client.Phone,
				Email:        e.Client.Email,
				Body:         fmt.Sprintf("A slot opened at %s on %s.", shop.Name, civil.Format("02/01/2006")),
				Data:         map[string]string{"barber_id": fmt.Sprint(barberID), "date": civil.Format("2006-01-02")},
			})
			if err != nil {
				log.Warn().Err(err).Uint("entry_id", e.ID).Msg("waitlist message failed")
				continue
			}
		}

		now := uc.d.now()
		e.Status = models.WaitlistNotified
		e.NotifiedAt = &now
		if err := uc.d.Repo.UpdateWaitlistEntry(ctx, e); err != nil {
			log.Warn().Err(err).Uint("entry_id", e.ID).Msg("waitlist update failed")
		}
	}
}

// fulfil closes the client's waiting entry once they book that day.
func (uc *Waitlist) fulfil(ctx context.Context, barberID, clientID uint, date time.Time) {
	entries, err := uc.d.Repo.ListWaitlist(ctx, barberID, date, "")
	if err != nil {
		uc.d.Log.Warn().Err(err).Msg("waitlist lookup failed")
		return
	}
	for i := range entries {
		e := &entries[i]
		if e.ClientID != clientID || e.Status == models.WaitlistFulfilled {
			continue
		}
		e.Status = models.WaitlistFulfilled
		if err := uc.d.Repo.UpdateWaitlistEntry(ctx, e); err != nil {
			uc.d.Log.Warn().Err(err).Uint("entry_id", e.ID).Msg("waitlist update failed")
		}
	}
}

// resolveClient returns a registered client or the guest profile keyed by
// phone.
func resolveClient(ctx context.Context, d Deps, shopID uint, clientID *uint, name, phone, email string) (*models.Client, error) {
	if clientID != nil {
		c, err := d.Repo.GetClient(ctx, shopID, *clientID)
		if err != nil {
			return nil, httperr.Persistence("load client", err)
		}
		return c, nil
	}
	if name == "" || phone == "" {
		return nil, httperr.Validation("missing_client", "client_id or client name and phone are required")
	}
	c, err := d.Repo.GetOrCreateGuestClient(ctx, shopID, name, phone, email)
	if err != nil {
		return nil, httperr.Persistence("create guest client", err)
	}
	return c, nil
}
