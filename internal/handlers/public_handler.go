package handlers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notifier"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// AvailabilityStream hands out live availability subscriptions.
type AvailabilityStream interface {
	Subscribe(barberIDs []uint) *notifier.Subscription
}

type PublicHandler struct {
	catalog      *appointment.Catalog
	availability *appointment.GetAvailability
	check        *appointment.CheckSlot
	create       *appointment.CreateBooking
	waitlist     *appointment.Waitlist
	stream       AvailabilityStream
	log          zerolog.Logger

	// Heartbeat keeps idle streams open through proxies.
	Heartbeat time.Duration
}

func NewPublicHandler(
	catalog *appointment.Catalog,
	availability *appointment.GetAvailability,
	check *appointment.CheckSlot,
	create *appointment.CreateBooking,
	waitlist *appointment.Waitlist,
	stream AvailabilityStream,
	log zerolog.Logger,
) *PublicHandler {
	return &PublicHandler{
		catalog:      catalog,
		availability: availability,
		check:        check,
		create:       create,
		waitlist:     waitlist,
		stream:       stream,
		log:          log,
		Heartbeat:    25 * time.Second,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	BarberID    uint   `json:"barber_id" binding:"required"`
	ServiceIDs  []uint `json:"service_ids" binding:"required,min=1,dive,gt=0"`
	Date        string `json:"date" binding:"required,ymd"`
	Time        string `json:"time" binding:"required,hhmm"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email" binding:"omitempty,email"`
	Notes       string `json:"notes" binding:"max=500"`
}

type PublicWaitlistRequest struct {
	BarberID    uint   `json:"barber_id" binding:"required"`
	Date        string `json:"date" binding:"required,ymd"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email" binding:"omitempty,email"`
}

type availabilityQuery struct {
	BarberID   uint   `form:"barber_id" binding:"required"`
	Date       string `form:"date" binding:"required,ymd"`
	ServiceIDs string `form:"service_ids"`
	Duration   int    `form:"duration" binding:"omitempty,min=1"`
}

type checkQuery struct {
	BarberID uint   `form:"barber_id" binding:"required"`
	Date     string `form:"date" binding:"required,ymd"`
	Start    string `form:"start" binding:"required,hhmm"`
	End      string `form:"end" binding:"required,hhmm"`
}

type publicBarber struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

////////////////////////////////////////////////////////
// SHOP
////////////////////////////////////////////////////////

func (h *PublicHandler) shop(c *gin.Context) (*models.Barbershop, bool) {
	shop, err := h.catalog.ShopBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		renderError(c, err)
		return nil, false
	}
	return shop, true
}

// Shop returns the public profile with bookable barbers and services.
func (h *PublicHandler) Shop(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	barbers, err := h.catalog.Barbers(ctx, shop.ID)
	if err != nil {
		renderError(c, err)
		return
	}
	services, err := h.catalog.Services(ctx, shop.ID, true)
	if err != nil {
		renderError(c, err)
		return
	}

	out := make([]publicBarber, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, publicBarber{ID: b.ID, Name: b.Name})
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop": gin.H{
			"name":     shop.Name,
			"slug":     shop.Slug,
			"phone":    shop.Phone,
			"address":  shop.Address,
			"timezone": shop.Timezone,
		},
		"barbers":  out,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	var q availabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	serviceIDs, err := uintList(q.ServiceIDs)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_ids", "service_ids must be a comma separated list of ids.")
		return
	}

	day, err := h.availability.Execute(c.Request.Context(), appointment.AvailabilityInput{
		BarbershopID:    shop.ID,
		BarberID:        q.BarberID,
		Date:            q.Date,
		ServiceIDs:      serviceIDs,
		DurationMinutes: q.Duration,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

// Check answers whether one interval is bookable now.
func (h *PublicHandler) Check(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	var q checkQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.check.Execute(c.Request.Context(), appointment.CheckSlotInput{
		BarbershopID: shop.ID,
		BarberID:     q.BarberID,
		Date:         q.Date,
		Start:        q.Start,
		End:          q.End,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Stream pushes availability updates as server-sent events. Without
// barber_ids it follows every active barber of the shop.
func (h *PublicHandler) Stream(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	ids, err := uintList(c.Query("barber_ids"))
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_ids", "barber_ids must be a comma separated list of ids.")
		return
	}
	if len(ids) == 0 {
		barbers, err := h.catalog.Barbers(ctx, shop.ID)
		if err != nil {
			renderError(c, err)
			return
		}
		for _, b := range barbers {
			ids = append(ids, b.ID)
		}
	} else {
		for _, id := range ids {
			b, err := h.catalog.Barber(ctx, shop.ID, id)
			if err != nil {
				renderError(c, err)
				return
			}
			if !b.Active {
				httperr.NotFound(c, "barber_not_found", "barber not found")
				return
			}
		}
	}
	if len(ids) == 0 {
		httperr.NotFound(c, "barber_not_found", "No active barbers.")
		return
	}

	sub := h.stream.Subscribe(ids)
	defer sub.Close()

	heartbeat := time.NewTicker(h.Heartbeat)
	defer heartbeat.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("ready", gin.H{"barber_ids": ids})
	c.Writer.Flush()

	c.Stream(func(io.Writer) bool {
		select {
		case u := <-sub.C():
			c.SSEvent("availability", u)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", strconv.FormatInt(time.Now().Unix(), 10))
			return true
		case <-sub.Done():
			if err := sub.Err(); err != nil {
				h.log.Warn().Err(err).Str("slug", shop.Slug).Msg("availability stream ended")
				c.SSEvent("error", httperr.HTTPError{Code: "stream_disconnected", Message: err.Error()})
			}
			return false
		case <-ctx.Done():
			return false
		}
	})
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateBookingInput{
		BarbershopID: shop.ID,
		BarberID:     req.BarberID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		ServiceIDs:   req.ServiceIDs,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
	})
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Appointment(ap, timezone.Location(shop.Timezone)))
}

func (h *PublicHandler) JoinWaitlist(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	var req PublicWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	entry, err := h.waitlist.Join(c.Request.Context(), appointment.JoinWaitlistInput{
		BarbershopID: shop.ID,
		BarberID:     req.BarberID,
		Date:         req.Date,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}
