package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	catalog     *appointment.Catalog
	listByDate  *appointment.ListAppointmentsByDate
	listByMonth *appointment.ListAppointmentsByMonth
	get         *appointment.GetAppointment
	create      *appointment.CreateBooking
	cancel      *appointment.CancelAppointment
	status      *appointment.UpdateAppointmentStatus
	waitlist    *appointment.Waitlist
}

func NewAppointmentHandler(
	catalog *appointment.Catalog,
	listByDate *appointment.ListAppointmentsByDate,
	listByMonth *appointment.ListAppointmentsByMonth,
	get *appointment.GetAppointment,
	create *appointment.CreateBooking,
	cancel *appointment.CancelAppointment,
	status *appointment.UpdateAppointmentStatus,
	waitlist *appointment.Waitlist,
) *AppointmentHandler {
	return &AppointmentHandler{
		catalog:     catalog,
		listByDate:  listByDate,
		listByMonth: listByMonth,
		get:         get,
		create:      create,
		cancel:      cancel,
		status:      status,
		waitlist:    waitlist,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// CreateAppointmentRequest books on behalf of a client. ClientID selects a
// registered client; otherwise name and phone create or reuse a guest.
type CreateAppointmentRequest struct {
	BarberID    uint   `json:"barber_id"`
	ClientID    *uint  `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email" binding:"omitempty,email"`
	ServiceIDs  []uint `json:"service_ids" binding:"required,min=1,dive,gt=0"`
	Date        string `json:"date" binding:"required,ymd"`
	Time        string `json:"time" binding:"required,hhmm"`
	Notes       string `json:"notes" binding:"max=500"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes" binding:"max=500"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *AppointmentHandler) location(c *gin.Context) (*models.Barbershop, bool) {
	shop, err := h.catalog.Shop(c.Request.Context(), middleware.BarbershopID(c))
	if err != nil {
		renderError(c, err)
		return nil, false
	}
	return shop, true
}

func (h *AppointmentHandler) render(c *gin.Context, status int, ap *models.Appointment) {
	shop, ok := h.location(c)
	if !ok {
		return
	}
	c.JSON(status, dto.Appointment(ap, timezone.Location(shop.Timezone)))
}

// ======================================================
// LIST
// ======================================================

// ListByDate returns the agenda of one day: ?date=YYYY-MM-DD.
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID, ok := targetBarber(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "date is required (YYYY-MM-DD).")
		return
	}

	out, err := h.listByDate.Execute(c.Request.Context(), barberID, middleware.BarbershopID(c), date)
	if err != nil {
		renderError(c, err)
		return
	}
	httpresp.List(c, out)
}

// ListByMonth returns the agenda of a month: ?year=2026&month=3.
func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID, ok := targetBarber(c)
	if !ok {
		return
	}
	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_month", "year and month are required.")
		return
	}

	out, err := h.listByMonth.Execute(c.Request.Context(), barberID, middleware.BarbershopID(c), year, month)
	if err != nil {
		renderError(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ap, err := h.get.Execute(c.Request.Context(), middleware.BarbershopID(c), id, agendaScope(c))
	if err != nil {
		renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, ap)
}

// ======================================================
// CREATE
// ======================================================

// Create books from the back office. Barbers book on their own agenda;
// owners may pick any barber.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	barberID := middleware.UserID(c)
	if middleware.IsOwner(c) && req.BarberID != 0 {
		barberID = req.BarberID
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateBookingInput{
		BarbershopID: middleware.BarbershopID(c),
		BarberID:     barberID,
		ActorID:      middleware.ActorID(c),
		ClientID:     req.ClientID,
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
	h.render(c, http.StatusCreated, ap)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req CancelAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	ap, err := h.cancel.Execute(c.Request.Context(), appointment.CancelInput{
		BarbershopID:  middleware.BarbershopID(c),
		AppointmentID: id,
		ActorID:       middleware.ActorID(c),
		Reason:        req.Reason,
		BarberID:      agendaScope(c),
	})
	if err != nil {
		renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, ap)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.transition(c, id, req.Status, req.Notes)
}

// Complete is the shortcut used by the agenda screen.
func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	h.transition(c, id, "completed", "")
}

func (h *AppointmentHandler) transition(c *gin.Context, id uint, status, notes string) {
	ap, err := h.status.Execute(c.Request.Context(), appointment.UpdateStatusInput{
		BarbershopID:  middleware.BarbershopID(c),
		AppointmentID: id,
		BarberID:      agendaScope(c),
		ActorID:       middleware.ActorID(c),
		Status:        status,
		Notes:         notes,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, ap)
}

// ======================================================
// WAITLIST
// ======================================================

func (h *AppointmentHandler) Waitlist(c *gin.Context) {
	barberID, ok := targetBarber(c)
	if !ok {
		return
	}
	out, err := h.waitlist.List(c.Request.Context(), middleware.BarbershopID(c), barberID, c.Query("date"))
	if err != nil {
		renderError(c, err)
		return
	}
	httpresp.List(c, out)
}
