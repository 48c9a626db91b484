package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

// TimeOffHandler: barbers request and withdraw, owners approve or reject.
type TimeOffHandler struct {
	timeOff *schedule.ManageTimeOff
}

func NewTimeOffHandler(timeOff *schedule.ManageTimeOff) *TimeOffHandler {
	return &TimeOffHandler{timeOff: timeOff}
}

type RequestTimeOffRequest struct {
	StartDate string `json:"start_date" binding:"required,ymd"`
	EndDate   string `json:"end_date" binding:"required,ymd"`
	Reason    string `json:"reason" binding:"max=255"`
}

func (h *TimeOffHandler) List(c *gin.Context) {
	barberID, ok := targetBarber(c)
	if !ok {
		return
	}
	out, err := h.timeOff.List(c.Request.Context(), middleware.BarbershopID(c), barberID)
	if err != nil {
		renderError(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *TimeOffHandler) Request(c *gin.Context) {
	barberID, ok := targetBarber(c)
	if !ok {
		return
	}

	var req RequestTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	to, err := h.timeOff.Request(c.Request.Context(), schedule.RequestTimeOffInput{
		BarbershopID: middleware.BarbershopID(c),
		BarberID:     barberID,
		ActorID:      middleware.ActorID(c),
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Reason:       req.Reason,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, to)
}

func (h *TimeOffHandler) Approve(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	to, err := h.timeOff.Approve(c.Request.Context(), middleware.BarbershopID(c), id, middleware.ActorID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, to)
}

func (h *TimeOffHandler) Reject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	to, err := h.timeOff.Reject(c.Request.Context(), middleware.BarbershopID(c), id, middleware.ActorID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, to)
}

func (h *TimeOffHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	to, err := h.timeOff.Cancel(c.Request.Context(), middleware.BarbershopID(c), id, agendaScope(c), middleware.ActorID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, to)
}
