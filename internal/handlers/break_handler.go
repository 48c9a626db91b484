package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

type BreakHandler struct {
	breaks *schedule.ManageBreaks
}

func NewBreakHandler(breaks *schedule.ManageBreaks) *BreakHandler {
	return &BreakHandler{breaks: breaks}
}

type CreateBreakRequest struct {
	Date      string `json:"date" binding:"required,ymd"`
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" binding:"required,hhmm"`
	Reason    string `json:"reason" binding:"max=255"`
}

func (h *BreakHandler) List(c *gin.Context) {
	barberID, ok := targetBarber(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "date is required (YYYY-MM-DD).")
		return
	}
	out, err := h.breaks.List(c.Request.Context(), middleware.BarbershopID(c), barberID, date)
	if err != nil {
		renderError(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *BreakHandler) Create(c *gin.Context) {
	barberID, ok := targetBarber(c)
	if !ok {
		return
	}

	var req CreateBreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, err := h.breaks.Create(c.Request.Context(), schedule.CreateBreakInput{
		BarbershopID: middleware.BarbershopID(c),
		BarberID:     barberID,
		ActorID:      middleware.ActorID(c),
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Reason:       req.Reason,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BreakHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	err := h.breaks.Delete(c.Request.Context(), middleware.BarbershopID(c), id, agendaScope(c), middleware.ActorID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
