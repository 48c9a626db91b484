package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

// SpecialDateHandler manages holidays and one-off hours. Owners only.
type SpecialDateHandler struct {
	dates *schedule.ManageSpecialDates
}

func NewSpecialDateHandler(dates *schedule.ManageSpecialDates) *SpecialDateHandler {
	return &SpecialDateHandler{dates: dates}
}

type SpecialDateBreakRequest struct {
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" binding:"required,hhmm"`
}

type SaveSpecialDateRequest struct {
	BarberID  *uint                     `json:"barber_id"`
	Date      string                    `json:"date" binding:"required,ymd"`
	IsHoliday bool                      `json:"is_holiday"`
	OpenTime  string                    `json:"open_time" binding:"hhmm"`
	CloseTime string                    `json:"close_time" binding:"hhmm"`
	Note      string                    `json:"note" binding:"max=255"`
	Breaks    []SpecialDateBreakRequest `json:"breaks" binding:"dive"`
}

// List returns exceptions between ?from and ?to (default: the next 90 days).
func (h *SpecialDateHandler) List(c *gin.Context) {
	from := time.Now().UTC()
	to := from.AddDate(0, 0, 90)

	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "from must be YYYY-MM-DD.")
			return
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "to must be YYYY-MM-DD.")
			return
		}
		to = t
	}

	out, err := h.dates.List(c.Request.Context(), middleware.BarbershopID(c), from, to)
	if err != nil {
		renderError(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *SpecialDateHandler) Save(c *gin.Context) {
	var req SaveSpecialDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	breaks := make([]models.SpecialDateBreak, 0, len(req.Breaks))
	for _, b := range req.Breaks {
		breaks = append(breaks, models.SpecialDateBreak{StartTime: b.StartTime, EndTime: b.EndTime})
	}

	sd, err := h.dates.Save(c.Request.Context(), schedule.SaveSpecialDateInput{
		BarbershopID: middleware.BarbershopID(c),
		ActorID:      middleware.ActorID(c),
		BarberID:     req.BarberID,
		Date:         req.Date,
		IsHoliday:    req.IsHoliday,
		OpenTime:     req.OpenTime,
		CloseTime:    req.CloseTime,
		Note:         req.Note,
		Breaks:       breaks,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, sd)
}

func (h *SpecialDateHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.dates.Delete(c.Request.Context(), middleware.BarbershopID(c), id, middleware.ActorID(c)); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
