package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

type WorkingHoursHandler struct {
	hours *schedule.ManageWorkingHours
}

func NewWorkingHoursHandler(hours *schedule.ManageWorkingHours) *WorkingHoursHandler {
	return &WorkingHoursHandler{hours: hours}
}

type WorkingDayConfig struct {
	Weekday    *int   `json:"weekday" binding:"required,min=0,max=6"`
	IsWorking  bool   `json:"is_working"`
	StartTime  string `json:"start_time" binding:"hhmm"`
	EndTime    string `json:"end_time" binding:"hhmm"`
	BreakStart string `json:"break_start" binding:"hhmm"`
	BreakEnd   string `json:"break_end" binding:"hhmm"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

// Get returns the weekly template of the caller, or of ?barber_id for
// owners.
func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barberID, ok := targetBarber(c)
	if !ok {
		return
	}

	days, err := h.hours.Get(c.Request.Context(), middleware.BarbershopID(c), barberID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"barber_id": barberID, "days": days})
}

// Update replaces the whole weekly template.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	barberID, ok := targetBarber(c)
	if !ok {
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	days := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		days = append(days, models.WorkingHours{
			Weekday:    *d.Weekday,
			IsWorking:  d.IsWorking,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			BreakStart: d.BreakStart,
			BreakEnd:   d.BreakEnd,
		})
	}

	saved, err := h.hours.Replace(c.Request.Context(), schedule.ReplaceWorkingHoursInput{
		BarbershopID: middleware.BarbershopID(c),
		BarberID:     barberID,
		ActorID:      middleware.ActorID(c),
		Days:         days,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"barber_id": barberID, "days": saved})
}
