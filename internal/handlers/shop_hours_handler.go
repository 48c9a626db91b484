package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

type ShopHoursHandler struct {
	hours *schedule.ManageShopHours
}

func NewShopHoursHandler(hours *schedule.ManageShopHours) *ShopHoursHandler {
	return &ShopHoursHandler{hours: hours}
}

type ShopDayConfig struct {
	Weekday   *int   `json:"weekday" binding:"required,min=0,max=6"`
	IsClosed  bool   `json:"is_closed"`
	OpenTime  string `json:"open_time" binding:"hhmm"`
	CloseTime string `json:"close_time" binding:"hhmm"`
}

type ShopHoursUpdateRequest struct {
	Days []ShopDayConfig `json:"days" binding:"required,dive"`
}

func (h *ShopHoursHandler) Get(c *gin.Context) {
	days, err := h.hours.Get(c.Request.Context(), middleware.BarbershopID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (h *ShopHoursHandler) Update(c *gin.Context) {
	var req ShopHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	days := make([]models.ShopHours, 0, len(req.Days))
	for _, d := range req.Days {
		days = append(days, models.ShopHours{
			Weekday:   *d.Weekday,
			IsClosed:  d.IsClosed,
			OpenTime:  d.OpenTime,
			CloseTime: d.CloseTime,
		})
	}

	saved, err := h.hours.Replace(c.Request.Context(), schedule.ReplaceShopHoursInput{
		BarbershopID: middleware.BarbershopID(c),
		ActorID:      middleware.ActorID(c),
		Days:         days,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": saved})
}
