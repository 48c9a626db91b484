package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

type BarbershopHandler struct {
	catalog *appointment.Catalog
}

func NewBarbershopHandler(catalog *appointment.Catalog) *BarbershopHandler {
	return &BarbershopHandler{catalog: catalog}
}

type UpdateBarbershopConfigRequest struct {
	Name                *string `json:"name" binding:"omitempty,max=100"`
	Phone               *string `json:"phone" binding:"omitempty,max=20"`
	Address             *string `json:"address" binding:"omitempty,max=255"`
	Timezone            *string `json:"timezone"`
	MinNoticeHours      *int    `json:"min_notice_hours"`
	MaxAdvanceDays      *int    `json:"max_advance_days"`
	SameDayCutoff       *string `json:"same_day_cutoff" binding:"omitempty,hhmm"`
	SlotIntervalMinutes *int    `json:"slot_interval_minutes"`
}

func (h *BarbershopHandler) GetMeBarbershop(c *gin.Context) {
	shop, err := h.catalog.Shop(c.Request.Context(), middleware.BarbershopID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, shop)
}

// UpdateMeBarbershop edits the profile and booking rules. Owners only.
func (h *BarbershopHandler) UpdateMeBarbershop(c *gin.Context) {
	var req UpdateBarbershopConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	shop, err := h.catalog.UpdateShopSettings(c.Request.Context(), middleware.BarbershopID(c), middleware.ActorID(c), appointment.ShopSettingsInput{
		Name:                req.Name,
		Phone:               req.Phone,
		Address:             req.Address,
		Timezone:            req.Timezone,
		MinNoticeHours:      req.MinNoticeHours,
		MaxAdvanceDays:      req.MaxAdvanceDays,
		SameDayCutoff:       req.SameDayCutoff,
		SlotIntervalMinutes: req.SlotIntervalMinutes,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, shop)
}

// Barbers lists the active staff.
func (h *BarbershopHandler) Barbers(c *gin.Context) {
	out, err := h.catalog.Barbers(c.Request.Context(), middleware.BarbershopID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
