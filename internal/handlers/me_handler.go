package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

type MeHandler struct {
	catalog *appointment.Catalog
}

func NewMeHandler(catalog *appointment.Catalog) *MeHandler {
	return &MeHandler{catalog: catalog}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()

	barber, err := h.catalog.Barber(ctx, middleware.BarbershopID(c), middleware.UserID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	shop, err := h.catalog.Shop(ctx, barber.BarbershopID)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":            barber.ID,
			"name":          barber.Name,
			"email":         barber.Email,
			"phone":         barber.Phone,
			"role":          c.GetString(middleware.ContextUserRole),
			"barbershop_id": barber.BarbershopID,
		},
		"barbershop": gin.H{
			"id":       shop.ID,
			"name":     shop.Name,
			"slug":     shop.Slug,
			"phone":    shop.Phone,
			"address":  shop.Address,
			"timezone": shop.Timezone,
		},
	})
}
