package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

type ClientHandler struct {
	catalog *appointment.Catalog
}

func NewClientHandler(catalog *appointment.Catalog) *ClientHandler {
	return &ClientHandler{catalog: catalog}
}

// ======================================================
// LIST CLIENTS
// ======================================================

// List searches name, phone and email with ?query.
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.catalog.Clients(c.Request.Context(), middleware.BarbershopID(c), c.Query("query"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}
