package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

type ServiceHandler struct {
	catalog *appointment.Catalog
}

func NewServiceHandler(catalog *appointment.Catalog) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required,max=100"`
	Description     string  `json:"description" binding:"max=255"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=1"`
	Price           float64 `json:"price" binding:"min=0"`
	Category        string  `json:"category" binding:"max=50"`
	IsActive        *bool   `json:"is_active"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty" binding:"omitempty,max=100"`
	Description     *string  `json:"description,omitempty" binding:"omitempty,max=255"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" binding:"omitempty,min=1"`
	Price           *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	Category        *string  `json:"category,omitempty" binding:"omitempty,max=50"`
	IsActive        *bool    `json:"is_active,omitempty"`
}

// --------- Handlers ---------

// List filters by ?category, ?active=true|false and a ?query on name or
// description.
func (h *ServiceHandler) List(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	services, err := h.catalog.Services(c.Request.Context(), middleware.BarbershopID(c), activeStr == "true")
	if err != nil {
		renderError(c, err)
		return
	}

	out := make([]models.Service, 0, len(services))
	for _, s := range services {
		if category != "" && strings.ToLower(s.Category) != category {
			continue
		}
		if activeStr == "false" && s.IsActive {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(s.Name), query) &&
			!strings.Contains(strings.ToLower(s.Description), query) {
			continue
		}
		out = append(out, s)
	}

	c.JSON(http.StatusOK, out)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	s, err := h.catalog.CreateService(c.Request.Context(), middleware.BarbershopID(c), middleware.ActorID(c), appointment.ServiceInput{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Category:        req.Category,
		IsActive:        req.IsActive,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	s, err := h.catalog.UpdateService(c.Request.Context(), middleware.BarbershopID(c), id, middleware.ActorID(c), appointment.ServicePatch{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Category:        req.Category,
		IsActive:        req.IsActive,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
