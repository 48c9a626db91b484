package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

type rejectionBody struct {
	Code        string               `json:"error_code"`
	Message     string               `json:"message"`
	Violations  []schedule.Violation `json:"violations"`
	Suggestions []domain.Suggestion  `json:"suggestions"`
}

// renderError writes a use case error. Booking rejections keep their
// violations and suggestions.
func renderError(c *gin.Context, err error) {
	var rej *domain.Rejection
	if errors.As(err, &rej) {
		suggestions := rej.Suggestions
		if suggestions == nil {
			suggestions = []domain.Suggestion{}
		}
		c.JSON(httperr.StatusFor(rej.Kind), rejectionBody{
			Code:        string(rej.Kind),
			Message:     strings.Join(rej.Messages(), "; "),
			Violations:  rej.Violations,
			Suggestions: suggestions,
		})
		return
	}
	httperr.FromError(c, err)
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid "+name+".")
		return 0, false
	}
	return uint(id), true
}

// uintList reads "1,2,3". Blank input yields nil.
func uintList(raw string) ([]uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]uint, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil || n == 0 {
			return nil, errors.New("invalid id list")
		}
		out = append(out, uint(n))
	}
	return out, nil
}

// targetBarber is the barber a request acts on. Owners may name another
// barber with ?barber_id; barbers always act on themselves.
func targetBarber(c *gin.Context) (uint, bool) {
	self := middleware.UserID(c)
	raw := c.Query("barber_id")
	if raw == "" || !middleware.IsOwner(c) {
		return self, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_barber_id", "Invalid barber_id.")
		return 0, false
	}
	return uint(id), true
}

// agendaScope limits appointment lookups to the caller's own agenda unless
// the caller owns the shop.
func agendaScope(c *gin.Context) *uint {
	if middleware.IsOwner(c) {
		return nil
	}
	id := middleware.UserID(c)
	return &id
}

func bindError(c *gin.Context, err error) {
	httperr.BadRequest(c, "invalid_request", err.Error())
}
