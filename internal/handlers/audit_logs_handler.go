package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs *audit.Logger
}

func NewAuditLogsHandler(logs *audit.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := audit.Filter{
		BarbershopID: middleware.BarbershopID(c),
		Action:       c.Query("action"),
		Entity:       c.Query("entity"),
		Limit:        limit,
		Offset:       (page - 1) * limit,
	}

	if s := c.Query("from"); s != "" {
		if from, err := time.Parse("2006-01-02", s); err == nil {
			f.From = &from
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err := time.Parse("2006-01-02", s); err == nil {
			end := to.Add(24 * time.Hour)
			f.To = &end
		}
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
