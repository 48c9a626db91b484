package routes

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memstore"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
	"github.com/BruksfildServices01/barber-booking/internal/notifier"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

const secret = "test-secret"

type server struct {
	t      *testing.T
	r      *gin.Engine
	demo   *memstore.Demo
	store  *memstore.Store
	stream *notifier.Service
}

// newServer runs the API on the demo data. The clock is Monday 2026-03-02
// 08:00 UTC; the demo shop works Monday to Saturday.
func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validators.Register())

	store := memstore.New()
	demo, err := memstore.SeedDemo(context.Background(), store, "UTC")
	require.NoError(t, err)

	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	stream := notifier.NewLocal()

	r := gin.New()
	RegisterRoutes(r, Deps{
		Config: &config.Config{
			JWTSecret:       secret,
			PublicRateLimit: 1000,
			PublicRateBurst: 1000,
		},
		Bookings:  store,
		Schedule:  store,
		Cache:     cache.NewScheduleCache(time.Minute),
		AuditLog:  audit.New(store),
		Stream:    stream,
		Messages:  notification.NewLogDispatcher(zerolog.Nop()),
		Log:       zerolog.Nop(),
		Now:       func() time.Time { return now },
		Heartbeat: time.Hour,
	})

	return &server{t: t, r: r, demo: demo, store: store, stream: stream}
}

func (s *server) token(userID uint, role string) string {
	s.t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":          userID,
		"barbershopId": s.demo.Shop.ID,
		"role":         role,
		"exp":          time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(s.t, err)
	return tok
}

func (s *server) owner() string  { return s.token(s.demo.Owner.ID, middleware.RoleOwner) }
func (s *server) barber() string { return s.token(s.demo.Barber.ID, middleware.RoleBarber) }

func (s *server) do(method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") && w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w, out
}

func (s *server) book(hm string, barberID uint) (*httptest.ResponseRecorder, map[string]any) {
	return s.do(http.MethodPost, "/api/public/demo/appointments", "", map[string]any{
		"barber_id":    barberID,
		"service_ids":  []uint{s.demo.Services[0].ID},
		"date":         "2026-03-03",
		"time":         hm,
		"client_name":  "Ana",
		"client_phone": "+5511999990000",
	})
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	w, body := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "connected", body["stream"])
}

func TestPublicShop(t *testing.T) {
	s := newServer(t)

	w, body := s.do(http.MethodGet, "/api/public/demo", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["barbers"], 2)
	assert.Len(t, body["services"], 2)

	w, body = s.do(http.MethodGet, "/api/public/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "barbershop_not_found", body["error_code"])
}

func TestPublicAvailability(t *testing.T) {
	s := newServer(t)

	path := fmt.Sprintf("/api/public/demo/availability?barber_id=%d&date=2026-03-03&service_ids=%d",
		s.demo.Barber.ID, s.demo.Services[0].ID)
	w, body := s.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, body["is_available"])
	assert.Equal(t, map[string]any{"start": "09:00", "end": "18:00"}, body["working_hours"])

	slots := body["slots"].([]any)
	require.NotEmpty(t, slots)
	first := slots[0].(map[string]any)
	assert.Equal(t, "09:00", first["start"])
	assert.Equal(t, "09:30", first["end"])
	assert.Equal(t, true, first["available"])

	var lunch map[string]any
	for _, raw := range slots {
		if sl := raw.(map[string]any); sl["start"] == "12:00" {
			lunch = sl
		}
	}
	require.NotNil(t, lunch)
	assert.Equal(t, false, lunch["available"])
	assert.Equal(t, "break", lunch["reason"])

	// Sunday is closed for the whole shop.
	path = fmt.Sprintf("/api/public/demo/availability?barber_id=%d&date=2026-03-08&duration=30", s.demo.Barber.ID)
	w, body = s.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["is_available"])
	assert.Equal(t, "closed", body["reason"])

	w, body = s.do(http.MethodGet, "/api/public/demo/availability?barber_id=1&date=03-03-2026&duration=30", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", body["error_code"])
}

func TestPublicBookingAndConflict(t *testing.T) {
	s := newServer(t)

	w, body := s.book("09:00", s.demo.Barber.ID)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Regexp(t, `^[A-Z0-9]{6,}$`, body["confirmation_code"])
	assert.Equal(t, "2026-03-03", body["date"])
	assert.Equal(t, "09:00", body["start_time"])
	assert.Equal(t, "09:30", body["end_time"])
	assert.Equal(t, "pending", body["status"])

	w, body = s.book("09:15", s.demo.Barber.ID)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.Equal(t, "slot_conflict", body["error_code"])
	assert.Equal(t, "Time slot occupied", body["message"])
	assert.NotEmpty(t, body["suggestions"])

	check := fmt.Sprintf("/api/public/demo/availability/check?barber_id=%d&date=2026-03-03&start=09:00&end=09:30", s.demo.Barber.ID)
	w, body = s.do(http.MethodGet, check, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["available"])
	assert.Equal(t, "appointment", body["reason"])
}

func TestPublicBookingValidation(t *testing.T) {
	s := newServer(t)

	w, body := s.do(http.MethodPost, "/api/public/demo/appointments", "", map[string]any{
		"barber_id":   s.demo.Barber.ID,
		"service_ids": []uint{s.demo.Services[0].ID},
		"date":        "2026-03-03",
		"time":        "9h",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", body["error_code"])

	// Inside minimum notice: business rule, not a schedule conflict.
	w, body = s.do(http.MethodPost, "/api/public/demo/appointments", "", map[string]any{
		"barber_id":    s.demo.Barber.ID,
		"service_ids":  []uint{s.demo.Services[0].ID},
		"date":         "2026-03-02",
		"time":         "09:00",
		"client_name":  "Ana",
		"client_phone": "+5511999990000",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "business_rule_violation", body["error_code"])
}

func TestSecuredRoutesNeedToken(t *testing.T) {
	s := newServer(t)

	w, body := s.do(http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing_authorization_header", body["error_code"])

	w, body = s.do(http.MethodGet, "/api/me", s.barber(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "demo", body["barbershop"].(map[string]any)["slug"])
}

func TestAgendaAndCancel(t *testing.T) {
	s := newServer(t)

	w, booked := s.book("10:00", s.demo.Barber.ID)
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(booked["id"].(float64))

	w, body := s.do(http.MethodGet, "/api/me/appointments?date=2026-03-03", s.barber(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["total"])

	// The owner's own agenda is empty; the barber's agenda is reachable by id.
	w, body = s.do(http.MethodGet, "/api/me/appointments?date=2026-03-03", s.owner(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, body["total"])
	w, body = s.do(http.MethodGet, fmt.Sprintf("/api/me/appointments?date=2026-03-03&barber_id=%d", s.demo.Barber.ID), s.owner(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["total"])

	cancel := fmt.Sprintf("/api/me/appointments/%d/cancel", id)
	w, body = s.do(http.MethodPatch, cancel, s.barber(), map[string]string{"reason": "client asked"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "cancelled", body["status"])
	assert.Equal(t, "client asked", body["cancellation_reason"])

	w, body = s.do(http.MethodPatch, cancel, s.barber(), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_state", body["error_code"])

	w, _ = s.book("10:00", s.demo.Barber.ID)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestBarberCannotTouchAnotherAgenda(t *testing.T) {
	s := newServer(t)

	w, booked := s.book("11:00", s.demo.Owner.ID)
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(booked["id"].(float64))

	w, _ = s.do(http.MethodPatch, fmt.Sprintf("/api/me/appointments/%d/cancel", id), s.barber(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body := s.do(http.MethodPatch, fmt.Sprintf("/api/me/appointments/%d/status", id), s.owner(),
		map[string]string{"status": "arrived"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "arrived", body["status"])
}

func TestOwnerOnlyRoutes(t *testing.T) {
	s := newServer(t)

	w, body := s.do(http.MethodPatch, "/api/me/barbershop", s.barber(), map[string]any{"min_notice_hours": 0})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", body["error_code"])

	w, body = s.do(http.MethodPatch, "/api/me/barbershop", s.owner(), map[string]any{"min_notice_hours": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 0, body["min_notice_hours"])

	w, body = s.do(http.MethodPatch, "/api/me/barbershop", s.owner(), map[string]any{"timezone": "Mars/Olympus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_timezone", body["error_code"])

	// Notice is gone, so a same-morning booking now passes.
	w, _ = s.do(http.MethodPost, "/api/public/demo/appointments", "", map[string]any{
		"barber_id":    s.demo.Barber.ID,
		"service_ids":  []uint{s.demo.Services[0].ID},
		"date":         "2026-03-02",
		"time":         "09:00",
		"client_name":  "Ana",
		"client_phone": "+5511999990000",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestBreakBlocksAvailability(t *testing.T) {
	s := newServer(t)

	w, body := s.do(http.MethodPost, "/api/me/breaks", s.barber(), map[string]string{
		"date":       "2026-03-03",
		"start_time": "15:00",
		"end_time":   "16:00",
		"reason":     "dentist",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	breakID := uint(body["id"].(float64))

	w, body = s.book("15:00", s.demo.Barber.ID)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_conflict", body["error_code"])

	w, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/me/breaks/%d", breakID), s.barber(), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w, _ = s.book("15:00", s.demo.Barber.ID)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAvailabilityStream(t *testing.T) {
	s := newServer(t)
	srv := httptest.NewServer(s.r)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := fmt.Sprintf("%s/api/public/demo/availability/stream?barber_ids=%d", srv.URL, s.demo.Barber.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	events := bufio.NewReader(resp.Body)
	next := func() (string, string) {
		var event, data string
		for {
			line, err := events.ReadString('\n')
			require.NoError(t, err)
			line = strings.TrimRight(line, "\n")
			switch {
			case strings.HasPrefix(line, "event:"):
				event = strings.TrimPrefix(line, "event:")
			case strings.HasPrefix(line, "data:"):
				data = strings.TrimPrefix(line, "data:")
			case line == "" && event != "":
				return event, data
			}
		}
	}

	event, _ := next()
	require.Equal(t, "ready", event)

	w, _ := s.book("14:00", s.demo.Barber.ID)
	require.Equal(t, http.StatusCreated, w.Code)

	event, data := next()
	require.Equal(t, "availability", event)
	var u notifier.Update
	require.NoError(t, json.Unmarshal([]byte(data), &u))
	assert.Equal(t, s.demo.Barber.ID, u.BarberID)
	assert.Equal(t, "2026-03-03", u.Date)
	assert.Positive(t, u.AvailableSlots)
}

func TestStreamRejectsForeignBarber(t *testing.T) {
	s := newServer(t)
	w, _ := s.do(http.MethodGet, "/api/public/demo/availability/stream?barber_ids=999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTimeOffLifecycle(t *testing.T) {
	s := newServer(t)

	w, body := s.do(http.MethodPost, "/api/me/time-off", s.barber(), map[string]string{
		"start_date": "2026-03-03",
		"end_date":   "2026-03-03",
		"reason":     "wedding",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "pending", body["status"])
	id := uint(body["id"].(float64))

	w, body = s.do(http.MethodPost, "/api/me/time-off", s.owner(), map[string]string{
		"start_date": "2026-03-10",
		"end_date":   "2026-03-11",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	ownerEntry := uint(body["id"].(float64))

	w, _ = s.do(http.MethodPatch, fmt.Sprintf("/api/me/time-off/%d/cancel", ownerEntry), s.barber(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(http.MethodPatch, fmt.Sprintf("/api/me/time-off/%d/approve", id), s.barber(), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body = s.do(http.MethodPatch, fmt.Sprintf("/api/me/time-off/%d/approve", id), s.owner(), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "approved", body["status"])
	assert.EqualValues(t, s.demo.Owner.ID, body["approved_by"])

	path := fmt.Sprintf("/api/public/demo/availability?barber_id=%d&date=2026-03-03&duration=30", s.demo.Barber.ID)
	w, body = s.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["is_available"])
	assert.Equal(t, "time_off", body["reason"])
}

func TestAgendaByMonth(t *testing.T) {
	s := newServer(t)

	for _, hm := range []string{"09:00", "16:00"} {
		w, _ := s.book(hm, s.demo.Barber.ID)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, body := s.do(http.MethodGet, "/api/me/appointments/month?year=2026&month=3", s.barber(), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 2, body["total"])

	w, body = s.do(http.MethodGet, "/api/me/appointments/month?year=2026&month=4", s.barber(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, body["total"])

	w, _ = s.do(http.MethodGet, "/api/me/appointments/month?year=2026", s.barber(), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
