package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
	"github.com/BruksfildServices01/barber-booking/internal/notifier"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucSchedule "github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

// Deps are the long-lived collaborators built by main.
type Deps struct {
	Config   *config.Config
	Bookings domain.Repository
	Schedule schedule.Repository
	Cache    ucSchedule.Cache

	AuditLog  *audit.Logger
	Audit     *audit.Dispatcher
	Stream    *notifier.Service
	Messages  notification.Dispatcher
	Metrics   *metrics.Metrics
	Log       zerolog.Logger
	Now       func() time.Time
	Heartbeat time.Duration
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log, d.Metrics))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "stream": string(d.Stream.State())})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	resolver := ucSchedule.NewResolver(d.Schedule, d.Cache)

	publicLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  rate.Limit(cfg.PublicRateLimit),
		Burst: cfg.PublicRateBurst,
		TTL:   10 * time.Minute,
	})

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	apDeps := ucAppointment.Deps{
		Repo:     d.Bookings,
		Schedule: d.Schedule,
		Resolver: resolver,
		Notifier: d.Stream,
		Messages: d.Messages,
		Audit:    d.Audit,
		Metrics:  d.Metrics,
		Log:      d.Log,
		Now:      d.Now,
	}

	catalogUC := ucAppointment.NewCatalog(apDeps)
	waitlistUC := ucAppointment.NewWaitlist(apDeps)
	announcer := ucAppointment.NewAnnouncer(apDeps, waitlistUC)

	availabilityUC := ucAppointment.NewGetAvailability(apDeps)
	checkSlotUC := ucAppointment.NewCheckSlot(apDeps)
	createBookingUC := ucAppointment.NewCreateBooking(apDeps, announcer, waitlistUC)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(apDeps, announcer)
	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(apDeps, cancelAppointmentUC, announcer)
	getAppointmentUC := ucAppointment.NewGetAppointment(apDeps)
	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(apDeps)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(apDeps)

	// ======================================================
	// 🧠 USE CASES — SCHEDULE
	// ======================================================
	schDeps := ucSchedule.Deps{
		Repo:      d.Schedule,
		Directory: d.Bookings,
		Resolver:  resolver,
		Notifier:  announcer,
		Audit:     d.Audit,
		Log:       d.Log,
		Now:       d.Now,
	}

	workingHoursUC := ucSchedule.NewManageWorkingHours(schDeps)
	shopHoursUC := ucSchedule.NewManageShopHours(schDeps)
	specialDatesUC := ucSchedule.NewManageSpecialDates(schDeps)
	timeOffUC := ucSchedule.NewManageTimeOff(schDeps)
	breaksUC := ucSchedule.NewManageBreaks(schDeps)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	meHandler := handlers.NewMeHandler(catalogUC)
	barbershopHandler := handlers.NewBarbershopHandler(catalogUC)
	serviceHandler := handlers.NewServiceHandler(catalogUC)
	clientHandler := handlers.NewClientHandler(catalogUC)

	workingHoursHandler := handlers.NewWorkingHoursHandler(workingHoursUC)
	shopHoursHandler := handlers.NewShopHoursHandler(shopHoursUC)
	specialDateHandler := handlers.NewSpecialDateHandler(specialDatesUC)
	timeOffHandler := handlers.NewTimeOffHandler(timeOffUC)
	breakHandler := handlers.NewBreakHandler(breaksUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		catalogUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		getAppointmentUC,
		createBookingUC,
		cancelAppointmentUC,
		updateStatusUC,
		waitlistUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLog)

	publicHandler := handlers.NewPublicHandler(
		catalogUC,
		availabilityUC,
		checkSlotUC,
		createBookingUC,
		waitlistUC,
		d.Stream,
		d.Log,
	)
	if d.Heartbeat > 0 {
		publicHandler.Heartbeat = d.Heartbeat
	}

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public/:slug")
		publicAPI.Use(publicLimiter.RateLimit())
		{
			publicAPI.GET("", publicHandler.Shop)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.GET("/availability/check", publicHandler.Check)
			publicAPI.GET("/availability/stream", publicHandler.Stream)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
			publicAPI.POST("/waitlist", publicHandler.JoinWaitlist)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		owner := middleware.RequireRole(middleware.RoleOwner)
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/barbershop", barbershopHandler.GetMeBarbershop)
			secured.PATCH("/me/barbershop", owner, barbershopHandler.UpdateMeBarbershop)
			secured.GET("/me/barbershop/barbers", barbershopHandler.Barbers)

			secured.GET("/me/barbershop/hours", shopHoursHandler.Get)
			secured.PUT("/me/barbershop/hours", owner, shopHoursHandler.Update)

			secured.GET("/me/special-dates", specialDateHandler.List)
			secured.PUT("/me/special-dates", owner, specialDateHandler.Save)
			secured.DELETE("/me/special-dates/:id", owner, specialDateHandler.Delete)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", owner, serviceHandler.Create)
			secured.PATCH("/me/services/:id", owner, serviceHandler.Update)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			secured.GET("/me/breaks", breakHandler.List)
			secured.POST("/me/breaks", breakHandler.Create)
			secured.DELETE("/me/breaks/:id", breakHandler.Delete)

			secured.GET("/me/time-off", timeOffHandler.List)
			secured.POST("/me/time-off", timeOffHandler.Request)
			secured.PATCH("/me/time-off/:id/approve", owner, timeOffHandler.Approve)
			secured.PATCH("/me/time-off/:id/reject", owner, timeOffHandler.Reject)
			secured.PATCH("/me/time-off/:id/cancel", timeOffHandler.Cancel)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/me/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/status", appointmentHandler.UpdateStatus)

			secured.GET("/me/waitlist", appointmentHandler.Waitlist)

			secured.GET("/me/audit-logs", owner, auditLogsHandler.List)
		}
	}
}
