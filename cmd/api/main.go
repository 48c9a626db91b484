package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memstore"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
	"github.com/BruksfildServices01/barber-booking/internal/notifier"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/tracing"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type stores struct {
	bookings domain.Repository
	schedule schedule.Repository
	audit    audit.Store
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(cfg.LogLevel, cfg.LogPretty)
	timezone.DefaultTimezone = cfg.DefaultTimezone

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Enabled:      cfg.OTelEnabled,
		ServiceName:  "barber-booking",
		OTLPEndpoint: cfg.OTelEndpoint,
		SampleRatio:  cfg.OTelSampleRatio,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("tracing setup failed")
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("store setup failed")
	}

	m := metrics.New(prometheus.DefaultRegisterer, "barber_booking")

	scheduleCache := cache.NewScheduleCache(cfg.ScheduleCacheTTL)
	scheduleCache.Observe(m.CacheHit, m.CacheMiss)

	auditLogger := audit.New(st.audit)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	stream := newStream(cfg, log)
	stream.Start(ctx)

	messages, closeMessages := newMessages(cfg, log)

	if err := validators.Register(); err != nil {
		log.Fatal().Err(err).Msg("validator registration failed")
	}

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Config:   cfg,
		Bookings: st.bookings,
		Schedule: st.schedule,
		Cache:    scheduleCache,
		AuditLog: auditLogger,
		Audit:    auditDispatcher,
		Stream:   stream,
		Messages: messages,
		Metrics:  m,
		Log:      log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, "barber-booking"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("store", cfg.StoreDriver).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	auditDispatcher.Close()
	if err := closeMessages(); err != nil {
		log.Error().Err(err).Msg("notification writer close failed")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown failed")
	}
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (stores, error) {
	if cfg.StoreDriver == config.StoreMemory {
		s := memstore.New()
		demo, err := memstore.SeedDemo(ctx, s, cfg.DefaultTimezone)
		if err != nil {
			return stores{}, err
		}
		log.Warn().
			Str("slug", demo.Shop.Slug).
			Uint("owner_id", demo.Owner.ID).
			Uint("barber_id", demo.Barber.ID).
			Msg("using in-memory store with demo data")
		return stores{bookings: s, schedule: s, audit: s}, nil
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return stores{}, err
	}
	return stores{
		bookings: infraRepo.NewAppointmentGormRepository(db),
		schedule: infraRepo.NewScheduleGormRepository(db),
		audit:    infraRepo.NewAuditGormRepository(db),
	}, nil
}

// newStream fans availability out through Redis when configured so every
// API instance sees every booking.
func newStream(cfg *config.Config, log zerolog.Logger) *notifier.Service {
	if cfg.RedisURL == "" {
		return notifier.NewLocal()
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid REDIS_URL")
	}
	return notifier.NewRedis(redis.NewClient(opts), notifier.RelayConfig{
		Base:        cfg.NotifierReconnectBase,
		MaxAttempts: cfg.NotifierMaxAttempts,
	}, log)
}

func newMessages(cfg *config.Config, log zerolog.Logger) (notification.Dispatcher, func() error) {
	if len(notification.SplitBrokers(cfg.KafkaBrokers)) == 0 {
		return notification.NewLogDispatcher(log), func() error { return nil }
	}
	k := notification.NewKafkaDispatcher(cfg.KafkaBrokers, cfg.NotificationTopic)
	return k, k.Close
}
