package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/treemap/internal/config"
	"github.com/UnknownOlympus/treemap/internal/events"
	"github.com/UnknownOlympus/treemap/internal/geocoding"
	"github.com/UnknownOlympus/treemap/internal/geometry"
	"github.com/UnknownOlympus/treemap/internal/httpapi"
	"github.com/UnknownOlympus/treemap/internal/metrics"
	"github.com/UnknownOlympus/treemap/internal/repository"
	"github.com/UnknownOlympus/treemap/internal/service"
	"github.com/UnknownOlympus/treemap/internal/treeform"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Canceled on interrupt so the servers can shut down gracefully.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)
	if cfg.Env != envLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create a separate registry for metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	if cfg.Migrate {
		if err := repository.Migrate(cfg.Database.URL(), logger); err != nil {
			log.Fatalf("Failed to migrate DB: %v", err)
		}
	}

	dtb, err := repository.NewDatabase(ctx, cfg.Database.URL())
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	repo := repository.NewRepository(dtb, logger)

	area, err := newServiceArea(cfg, repo)
	if err != nil {
		log.Fatalf("Failed to load service area: %v", err)
	}

	// The provider is chosen at runtime (Google, Nominatim) and wrapped in an LRU cache.
	provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.ProviderType),
		APIKey:    cfg.APIKey,
		RateLimit: cfg.RateLimit,
		Region:    cfg.ProviderRegion,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to create geocoding provider: %v", err)
	}
	cachedProvider, err := geocoding.NewCachedProvider(provider, cfg.GeocodeCacheSize, appMetrics)
	if err != nil {
		log.Fatalf("Failed to create geocoding cache: %v", err)
	}
	logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.ProviderType)

	publisher, closePublisher := newPublisher(cfg, logger)
	defer closePublisher()

	clock := clockwork.NewRealClock()
	treeService := service.NewTreeService(
		logger,
		repo,
		treeform.NewValidator(area, cfg.RegionName),
		publisher,
		appMetrics,
		clock,
	)
	locator := service.NewLocatorService(
		logger,
		cachedProvider,
		cfg.ProviderType, // Provider name for metrics
		appMetrics,
		cfg.AddrPrefix,
		clock,
	)

	apiServer := httpapi.NewServer(cfg.HTTPPort, httpapi.NewRouter(logger, treeService, locator))
	monitoringServer := newMonitoringServer(ctx, logger, reg, dtb, cfg.HealthPort)

	go serve(ctx, logger, "API", apiServer)
	go serve(ctx, logger, "monitoring", monitoringServer)

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	<-ctx.Done()
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, srv := range []*http.Server{apiServer, monitoringServer} {
		if err = srv.Shutdown(shutdownCtx); err != nil {
			logger.ErrorContext(shutdownCtx, "Server shutdown failed", "addr", srv.Addr, "error", err)
		}
	}

	logger.InfoContext(shutdownCtx, "Application stopped gracefully.")
}

// newServiceArea returns the configured containment check: PostGIS
// neighborhoods or an in-memory index loaded from a GeoJSON file.
func newServiceArea(cfg *config.Config, repo repository.Interface) (treeform.ServiceArea, error) {
	if cfg.BoundarySource != config.BoundarySourceGeoJSON {
		return repository.NewServiceArea(repo), nil
	}

	idx, err := geometry.LoadGeoJSON(cfg.BoundaryFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load boundaries: %w", err)
	}
	return idx, nil
}

// newPublisher returns a Kafka publisher when brokers are configured and a
// no-op publisher otherwise, together with its close function.
func newPublisher(cfg *config.Config, logger *slog.Logger) (events.Publisher, func()) {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info("No Kafka brokers configured, tree events are disabled")
		return events.NopPublisher{}, func() {}
	}

	pub := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	return pub, func() {
		if err := pub.Close(); err != nil {
			logger.Error("Failed to close Kafka publisher", "error", err)
		}
	}
}

func serve(ctx context.Context, log *slog.Logger, name string, srv *http.Server) {
	log.InfoContext(ctx, "Starting server", "server", name, "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.ErrorContext(ctx, "Server failed", "server", name, "error", err)
	}
}

// newMonitoringServer builds the server that provides health check and
// metrics endpoints.
//
// Parameters:
// - ctx: A context.Context for managing cancellation and timeouts.
// - log: A logger for logging server events and errors.
// - reg: A registry with Prometheus collectors.
// - dtb: A pgxpool connector for database methods (ping)
// - port: The port number on which the server will listen.
func newMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	dtb *pgxpool.Pool,
	port int,
) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, req *http.Request) {
		log.DebugContext(ctx, "Performing health checks...")
		status, body := http.StatusOK, "OK"
		if err := dtb.Ping(req.Context()); err != nil {
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		}
		writer.WriteHeader(status)
		if _, err := writer.Write([]byte(body)); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}

		log.DebugContext(ctx, "Health checks completed", "status", status)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	readTimeout := 5
	writeTimeout := 10
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
