package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/AnshRaj112/mindcare-backend/internal/config"
	"github.com/AnshRaj112/mindcare-backend/internal/database"
	"github.com/AnshRaj112/mindcare-backend/internal/events"
	"github.com/AnshRaj112/mindcare-backend/internal/handlers"
	"github.com/AnshRaj112/mindcare-backend/internal/logger"
	"github.com/AnshRaj112/mindcare-backend/internal/middleware"
	"github.com/AnshRaj112/mindcare-backend/internal/routes"
	"github.com/AnshRaj112/mindcare-backend/internal/services"
	"github.com/AnshRaj112/mindcare-backend/internal/storage"
)

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()

	log := logger.New(cfg.Environment)
	defer log.Sync()
	if envErr != nil {
		log.Info("no .env file found, using process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if cfg.NeedsRedis() {
		log.Info("connecting to Redis")
		if err := database.ConnectRedis(cfg.RedisURI); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer database.DisconnectRedis()
	}

	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	bus := events.NewBus()
	if cfg.EventsRedis {
		bridge := events.NewRedisBridge(database.RedisClient, bus, log)
		bridge.Run(ctx)
		log.Info("event bridge started", zap.String("channel", events.Channel), zap.String("origin", bridge.Origin()))
	}

	lifecycle := services.NewLifecycleService(store, bus, log, nil)
	identity := services.NewIdentityService(lifecycle, store, bus, log, cfg.SessionTTL, nil)
	bookings := services.NewBookingService(store, lifecycle, bus, log, nil)
	progress := services.NewProgressService(store, bus, log, services.ProgressOptions{
		Location:      cfg.Location,
		ResetOnAccept: cfg.ProgressResetOnAccept,
	})
	deps := handlers.Deps{
		Log:         log,
		Bus:         bus,
		Identity:    identity,
		Lifecycle:   lifecycle,
		Assessments: services.NewAssessmentService(log, services.NewPlanGenerator(nil)),
		Progress:    progress,
		Bookings:    bookings,
		Analytics:   services.NewAnalyticsService(lifecycle, bookings, log),
		Logs:        services.NewLogService(store, bus, log, cfg.Location, nil),
	}

	if cfg.CloudinaryEnabled() {
		cld, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Warn("cloudinary unavailable, uploads disabled", zap.Error(err))
		} else {
			deps.Uploader = cld
			log.Info("cloudinary service initialized")
		}
	} else {
		log.Warn("cloudinary credentials not found, uploads disabled")
	}

	seedCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if _, err := identity.SeedAdmin(seedCtx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if cfg.SeedDemoData {
		if _, err := lifecycle.SeedDemoTherapists(seedCtx); err != nil {
			return fmt.Errorf("seed demo therapists: %w", err)
		}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		log.Info("production security enabled", zap.String("allowed_host", cfg.AllowedHost))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	routes.SetupRoutes(r, handlers.New(deps), identity)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("mindcare backend listening", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}

// openStore connects the configured driver. The returned func releases it.
func openStore(cfg *config.Config, log *zap.Logger) (storage.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn("using in-memory store, data is lost on restart")
		return storage.NewMemoryStore(), func() {}, nil
	case config.StoreRedis:
		return storage.NewRedisStore(database.RedisClient), func() {}, nil
	case config.StoreMongo:
		log.Info("connecting to MongoDB", zap.String("database", database.MongoDatabaseName(cfg.MongoURI)))
		if err := database.Connect(cfg.MongoURI); err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		return storage.NewMongoStore(database.DB), func() { database.Disconnect() }, nil
	case config.StorePostgres:
		log.Info("connecting to PostgreSQL")
		if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return storage.NewPostgresStore(database.PostgresDB), func() { database.DisconnectPostgres() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
