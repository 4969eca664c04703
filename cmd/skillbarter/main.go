package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/riandyrn/otelchi"

	"github.com/neomorfeo/skillbarter/internal/adapter/fsm"
	"github.com/neomorfeo/skillbarter/internal/adapter/metrics"
	oteladapter "github.com/neomorfeo/skillbarter/internal/adapter/otel"
	"github.com/neomorfeo/skillbarter/internal/adapter/password"
	riveradapter "github.com/neomorfeo/skillbarter/internal/adapter/river"
	"github.com/neomorfeo/skillbarter/internal/adapter/sqlite"
	"github.com/neomorfeo/skillbarter/internal/adapter/token"
	"github.com/neomorfeo/skillbarter/internal/app"
	"github.com/neomorfeo/skillbarter/internal/config"
	"github.com/neomorfeo/skillbarter/internal/domain"
	"github.com/neomorfeo/skillbarter/internal/notify"

	handler "github.com/neomorfeo/skillbarter/internal/adapter/http"
)

const serviceName = "skillbarter"

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Observability ---
	providers, err := oteladapter.Setup(ctx, oteladapter.ConfigFromEnv())
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Error("otel shutdown", "error", err)
		}
	}()

	promMetrics := metrics.New()

	// --- Adapters (out) ---
	db, err := oteladapter.OpenDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	store, err := sqlite.NewFromDB(db)
	if err != nil {
		db.Close()
		return fmt.Errorf("database: %w", err)
	}
	defer store.Close()

	dispatcher := app.NewDispatcher(logger)
	listener := notify.NewListener(promMetrics.Notifications(store.Notifications()), logger)
	dispatcher.Subscribe(listener, listener.Kinds()...)

	var publisher domain.EventPublisher
	switch cfg.EventDelivery {
	case config.DeliveryInline:
		publisher = app.NewDirectPublisher(dispatcher)
	default:
		client, err := riveradapter.Setup(ctx, db, dispatcher, logger)
		if err != nil {
			return fmt.Errorf("river: %w", err)
		}
		// The queue outlives the signal context so in-flight jobs can
		// finish during Stop.
		if err := client.Start(context.WithoutCancel(ctx)); err != nil {
			return fmt.Errorf("river start: %w", err)
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Stop(stopCtx); err != nil {
				logger.Error("river stop", "error", err)
			}
		}()
		publisher = riveradapter.NewPublisher(client)
	}
	publisher = oteladapter.NewTracingPublisher(promMetrics.Publisher(publisher))

	tokens, err := token.New(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		return fmt.Errorf("tokens: %w", err)
	}

	// --- Application ---
	trades := oteladapter.NewTracingTradeRepository(store.Trades())
	deps := handler.Deps{
		Auth:          app.NewAuthService(store.Users(), password.New(password.DefaultCost), tokens),
		Listings:      app.NewListingService(store.Listings()),
		Trades:        app.NewTradeService(trades, store.Listings(), store.Users(), publisher, fsm.New(), logger),
		Notifications: app.NewNotificationService(store.Notifications()),
		Cookie: handler.CookieConfig{
			Secure: cfg.IsProduction(),
			MaxAge: cfg.RefreshTokenTTL,
		},
		Logger: logger,
	}

	// --- Adapters (in) ---
	router := newRouter(cfg, promMetrics)
	api := handler.NewAPI(router)
	handler.Register(api, deps)

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("skillbarter listening",
			"addr", srv.Addr,
			"docs", "http://localhost:"+cfg.Port+"/docs",
			"event_delivery", cfg.EventDelivery,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}

// newRouter builds the chi router with the middleware stack. Middleware must
// be installed before any route is registered.
func newRouter(cfg config.Config, promMetrics *metrics.Metrics) *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(router)))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(limitPrefix("/api/v1/auth/", handler.NewRateLimiter(cfg.AuthRatePerMinute, cfg.AuthRateBurst)))

	router.Handle("/metrics", promMetrics.Handler())
	return router
}

// limitPrefix applies the rate limiter to requests under prefix only.
func limitPrefix(prefix string, limiter *handler.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		limited := limiter.Middleware(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, prefix) {
				limited.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
