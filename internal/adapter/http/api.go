package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"github.com/neomorfeo/skillbarter/internal/app"
)

const bearerScheme = "bearer"

// NewAPI creates the Huma API on router and declares the bearer security scheme.
func NewAPI(router chi.Router) huma.API {
	config := huma.DefaultConfig("SkillBarter API", "0.1.0")
	if config.Components.SecuritySchemes == nil {
		config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{}
	}
	config.Components.SecuritySchemes[bearerScheme] = &huma.SecurityScheme{
		Type:         "http",
		Scheme:       "bearer",
		BearerFormat: "JWT",
	}
	return humachi.New(router, config)
}

// CookieConfig controls the refresh token cookie.
type CookieConfig struct {
	Secure bool
	MaxAge time.Duration
}

// Deps are the application services exposed over HTTP.
type Deps struct {
	Auth          *app.AuthService
	Listings      *app.ListingService
	Trades        *app.TradeService
	Notifications *app.NotificationService
	Cookie        CookieConfig
	Logger        *slog.Logger
}

type handlers struct {
	Deps
	api huma.API
}

// Register adds all API routes to the Huma API.
func Register(api huma.API, deps Deps) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	h := &handlers{Deps: deps, api: api}

	h.registerHealth()
	h.registerAuth()
	h.registerListings()
	h.registerTrades()
	h.registerNotifications()
}

// --- Authentication middleware ---

type userIDKey struct{}

// requireUser rejects requests without a valid access token and stores the
// caller's user ID in the request context.
func (h *handlers) requireUser(ctx huma.Context, next func(huma.Context)) {
	token, ok := strings.CutPrefix(ctx.Header("Authorization"), "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		_ = huma.WriteErr(h.api, ctx, http.StatusUnauthorized, "missing bearer token")
		return
	}

	userID, err := h.Auth.Authenticate(strings.TrimSpace(token))
	if err != nil {
		_ = huma.WriteErr(h.api, ctx, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	next(huma.WithValue(ctx, userIDKey{}, userID))
}

// authenticated decorates op so it requires a bearer token.
func (h *handlers) authenticated(op huma.Operation) huma.Operation {
	op.Security = []map[string][]string{{bearerScheme: {}}}
	op.Middlewares = append(op.Middlewares, h.requireUser)
	return op
}

func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}

// --- Health ---

type HealthOutput struct {
	Body struct {
		Status string `json:"status" example:"ok" doc:"Service status"`
	}
}

func (h *handlers) registerHealth() {
	huma.Register(h.api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Health check",
		Tags:        []string{"System"},
	}, func(_ context.Context, _ *struct{}) (*HealthOutput, error) {
		out := &HealthOutput{}
		out.Body.Status = "ok"
		return out, nil
	})
}
