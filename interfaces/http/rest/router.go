package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/lasersoldier/MuseMemo/application/ports"
	"github.com/lasersoldier/MuseMemo/application/store"
	"github.com/lasersoldier/MuseMemo/application/workspace"
	"github.com/lasersoldier/MuseMemo/infrastructure/config"
	"github.com/lasersoldier/MuseMemo/interfaces/http/rest/handlers"
	"github.com/lasersoldier/MuseMemo/interfaces/http/rest/middleware"
	"github.com/lasersoldier/MuseMemo/pkg/auth"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg        *config.Config
	gateway    ports.Gateway
	manager    *store.Manager
	workspaces *workspace.Registry
	validator  *auth.JWTValidator
	logger     *zap.Logger
}

// NewRouter creates a new router instance. Without a JWT secret the
// validator stays nil and the auth middleware falls back to resolving
// tokens against the gateway, which is how demo mode authenticates.
func NewRouter(
	cfg *config.Config,
	gateway ports.Gateway,
	manager *store.Manager,
	logger *zap.Logger,
) (*Router, error) {
	var validator *auth.JWTValidator
	if cfg.JWTSecret != "" {
		v, err := auth.NewJWTValidator(auth.JWTConfig{
			SecretKey: cfg.JWTSecret,
			Issuer:    cfg.JWTIssuer,
		})
		if err != nil {
			return nil, err
		}
		validator = v
	}

	return &Router{
		cfg:        cfg,
		gateway:    gateway,
		manager:    manager,
		workspaces: workspace.NewRegistry(),
		validator:  validator,
		logger:     logger,
	}, nil
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)

	authHandler := handlers.NewAuthHandler(rt.manager, rt.workspaces, rt.logger)
	profileHandler := handlers.NewProfileHandler(rt.manager, rt.logger)
	promptHandler := handlers.NewPromptHandler(rt.manager, rt.logger)
	workspaceHandler := handlers.NewWorkspaceHandler(rt.manager, rt.workspaces, rt.logger)

	router.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/register", authHandler.Register)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(rt.validator, rt.gateway, rt.logger))

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.Me)

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", profileHandler.GetProfile)
				r.Patch("/", profileHandler.UpdateProfile)
			})

			r.Route("/prompts", func(r chi.Router) {
				r.Get("/", promptHandler.ListPrompts)
				r.Post("/", promptHandler.CreatePrompt)
				r.Get("/saved", promptHandler.ListSavedPrompts)
				r.Post("/usage/clear", promptHandler.ClearUsage)
				r.Put("/{promptID}", promptHandler.UpdatePrompt)
				r.Delete("/{promptID}", promptHandler.DeletePrompt)
				r.Post("/{promptID}/save", promptHandler.SavePrompt)
				r.Post("/{promptID}/unsubscribe", promptHandler.UnsubscribePrompt)
				r.Post("/{promptID}/usage", promptHandler.RecordUsage)
			})

			r.Post("/account/reset", promptHandler.ResetAccount)

			r.Route("/workspace", func(r chi.Router) {
				r.Get("/", workspaceHandler.GetView)
				r.Post("/select", workspaceHandler.Select)
				r.Post("/back", workspaceHandler.Back)
				r.Get("/layout", workspaceHandler.GetLayout)
				r.Post("/drag/start", workspaceHandler.DragStart)
				r.Post("/drag/move", workspaceHandler.DragMove)
				r.Post("/drag/end", workspaceHandler.DragEnd)
			})
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
