package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/mkx/community/docs"
	"github.com/mkx/community/internal/api/handler"
	"github.com/mkx/community/internal/api/middleware"
	"github.com/mkx/community/internal/core/ports"
)

// Dependencies are the wired services the router exposes.
type Dependencies struct {
	Auth     ports.AuthService
	Posts    ports.PostService
	Avatars  ports.AvatarService
	Executor middleware.Runner
	Store    ports.Store
	Driver   string
	Logger   zerolog.Logger
	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// default Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(promConfig(deps.Registry)))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	postHandler := handler.NewPostHandler(deps.Posts)
	avatarHandler := handler.NewAvatarHandler(deps.Avatars)

	// Every store-touching route runs serialized with the session loaded.
	store := []echo.MiddlewareFunc{
		middleware.Serialize(deps.Executor),
		middleware.Session(deps.Auth),
	}
	loggedIn := append(append([]echo.MiddlewareFunc{}, store...), middleware.RequireSession())

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register, store...)
	e.POST("/auth/login", authHandler.Login, store...)
	e.POST("/auth/logout", authHandler.Logout, store...)
	e.GET("/auth/session", authHandler.Session, store...)

	// --- Account routes ---
	e.PUT("/account/avatar", avatarHandler.Set, loggedIn...)

	// --- Post routes ---
	e.GET("/posts", postHandler.List, store...)
	e.POST("/posts", postHandler.Create, store...)
	e.GET("/posts/:id", postHandler.Get, store...)
	e.DELETE("/posts/:id", postHandler.Delete, store...)
	e.POST("/posts/:id/view", postHandler.View, store...)
	e.POST("/posts/:id/like", postHandler.Like, store...)

	// --- Health probes (no session required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Store, deps.Driver)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – is the store reachable?

	// --- Observability ---
	e.GET("/metrics", metricsHandler(deps.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func promConfig(reg *prometheus.Registry) echoprometheus.MiddlewareConfig {
	cfg := echoprometheus.MiddlewareConfig{Subsystem: "mkx"}
	if reg != nil {
		cfg.Registerer = reg
	}
	return cfg
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
