package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/N30R4BB1t/login-register/docs"
	"github.com/N30R4BB1t/login-register/internal/api/handler"
	"github.com/N30R4BB1t/login-register/internal/api/middleware"
	"github.com/N30R4BB1t/login-register/internal/core/ports"
)

// RouterConfig bundles everything the HTTP layer needs. The service and
// token manager arrive as ports so the router never touches storage or
// crypto directly.
type RouterConfig struct {
	Users      ports.UserService
	Tokens     ports.TokenManager
	Checks     map[string]handler.PingFunc
	CORSOrigin string
	StaticDir  string
	// Metrics overrides the Prometheus registry used for HTTP metrics.
	// Leave nil to register on the default registry.
	Metrics *prometheus.Registry
	Log     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Secure())
	if cfg.CORSOrigin != "" {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins:     []string{cfg.CORSOrigin},
			AllowCredentials: true,
		}))
	}
	promMiddleware := echoprometheus.MiddlewareConfig{Subsystem: "accounts"}
	promHandler := echoprometheus.HandlerConfig{}
	if cfg.Metrics != nil {
		promMiddleware.Registerer = cfg.Metrics
		promHandler.Gatherer = cfg.Metrics
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promMiddleware))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(cfg.Users)
	userHandler := handler.NewUserHandler(cfg.Users)
	authMiddleware := middleware.Auth(cfg.Tokens)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Authenticated user CRUD ---
	users := e.Group("/api/users", authMiddleware)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.Checks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(promHandler))
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Static frontend assets ---
	if cfg.StaticDir != "" {
		e.Static("/", cfg.StaticDir)
	}

	return e
}
