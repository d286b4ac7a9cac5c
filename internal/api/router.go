package api

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/aether-dashboard/aether-api/docs"
	"github.com/aether-dashboard/aether-api/internal/api/handler"
	"github.com/aether-dashboard/aether-api/internal/api/middleware"
	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
)

const defaultBodyLimit = "1M"

// Collectors register once per process; routers built later share them.
var httpMetrics = sync.OnceValue(func() echo.MiddlewareFunc {
	return echoprometheus.NewMiddleware("aether")
})

// Config holds what the router needs beyond the handlers.
type Config struct {
	Logger      zerolog.Logger
	Verifier    ports.TokenVerifier
	CORSOrigins []string
	BodyLimit   string
}

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth          *handler.AuthHandler
	Users         *handler.UserHandler
	Customers     *handler.CustomerHandler
	Products      *handler.ProductHandler
	Orders        *handler.OrderHandler
	Notifications *handler.NotificationHandler
	Stats         *handler.StatsHandler
	Search        *handler.SearchHandler
	Health        *handler.HealthHandler
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	bodyLimit := cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(cfg.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(httpMetrics())

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Public routes ---
	api.GET("/health", h.Health.Liveness)
	api.GET("/health/ready", h.Health.Readiness)
	api.POST("/register", h.Auth.Register)
	api.POST("/login", h.Auth.Login)

	// --- Protected routes ---
	protected := api.Group("", middleware.Auth(cfg.Verifier))
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	protected.PUT("/users/profile", h.Users.UpdateProfile)
	protected.PUT("/users/password", h.Users.ChangePassword)

	protected.GET("/customers", h.Customers.List)
	protected.GET("/customers/:id", h.Customers.Get)
	protected.POST("/customers", h.Customers.Create)
	protected.PUT("/customers/:id", h.Customers.Update)
	protected.DELETE("/customers/:id", h.Customers.Delete, adminOnly)

	protected.GET("/products", h.Products.List)
	protected.GET("/products/:id", h.Products.Get)
	protected.POST("/products", h.Products.Create)
	protected.PUT("/products/:id", h.Products.Update)
	protected.DELETE("/products/:id", h.Products.Delete, adminOnly)

	protected.GET("/orders", h.Orders.List)
	protected.GET("/orders/:id", h.Orders.Get)
	protected.GET("/orders/:id/history", h.Orders.History)
	protected.POST("/orders", h.Orders.Create)
	protected.PUT("/orders/:id", h.Orders.Update)
	protected.DELETE("/orders/:id", h.Orders.Delete, adminOnly)

	protected.GET("/notifications", h.Notifications.List)
	protected.PUT("/notifications/read-all", h.Notifications.MarkAllRead)
	protected.PUT("/notifications/:id/read", h.Notifications.MarkRead)

	protected.GET("/stats", h.Stats.Get)
	protected.GET("/search", h.Search.Search)

	return e
}
