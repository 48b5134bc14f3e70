package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/driveline/dealership-system/internal/api/handler"
	"github.com/driveline/dealership-system/internal/api/middleware"
	"github.com/driveline/dealership-system/internal/core/ports"
)

// Dependencies carries everything the router needs wired up by main.
type Dependencies struct {
	Mutations ports.MutationService
	Queries   ports.QueryService
	Auth      ports.AuthService
	Revoker   ports.TokenRevoker

	DB        *sql.DB
	Redis     *redis.Client
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("dealership"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Mutations, deps.Queries)
	carHandler := handler.NewCarHandler(deps.Mutations, deps.Queries)
	saleHandler := handler.NewSaleHandler(deps.Mutations, deps.Queries)
	logHandler := handler.NewSystemLogHandler(deps.Queries)

	authRequired := middleware.Auth(deps.JWTSecret, deps.Revoker)

	// --- Auth ---
	e.POST("/api/login", authHandler.Login)
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/logout", authHandler.Logout, authRequired)

	// --- Users ---
	users := e.Group("/api/users", authRequired)
	users.GET("", userHandler.List, middleware.Require(middleware.CapUsersRead))
	users.GET("/:id", userHandler.Get, middleware.Require(middleware.CapUsersRead))
	users.POST("", userHandler.Create, middleware.Require(middleware.CapUsersWrite))
	users.PUT("/:id", userHandler.Update, middleware.Require(middleware.CapUsersWrite))
	users.DELETE("/:id", userHandler.Delete, middleware.Require(middleware.CapUsersWrite))

	// --- Cars ---
	cars := e.Group("/api/cars", authRequired)
	cars.GET("", carHandler.List, middleware.Require(middleware.CapCarsRead))
	cars.GET("/:id", carHandler.Get, middleware.Require(middleware.CapCarsRead))
	cars.POST("", carHandler.Create, middleware.Require(middleware.CapCarsWrite))
	cars.PUT("/:id", carHandler.Update, middleware.Require(middleware.CapCarsWrite))
	cars.DELETE("/:id", carHandler.Delete, middleware.Require(middleware.CapCarsWrite))

	// --- Sales ---
	sales := e.Group("/api/sales", authRequired)
	sales.GET("", saleHandler.List, middleware.Require(middleware.CapSalesRead))
	sales.GET("/:id", saleHandler.Get, middleware.Require(middleware.CapSalesRead))
	sales.POST("", saleHandler.Create, middleware.Require(middleware.CapSalesWrite))
	sales.PUT("/:id", saleHandler.Update, middleware.Require(middleware.CapSalesWrite))
	sales.DELETE("/:id", saleHandler.Delete, middleware.Require(middleware.CapSalesWrite))

	// --- Audit trail (read-only) ---
	e.GET("/api/system-logs", logHandler.List, authRequired, middleware.Require(middleware.CapLogsRead))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
