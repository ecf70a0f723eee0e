package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/luksua/API-Repaso/docs"
	"github.com/luksua/API-Repaso/internal/api/handler"
	"github.com/luksua/API-Repaso/internal/api/middleware"
	"github.com/luksua/API-Repaso/internal/core/service"
	mongodb "github.com/luksua/API-Repaso/internal/infrastructure/db/mongo"
	redisdb "github.com/luksua/API-Repaso/internal/infrastructure/db/redis"
)

// RouterConfig carries the settings the router needs beyond its dependencies.
type RouterConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("rental"))

	// --- Dependencies ---
	seq := mongodb.NewSequenceGenerator(db)
	userRepo := mongodb.NewUserRepository(db, seq)
	propertyRepo := mongodb.NewPropertyRepository(db, seq)
	revocations := redisdb.NewRevocationList(rdb)

	authService := service.NewAuthService(userRepo, revocations, cfg.JWTSecret, cfg.TokenTTL, log)
	propertyService := service.NewPropertyService(propertyRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	authMiddleware := middleware.Auth(cfg.JWTSecret, revocations)

	// --- Public routes ---
	g := e.Group("/api")
	g.POST("/register", authHandler.Register)
	g.POST("/login", authHandler.Login)

	// --- Protected routes (bearer token required) ---
	p := g.Group("", authMiddleware)
	p.POST("/logout", authHandler.Logout)
	p.GET("/me", authHandler.Me)

	// /properties/stats must never be captured by /properties/:id; echo
	// prefers static segments, so both registration orders are safe.
	p.GET("/properties/stats", propertyHandler.Stats)
	p.GET("/properties", propertyHandler.List)
	p.POST("/properties", propertyHandler.Create)
	p.GET("/properties/:id", propertyHandler.Get)
	p.PUT("/properties/:id", propertyHandler.Update)
	p.DELETE("/properties/:id", propertyHandler.Delete)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
