package api

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/acquisitions/user-api/docs"
	"github.com/acquisitions/user-api/internal/api/handler"
	"github.com/acquisitions/user-api/internal/api/middleware"
	"github.com/acquisitions/user-api/internal/core/auth"
	"github.com/acquisitions/user-api/internal/core/service"
	"github.com/acquisitions/user-api/internal/infrastructure/config"
	"github.com/acquisitions/user-api/internal/infrastructure/db/postgres"
	rediscache "github.com/acquisitions/user-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("acquisitions"))

	// --- Dependencies ---
	hasher := auth.NewPasswordHasher(auth.HashCost)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	userRepo := postgres.NewUserRepository(pool)
	listCache := rediscache.NewUserListCache(rdb)

	authService := service.NewAuthService(userRepo, hasher, tokens, log)
	userService := service.NewUserService(userRepo, listCache, hasher, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	authMiddleware := middleware.Auth(tokens)

	// --- Root and operational routes ---
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello from Acquisitions API")
	})

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(pool, rdb)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- API v1 ---
	v1 := e.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	users := v1.Group("/users")
	users.GET("", userHandler.List) // public listing, preserved as observed behavior
	users.GET("/:id", userHandler.Get, authMiddleware)
	users.PUT("/:id", userHandler.Update, authMiddleware)
	users.DELETE("/:id", userHandler.Delete, authMiddleware)

	return e
}
