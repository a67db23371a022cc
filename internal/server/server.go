package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/tastemap/backend/config"
	"github.com/pageza/tastemap/backend/internal/api"
	"github.com/pageza/tastemap/backend/internal/logger"
	"github.com/pageza/tastemap/backend/internal/metrics"
	"github.com/pageza/tastemap/backend/internal/middleware"
)

// Dependencies are the collaborators the HTTP server is built from. Redis
// may be nil, which disables rate limiting.
type Dependencies struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Tokens   middleware.TokenValidator
	Services api.Services
	Metrics  *metrics.Metrics
	Logger   *logger.Logger
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    *logger.Logger
}

// New creates a new server instance
func New(cfg *config.Config, deps Dependencies) *Server {
	gin.SetMode(cfg.Environment.GinMode())

	router := gin.New()
	router.Use(
		middleware.RequestLogger(deps.Logger, deps.Metrics),
		middleware.ErrorHandler(deps.Logger),
		middleware.CORS(cfg.CORSOrigins),
	)

	health := api.NewHealthHandler(deps.DB, deps.Redis)
	router.GET("/health", health.HealthCheck)
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(deps.Tokens))
	if deps.Redis != nil {
		limiter := middleware.NewRateLimiter(deps.Redis, middleware.RateLimitConfig{
			Window: cfg.RateLimitWindow,
			Limit:  cfg.RateLimitRequests,
		}, deps.Logger)
		v1.Use(limiter.RateLimitMiddleware())
	}
	api.RegisterRoutes(v1, deps.Services)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: deps.Logger,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("starting server", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
