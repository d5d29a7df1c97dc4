package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aravind238/funding-sub001/internal/domain/shared"
	"github.com/aravind238/funding-sub001/internal/interfaces/http/middleware"
)

// defaultMaxBodyBytes caps candidate batch payloads at 10MB
const defaultMaxBodyBytes = 10 << 20

// importDedupeTTL is how long a processed idempotency key stays reserved
const importDedupeTTL = 24 * time.Hour

// RouteRegistrar registers a handler's routes on a group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Config carries router construction inputs
type Config struct {
	Environment  string
	Logger       *zap.Logger
	Idempotency  shared.IdempotencyStore
	MaxBodyBytes int64
}

// New builds the gin engine with the common middleware chain, the health
// endpoint, and every registrar mounted under /api/v1. Mutating routes
// are additionally guarded by the idempotency middleware.
func New(cfg Config, registrars ...RouteRegistrar) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.RequestLogger(cfg.Logger),
		middleware.Recovery(cfg.Logger),
		middleware.BodyLimit(maxBody),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	if cfg.Idempotency != nil {
		api.Use(middleware.Idempotency(cfg.Idempotency, importDedupeTTL, cfg.Logger))
	}
	for _, r := range registrars {
		r.RegisterRoutes(api)
	}

	return engine
}
