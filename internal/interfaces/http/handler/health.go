package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopledger/backend/internal/infrastructure/logger"
)

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping() error
}

// PingerFunc adapts a function to Pinger
type PingerFunc func() error

// Ping calls f
func (f PingerFunc) Ping() error {
	return f()
}

// HealthHandler reports the health of the database and optional dependencies
type HealthHandler struct {
	checks map[string]Pinger
	now    func() time.Time
}

// NewHealthHandler creates a health handler checking the database and any
// extra named dependencies (e.g. "redis")
func NewHealthHandler(db Pinger, extra map[string]Pinger) *HealthHandler {
	checks := map[string]Pinger{"database": db}
	for name, p := range extra {
		checks[name] = p
	}
	return &HealthHandler{checks: checks, now: time.Now}
}

// RedisPinger adapts a go-redis style Ping(ctx) to Pinger
func RedisPinger(ping func(ctx context.Context) error) Pinger {
	return PingerFunc(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return ping(ctx)
	})
}

// Health answers 200 when every dependency responds, 503 otherwise.
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status": "healthy",
		"time":   h.now().Format(time.RFC3339),
	}
	for name, p := range h.checks {
		if p == nil {
			continue
		}
		if err := p.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			body[name] = "error"
			body["status"] = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		body[name] = "ok"
	}
	c.JSON(status, body)
}
