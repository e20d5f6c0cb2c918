package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopledger/backend/internal/infrastructure/logger"
	"github.com/shopledger/backend/internal/interfaces/http/dto"
)

// Shop context keys
const (
	ShopIDKey     = "shop_id"
	ShopHeaderKey = "X-Shop-ID"
)

// ShopContextConfig configures shop resolution
type ShopContextConfig struct {
	// DefaultShopID is used when the request has no X-Shop-ID header.
	// uuid.Nil makes the header mandatory.
	DefaultShopID uuid.UUID
	// SkipPaths are served without a shop (health checks)
	SkipPaths []string
}

// ShopContext resolves the shop every request operates on and stores it in
// the gin context and the request context logger
func ShopContext(cfg ShopContextConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		shopID := cfg.DefaultShopID
		if raw := strings.TrimSpace(c.GetHeader(ShopHeaderKey)); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				abortInvalidShop(c, "X-Shop-ID must be a UUID")
				return
			}
			shopID = parsed
		}
		if shopID == uuid.Nil {
			abortInvalidShop(c, "X-Shop-ID header is required")
			return
		}

		c.Set(ShopIDKey, shopID.String())
		c.Request = c.Request.WithContext(logger.WithShopID(c.Request.Context(), shopID.String()))
		c.Next()
	}
}

// GetShopID returns the shop resolved by ShopContext
func GetShopID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString(ShopIDKey)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func abortInvalidShop(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidShop, message, GetRequestID(c)))
}
