package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aravind238/funding-sub001/internal/domain/shared"
	"github.com/aravind238/funding-sub001/internal/interfaces/http/dto"
)

// IdempotencyKeyHeader names the header clients use to deduplicate
// retried submissions
const IdempotencyKeyHeader = "Idempotency-Key"

// Idempotency rejects replays of a previously processed submission key.
// The key is optional: requests without one pass through untracked.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		fresh, err := store.MarkProcessed(c.Request.Context(), key, ttl)
		if err != nil {
			// A broken dedupe store must not block intake; log and continue.
			logger.Warn("idempotency store unavailable",
				zap.Error(err),
				zap.String("request_id", c.GetString(RequestIDKey)))
			c.Next()
			return
		}
		if !fresh {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeAlreadyExists,
				"A submission with this idempotency key was already processed",
				c.GetString(RequestIDKey),
			))
			return
		}
		c.Next()
	}
}
