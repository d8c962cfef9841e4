package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "careconnect.backend/internal/domain/errors"
	"careconnect.backend/internal/interfaces/http/response"
	"careconnect.backend/pkg/logger"
	"careconnect.backend/pkg/redis"
)

const (
	IdempotencyHeader         = "Idempotency-Key"
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyCtx holds the raw client key for handlers that pass it down as an operation id
	IdempotencyKeyCtx = "idempotency_key"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second

	processingMarker = "processing"
	maxKeyLength     = 128
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

type storedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// IdempotencyMiddleware replays the stored response for a repeated
// Idempotency-Key from the same user. Only 2xx responses are stored; a failed
// attempt releases the key so the client may retry. When Redis is unavailable
// the request proceeds and the key still reaches the handler.
func IdempotencyMiddleware(retention time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxKeyLength {
			response.Error(c, domainerrors.BadRequest("Idempotency-Key is too long"))
			return
		}
		c.Set(IdempotencyKeyCtx, key)

		userID := "anonymous"
		if identity, ok := GetIdentity(c); ok {
			userID = identity.UserID.String()
		}
		storageKey := fmt.Sprintf("idempotency:%s:%s:%s", userID, c.FullPath(), key)
		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		switch {
		case err == nil:
			replay(c, val)
			return
		case !errors.Is(err, redis.Nil):
			logger.Warn(ctx, "Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil {
			logger.Warn(ctx, "Idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			inProgress(c)
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			stored, _ := json.Marshal(storedResponse{Status: status, Body: json.RawMessage(w.body.Bytes())})
			if err := redisSet(ctx, storageKey, string(stored), retention); err != nil {
				logger.Warn(ctx, "Failed to store idempotent response", zap.Error(err))
			}
			return
		}
		_ = redisDel(ctx, storageKey)
	}
}

func replay(c *gin.Context, val string) {
	if val == processingMarker {
		inProgress(c)
		return
	}
	var stored storedResponse
	if err := json.Unmarshal([]byte(val), &stored); err != nil || stored.Status == 0 {
		logger.Warn(c.Request.Context(), "Discarding unreadable idempotent response")
		inProgress(c)
		return
	}
	c.Header(IdempotencyReplayedHeader, "true")
	c.Data(stored.Status, "application/json; charset=utf-8", stored.Body)
	c.Abort()
}

func inProgress(c *gin.Context) {
	response.Error(c, domainerrors.NewAppError(http.StatusConflict, domainerrors.CodeIdempotencyPending, "Request with this Idempotency-Key is already in progress", domainerrors.ErrConflict))
}

// GetIdempotencyKey returns the client supplied key, if any
func GetIdempotencyKey(c *gin.Context) string {
	return c.GetString(IdempotencyKeyCtx)
}
