package middleware

import (
	"context"
	"time"

	"github.com/ayushsoni77/Micro-Mart-sub000/internal/cache"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// RequestIDHeader is the HTTP header name for request ID
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey is the context key for request ID
	RequestIDContextKey = "request_id"

	idempotencyKeyPrefix = "idempotency:"
)

// IdempotencyStore keeps responses of processed write requests so a retried
// request with the same X-Request-ID gets the original response back instead
// of a second execution.
type IdempotencyStore struct {
	cache cache.Cache
}

// NewIdempotencyStore creates a store backed by the shared cache
// (Redis, or the in-memory fallback)
func NewIdempotencyStore(c cache.Cache) *IdempotencyStore {
	return &IdempotencyStore{cache: c}
}

// Store saves a response under the request ID
func (s *IdempotencyStore) Store(ctx context.Context, requestID string, response []byte, ttl time.Duration) error {
	return s.cache.Set(ctx, idempotencyKeyPrefix+requestID, response, ttl)
}

// Get retrieves a stored response, or cache.ErrCacheMiss
func (s *IdempotencyStore) Get(ctx context.Context, requestID string) ([]byte, error) {
	return s.cache.Get(ctx, idempotencyKeyPrefix+requestID)
}

// RequestIDMiddleware extracts or generates X-Request-ID header
func RequestIDMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
			logger.Debug("Generated new request ID",
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
		}

		c.Set(RequestIDContextKey, requestID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), RequestIDContextKey, requestID))

		// Echo the request ID so clients can correlate retries
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// GetRequestID retrieves the request ID from the Gin context
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDContextKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// IdempotencyMiddleware replays the stored response for a duplicate
// X-Request-ID and records the response of first-time write requests.
// Only requests the client explicitly tagged with the header participate;
// generated IDs change on every retry and would never match.
func IdempotencyMiddleware(store *IdempotencyStore, logger *zap.Logger, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "GET" || c.Request.Method == "HEAD" || c.Request.Method == "OPTIONS" {
			c.Next()
			return
		}

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			c.Next()
			return
		}

		cached, err := store.Get(c.Request.Context(), requestID)
		if err == nil && len(cached) > 0 {
			logger.Info("Duplicate request detected, returning stored response",
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			c.Data(200, "application/json", cached)
			c.Abort()
			return
		}
		if err != nil && err != cache.ErrCacheMiss {
			// Fail open: a broken store must not block writes
			logger.Warn("Idempotency store lookup failed",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
		}

		writer := &responseRecorder{
			ResponseWriter: c.Writer,
			body:           make([]byte, 0),
		}
		c.Writer = writer

		c.Next()

		// Only successful responses are worth replaying; a failed write should
		// re-execute on retry
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 && len(writer.body) > 0 {
			if err := store.Store(c.Request.Context(), requestID, writer.body, ttl); err != nil {
				logger.Warn("Failed to store response for idempotency",
					zap.String("request_id", requestID),
					zap.Error(err),
				)
			}
		}
	}
}

// responseRecorder captures the response body
type responseRecorder struct {
	gin.ResponseWriter
	body []byte
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

func (w *responseRecorder) WriteString(s string) (int, error) {
	w.body = append(w.body, []byte(s)...)
	return w.ResponseWriter.WriteString(s)
}
