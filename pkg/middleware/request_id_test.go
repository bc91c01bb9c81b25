package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ayushsoni77/Micro-Mart-sub000/internal/cache"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupIdempotencyRouter(handled *int32) (*gin.Engine, *IdempotencyStore) {
	gin.SetMode(gin.TestMode)
	store := NewIdempotencyStore(cache.NewInMemory())
	logger := zap.NewNop()

	router := gin.New()
	router.Use(RequestIDMiddleware(logger))
	router.Use(IdempotencyMiddleware(store, logger, time.Minute))
	router.POST("/orders", func(c *gin.Context) {
		atomic.AddInt32(handled, 1)
		c.JSON(http.StatusCreated, gin.H{"id": uuid.New().String()})
	})
	router.POST("/fail", func(c *gin.Context) {
		atomic.AddInt32(handled, 1)
		c.JSON(http.StatusConflict, gin.H{"error": "Conflict"})
	})
	router.GET("/orders", func(c *gin.Context) {
		atomic.AddInt32(handled, 1)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router, store
}

func TestRequestIDMiddleware_GeneratesIDWhenAbsent(t *testing.T) {
	var handled int32
	router, _ := setupIdempotencyRouter(&handled)

	req := httptest.NewRequest("GET", "/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	echoed := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, echoed)
	_, err := uuid.Parse(echoed)
	assert.NoError(t, err)
}

func TestRequestIDMiddleware_EchoesClientID(t *testing.T) {
	var handled int32
	router, _ := setupIdempotencyRouter(&handled)

	req := httptest.NewRequest("GET", "/orders", nil)
	req.Header.Set(RequestIDHeader, "client-supplied-id")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "client-supplied-id", w.Header().Get(RequestIDHeader))
}

func TestIdempotency_DuplicateRequestReplaysStoredResponse(t *testing.T) {
	var handled int32
	router, _ := setupIdempotencyRouter(&handled)
	requestID := uuid.New().String()

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/orders", bytes.NewBufferString("{}"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(RequestIDHeader, requestID)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := do()
	second := do()

	// The handler ran once; the retry got the identical body back
	assert.Equal(t, int32(1), atomic.LoadInt32(&handled))
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestIdempotency_DistinctRequestIDsExecuteSeparately(t *testing.T) {
	var handled int32
	router, _ := setupIdempotencyRouter(&handled)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/orders", bytes.NewBufferString("{}"))
		req.Header.Set(RequestIDHeader, uuid.New().String())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	assert.Equal(t, int32(2), atomic.LoadInt32(&handled))
}

func TestIdempotency_MissingHeaderNeverStored(t *testing.T) {
	var handled int32
	router, _ := setupIdempotencyRouter(&handled)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/orders", bytes.NewBufferString("{}"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}

	assert.Equal(t, int32(2), atomic.LoadInt32(&handled))
}

func TestIdempotency_FailedResponseIsNotReplayed(t *testing.T) {
	var handled int32
	router, _ := setupIdempotencyRouter(&handled)
	requestID := uuid.New().String()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/fail", bytes.NewBufferString("{}"))
		req.Header.Set(RequestIDHeader, requestID)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusConflict, w.Code)
	}

	// A failed write re-executes on retry
	assert.Equal(t, int32(2), atomic.LoadInt32(&handled))
}

func TestIdempotency_ReadsAreNeverCached(t *testing.T) {
	var handled int32
	router, _ := setupIdempotencyRouter(&handled)
	requestID := uuid.New().String()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/orders", nil)
		req.Header.Set(RequestIDHeader, requestID)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, int32(2), atomic.LoadInt32(&handled))
}
