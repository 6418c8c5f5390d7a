package httpapi

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(log *slog.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(requestID(), accessLog(log), recovery(log))
	engine.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })
	engine.GET("/panic", func(*gin.Context) { panic("boom") })
	return engine
}

func TestRequestID(t *testing.T) {
	engine := newTestEngine(slog.New(slog.DiscardHandler))

	t.Run("assigns a new ID", func(t *testing.T) {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

		id := rec.Header().Get(HeaderRequestID)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("keeps the caller's ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set(HeaderRequestID, "abc-123")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
	})
}

func TestRecoveryAndAccessLog(t *testing.T) {
	var buf bytes.Buffer
	engine := newTestEngine(slog.New(slog.NewJSONHandler(&buf, nil)))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "Panic while handling request")
	assert.Contains(t, buf.String(), `"status":500`)
	assert.Contains(t, buf.String(), `"path":"/panic"`)
}
