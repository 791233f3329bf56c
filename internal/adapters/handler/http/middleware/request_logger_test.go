package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/boom", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusInternalServerError)
	})
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve := func(path string) {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	t.Run("Info for success", func(t *testing.T) {
		buf := captureLogs(t)
		serve("/ok")
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "path=/ok")
		assert.Contains(t, buf.String(), "status=200")
	})

	t.Run("Warn for client errors", func(t *testing.T) {
		buf := captureLogs(t)
		serve("/missing")
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "status=404")
	})

	t.Run("Error with handler errors", func(t *testing.T) {
		buf := captureLogs(t)
		serve("/boom")
		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "errors=")
	})

	t.Run("Health checks are skipped", func(t *testing.T) {
		buf := captureLogs(t)
		serve("/health")
		assert.Empty(t, buf.String())
	})
}
