package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orcka/invoiceapi/config"
	"github.com/orcka/invoiceapi/internal/jsonlog"
)

func TestRecoverPanic(t *testing.T) {
	var logBuffer bytes.Buffer
	cfg := config.Default()
	cfg.Metrics.Enabled = false
	h := &Handler{config: cfg, logger: jsonlog.New(&logBuffer, jsonlog.LevelInfo), limiters: NewLimiterCache()}

	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	r := httptest.NewRequest(http.MethodGet, "/info", nil)
	r.Header.Set(requestIDHeader, "req-7")
	rr := httptest.NewRecorder()
	h.middleware(panicking).ServeHTTP(rr, r)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "close", rr.Header().Get("Connection"))
	assert.Equal(t, "req-7", rr.Header().Get(requestIDHeader))

	var line struct {
		Level      string            `json:"level"`
		Message    string            `json:"message"`
		Properties map[string]string `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(logBuffer.Bytes(), &line))
	assert.Equal(t, "ERROR", line.Level)
	assert.Equal(t, "boom", line.Message)
	assert.Equal(t, "req-7", line.Properties["request_id"])
	assert.Equal(t, "/info", line.Properties["request_url"])
}

func TestRecoverPanicGeneratedRequestID(t *testing.T) {
	var logBuffer bytes.Buffer
	cfg := config.Default()
	cfg.Metrics.Enabled = false
	h := &Handler{config: cfg, logger: jsonlog.New(&logBuffer, jsonlog.LevelInfo), limiters: NewLimiterCache()}

	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	rr := httptest.NewRecorder()
	h.middleware(panicking).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/info", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	id := rr.Header().Get(requestIDHeader)
	require.NotEmpty(t, id)

	var line struct {
		Properties map[string]string `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(logBuffer.Bytes(), &line))
	assert.Equal(t, id, line.Properties["request_id"])
}

func TestRateLimitBadRemoteAddr(t *testing.T) {
	cfg := config.Default()
	cfg.Limiter.Enabled = true
	h := &Handler{config: cfg, logger: jsonlog.New(&bytes.Buffer{}, jsonlog.LevelOff), limiters: NewLimiterCache()}

	r := httptest.NewRequest(http.MethodGet, "/info", nil)
	r.RemoteAddr = "not-an-address"
	rr := httptest.NewRecorder()
	h.rateLimit(http.NotFoundHandler()).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestRateLimitReusesLimiterPerClient(t *testing.T) {
	cfg := config.Default()
	cfg.Limiter.Enabled = true
	h := &Handler{config: cfg, limiters: NewLimiterCache()}

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		h.rateLimit(ok).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/info", nil))
		assert.Equal(t, http.StatusNoContent, rr.Code)
	}
	assert.Equal(t, 1, h.limiters.Len())
}
