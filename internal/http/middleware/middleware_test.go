package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/njb1/what2do/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/tasks", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/tasks", http.Header{"Origin": {"https://app.example"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodGet, "/tasks", nil)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodOptions, "/tasks", http.Header{"Origin": {"https://other.example"}})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestSimpleRateLimit(t *testing.T) {
	r := gin.New()
	r.GET("/limited", SimpleRateLimit(2, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/limited", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/limited", nil).Code)

	before := counterValue(t, RLBlocked.WithLabelValues("/limited"))
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/limited", nil).Code)
	assert.Equal(t, before+1, counterValue(t, RLBlocked.WithLabelValues("/limited")))
}

func TestSimpleRateLimitWindowResets(t *testing.T) {
	r := gin.New()
	r.GET("/short", SimpleRateLimit(1, 20*time.Millisecond), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/short", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/short", nil).Code)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/short", nil).Code)
}

func TestRateLimitDisabled(t *testing.T) {
	r := gin.New()
	r.GET("/open", RateLimit(nil, 0, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/open", nil).Code)
	}
}

func TestRequestLogger(t *testing.T) {
	var gotID string
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ping", func(c *gin.Context) {
		gotID = logger.RequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := serve(r, http.MethodGet, "/ping", http.Header{RequestIDHeader: {"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", gotID)

	w = serve(r, http.MethodGet, "/ping", http.Header{"x-request-id": {"lower-9"}})
	assert.Equal(t, "lower-9", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "lower-9", gotID)

	w = serve(r, http.MethodGet, "/ping", nil)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), gotID)
}

func TestMetrics(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/metered", func(c *gin.Context) { c.Status(http.StatusAccepted) })

	before := counterValue(t, HTTPRequests.WithLabelValues(http.MethodGet, "/metered", "202"))
	serve(r, http.MethodGet, "/metered", nil)
	assert.Equal(t, before+1, counterValue(t, HTTPRequests.WithLabelValues(http.MethodGet, "/metered", "202")))

	beforeMiss := counterValue(t, HTTPRequests.WithLabelValues(http.MethodGet, "unmatched", "404"))
	serve(r, http.MethodGet, "/nope", nil)
	assert.Equal(t, beforeMiss+1, counterValue(t, HTTPRequests.WithLabelValues(http.MethodGet, "unmatched", "404")))
}
