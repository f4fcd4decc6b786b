package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordProbe(t *testing.T) {
	m := NewMetrics(nil)

	m.RecordProbe("ssh", true, 10*time.Millisecond)
	m.RecordProbe("ssh", false, time.Second)
	m.RecordProbe("ssh", false, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.probesTotal.WithLabelValues("ssh", "reachable")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.probesTotal.WithLabelValues("ssh", "unreachable")))
}

func TestNewMetricsTwiceDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(nil)
		NewMetrics(nil)
	})
}

func TestHTTPMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics(nil)

	router := gin.New()
	router.Use(m.HTTPMiddleware())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/ping", "200")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "netinv_http_requests_total")
}
