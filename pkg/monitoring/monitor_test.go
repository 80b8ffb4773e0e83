package monitoring

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(MetricsMiddleware())
	router.GET("/ping", func(c *gin.Context) { c.String(200, "pong") })

	before := testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "/ping", "200"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	require.Equal(t, 200, w.Code)

	after := testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "/ping", "200"))
	assert.Equal(t, before+1, after)

	// metrics are exported under the service namespace
	assert.Equal(t, 1, testutil.CollectAndCount(RequestCounter, "finverse_http_requests_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(RequestDuration, "finverse_http_request_duration_seconds"))
}
