package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(RequestLogger(logger.FromZap(zap.New(core))))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("request id header missing")
	}
	if logs.Len() != 1 || logs.All()[0].ContextMap()["status"] != int64(http.StatusNoContent) {
		t.Errorf("unexpected logs: %v", logs.All())
	}
}

func TestPrometheusMiddlewareCounts(t *testing.T) {
	r := gin.New()
	r.Use(PrometheusMiddleware())
	r.GET("/api/order/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(metrics.HttpRequestsTotal.WithLabelValues(http.MethodGet, "/api/order/:id", "200"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/order/7", nil))
	after := testutil.ToFloat64(metrics.HttpRequestsTotal.WithLabelValues(http.MethodGet, "/api/order/:id", "200"))

	if after-before != 1 {
		t.Errorf("counter delta = %v", after-before)
	}
}
