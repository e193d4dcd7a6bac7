package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/clock"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/httpx"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/statistic/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/statistic/statistictest"
	"github.com/fekuna/omnipos-cafe-service/internal/statistic/usecase"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(store *statistictest.Memory) *gin.Engine {
	clk := clock.NewFixed(time.Date(2024, 6, 5, 3, 0, 0, 0, time.UTC))
	uc := usecase.NewStatisticUseCase(store, cache.NewMemory(), clk, logger.NewNop())
	r := gin.New()
	NewStatisticHandler(uc, httpx.NewResponder(nil, logger.NewNop()), logger.NewNop()).RegisterRoutes(r.Group("/api"))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRevenueChartByWeek(t *testing.T) {
	store := statistictest.NewMemory()
	if err := store.AddDailySale(context.Background(), time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC), 50000, 2); err != nil {
		t.Fatal(err)
	}
	r := newRouter(store)

	w := get(r, "/api/statistic/revenue-chart?type=week")
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d body = %s", w.Code, w.Body.String())
	}
	var body struct {
		Data []dto.ChartPoint `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Data) != 7 || body.Data[1].Label != "Thứ 3" || body.Data[1].Value.Revenue != 50000 {
		t.Errorf("points = %+v", body.Data)
	}
}

func TestRevenueChartRejectsUnknownType(t *testing.T) {
	r := newRouter(statistictest.NewMemory())
	if w := get(r, "/api/statistic/revenue-chart?type=year"); w.Code != http.StatusBadRequest {
		t.Errorf("code = %d", w.Code)
	}
}

func TestShareCharts(t *testing.T) {
	store := statistictest.NewMemory()
	store.ByType = []dto.LabelCount{{Label: "Tại quán", Value: 3}, {Label: "Mang đi", Value: 1}}
	r := newRouter(store)

	w := get(r, "/api/statistic/order-type")
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	var body struct {
		Data dto.ShareChart `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.Total != 4 || len(body.Data.Labels) != 2 {
		t.Errorf("chart = %+v", body.Data)
	}

	for _, path := range []string{"/api/statistic/payment-type", "/api/statistic/category", "/api/statistic/top-products", "/api/statistic/overview"} {
		if w := get(r, path); w.Code != http.StatusOK {
			t.Errorf("%s: code = %d", path, w.Code)
		}
	}
}
