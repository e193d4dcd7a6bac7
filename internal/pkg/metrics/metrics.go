package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	OrdersPaidTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cafe_orders_paid_total",
			Help: "Orders transitioned to PAID",
		},
	)

	RevenueTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cafe_revenue_total",
			Help: "Sum of paid order totals",
		},
	)

	NotesCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cafe_warehouse_notes_created_total",
			Help: "Committed import and export notes",
		},
		[]string{"kind"},
	)

	StockRejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cafe_stock_rejections_total",
			Help: "Export notes rejected for insufficient stock",
		},
	)

	LowStockMaterials = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cafe_low_stock_materials",
			Help: "Active materials at or below their minimum stock, as of the last scan",
		},
	)
)

// InitMetrics registers every collector with the default registry.
func InitMetrics() {
	prometheus.MustRegister(
		HttpRequestsTotal,
		HttpRequestDuration,
		OrdersPaidTotal,
		RevenueTotal,
		NotesCreatedTotal,
		StockRejectionsTotal,
		LowStockMaterials,
	)
}
