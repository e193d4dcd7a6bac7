package handler

import (
	"context"

	"github.com/fekuna/omnipos-cafe-service/internal/pkg/httpx"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/statistic"
	"github.com/fekuna/omnipos-cafe-service/internal/statistic/dto"
	"github.com/gin-gonic/gin"
)

type StatisticHandler struct {
	uc     statistic.UseCase
	resp   *httpx.Responder
	logger logger.ZapLogger
}

func NewStatisticHandler(uc statistic.UseCase, resp *httpx.Responder, log logger.ZapLogger) *StatisticHandler {
	return &StatisticHandler{
		uc:     uc,
		resp:   resp,
		logger: log,
	}
}

func (h *StatisticHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/statistic")
	g.GET("/revenue-chart", h.RevenueChart)
	g.GET("/overview", h.Overview)
	g.GET("/order-type", h.OrderType)
	g.GET("/payment-type", h.PaymentType)
	g.GET("/category", h.SaleByCategory)
	g.GET("/top-products", h.TopProducts)
}

func (h *StatisticHandler) RevenueChart(c *gin.Context) {
	points, err := h.uc.RevenueChart(c.Request.Context(), &dto.RevenueChartQuery{Type: c.Query("type")})
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "OK", points)
}

func (h *StatisticHandler) Overview(c *gin.Context) {
	o, err := h.uc.RevenueOverview(c.Request.Context())
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "OK", o)
}

func (h *StatisticHandler) OrderType(c *gin.Context) {
	h.share(c, h.uc.OrderTypeChart)
}

func (h *StatisticHandler) PaymentType(c *gin.Context) {
	h.share(c, h.uc.PaymentTypeChart)
}

func (h *StatisticHandler) SaleByCategory(c *gin.Context) {
	h.share(c, h.uc.SaleByCategoryChart)
}

func (h *StatisticHandler) share(c *gin.Context, load func(ctx context.Context) (*dto.ShareChart, error)) {
	chart, err := load(c.Request.Context())
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "OK", chart)
}

func (h *StatisticHandler) TopProducts(c *gin.Context) {
	top, err := h.uc.TopSaleProducts(c.Request.Context())
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.Page(c, top, len(top))
}
