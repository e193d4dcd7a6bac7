package handler

import (
	"github.com/fekuna/omnipos-cafe-service/internal/auth"
	"github.com/fekuna/omnipos-cafe-service/internal/order"
	"github.com/fekuna/omnipos-cafe-service/internal/order/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/httpx"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	uc     order.UseCase
	resp   *httpx.Responder
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, resp *httpx.Responder, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		resp:   resp,
		logger: log,
	}
}

func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/order")
	g.GET("", h.ListOrders)
	g.GET("/payment-methods", h.ListPaymentMethods)
	g.GET("/:id", h.GetOrder)
	g.POST("", h.CreateOrder)
	g.PUT("/:id", h.UpdateOrder)
	g.DELETE("/:id", h.DeleteOrder)
	g.POST("/:id/pay", h.PayOrder)
}

type listQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	ID        *int64 `form:"id"`
	Type      string `form:"type"`
	Status    string `form:"status"`
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.resp.BindError(c, err)
		return
	}
	orders, err := h.uc.GetOrderByFilter(c.Request.Context(), &dto.OrderFilters{
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		ID:        q.ID,
		Type:      q.Type,
		Status:    q.Status,
	})
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.Page(c, orders, len(orders))
}

func (h *OrderHandler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.uc.ListPaymentMethods(c.Request.Context())
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "OK", methods)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	d, err := h.uc.GetOrderDetailByID(c.Request.Context(), id)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "OK", d)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var input dto.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	input.UserID = auth.UserID(c.Request.Context())

	id, err := h.uc.CreateOrder(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Created", gin.H{"id": id})
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	var input dto.UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	input.ID = id

	if err := h.uc.UpdateOrder(c.Request.Context(), &input); err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Updated", gin.H{"id": id})
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	if err := h.uc.VoidOrder(c.Request.Context(), id); err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Deleted", gin.H{"id": id})
}

func (h *OrderHandler) PayOrder(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	var input dto.PayOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	input.OrderID = id

	o, err := h.uc.PayOrder(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Paid", o)
}
