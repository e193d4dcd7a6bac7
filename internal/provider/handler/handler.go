package handler

import (
	"github.com/fekuna/omnipos-cafe-service/internal/auth"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/httpx"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/provider"
	"github.com/fekuna/omnipos-cafe-service/internal/provider/dto"
	"github.com/gin-gonic/gin"
)

type ProviderHandler struct {
	uc     provider.UseCase
	resp   *httpx.Responder
	logger logger.ZapLogger
}

func NewProviderHandler(uc provider.UseCase, resp *httpx.Responder, log logger.ZapLogger) *ProviderHandler {
	return &ProviderHandler{
		uc:     uc,
		resp:   resp,
		logger: log,
	}
}

func (h *ProviderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/provider")
	g.GET("", h.ListProviders)
	g.GET("/active", h.ListActive)
	g.GET("/:id", h.GetProvider)
	g.POST("", h.CreateProvider)
	g.PUT("/:id", h.UpdateProvider)
}

type listQuery struct {
	Keyword string `form:"keyword"`
	Active  *bool  `form:"active"`
}

func (h *ProviderHandler) ListProviders(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.resp.BindError(c, err)
		return
	}
	items, err := h.uc.ListProviders(c.Request.Context(), &dto.ProviderFilters{Keyword: q.Keyword, Active: q.Active})
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.Page(c, items, len(items))
}

func (h *ProviderHandler) ListActive(c *gin.Context) {
	active := true
	items, err := h.uc.ListProviders(c.Request.Context(), &dto.ProviderFilters{Active: &active})
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.Page(c, items, len(items))
}

func (h *ProviderHandler) GetProvider(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	p, err := h.uc.GetProvider(c.Request.Context(), id)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "OK", p)
}

func (h *ProviderHandler) CreateProvider(c *gin.Context) {
	var input dto.CreateProviderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	input.UserID = auth.UserID(c.Request.Context())

	p, err := h.uc.CreateProvider(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Created", p)
}

func (h *ProviderHandler) UpdateProvider(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	var input dto.UpdateProviderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	input.ID = id
	input.UserID = auth.UserID(c.Request.Context())

	p, err := h.uc.UpdateProvider(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Updated", p)
}
