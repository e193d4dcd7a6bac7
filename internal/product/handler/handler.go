package handler

import (
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/httpx"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/product"
	"github.com/fekuna/omnipos-cafe-service/internal/product/dto"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	uc     product.UseCase
	resp   *httpx.Responder
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, resp *httpx.Responder, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		resp:   resp,
		logger: log,
	}
}

func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/product")
	g.GET("", h.ListProducts)
	g.GET("/:id", h.GetProduct)
	g.POST("", h.CreateProduct)
	g.PUT("/:id", h.UpdateProduct)
}

type listQuery struct {
	Keyword    string `form:"keyword"`
	CategoryID *int64 `form:"category_id"`
	TypeID     *int64 `form:"type_id"`
	Active     *bool  `form:"active"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.resp.BindError(c, err)
		return
	}
	products, count, err := h.uc.ListProducts(c.Request.Context(), &dto.ProductFilters{
		Keyword:    q.Keyword,
		CategoryID: q.CategoryID,
		TypeID:     q.TypeID,
		Active:     q.Active,
		Page:       q.Page,
		PageSize:   q.PageSize,
	})
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.Page(c, products, count)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	p, err := h.uc.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "OK", p)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var input dto.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	p, err := h.uc.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Created", p)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	var input dto.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	input.ID = id

	p, err := h.uc.UpdateProduct(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Updated", p)
}
