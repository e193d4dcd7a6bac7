package handler

import (
	"github.com/fekuna/omnipos-cafe-service/internal/category"
	"github.com/fekuna/omnipos-cafe-service/internal/category/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/httpx"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	uc     category.UseCase
	resp   *httpx.Responder
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, resp *httpx.Responder, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		resp:   resp,
		logger: log,
	}
}

func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/category")
	g.GET("", h.ListCategories)
	g.POST("", h.CreateCategory)
	g.PUT("/:id", h.UpdateCategory)
	g.DELETE("/:id", h.DeleteCategory)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.uc.ListCategories(c.Request.Context(), &dto.CategoryFilters{Keyword: c.Query("keyword")})
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.Page(c, categories, len(categories))
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var input dto.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	cat, err := h.uc.CreateCategory(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Created", cat)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	var input dto.UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	input.ID = id

	cat, err := h.uc.UpdateCategory(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Updated", cat)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	if err := h.uc.DeleteCategory(c.Request.Context(), id); err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Deleted", nil)
}
