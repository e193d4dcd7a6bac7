package handler

import (
	"github.com/fekuna/omnipos-cafe-service/internal/definition"
	"github.com/fekuna/omnipos-cafe-service/internal/definition/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/httpx"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

type DefinitionHandler struct {
	uc     definition.UseCase
	resp   *httpx.Responder
	logger logger.ZapLogger
}

func NewDefinitionHandler(uc definition.UseCase, resp *httpx.Responder, log logger.ZapLogger) *DefinitionHandler {
	return &DefinitionHandler{
		uc:     uc,
		resp:   resp,
		logger: log,
	}
}

func (h *DefinitionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	types := rg.Group("/definition/types")
	types.GET("", h.ListTypes)
	types.POST("", h.CreateType)
	types.PUT("/:id", h.UpdateType)
	types.DELETE("/:id", h.DeleteType)

	options := rg.Group("/definition/options")
	options.GET("", h.ListOptions)
	options.GET("/:id", h.GetOption)
	options.POST("", h.CreateOption)
	options.PUT("/:id", h.UpdateOption)

	rg.GET("/product/:id/options", h.GetProductOptions)
	rg.PUT("/product/:id/options", h.SetProductOptions)
}

func (h *DefinitionHandler) ListTypes(c *gin.Context) {
	types, err := h.uc.ListTypes(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.Page(c, types, len(types))
}

func (h *DefinitionHandler) CreateType(c *gin.Context) {
	var input dto.TypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	t, err := h.uc.CreateType(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Created", t)
}

func (h *DefinitionHandler) UpdateType(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	var input dto.TypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	input.ID = id

	t, err := h.uc.UpdateType(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Updated", t)
}

func (h *DefinitionHandler) DeleteType(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	if err := h.uc.DeleteType(c.Request.Context(), id); err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Deleted", nil)
}

func (h *DefinitionHandler) ListOptions(c *gin.Context) {
	options, err := h.uc.ListOptions(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.Page(c, options, len(options))
}

func (h *DefinitionHandler) GetOption(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	o, err := h.uc.GetOption(c.Request.Context(), id)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "OK", o)
}

func (h *DefinitionHandler) CreateOption(c *gin.Context) {
	var input dto.CreateOptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	o, err := h.uc.CreateOption(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Created", o)
}

func (h *DefinitionHandler) UpdateOption(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	var input dto.UpdateOptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	input.ID = id

	o, err := h.uc.UpdateOption(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Updated", o)
}

func (h *DefinitionHandler) GetProductOptions(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	options, err := h.uc.GetProductOptions(c.Request.Context(), id)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "OK", options)
}

func (h *DefinitionHandler) SetProductOptions(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	var input dto.ProductOptionsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	input.ProductID = id

	options, err := h.uc.SetProductOptions(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Updated", options)
}
