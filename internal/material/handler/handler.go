package handler

import (
	"github.com/fekuna/omnipos-cafe-service/internal/auth"
	"github.com/fekuna/omnipos-cafe-service/internal/material"
	"github.com/fekuna/omnipos-cafe-service/internal/material/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/httpx"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

type MaterialHandler struct {
	uc     material.UseCase
	resp   *httpx.Responder
	logger logger.ZapLogger
}

func NewMaterialHandler(uc material.UseCase, resp *httpx.Responder, log logger.ZapLogger) *MaterialHandler {
	return &MaterialHandler{
		uc:     uc,
		resp:   resp,
		logger: log,
	}
}

func (h *MaterialHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/material")
	g.GET("", h.ListMaterials)
	g.GET("/active", h.ListActive)
	g.GET("/low-stock", h.ListLowStock)
	g.GET("/movements", h.ListMovements)
	g.GET("/units", h.ListUnits)
	g.POST("/units", h.CreateUnit)
	g.DELETE("/units/:id", h.DeleteUnit)
	g.GET("/:id", h.GetMaterial)
	g.POST("", h.CreateMaterial)
	g.PUT("/:id", h.UpdateMaterial)
}

type listQuery struct {
	Keyword  string `form:"keyword"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

func (h *MaterialHandler) ListMaterials(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.resp.BindError(c, err)
		return
	}
	items, count, err := h.uc.ListMaterials(c.Request.Context(), &dto.MaterialFilters{
		Keyword:  q.Keyword,
		Active:   q.Active,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.Page(c, items, count)
}

func (h *MaterialHandler) ListActive(c *gin.Context) {
	active := true
	items, count, err := h.uc.ListMaterials(c.Request.Context(), &dto.MaterialFilters{Active: &active})
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.Page(c, items, count)
}

func (h *MaterialHandler) ListLowStock(c *gin.Context) {
	items, err := h.uc.ListLowStock(c.Request.Context())
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.Page(c, items, len(items))
}

type movementQuery struct {
	MaterialID int64  `form:"material_id"`
	Direction  string `form:"direction"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

func (h *MaterialHandler) ListMovements(c *gin.Context) {
	var q movementQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.resp.BindError(c, err)
		return
	}
	items, count, err := h.uc.ListMovements(c.Request.Context(), &dto.MovementFilters{
		MaterialID: q.MaterialID,
		Direction:  q.Direction,
		Page:       q.Page,
		PageSize:   q.PageSize,
	})
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.Page(c, items, count)
}

func (h *MaterialHandler) GetMaterial(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	m, err := h.uc.GetMaterial(c.Request.Context(), id)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "OK", m)
}

func (h *MaterialHandler) CreateMaterial(c *gin.Context) {
	var input dto.CreateMaterialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	input.UserID = auth.UserID(c.Request.Context())

	m, err := h.uc.CreateMaterial(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Created", m)
}

func (h *MaterialHandler) UpdateMaterial(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	var input dto.UpdateMaterialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	input.ID = id
	input.UserID = auth.UserID(c.Request.Context())

	m, err := h.uc.UpdateMaterial(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Updated", m)
}

func (h *MaterialHandler) ListUnits(c *gin.Context) {
	units, err := h.uc.ListUnits(c.Request.Context())
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "OK", units)
}

func (h *MaterialHandler) CreateUnit(c *gin.Context) {
	var input dto.CreateUnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	u, err := h.uc.CreateUnit(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Created", u)
}

func (h *MaterialHandler) DeleteUnit(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	if err := h.uc.DeleteUnit(c.Request.Context(), id); err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Deleted", nil)
}
