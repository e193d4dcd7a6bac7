package handler

import (
	"github.com/fekuna/omnipos-cafe-service/internal/auth"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/httpx"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/user"
	"github.com/fekuna/omnipos-cafe-service/internal/user/dto"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	uc     user.UseCase
	resp   *httpx.Responder
	logger logger.ZapLogger
}

func NewUserHandler(uc user.UseCase, resp *httpx.Responder, log logger.ZapLogger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		resp:   resp,
		logger: log,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/account")
	accounts.GET("", h.ListAccounts)
	accounts.GET("/:id", h.GetAccount)
	accounts.GET("/:id/permissions", h.AccountPermissions)
	accounts.POST("", h.CreateAccount)
	accounts.PUT("/:id", h.UpdateAccount)
	accounts.DELETE("/:id", h.DeleteAccount)
	accounts.POST("/:id/reset-password", h.ResetPassword)

	roles := rg.Group("/role")
	roles.GET("", h.ListRoles)
	roles.GET("/:id/permissions", h.RolePermissions)
	roles.POST("", h.CreateRole)
	roles.PUT("/:id", h.UpdateRole)
	roles.DELETE("/:id", h.DeleteRole)

	rg.GET("/permission", h.ListPermissions)
}

func (h *UserHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.uc.ListAccounts(c.Request.Context())
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.Page(c, accounts, len(accounts))
}

func (h *UserHandler) GetAccount(c *gin.Context) {
	id, err := httpx.ParamUUID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	a, err := h.uc.GetAccount(c.Request.Context(), id)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "OK", a)
}

func (h *UserHandler) AccountPermissions(c *gin.Context) {
	id, err := httpx.ParamUUID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	perms, err := h.uc.AccountPermissions(c.Request.Context(), id)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "OK", perms)
}

func (h *UserHandler) CreateAccount(c *gin.Context) {
	var input dto.CreateAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	a, err := h.uc.CreateAccount(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Created", a)
}

func (h *UserHandler) UpdateAccount(c *gin.Context) {
	id, err := httpx.ParamUUID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	var input dto.UpdateAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	input.ID = id

	a, err := h.uc.UpdateAccount(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Updated", a)
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	id, err := httpx.ParamUUID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	ctx := c.Request.Context()
	if err := h.uc.DeleteAccount(ctx, id, auth.UserID(ctx)); err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Deleted", nil)
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, err := httpx.ParamUUID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	res, err := h.uc.ResetPassword(c.Request.Context(), id)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Updated", res)
}

func (h *UserHandler) ListRoles(c *gin.Context) {
	roles, err := h.uc.ListRoles(c.Request.Context())
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.Page(c, roles, len(roles))
}

func (h *UserHandler) RolePermissions(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	perms, err := h.uc.RolePermissions(c.Request.Context(), id)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "OK", perms)
}

func (h *UserHandler) ListPermissions(c *gin.Context) {
	perms, err := h.uc.ListPermissions(c.Request.Context())
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.Page(c, perms, len(perms))
}

func (h *UserHandler) CreateRole(c *gin.Context) {
	var input dto.RoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	input.UserID = auth.UserID(c.Request.Context())

	r, err := h.uc.CreateRole(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Created", r)
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	var input dto.RoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	input.ID = id
	input.UserID = auth.UserID(c.Request.Context())

	r, err := h.uc.UpdateRole(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Updated", r)
}

func (h *UserHandler) DeleteRole(c *gin.Context) {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	if err := h.uc.DeleteRole(c.Request.Context(), id); err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "Deleted", nil)
}
