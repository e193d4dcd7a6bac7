package handler

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-cafe-service/internal/auth"
	"github.com/fekuna/omnipos-cafe-service/internal/auth/dto"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/httpx"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

const refreshCookie = "refresh_token"

type AuthHandler struct {
	uc           auth.UseCase
	resp         *httpx.Responder
	logger       logger.ZapLogger
	refreshTTL   time.Duration
	secureCookie bool
}

func NewAuthHandler(uc auth.UseCase, resp *httpx.Responder, log logger.ZapLogger, refreshTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		uc:           uc,
		resp:         resp,
		logger:       log,
		refreshTTL:   refreshTTL,
		secureCookie: secureCookie,
	}
}

// RegisterPublicRoutes mounts the endpoints reachable without a token.
func (h *AuthHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.POST("/login", h.Login)
	g.POST("/refresh", h.Refresh)
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.Me)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.BindError(c, err)
		return
	}
	pair, err := h.uc.Login(c.Request.Context(), &input)
	if err != nil {
		h.resp.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookie, pair.RefreshToken, int(h.refreshTTL.Seconds()), "/api/auth", "", h.secureCookie, true)
	h.resp.OK(c, "OK", pair)
}

// Refresh accepts the refresh token from the body or the cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var input dto.RefreshInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			h.resp.BindError(c, err)
			return
		}
	}
	token := input.RefreshToken
	if token == "" {
		token, _ = c.Cookie(refreshCookie)
	}
	if token == "" {
		h.resp.Error(c, apperr.Unauthorized("missing refresh token"))
		return
	}

	pair, err := h.uc.Refresh(c.Request.Context(), token)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "OK", pair)
}

func (h *AuthHandler) Me(c *gin.Context) {
	me, err := h.uc.Me(c.Request.Context(), auth.UserID(c.Request.Context()))
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.OK(c, "OK", me)
}
