package middleware

import (
	"strings"

	"github.com/fekuna/omnipos-cafe-service/internal/auth"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/apperr"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/httpx"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Middleware struct {
	tokens *auth.TokenManager
	uc     auth.UseCase
	table  map[string]auth.Permission
	resp   *httpx.Responder
	logger logger.ZapLogger
}

func New(tokens *auth.TokenManager, uc auth.UseCase, table map[string]auth.Permission, resp *httpx.Responder, log logger.ZapLogger) *Middleware {
	return &Middleware{
		tokens: tokens,
		uc:     uc,
		table:  table,
		resp:   resp,
		logger: log,
	}
}

// Authenticate requires a Bearer access token and puts its subject into the
// request context.
func (m *Middleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			m.resp.Error(c, apperr.Unauthorized("missing bearer token"))
			return
		}

		claims, err := m.tokens.Parse(token, auth.TokenAccess)
		if err != nil {
			m.resp.Error(c, apperr.Unauthorized("invalid or expired token"))
			return
		}

		c.Set("user_id", claims.Subject)
		c.Request = c.Request.WithContext(auth.WithUserID(c.Request.Context(), claims.Subject))
		c.Next()
	}
}

// Authorize looks the matched route up in the permission table. Routes that
// are not listed pass through.
func (m *Middleware) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		required, ok := m.table[c.Request.Method+" "+c.FullPath()]
		if !ok {
			c.Next()
			return
		}

		userID := auth.UserID(c.Request.Context())
		if userID == "" {
			m.resp.Error(c, apperr.Unauthorized("missing user"))
			return
		}
		perms, err := m.uc.Permissions(c.Request.Context(), userID)
		if err != nil {
			m.resp.Error(c, err)
			return
		}
		for _, p := range perms {
			if p == string(required) {
				c.Next()
				return
			}
		}

		m.logger.Warn("permission denied",
			zap.String("user_id", userID),
			zap.String("route", c.FullPath()),
			zap.String("permission", string(required)),
		)
		m.resp.Error(c, apperr.Forbidden("missing permission "+string(required)))
	}
}
