package server

import (
	"net/http"
	"time"

	authHandler "github.com/fekuna/omnipos-cafe-service/internal/auth/handler"
	authMiddleware "github.com/fekuna/omnipos-cafe-service/internal/auth/middleware"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-cafe-service/internal/pkg/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouteRegistrar is implemented by every domain handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// NewRouter mounts the public auth endpoints and every protected handler
// under /api. Protected routes go through Authenticate then Authorize.
func NewRouter(
	allowedOrigins []string,
	log logger.ZapLogger,
	guard *authMiddleware.Middleware,
	auth *authHandler.AuthHandler,
	protected ...RouteRegistrar,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.PrometheusMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	auth.RegisterPublicRoutes(api)

	secured := api.Group("", guard.Authenticate(), guard.Authorize())
	auth.RegisterRoutes(secured)
	for _, h := range protected {
		h.RegisterRoutes(secured)
	}
	return r
}
