// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"edu-studio/internal/config"
	"edu-studio/internal/infrastructure/persistence/redis"
	"edu-studio/internal/interfaces/http/dto"
	"edu-studio/internal/interfaces/http/handler"
	"edu-studio/internal/interfaces/http/middleware"
	"edu-studio/internal/interfaces/http/ui"
)

// Router HTTP 路由器
type Router struct {
	engine  *gin.Engine
	cfg     *config.Config
	studio  *handler.StudioHandler
	health  *handler.HealthHandler
	limiter middleware.RateLimiter
}

// New 创建路由器，limiter 为 nil 时不限流
func New(cfg *config.Config, studio *handler.StudioHandler, health *handler.HealthHandler, limiter middleware.RateLimiter) *Router {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if cfg.Server.HTTP.MaxUploadSize > 0 {
		engine.MaxMultipartMemory = cfg.Server.HTTP.MaxUploadSize
	}
	engine.SetHTMLTemplate(ui.Templates())

	r := &Router{
		engine:  engine,
		cfg:     cfg,
		studio:  studio,
		health:  health,
		limiter: limiter,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CORS(r.cfg.Security.CORS))

	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}
	r.engine.Use(middleware.AccessLog(middleware.DefaultAccessLogSkipPaths))
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", r.health.Health)
	r.engine.GET("/ready", r.health.Ready)
	r.engine.GET("/live", r.health.Live)

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	r.engine.GET("/", r.studio.Index)
	r.engine.NoRoute(func(c *gin.Context) {
		dto.NotFound(c, "route not found")
	})

	v1 := r.engine.Group("/v1")
	v1.Use(middleware.RateLimit(r.cfg.Security.RateLimit, r.limiter, redis.BuildRateLimitKey))
	RegisterV1Routes(v1, r.studio)
}
