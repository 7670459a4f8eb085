// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"edu-studio/internal/config"
)

// HealthChecker 可做就绪探测的依赖
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	version string
	llm     *config.LLMConfig
	redis   HealthChecker
}

// NewHealthHandler 创建健康检查处理器，redis 未启用时传 nil
func NewHealthHandler(cfg *config.Config, redis HealthChecker) *HealthHandler {
	return &HealthHandler{
		version: cfg.App.Version,
		llm:     &cfg.LLM,
		redis:   redis,
	}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Health 健康检查接口
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

// Ready 就绪检查接口
// Redis 启用时为必需依赖；LLM 凭据缺失只标记为 degraded，首次调用时才会报错
// @Summary 就绪检查
// @Tags System
// @Produce json
// @Success 200 {object} readinessResponse
// @Failure 503 {object} readinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	var mu sync.Mutex
	checks := map[string]*readinessCheck{
		"redis": {Status: "disabled"},
	}
	record := func(name string, check *readinessCheck) {
		mu.Lock()
		checks[name] = check
		mu.Unlock()
	}

	// 必需依赖失败时返回错误，degraded 不影响就绪
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		record("llm", h.checkLLM())
		return nil
	})
	if h.redis != nil {
		g.Go(func() error {
			start := time.Now()
			err := h.redis.HealthCheck(gctx)
			check := &readinessCheck{Status: "ok", LatencyMs: time.Since(start).Milliseconds()}
			if err != nil {
				check.Status = "error"
				check.Error = err.Error()
			}
			record("redis", check)
			return err
		})
	}
	ready := g.Wait() == nil

	resp := readinessResponse{
		Status: "ok",
		Checks: checks,
	}
	if !ready {
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HealthHandler) checkLLM() *readinessCheck {
	if h.llm == nil {
		return &readinessCheck{Status: "degraded", Error: "llm config missing"}
	}
	provider, ok := h.llm.Providers[h.llm.DefaultProvider]
	if !ok {
		return &readinessCheck{Status: "degraded", Error: "default provider " + h.llm.DefaultProvider + " not configured"}
	}
	if strings.TrimSpace(provider.APIKey) == "" {
		return &readinessCheck{Status: "degraded", Error: "api key for " + h.llm.DefaultProvider + " is empty"}
	}
	return &readinessCheck{Status: "ok"}
}

// Live 存活检查接口
// @Summary 存活检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
	})
}
