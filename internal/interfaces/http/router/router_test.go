package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edu-studio/internal/config"
	"edu-studio/internal/domain/entity"
	"edu-studio/internal/interfaces/http/handler"
	"edu-studio/internal/interfaces/http/middleware"
)

type stubStudio struct{}

func (stubStudio) CreateLessonContent(ctx context.Context, topic string) (string, error) {
	return "lesson", nil
}

func (stubStudio) DesignCurriculum(ctx context.Context, subject string) (string, error) {
	return "curriculum", nil
}

func (stubStudio) GenerateLearningResources(ctx context.Context, topic string) (string, error) {
	return "resources", nil
}

func (stubStudio) AnalyzeEducationalResource(ctx context.Context, doc *entity.UploadedDocument) (string, error) {
	return "analysis", nil
}

func (stubStudio) ResetMemory(ctx context.Context) error { return nil }

// countingLimiter 放行前 n 次请求
type countingLimiter struct {
	n    int
	keys []string
}

func (l *countingLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	l.keys = append(l.keys, key)
	return len(l.keys) <= l.n, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "edu-studio"
	cfg.App.Title = "AI-Powered Educational Content Studio"
	cfg.App.Env = "test"
	cfg.Observability.Metrics.Enabled = true
	cfg.Observability.Metrics.Path = "/metrics"
	cfg.LLM.DefaultProvider = "groq"
	return cfg
}

func newTestRouter(cfg *config.Config, limiter middleware.RateLimiter) *Router {
	return New(cfg,
		handler.NewStudioHandler(cfg, stubStudio{}),
		handler.NewHealthHandler(cfg, nil),
		limiter,
	)
}

func serve(r *Router, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, req)
	return w
}

func TestRouter_IndexPage(t *testing.T) {
	w := serve(newTestRouter(testConfig(), nil), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "AI-Powered Educational Content Studio")
	assert.Contains(t, w.Body.String(), "Analyze Resource")
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_SystemEndpoints(t *testing.T) {
	r := newTestRouter(testConfig(), nil)
	for _, path := range []string{"/health", "/ready", "/live"} {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, path, "").Code, path)
	}

	serve(r, http.MethodPost, "/v1/actions/lesson-planner", `{"input":"Fractions"}`)
	w := serve(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "edu_studio_http_requests_total")
}

func TestRouter_ActionRoute(t *testing.T) {
	w := serve(newTestRouter(testConfig(), nil), http.MethodPost, "/v1/actions/activity-generator", `{"input":"Volcanoes"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"output":"resources"`)
}

func TestRouter_UnknownRoute(t *testing.T) {
	w := serve(newTestRouter(testConfig(), nil), http.MethodGet, "/v2/nothing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "route not found")
}

func TestRouter_RequestIDPassthrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	newTestRouter(testConfig(), nil).Engine().ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RateLimit.Enabled = true
	cfg.Security.RateLimit.RequestsPerMinute = 1
	limiter := &countingLimiter{n: 1}
	r := newTestRouter(cfg, limiter)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/v1/actions/lesson-planner", `{"input":"a"}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodPost, "/v1/actions/lesson-planner", `{"input":"b"}`).Code)

	// 探针不受限流影响
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health", "").Code)
	require.Len(t, limiter.keys, 2)
	assert.Equal(t, "ratelimit:192.0.2.1:/v1/actions/:form", limiter.keys[0])
}
