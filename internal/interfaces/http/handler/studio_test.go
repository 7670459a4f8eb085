package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edu-studio/internal/config"
	"edu-studio/internal/domain/entity"
	apperrors "edu-studio/pkg/errors"
)

type fakeStudio struct {
	inputs  []string
	doc     *entity.UploadedDocument
	docText string
	err     error
	resets  int
}

func (f *fakeStudio) CreateLessonContent(ctx context.Context, topic string) (string, error) {
	f.inputs = append(f.inputs, "lesson:"+topic)
	return "lesson for " + topic, f.err
}

func (f *fakeStudio) DesignCurriculum(ctx context.Context, subject string) (string, error) {
	f.inputs = append(f.inputs, "curriculum:"+subject)
	return "curriculum for " + subject, f.err
}

func (f *fakeStudio) GenerateLearningResources(ctx context.Context, topic string) (string, error) {
	f.inputs = append(f.inputs, "resources:"+topic)
	return "resources for " + topic, f.err
}

func (f *fakeStudio) AnalyzeEducationalResource(ctx context.Context, doc *entity.UploadedDocument) (string, error) {
	f.doc = doc
	if doc == nil {
		return "Please upload a PDF file first", nil
	}
	b, err := io.ReadAll(io.NewSectionReader(doc.Reader, 0, doc.Size))
	if err != nil {
		return "", err
	}
	f.docText = string(b)
	return "analysis", f.err
}

func (f *fakeStudio) ResetMemory(ctx context.Context) error {
	f.resets++
	return nil
}

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Form   string `json:"form"`
		Action string `json:"action"`
		Output string `json:"output"`
	} `json:"data"`
	Error *struct {
		ErrorCode string `json:"error_code"`
		Details   string `json:"details"`
	} `json:"error"`
}

func newStudioEngine(svc StudioService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.App.Title = "AI-Powered Educational Content Studio"
	cfg.Server.HTTP.MaxUploadSize = 1 << 20

	h := NewStudioHandler(cfg, svc)
	engine := gin.New()
	engine.GET("/v1/forms", h.ListForms)
	engine.POST("/v1/actions/:form", h.RunAction)
	engine.POST("/v1/memory/reset", h.ResetMemory)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func multipartUpload(t *testing.T, name string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestRunAction_TextForms(t *testing.T) {
	svc := &fakeStudio{}
	engine := newStudioEngine(svc)

	cases := []struct {
		form string
		want string
	}{
		{form: "lesson-planner", want: "lesson for Fractions"},
		{form: "curriculum-designer", want: "curriculum for Fractions"},
		{form: "activity-generator", want: "resources for Fractions"},
	}
	for _, tc := range cases {
		w, env := doJSON(t, engine, "/v1/actions/"+tc.form, `{"input":"Fractions"}`)
		assert.Equal(t, http.StatusOK, w.Code, tc.form)
		assert.Equal(t, tc.want, env.Data.Output)
		assert.Equal(t, tc.form, env.Data.Form)
	}
	assert.Equal(t, []string{"lesson:Fractions", "curriculum:Fractions", "resources:Fractions"}, svc.inputs)
}

func TestRunAction_EmptyInputIsForwarded(t *testing.T) {
	svc := &fakeStudio{}
	w, env := doJSON(t, newStudioEngine(svc), "/v1/actions/lesson-planner", `{"input":""}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "lesson for ", env.Data.Output)
}

func TestRunAction_UnknownForm(t *testing.T) {
	w, env := doJSON(t, newStudioEngine(&fakeStudio{}), "/v1/actions/nope", `{"input":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, string(apperrors.CodeFormNotFound), env.Error.ErrorCode)
	assert.Equal(t, "nope", env.Error.Details)
}

func TestRunAction_InvalidJSON(t *testing.T) {
	w, _ := doJSON(t, newStudioEngine(&fakeStudio{}), "/v1/actions/lesson-planner", `{"input":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunAction_BackendFailure(t *testing.T) {
	svc := &fakeStudio{err: apperrors.Wrap(errors.New("401"), apperrors.CodeLLMCallFailed, "content generation failed")}
	w, env := doJSON(t, newStudioEngine(svc), "/v1/actions/curriculum-designer", `{"input":"Biology"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "content generation failed", env.Message)
	require.NotNil(t, env.Error)
	assert.Equal(t, string(apperrors.CodeLLMCallFailed), env.Error.ErrorCode)
}

func TestRunAction_AnalyzeWithoutFile(t *testing.T) {
	svc := &fakeStudio{}
	engine := newStudioEngine(svc)

	req := httptest.NewRequest(http.MethodPost, "/v1/actions/resource-analyzer", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Please upload a PDF file first", env.Data.Output)
	assert.Nil(t, svc.doc)
}

func TestRunAction_AnalyzeUpload(t *testing.T) {
	svc := &fakeStudio{}
	engine := newStudioEngine(svc)

	body, contentType := multipartUpload(t, "Lesson.PDF", []byte("%PDF-1.4 fake"))
	req := httptest.NewRequest(http.MethodPost, "/v1/actions/resource-analyzer", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.doc)
	assert.Equal(t, "Lesson.PDF", svc.doc.Name)
	assert.Equal(t, "%PDF-1.4 fake", svc.docText)
}

func TestRunAction_AnalyzeRejectsNonPDF(t *testing.T) {
	svc := &fakeStudio{}
	engine := newStudioEngine(svc)

	body, contentType := multipartUpload(t, "notes.txt", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/v1/actions/resource-analyzer", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.doc)
}

func TestRunAction_AnalyzeRejectsOversizeUpload(t *testing.T) {
	cases := []struct {
		name string
		size int
	}{
		{name: "just over the file limit", size: 1<<20 + 1},
		{name: "body beyond the stream limit", size: 4 << 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeStudio{}
			engine := newStudioEngine(svc)

			body, contentType := multipartUpload(t, "big.pdf", bytes.Repeat([]byte("x"), tc.size))
			req := httptest.NewRequest(http.MethodPost, "/v1/actions/resource-analyzer", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var env envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.Contains(t, env.Message, "too large")
			require.NotNil(t, env.Error)
			assert.Equal(t, "limit is 1048576 bytes", env.Error.Details)
			assert.Nil(t, svc.doc)
		})
	}
}

func TestListFormsAndReset(t *testing.T) {
	svc := &fakeStudio{}
	engine := newStudioEngine(svc)

	req := httptest.NewRequest(http.MethodGet, "/v1/forms", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Title string `json:"title"`
			Forms []struct {
				ID   string `json:"id"`
				Kind string `json:"kind"`
			} `json:"forms"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "AI-Powered Educational Content Studio", resp.Data.Title)
	require.Len(t, resp.Data.Forms, 4)
	assert.Equal(t, "pdf", resp.Data.Forms[3].Kind)

	req = httptest.NewRequest(http.MethodPost, "/v1/memory/reset", nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.resets)
}
