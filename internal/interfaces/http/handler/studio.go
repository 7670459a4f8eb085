package handler

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"edu-studio/internal/config"
	"edu-studio/internal/domain/entity"
	"edu-studio/internal/interfaces/http/dto"
	"edu-studio/internal/interfaces/http/ui"
	"edu-studio/pkg/errors"
	"edu-studio/pkg/logger"
)

// StudioService 工作室动作
type StudioService interface {
	CreateLessonContent(ctx context.Context, topic string) (string, error)
	DesignCurriculum(ctx context.Context, subject string) (string, error)
	GenerateLearningResources(ctx context.Context, topic string) (string, error)
	AnalyzeEducationalResource(ctx context.Context, doc *entity.UploadedDocument) (string, error)
	ResetMemory(ctx context.Context) error
}

// StudioHandler 页面与动作处理器
type StudioHandler struct {
	svc           StudioService
	title         string
	maxUploadSize int64
}

// NewStudioHandler 创建工作室处理器
func NewStudioHandler(cfg *config.Config, svc StudioService) *StudioHandler {
	return &StudioHandler{
		svc:           svc,
		title:         cfg.App.Title,
		maxUploadSize: cfg.Server.HTTP.MaxUploadSize,
	}
}

// Index 渲染工作室页面
func (h *StudioHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, ui.IndexTemplate, ui.Page{
		Title: h.title,
		Forms: ui.Forms,
	})
}

// ListForms 列出页面表单
// @Summary 表单列表
// @Tags Studio
// @Produce json
// @Success 200 {object} dto.Response[dto.FormListResponse]
// @Router /v1/forms [get]
func (h *StudioHandler) ListForms(c *gin.Context) {
	dto.Success(c, dto.FormListResponse{
		Title: h.title,
		Forms: ui.Forms,
	})
}

// RunAction 执行表单对应的动作
// 文本表单接收 JSON {"input": "..."}，文件表单接收 multipart 字段 file
// @Summary 执行动作
// @Tags Studio
// @Accept json,mpfd
// @Produce json
// @Param form path string true "表单 ID"
// @Success 200 {object} dto.Response[dto.ActionResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/actions/{form} [post]
func (h *StudioHandler) RunAction(c *gin.Context) {
	form, ok := ui.Lookup(c.Param("form"))
	if !ok {
		dto.AppError(c, errors.ErrFormNotFound.WithDetail(c.Param("form")))
		return
	}
	ctx := logger.WithContext(c.Request.Context(), logger.ActionKey, string(form.Action))

	var (
		out string
		err error
	)
	switch form.Kind {
	case ui.InputPDF:
		doc, closeFn, uploadErr := h.readUpload(c)
		if uploadErr != nil {
			dto.AppError(c, uploadErr)
			return
		}
		defer closeFn()
		out, err = h.svc.AnalyzeEducationalResource(ctx, doc)
	default:
		var req dto.ActionRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			dto.BadRequest(c, "invalid request body: "+bindErr.Error())
			return
		}
		out, err = h.runText(ctx, form.Action, req.Input)
	}

	if err != nil {
		if !errors.IsAppError(err) {
			logger.Error(ctx, "studio action failed", err, "form", form.ID)
		}
		dto.AppError(c, err)
		return
	}

	dto.Success(c, dto.ActionResponse{
		Form:   form.ID,
		Action: string(form.Action),
		Output: out,
	})
}

// ResetMemory 清空共享会话记忆
// @Summary 重置记忆
// @Tags Studio
// @Produce json
// @Success 200 {object} dto.Response[dto.MemoryResetResponse]
// @Router /v1/memory/reset [post]
func (h *StudioHandler) ResetMemory(c *gin.Context) {
	if err := h.svc.ResetMemory(c.Request.Context()); err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, dto.MemoryResetResponse{Cleared: true})
}

func (h *StudioHandler) runText(ctx context.Context, action entity.Action, input string) (string, error) {
	switch action {
	case entity.ActionLessonPlan:
		return h.svc.CreateLessonContent(ctx, input)
	case entity.ActionCurriculum:
		return h.svc.DesignCurriculum(ctx, input)
	case entity.ActionLearningResources:
		return h.svc.GenerateLearningResources(ctx, input)
	default:
		return "", errors.New(errors.CodeInvalidParam, "unsupported text action: "+string(action))
	}
}

// multipartOverhead 请求体上限在文件上限之外为边界与分段头预留的字节数
const multipartOverhead = 64 << 10

// readUpload 读取上传的 PDF，未上传时返回 nil 文档
func (h *StudioHandler) readUpload(c *gin.Context) (*entity.UploadedDocument, func(), error) {
	noop := func() {}

	if h.maxUploadSize > 0 {
		// 超限的请求体在读取过程中即被截断，不会整体落盘
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize+multipartOverhead)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		if stderrors.Is(err, http.ErrMissingFile) || stderrors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, noop, h.uploadTooLarge()
		}
		return nil, noop, errors.Wrap(err, errors.CodeInvalidParam, "invalid upload")
	}

	if !entity.IsPDFName(fh.Filename) {
		return nil, noop, errors.New(errors.CodeInvalidParam, "only PDF files are supported")
	}
	if h.maxUploadSize > 0 && fh.Size > h.maxUploadSize {
		return nil, noop, h.uploadTooLarge()
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, errors.Wrap(err, errors.CodeUploadUnreadable, "failed to open uploaded file")
	}
	return entity.NewUploadedDocument(fh.Filename, fh.Size, f), func() { _ = f.Close() }, nil
}

func (h *StudioHandler) uploadTooLarge() *errors.AppError {
	return errors.New(errors.CodeInvalidParam, "uploaded file is too large").
		WithDetail(fmt.Sprintf("limit is %d bytes", h.maxUploadSize))
}
