package studio

import (
	"context"
	"errors"
	"io"
	"time"

	"edu-studio/internal/domain/entity"
	"edu-studio/internal/domain/repository"
	"edu-studio/internal/infrastructure/messaging"
	"edu-studio/internal/workflow/prompt"
	apperrors "edu-studio/pkg/errors"
	"edu-studio/pkg/logger"
	"edu-studio/pkg/metrics"
	"edu-studio/pkg/tracer"
)

// MissingDocumentMessage 分析动作未上传文件时返回的固定提示
const MissingDocumentMessage = "Please upload a PDF file first"

// actionPersonas 动作到执行角色的固定映射
var actionPersonas = map[entity.Action]entity.PersonaID{
	entity.ActionLessonPlan:        entity.PersonaContentCreator,
	entity.ActionCurriculum:        entity.PersonaCurriculumDesigner,
	entity.ActionLearningResources: entity.PersonaResourceGenerator,
	entity.ActionResourceAnalysis:  entity.PersonaResourceAnalyzer,
}

// TextExtractor 上传文档的纯文本提取
type TextExtractor interface {
	ExtractText(ctx context.Context, r io.ReaderAt, size int64) (string, error)
}

// GenerationPublisher 生成审计消息发布
type GenerationPublisher interface {
	PublishGeneration(ctx context.Context, msg *messaging.GenerationMessage) error
}

// Service 工作室服务
type Service struct {
	runner    Runner
	agents    Agents
	extractor TextExtractor
	publisher GenerationPublisher
	memory    repository.ConversationMemory
}

// NewService 创建工作室服务，publisher 可为 nil
func NewService(runner Runner, agents Agents, extractor TextExtractor, memory repository.ConversationMemory, publisher GenerationPublisher) *Service {
	return &Service{
		runner:    runner,
		agents:    agents,
		extractor: extractor,
		publisher: publisher,
		memory:    memory,
	}
}

// CreateLessonContent 生成课程教案
func (s *Service) CreateLessonContent(ctx context.Context, topic string) (string, error) {
	return s.run(ctx, entity.ActionLessonPlan, topic, prompt.LessonPlan(topic))
}

// DesignCurriculum 设计课程体系
func (s *Service) DesignCurriculum(ctx context.Context, subject string) (string, error) {
	return s.run(ctx, entity.ActionCurriculum, subject, prompt.Curriculum(subject))
}

// GenerateLearningResources 生成互动教学资源
func (s *Service) GenerateLearningResources(ctx context.Context, topic string) (string, error) {
	return s.run(ctx, entity.ActionLearningResources, topic, prompt.LearningResources(topic))
}

// AnalyzeEducationalResource 提取 PDF 文本后交给分析角色
// 未上传文件时直接返回固定提示，不解析也不调用模型
func (s *Service) AnalyzeEducationalResource(ctx context.Context, doc *entity.UploadedDocument) (string, error) {
	if doc == nil || doc.Reader == nil {
		metrics.ActionTotal.WithLabelValues(string(entity.ActionResourceAnalysis), "no_document").Inc()
		return MissingDocumentMessage, nil
	}

	ctx = logger.WithContext(ctx, logger.ActionKey, string(entity.ActionResourceAnalysis))
	text, err := s.extractor.ExtractText(ctx, doc.Reader, doc.Size)
	if err != nil {
		metrics.ActionTotal.WithLabelValues(string(entity.ActionResourceAnalysis), "error").Inc()
		logger.Error(ctx, "failed to extract document text", err, "file", doc.Name, "size", doc.Size)
		return "", apperrors.Wrap(err, apperrors.CodeDocumentParseFailed, "failed to read PDF document")
	}
	return s.run(ctx, entity.ActionResourceAnalysis, text, prompt.ResourceAnalysis(text))
}

// ResetMemory 清空共享会话记忆
func (s *Service) ResetMemory(ctx context.Context) error {
	if s.memory == nil {
		return nil
	}
	if err := s.memory.Clear(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.CodeCacheError, "failed to reset conversation memory")
	}
	logger.Info(ctx, "conversation memory cleared")
	return nil
}

func (s *Service) run(ctx context.Context, action entity.Action, input string, p prompt.TaskPrompt) (out string, err error) {
	ctx = logger.WithContext(ctx, logger.ActionKey, string(action))
	ctx, span := tracer.Start(ctx, "studio."+string(action))
	start := time.Now()
	defer func() {
		tracer.End(span, err)
		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.ActionTotal.WithLabelValues(string(action), status).Inc()
		metrics.ActionDuration.WithLabelValues(string(action)).Observe(time.Since(start).Seconds())
		s.publish(ctx, action, status, len(input), len(out), time.Since(start))
	}()

	agent, err := s.agents.Get(actionPersonas[action])
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeInternalError, "persona not configured")
	}
	task := entity.NewTask(action, agent.Persona.ID, p.Description, p.ExpectedOutput)

	out, err = s.runner.Run(ctx, agent, task)
	if err != nil {
		logger.Error(ctx, "studio action failed", err, "persona", agent.Persona.ID)
		if errors.Is(err, ErrBackend) {
			return "", apperrors.Wrap(err, apperrors.CodeLLMCallFailed, "content generation failed")
		}
		return "", apperrors.Wrap(err, apperrors.CodeGenerationFailed, "content generation failed")
	}
	return out, nil
}

func (s *Service) publish(ctx context.Context, action entity.Action, status string, inputLen, outputLen int, elapsed time.Duration) {
	if s.publisher == nil {
		return
	}
	msg := &messaging.GenerationMessage{
		Action:       string(action),
		PersonaID:    string(actionPersonas[action]),
		Status:       status,
		InputLength:  inputLen,
		OutputLength: outputLen,
		DurationMS:   elapsed.Milliseconds(),
		TraceID:      tracer.TraceID(ctx),
	}
	if reqID, ok := ctx.Value(logger.RequestIDKey).(string); ok {
		msg.RequestID = reqID
	}
	if err := s.publisher.PublishGeneration(ctx, msg); err != nil {
		logger.Warn(ctx, "failed to publish generation audit", "error", err.Error())
	}
}
