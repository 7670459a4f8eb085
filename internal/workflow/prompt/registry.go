package prompt

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
	"github.com/slongfield/pyfmt"
)

//go:embed templates/*.txt
var templatesFS embed.FS

type PromptID string

const (
	PromptAgentV1             PromptID = "agent_v1"
	PromptLessonPlanV1        PromptID = "lesson_plan_v1"
	PromptCurriculumV1        PromptID = "curriculum_v1"
	PromptLearningResourcesV1 PromptID = "learning_resources_v1"
	PromptResourceAnalysisV1  PromptID = "resource_analysis_v1"
)

// ChatHistoryKey 智能体模板中会话记忆占位符的变量名
const ChatHistoryKey = "chat_history"

// TaskTemplate 任务描述模板及其期望输出
type TaskTemplate struct {
	ID             PromptID
	Description    string
	ExpectedOutput string
}

// Render 使用 {name} 占位符渲染任务描述
func (t *TaskTemplate) Render(vars map[string]any) (string, error) {
	out, err := pyfmt.Fmt(t.Description, vars)
	if err != nil {
		return "", fmt.Errorf("render prompt %s: %w", t.ID, err)
	}
	return out, nil
}

type Registry struct {
	mu    sync.RWMutex
	chats map[PromptID]einoprompt.ChatTemplate
	tasks map[PromptID]*TaskTemplate
}

func NewRegistry() *Registry {
	return &Registry{
		chats: make(map[PromptID]einoprompt.ChatTemplate),
		tasks: make(map[PromptID]*TaskTemplate),
	}
}

// ChatTemplate 返回智能体对话模板：系统角色消息 + 可选会话记忆 + 任务消息
func (r *Registry) ChatTemplate(id PromptID) (einoprompt.ChatTemplate, error) {
	if r == nil {
		return nil, fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if tpl, ok := r.chats[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.chats[id]; ok {
		return tpl, nil
	}

	if id != PromptAgentV1 {
		return nil, fmt.Errorf("unknown chat prompt id: %s", id)
	}
	system, err := readEmbeddedText("templates/" + string(id) + ".system.txt")
	if err != nil {
		return nil, err
	}
	user, err := readEmbeddedText("templates/" + string(id) + ".user.txt")
	if err != nil {
		return nil, err
	}

	tpl := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(system),
		schema.MessagesPlaceholder(ChatHistoryKey, true),
		schema.UserMessage(user),
	)
	r.chats[id] = tpl
	return tpl, nil
}

// Task 返回任务描述模板
func (r *Registry) Task(id PromptID) (*TaskTemplate, error) {
	if r == nil {
		return nil, fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if tpl, ok := r.tasks[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.tasks[id]; ok {
		return tpl, nil
	}

	switch id {
	case PromptLessonPlanV1, PromptCurriculumV1, PromptLearningResourcesV1, PromptResourceAnalysisV1:
	default:
		return nil, fmt.Errorf("unknown task prompt id: %s", id)
	}
	description, err := readEmbeddedText("templates/" + string(id) + ".task.txt")
	if err != nil {
		return nil, err
	}
	expected, err := readEmbeddedText("templates/" + string(id) + ".expected.txt")
	if err != nil {
		return nil, err
	}

	tpl := &TaskTemplate{ID: id, Description: description, ExpectedOutput: expected}
	r.tasks[id] = tpl
	return tpl, nil
}

func readEmbeddedText(path string) (string, error) {
	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
