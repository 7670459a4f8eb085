package studio

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"edu-studio/internal/domain/entity"
	einoobs "edu-studio/internal/observability/eino"
	"edu-studio/internal/workflow/node"
	"edu-studio/internal/workflow/port"
	"edu-studio/internal/workflow/prompt"
	"edu-studio/pkg/logger"
)

// ErrBackend 推理后端调用失败
var ErrBackend = errors.New("agent backend failed")

// BackendError 携带失败角色的后端错误，errors.Is(err, ErrBackend) 为 true
type BackendError struct {
	PersonaID entity.PersonaID
	Err       error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("agent %s: %v", e.PersonaID, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

func (e *BackendError) Is(target error) bool { return target == ErrBackend }

// Runner 在指定智能体上执行单个任务，返回模型输出原文
type Runner interface {
	Run(ctx context.Context, agent *Agent, task *entity.Task) (string, error)
}

type crewInput struct {
	Agent *Agent
	Task  *entity.Task
}

type crewState struct {
	In       *crewInput
	History  []*entity.Turn
	Messages []*schema.Message
	OutMsg   *schema.Message
}

// Crew 基于 Eino Chain 的 Runner：init -> template -> llm -> remember -> finalize
type Crew struct {
	factory  port.ChatModelFactory
	registry *prompt.Registry
	provider string

	chainOnce sync.Once
	chain     compose.Runnable[*crewInput, string]
	chainErr  error
}

// NewCrew 创建 Crew，provider 为空时使用工厂的默认提供商
func NewCrew(factory port.ChatModelFactory, registry *prompt.Registry, provider string) *Crew {
	if registry == nil {
		registry = prompt.NewRegistry()
	}
	return &Crew{factory: factory, registry: registry, provider: provider}
}

// Run 执行任务，成功后把（任务, 输出）写入智能体的记忆
func (c *Crew) Run(ctx context.Context, agent *Agent, task *entity.Task) (string, error) {
	if c.factory == nil {
		return "", fmt.Errorf("llm factory not configured")
	}
	if agent == nil || agent.Persona == nil {
		return "", fmt.Errorf("agent is nil")
	}
	if task == nil {
		return "", fmt.Errorf("task is nil")
	}

	chain, err := c.getChain()
	if err != nil {
		return "", err
	}
	ctx = logger.WithContext(ctx, logger.PersonaKey, string(agent.Persona.ID))
	return chain.Invoke(ctx, &crewInput{Agent: agent, Task: task})
}

func (c *Crew) getChain() (compose.Runnable[*crewInput, string], error) {
	c.chainOnce.Do(func() {
		c.chain, c.chainErr = c.buildChain(context.Background())
	})
	return c.chain, c.chainErr
}

func (c *Crew) buildChain(ctx context.Context) (compose.Runnable[*crewInput, string], error) {
	chain := compose.NewChain[*crewInput, string]()

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, in *crewInput) (*crewState, error) {
			st := &crewState{In: in}
			if in.Agent.Memory == nil {
				return st, nil
			}
			history, err := in.Agent.Memory.Load(ctx)
			if err != nil {
				return nil, fmt.Errorf("load memory: %w", err)
			}
			st.History = history
			return st, nil
		}),
		compose.WithNodeName("crew.init"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *crewState) (*crewState, error) {
			msgs, err := c.formatMessages(ctx, st)
			if err != nil {
				return nil, err
			}
			st.Messages = msgs
			return st, nil
		}),
		compose.WithNodeName("crew.template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *crewState) (*crewState, error) {
			persona := st.In.Agent.Persona
			provider, modelName := c.factory.Resolve(c.provider)
			ctx = einoobs.WithWorkflowProvider(ctx, string(st.In.Task.Action), provider)
			ctx = callbacks.ReuseHandlers(ctx, &callbacks.RunInfo{
				Name:      "crew.llm",
				Type:      provider,
				Component: components.ComponentOfChatModel,
			})

			chatModel, err := c.factory.Get(ctx, provider)
			if err != nil {
				return nil, &BackendError{PersonaID: persona.ID, Err: err}
			}

			logTaskStart(ctx, persona, st.In.Task, modelName, len(st.History))
			outMsg, err := chatModel.Generate(ctx, st.Messages)
			if err != nil {
				return nil, &BackendError{PersonaID: persona.ID, Err: err}
			}
			if outMsg == nil {
				return nil, &BackendError{PersonaID: persona.ID, Err: fmt.Errorf("empty llm response")}
			}
			st.OutMsg = outMsg
			return st, nil
		}),
		compose.WithNodeName("crew.llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *crewState) (*crewState, error) {
			memory := st.In.Agent.Memory
			if memory == nil {
				return st, nil
			}
			persona := st.In.Agent.Persona.ID
			err := memory.Append(ctx,
				entity.NewTurn(entity.RoleUser, persona, st.In.Task.Description),
				entity.NewTurn(entity.RoleAssistant, persona, st.OutMsg.Content),
			)
			if err != nil {
				// 输出已生成，记忆写入失败只记录日志
				logger.Error(ctx, "failed to append conversation memory", err)
			}
			return st, nil
		}),
		compose.WithNodeName("crew.remember"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *crewState) (string, error) {
			logTaskEnd(ctx, st.In.Agent.Persona, st.OutMsg)
			return st.OutMsg.Content, nil
		}),
		compose.WithNodeName("crew.finalize"),
	)

	return chain.Compile(ctx, compose.WithGraphName("studio_crew_chain"))
}

func (c *Crew) formatMessages(ctx context.Context, st *crewState) ([]*schema.Message, error) {
	tpl, err := c.registry.ChatTemplate(prompt.PromptAgentV1)
	if err != nil {
		return nil, err
	}
	persona := st.In.Agent.Persona
	vars := map[string]any{
		"role":            persona.Role,
		"goal":            persona.Goal,
		"backstory":       persona.Backstory,
		"description":     st.In.Task.Description,
		"expected_output": st.In.Task.ExpectedOutput,
	}
	if len(st.History) > 0 {
		vars[prompt.ChatHistoryKey] = historyMessages(st.History)
	}
	return tpl.Format(ctx, vars)
}

func historyMessages(turns []*entity.Turn) []*schema.Message {
	msgs := make([]*schema.Message, 0, len(turns))
	for _, t := range turns {
		if t == nil {
			continue
		}
		switch t.Role {
		case entity.RoleAssistant:
			msgs = append(msgs, schema.AssistantMessage(t.Content, nil))
		case entity.RoleSystem:
			msgs = append(msgs, schema.SystemMessage(t.Content))
		default:
			msgs = append(msgs, schema.UserMessage(t.Content))
		}
	}
	return msgs
}

func logTaskStart(ctx context.Context, p *entity.Persona, task *entity.Task, modelName string, historyTurns int) {
	if p.Verbose {
		logger.Info(ctx, "agent task started",
			"role", p.Role,
			"model", modelName,
			"history_turns", historyTurns,
			"task", node.Preview(task.Description, node.DefaultPreviewRunes),
		)
		return
	}
	logger.Debug(ctx, "agent task started",
		"role", p.Role,
		"model", modelName,
		"history_turns", historyTurns,
		"task_length", len(task.Description),
	)
}

func logTaskEnd(ctx context.Context, p *entity.Persona, out *schema.Message) {
	args := []any{"role", p.Role, "output_length", len(out.Content)}
	if out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
		args = append(args,
			"prompt_tokens", out.ResponseMeta.Usage.PromptTokens,
			"completion_tokens", out.ResponseMeta.Usage.CompletionTokens,
		)
	}
	if p.Verbose {
		logger.Info(ctx, "agent task finished", append(args, "output", node.Preview(out.Content, node.DefaultPreviewRunes))...)
		return
	}
	logger.Debug(ctx, "agent task finished", args...)
}
