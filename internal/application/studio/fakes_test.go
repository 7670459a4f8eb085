package studio

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"edu-studio/internal/domain/entity"
	"edu-studio/internal/infrastructure/messaging"
)

// fakeChatModel 记录每次调用收到的消息并返回固定回复
type fakeChatModel struct {
	mu    sync.Mutex
	calls [][]*schema.Message
	reply func(call int) string
	err   error
}

func (m *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, input)
	if m.err != nil {
		return nil, m.err
	}
	content := fmt.Sprintf("answer %d", len(m.calls))
	if m.reply != nil {
		content = m.reply(len(m.calls))
	}
	return schema.AssistantMessage(content, nil), nil
}

func (m *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, fmt.Errorf("stream not supported")
}

func (m *fakeChatModel) lastCall() []*schema.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	return m.calls[len(m.calls)-1]
}

type fakeFactory struct {
	model model.BaseChatModel
	err   error
}

func (f *fakeFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.model, nil
}

func (f *fakeFactory) Resolve(name string) (string, string) {
	return "fake", "fake-model"
}

type fakeExtractor struct {
	text  string
	err   error
	calls int
}

func (e *fakeExtractor) ExtractText(ctx context.Context, r io.ReaderAt, size int64) (string, error) {
	e.calls++
	return e.text, e.err
}

type recordingRunner struct {
	tasks []*entity.Task
	out   string
}

func (r *recordingRunner) Run(ctx context.Context, agent *Agent, task *entity.Task) (string, error) {
	r.tasks = append(r.tasks, task)
	return r.out, nil
}

type recordingPublisher struct {
	msgs []*messaging.GenerationMessage
}

func (p *recordingPublisher) PublishGeneration(ctx context.Context, msg *messaging.GenerationMessage) error {
	p.msgs = append(p.msgs, msg)
	return nil
}
