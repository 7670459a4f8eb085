// Package messaging 提供 Redis Stream 消息发布
package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message 消息结构
type Message struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Payload   json.RawMessage   `json:"payload"`
	Metadata  map[string]string `json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewMessage 创建新消息，id 为空时自动生成
func NewMessage(id, msgType string, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if id == "" {
		id = uuid.NewString()
	}

	return &Message{
		ID:        id,
		Type:      msgType,
		Payload:   payloadBytes,
		Metadata:  make(map[string]string),
		CreatedAt: time.Now(),
	}, nil
}

// SetMetadata 设置元数据，空值忽略
func (m *Message) SetMetadata(key, value string) {
	if value == "" {
		return
	}
	if m.Metadata == nil {
		m.Metadata = make(map[string]string)
	}
	m.Metadata[key] = value
}

// GetMetadata 获取元数据
func (m *Message) GetMetadata(key string) string {
	if m.Metadata == nil {
		return ""
	}
	return m.Metadata[key]
}

// UnmarshalPayload 解析消息载荷
func (m *Message) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(m.Payload, v)
}

// Stream 流名称
type Stream string

// StreamGeneration 默认的生成审计流
const StreamGeneration Stream = "stream:studio:generation"

// MessageTypeGeneration 生成完成消息类型
const MessageTypeGeneration = "generation_completed"

// GenerationMessage 一次动作完成后的审计载荷，不包含输入与输出正文
type GenerationMessage struct {
	Action       string `json:"action"`
	PersonaID    string `json:"persona_id"`
	Status       string `json:"status"`
	InputLength  int    `json:"input_length"`
	OutputLength int    `json:"output_length"`
	DurationMS   int64  `json:"duration_ms"`
	RequestID    string `json:"request_id,omitempty"`
	TraceID      string `json:"trace_id,omitempty"`
}
