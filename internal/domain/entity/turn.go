package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role 消息角色，取值与 eino schema.RoleType 一致
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn 会话记忆中的一轮消息
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	PersonaID PersonaID `json:"persona_id,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTurn 创建会话轮次
func NewTurn(role Role, persona PersonaID, content string) *Turn {
	return &Turn{
		ID:        uuid.NewString(),
		Role:      role,
		PersonaID: persona,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// TurnWindow 把 max_turns 换算为实际保留的轮次数。
// 记忆按 user/assistant 成对裁剪：奇数向下取偶，最小为 2；<= 0 表示不限制。
func TurnWindow(maxTurns int) int {
	if maxTurns <= 0 {
		return 0
	}
	if maxTurns < 2 {
		return 2
	}
	return maxTurns &^ 1
}
