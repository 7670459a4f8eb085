// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"edu-studio/internal/domain/entity"
)

// ConversationMemory 会话记忆接口，实现需保证按追加顺序返回
type ConversationMemory interface {
	// Load 返回当前保存的全部轮次（旧 -> 新）
	Load(ctx context.Context) ([]*entity.Turn, error)
	// Append 追加轮次
	Append(ctx context.Context, turns ...*entity.Turn) error
	// Clear 清空记忆
	Clear(ctx context.Context) error
}
