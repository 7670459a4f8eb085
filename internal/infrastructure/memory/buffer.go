// Package memory 提供进程内会话记忆实现
package memory

import (
	"context"
	"sync"

	"edu-studio/internal/domain/entity"
	"edu-studio/internal/domain/repository"
	"edu-studio/pkg/metrics"
)

var _ repository.ConversationMemory = (*Buffer)(nil)

// Buffer 有序会话缓冲区，可并发使用
type Buffer struct {
	mu       sync.RWMutex
	turns    []*entity.Turn
	maxTurns int
}

// NewBuffer 创建会话缓冲区，窗口按 entity.TurnWindow 成对换算
func NewBuffer(maxTurns int) *Buffer {
	return &Buffer{maxTurns: entity.TurnWindow(maxTurns)}
}

// Load 返回轮次快照（旧 -> 新）
func (b *Buffer) Load(ctx context.Context) ([]*entity.Turn, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*entity.Turn, len(b.turns))
	copy(out, b.turns)
	return out, nil
}

// Append 追加轮次，超过窗口时丢弃最旧的轮次
func (b *Buffer) Append(ctx context.Context, turns ...*entity.Turn) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, t := range turns {
		if t != nil {
			b.turns = append(b.turns, t)
		}
	}
	if b.maxTurns > 0 && len(b.turns) > b.maxTurns {
		drop := len(b.turns) - b.maxTurns
		b.turns = append(b.turns[:0:0], b.turns[drop:]...)
	}
	metrics.MemoryTurns.Set(float64(len(b.turns)))
	return nil
}

// Clear 清空缓冲区
func (b *Buffer) Clear(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.turns = nil
	metrics.MemoryTurns.Set(0)
	return nil
}

// Len 当前轮次数
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.turns)
}
