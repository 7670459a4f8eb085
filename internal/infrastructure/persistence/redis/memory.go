package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"edu-studio/internal/domain/entity"
	"edu-studio/internal/domain/repository"
	"edu-studio/pkg/metrics"
)

var _ repository.ConversationMemory = (*Memory)(nil)

// Memory 以 Redis List 保存的会话记忆，每个元素是一条 JSON 编码的轮次。
// 追加、裁剪与续期在同一个 MULTI 中完成。
type Memory struct {
	client   *Client
	key      string
	ttl      time.Duration
	maxTurns int
}

// NewMemory 创建 Redis 会话记忆，ttl 为 0 时不过期；窗口按 entity.TurnWindow 成对换算
func NewMemory(client *Client, key string, ttl time.Duration, maxTurns int) *Memory {
	return &Memory{client: client, key: key, ttl: ttl, maxTurns: entity.TurnWindow(maxTurns)}
}

// Load 读取全部轮次（旧 -> 新）
func (m *Memory) Load(ctx context.Context) ([]*entity.Turn, error) {
	ctx, span := tracer.Start(ctx, "memory.Load",
		trace.WithAttributes(attribute.String("memory.key", m.key)))
	defer span.End()

	raws, err := m.client.rdb.LRange(ctx, m.key, 0, -1).Result()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("load memory: %w", err)
	}
	span.SetAttributes(attribute.Int("memory.turns", len(raws)))
	return decodeTurns(raws)
}

// Append 追加轮次并刷新 TTL
func (m *Memory) Append(ctx context.Context, turns ...*entity.Turn) error {
	values, err := encodeTurns(turns)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}

	ctx, span := tracer.Start(ctx, "memory.Append",
		trace.WithAttributes(
			attribute.String("memory.key", m.key),
			attribute.Int("memory.appended", len(values)),
		))
	defer span.End()

	pipe := m.client.rdb.TxPipeline()
	pipe.RPush(ctx, m.key, values...)
	if m.maxTurns > 0 {
		pipe.LTrim(ctx, m.key, int64(-m.maxTurns), -1)
	}
	if m.ttl > 0 {
		pipe.Expire(ctx, m.key, m.ttl)
	}
	size := pipe.LLen(ctx, m.key)
	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("append memory: %w", err)
	}

	metrics.MemoryTurns.Set(float64(size.Val()))
	return nil
}

// Clear 删除记忆键
func (m *Memory) Clear(ctx context.Context) error {
	if err := m.client.rdb.Del(ctx, m.key).Err(); err != nil {
		return fmt.Errorf("clear memory: %w", err)
	}
	metrics.MemoryTurns.Set(0)
	return nil
}

// encodeTurns 跳过 nil，逐条编码为 RPUSH 参数
func encodeTurns(turns []*entity.Turn) ([]interface{}, error) {
	values := make([]interface{}, 0, len(turns))
	for _, t := range turns {
		if t == nil {
			continue
		}
		b, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("encode turn: %w", err)
		}
		values = append(values, string(b))
	}
	return values, nil
}

func decodeTurns(raws []string) ([]*entity.Turn, error) {
	if len(raws) == 0 {
		return nil, nil
	}
	turns := make([]*entity.Turn, 0, len(raws))
	for i, raw := range raws {
		var t entity.Turn
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			return nil, fmt.Errorf("decode memory turn %d: %w", i, err)
		}
		turns = append(turns, &t)
	}
	return turns, nil
}
