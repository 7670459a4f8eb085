package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edu-studio/internal/domain/entity"
)

func TestEncodeDecodeTurns(t *testing.T) {
	values, err := encodeTurns([]*entity.Turn{
		entity.NewTurn(entity.RoleUser, entity.PersonaResourceAnalyzer, "task"),
		nil,
		entity.NewTurn(entity.RoleAssistant, entity.PersonaResourceAnalyzer, "answer"),
	})
	require.NoError(t, err)
	require.Len(t, values, 2)

	raws := make([]string, 0, len(values))
	for _, v := range values {
		raws = append(raws, v.(string))
	}
	out, err := decodeTurns(raws)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, entity.RoleUser, out[0].Role)
	assert.Equal(t, "task", out[0].Content)
	assert.Equal(t, entity.RoleAssistant, out[1].Role)
	assert.Equal(t, entity.PersonaResourceAnalyzer, out[1].PersonaID)
	assert.Equal(t, "answer", out[1].Content)
}

func TestDecodeTurns(t *testing.T) {
	turns, err := decodeTurns(nil)
	require.NoError(t, err)
	assert.Nil(t, turns)

	_, err = decodeTurns([]string{`{"role":"user","content":"ok"}`, "{not json"})
	assert.ErrorContains(t, err, "turn 1")
}

func TestEncodeTurns_allNil(t *testing.T) {
	values, err := encodeTurns([]*entity.Turn{nil, nil})
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestBuildRateLimitKey(t *testing.T) {
	assert.Equal(t, "ratelimit:10.0.0.1:/v1/actions/:form", BuildRateLimitKey("10.0.0.1", "/v1/actions/:form"))
}

func TestMemory_AppendLoadClear(t *testing.T) {
	c, mr := newTestClient(t)
	m := NewMemory(c, "studio:memory:test", time.Hour, 0)
	ctx := context.Background()

	require.NoError(t, m.Append(ctx,
		entity.NewTurn(entity.RoleUser, entity.PersonaContentCreator, "q0"),
		nil,
		entity.NewTurn(entity.RoleAssistant, entity.PersonaContentCreator, "a0"),
	))
	require.NoError(t, m.Append(ctx, entity.NewTurn(entity.RoleUser, entity.PersonaContentCreator, "q1")))

	turns, err := m.Load(ctx)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "q0", turns[0].Content)
	assert.Equal(t, "a0", turns[1].Content)
	assert.Equal(t, entity.RoleAssistant, turns[1].Role)
	assert.Equal(t, "q1", turns[2].Content)
	assert.Equal(t, time.Hour, mr.TTL("studio:memory:test"))

	require.NoError(t, m.Clear(ctx))
	turns, err = m.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, turns)
	assert.False(t, mr.Exists("studio:memory:test"))
}

func TestMemory_WindowTrimsByPairs(t *testing.T) {
	c, mr := newTestClient(t)
	m := NewMemory(c, "studio:memory:window", 0, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, m.Append(ctx,
			entity.NewTurn(entity.RoleUser, "", fmt.Sprintf("q%d", i)),
			entity.NewTurn(entity.RoleAssistant, "", fmt.Sprintf("a%d", i)),
		))
	}

	turns, err := m.Load(ctx)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, entity.RoleUser, turns[0].Role)
	assert.Equal(t, "q2", turns[0].Content)
	assert.Equal(t, "a2", turns[1].Content)
	// ttl 为 0 时不设置过期
	assert.Equal(t, time.Duration(0), mr.TTL("studio:memory:window"))
}

func TestMemory_AppendRefreshesTTL(t *testing.T) {
	c, mr := newTestClient(t)
	m := NewMemory(c, "studio:memory:ttl", time.Hour, 0)
	ctx := context.Background()

	require.NoError(t, m.Append(ctx, entity.NewTurn(entity.RoleUser, "", "q0")))
	mr.FastForward(30 * time.Minute)
	require.Equal(t, 30*time.Minute, mr.TTL("studio:memory:ttl"))

	require.NoError(t, m.Append(ctx, entity.NewTurn(entity.RoleAssistant, "", "a0")))
	assert.Equal(t, time.Hour, mr.TTL("studio:memory:ttl"))
}

func TestMemory_LoadCorruptEntry(t *testing.T) {
	c, mr := newTestClient(t)
	_, err := mr.Push("studio:memory:corrupt", "{not json")
	require.NoError(t, err)

	_, err = NewMemory(c, "studio:memory:corrupt", 0, 0).Load(context.Background())
	assert.ErrorContains(t, err, "decode memory turn 0")
}
