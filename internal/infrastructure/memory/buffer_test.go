package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edu-studio/internal/domain/entity"
)

func TestBuffer_AppendKeepsOrder(t *testing.T) {
	ctx := context.Background()
	b := NewBuffer(0)

	require.NoError(t, b.Append(ctx,
		entity.NewTurn(entity.RoleUser, entity.PersonaContentCreator, "q1"),
		entity.NewTurn(entity.RoleAssistant, entity.PersonaContentCreator, "a1"),
	))
	require.NoError(t, b.Append(ctx, entity.NewTurn(entity.RoleUser, entity.PersonaResourceAnalyzer, "q2")))

	turns, err := b.Load(ctx)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "q1", turns[0].Content)
	assert.Equal(t, "a1", turns[1].Content)
	assert.Equal(t, "q2", turns[2].Content)
}

func TestBuffer_LoadReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	b := NewBuffer(0)
	require.NoError(t, b.Append(ctx, entity.NewTurn(entity.RoleUser, "", "q1")))

	turns, _ := b.Load(ctx)
	turns[0] = nil

	again, _ := b.Load(ctx)
	require.Len(t, again, 1)
	assert.NotNil(t, again[0])
}

func TestBuffer_MaxTurnsWindow(t *testing.T) {
	ctx := context.Background()
	b := NewBuffer(2)
	for i := 0; i < 5; i++ {
		require.NoError(t, b.Append(ctx, entity.NewTurn(entity.RoleUser, "", fmt.Sprintf("q%d", i))))
	}

	turns, err := b.Load(ctx)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "q3", turns[0].Content)
	assert.Equal(t, "q4", turns[1].Content)
}

func TestBuffer_OddWindowKeepsPairs(t *testing.T) {
	ctx := context.Background()
	b := NewBuffer(3)
	for i := 0; i < 2; i++ {
		require.NoError(t, b.Append(ctx,
			entity.NewTurn(entity.RoleUser, "", fmt.Sprintf("q%d", i)),
			entity.NewTurn(entity.RoleAssistant, "", fmt.Sprintf("a%d", i)),
		))
	}

	turns, err := b.Load(ctx)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, entity.RoleUser, turns[0].Role)
	assert.Equal(t, "q1", turns[0].Content)
	assert.Equal(t, "a1", turns[1].Content)
}

func TestBuffer_Clear(t *testing.T) {
	ctx := context.Background()
	b := NewBuffer(0)
	require.NoError(t, b.Append(ctx, entity.NewTurn(entity.RoleUser, "", "q"), nil))
	assert.Equal(t, 1, b.Len())

	require.NoError(t, b.Clear(ctx))
	assert.Equal(t, 0, b.Len())
}

func TestBuffer_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	b := NewBuffer(0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = b.Append(ctx, entity.NewTurn(entity.RoleUser, "", fmt.Sprintf("q%d", i)))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, b.Len())
}
