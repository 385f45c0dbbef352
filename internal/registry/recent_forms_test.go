package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := RecentForm{ID: 1, Title: "First", QuestionCount: 2, CreatedAt: time.Now().UTC()}
	second := RecentForm{ID: 2, Title: "Second", QuestionCount: 1, CreatedAt: time.Now().UTC()}

	require.NoError(t, store.Append(ctx, first))
	require.NoError(t, store.Append(ctx, second))

	t.Run("newest first", func(t *testing.T) {
		forms, err := store.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, forms, 2)
		assert.Equal(t, uint(2), forms[0].ID)
		assert.Equal(t, uint(1), forms[1].ID)
	})

	t.Run("limit", func(t *testing.T) {
		forms, err := store.List(ctx, 1)
		require.NoError(t, err)
		require.Len(t, forms, 1)
		assert.Equal(t, "Second", forms[0].Title)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, store.Remove(ctx, 2))
		forms, err := store.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, forms, 1)
		assert.Equal(t, uint(1), forms[0].ID)

		// removing an unknown id is a no-op
		require.NoError(t, store.Remove(ctx, 99))
	})
}
