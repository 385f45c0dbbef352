package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDiskStorage(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	storage, err := NewLocalDiskStorage(dir, "/uploads/", testLogger())
	require.NoError(t, err)

	t.Run("store keeps the extension and returns a served URL", func(t *testing.T) {
		asset, err := storage.Store(ctx, strings.NewReader("fake image bytes"), "header.PNG")
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(asset.PublicID, ".png"))
		assert.Equal(t, "/uploads/"+asset.PublicID, asset.URL)

		data, err := os.ReadFile(filepath.Join(dir, asset.PublicID))
		require.NoError(t, err)
		assert.Equal(t, "fake image bytes", string(data))
	})

	t.Run("remove deletes the stored file", func(t *testing.T) {
		asset, err := storage.Store(ctx, strings.NewReader("x"), "a.jpg")
		require.NoError(t, err)

		require.NoError(t, storage.Remove(ctx, asset.PublicID))
		_, err = os.Stat(filepath.Join(dir, asset.PublicID))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("remove rejects path traversal", func(t *testing.T) {
		err := storage.Remove(ctx, "../outside.png")
		assert.Error(t, err)
	})

	t.Run("distinct uploads get distinct ids", func(t *testing.T) {
		a, err := storage.Store(ctx, strings.NewReader("1"), "same.png")
		require.NoError(t, err)
		b, err := storage.Store(ctx, strings.NewReader("2"), "same.png")
		require.NoError(t, err)
		assert.NotEqual(t, a.PublicID, b.PublicID)
	})
}
