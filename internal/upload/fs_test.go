package upload_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formintake/intake-api/internal/upload"
)

func TestFS(t *testing.T) {
	ctx := context.Background()

	dir := filepath.Join(t.TempDir(), "uploads")
	uploader := upload.NewFSUploader(dir)

	t.Run("CreatesDirectoryOnFirstUse", func(t *testing.T) {
		_, err := os.Stat(dir)
		require.ErrorIs(t, err, os.ErrNotExist, "directory should not exist before first write")

		content := "hello world"
		err = uploader.Upload(ctx, strings.NewReader(content), int64(len(content)), "first")
		require.NoError(t, err, "failed to upload file")

		_, err = os.Stat(dir)
		require.NoError(t, err, "directory should exist after first write")
	})

	t.Run("Upload", func(t *testing.T) {
		expected := "abc"
		err := uploader.Upload(ctx, strings.NewReader(expected), int64(len(expected)), "images-123-cat.png")
		require.NoError(t, err, "failed to upload file")

		actual, err := os.ReadFile(filepath.Join(dir, "images-123-cat.png"))
		require.NoError(t, err, "failed to read back file")

		assert.Equal(t, expected, string(actual), "content of file should match")
	})

	t.Run("NotExists", func(t *testing.T) {
		exists, err := uploader.Exists(ctx, "missing")
		require.NoError(t, err, "failed to check if file exists")

		assert.False(t, exists, "file should not exist")
	})

	t.Run("Exists", func(t *testing.T) {
		exists, err := uploader.Exists(ctx, "images-123-cat.png")
		require.NoError(t, err, "failed to check if file exists")

		assert.True(t, exists, "file should exist")
	})

	t.Run("StripsPathComponents", func(t *testing.T) {
		content := "climb"
		err := uploader.Upload(ctx, strings.NewReader(content), int64(len(content)), "../escape")
		require.NoError(t, err, "failed to upload file")

		_, err = os.Stat(filepath.Join(dir, "escape"))
		require.NoError(t, err, "file should land inside the storage directory")
	})

	t.Run("StoreIdentifier", func(t *testing.T) {
		id, err := uploader.StoreIdentifier(ctx)
		require.NoError(t, err, "failed to get store identifier")

		assert.True(t, filepath.IsAbs(id), "identifier should be the absolute directory")
	})
}
