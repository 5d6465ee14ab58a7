package export

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"promfeed/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feed.xml")
	e := New(logger.NewWithWriter(io.Discard, "info", "text"))

	require.NoError(t, e.WriteFile(context.Background(), path, []byte("<a/>")))
	require.NoError(t, e.WriteFile(context.Background(), path, []byte("<b/>")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<b/>", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestWriteFileCanceled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feed.xml")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(logger.NewWithWriter(io.Discard, "info", "text"))
	assert.ErrorIs(t, e.WriteFile(ctx, path, []byte("new")), context.Canceled)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFileMissingDir(t *testing.T) {
	e := New(logger.NewWithWriter(io.Discard, "info", "text"))
	err := e.WriteFile(context.Background(), filepath.Join(t.TempDir(), "missing", "feed.xml"), []byte("x"))
	assert.Error(t, err)
}
