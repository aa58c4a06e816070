package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/formlytic/formlytic-api/internal/config"
	"github.com/formlytic/formlytic-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStorageInterfaceCompliance(t *testing.T) {
	var _ storage.Storage = (*storage.LocalStorage)(nil)
	var _ storage.Storage = (*storage.AzureBlobStorage)(nil)
}

func TestNewStorage_Modes(t *testing.T) {
	s, err := storage.NewStorage(context.Background(), &config.StorageConfig{Mode: "local", LocalBasePath: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalStorage{}, s)

	_, err = storage.NewStorage(context.Background(), &config.StorageConfig{Mode: "azure"}, zap.NewNop())
	assert.Error(t, err)

	_, err = storage.NewStorage(context.Background(), &config.StorageConfig{Mode: "ftp"}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewLocalStorage_CreatesDirectory(t *testing.T) {
	basePath := filepath.Join(t.TempDir(), "uploads")

	ls, err := storage.NewLocalStorage(basePath)
	require.NoError(t, err)
	assert.NotNil(t, ls)

	info, err := os.Stat(basePath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLocalStorage_UploadDownloadDelete(t *testing.T) {
	ls, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	content := []byte("%PDF-1.4 fake")
	key, size, err := ls.Upload(ctx, "forms/abc", "Report.PDF", "application/pdf", bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), size)
	assert.True(t, strings.HasPrefix(key, "forms/abc/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	rc, err := ls.Download(ctx, key)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, content, got)

	require.NoError(t, ls.Delete(ctx, key))
	require.NoError(t, ls.Delete(ctx, key), "deleting twice is not an error")

	_, err = ls.Download(ctx, key)
	assert.True(t, errors.Is(err, storage.ErrObjectNotFound))
}

func TestLocalStorage_PrefixCannotEscapeBase(t *testing.T) {
	base := t.TempDir()
	ls, err := storage.NewLocalStorage(base)
	require.NoError(t, err)

	key, _, err := ls.Upload(context.Background(), "../../etc", "x.txt", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	assert.False(t, strings.Contains(key, ".."))

	_, err = ls.Download(context.Background(), "../../etc/passwd")
	assert.Error(t, err)
}
