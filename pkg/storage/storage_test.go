package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/learncss/Annotum/pkg/storage"
	"github.com/learncss/Annotum/pkg/storage/local_fs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Local(t *testing.T) {
	dir := t.TempDir()
	client, err := storage.NewClient(&storage.Config{Type: storage.LOCAL, SavePath: dir, CustomPath: "jats"})
	require.NoError(t, err)
	require.IsType(t, &local_fs.LocalFS{}, client)

	ctx := context.Background()
	key, err := client.SendContent(ctx, "articles/a-study.xml", []byte("<article/>"), "text/xml")
	require.NoError(t, err)
	assert.Equal(t, "jats/articles/a-study.xml", key)

	data, err := os.ReadFile(filepath.Join(dir, "jats", "articles", "a-study.xml"))
	require.NoError(t, err)
	assert.Equal(t, "<article/>", string(data))

	require.NoError(t, client.Delete(ctx, "articles/a-study.xml"))
	require.NoError(t, client.Delete(ctx, "articles/a-study.xml"))
}

func TestNewClient_Invalid(t *testing.T) {
	_, err := storage.NewClient(&storage.Config{Type: "invalid"})
	assert.ErrorIs(t, err, storage.ErrInvalidType)

	_, err = storage.NewClient(nil)
	assert.Error(t, err)
}
