package fileurl

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathSuffixCheckAdd(t *testing.T) {
	assert.Equal(t, "", PathSuffixCheckAdd("", "/"))
	assert.Equal(t, "a/", PathSuffixCheckAdd("a", "/"))
	assert.Equal(t, "a/", PathSuffixCheckAdd("a/", "/"))
}

func TestCreatePath(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "x", "y", "config.yaml")
	assert.NoError(t, CreatePath(dst, 0755))
	assert.True(t, IsExist(filepath.Dir(dst)))
	assert.False(t, IsExist(dst))
}
