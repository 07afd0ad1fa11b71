package code

import (
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_WithDataDoesNotMutate(t *testing.T) {
	c := ErrorArticleNotFound.WithData(map[string]int{"id": 1})

	assert.True(t, c.HaveData())
	assert.False(t, ErrorArticleNotFound.HaveData())
	assert.Equal(t, ErrorArticleNotFound.Code(), c.Code())
	assert.True(t, ErrorArticleNotFound.Is(c))
	assert.Equal(t, http.StatusNotFound, c.StatusCode())
}

func TestLang(t *testing.T) {
	defer SetGlobalDefaultLang(FALLBACK_LNG)

	assert.Equal(t, "Article not found", ErrorArticleNotFound.Msg())
	assert.NoError(t, SetGlobalDefaultLang("zh_cn"))
	assert.Equal(t, "文章不存在", ErrorArticleNotFound.Msg())
	assert.Error(t, SetGlobalDefaultLang("fr"))
	assert.Equal(t, "en", GetGlobalDefaultLang())
}

func TestLang_PackageLevelCodes(t *testing.T) {
	assert.Equal(t, "Success", Success.Msg())
	assert.Equal(t, FALLBACK_LNG, GetGlobalDefaultLang())

	saved := lng
	defer func() { lng = saved }()
	lng = &atomic.Value{}
	assert.Equal(t, FALLBACK_LNG, GetGlobalDefaultLang(), "unset language falls back")
}
