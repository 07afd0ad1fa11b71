package mcpserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/learncss/Annotum/internal/app"
	"github.com/learncss/Annotum/internal/dao"
	"github.com/learncss/Annotum/internal/dto"

	"github.com/bytedance/sonic"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var dbSeq atomic.Int64

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	cfg, err := app.ParseConfig([]byte(fmt.Sprintf(`
database:
  type: sqlite
  path: "file:mcp_test_%d?mode=memory&cache=shared"
  max-open-conns: 1
site:
  base-url: http://journal.test
journal:
  title: MCP Journal
storage:
  type: localfs
  save-path: %q
`, dbSeq.Add(1), t.TempDir())))
	require.NoError(t, err)

	lg := zap.NewNop()
	db, err := dao.NewDBEngineWithConfig(cfg.DatabaseConfig(), lg)
	require.NoError(t, err)
	a, err := app.NewApp(cfg, lg, db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })
	return a
}

func seed(t *testing.T, a *app.App) (pub, draft *dto.ArticleDTO) {
	t.Helper()
	ctx := context.Background()
	u, err := a.UserService.Register(ctx, &dto.UserCreateRequest{
		Email:           "rosalind@example.org",
		Username:        "rosalind",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		FirstName:       "Rosalind",
		LastName:        "Franklin",
	})
	require.NoError(t, err)

	pub, err = a.ArticleService.Save(ctx, u.UID, &dto.ArticleSaveRequest{Title: "Photo 51", Status: "published"})
	require.NoError(t, err)
	draft, err = a.ArticleService.Save(ctx, u.UID, &dto.ArticleSaveRequest{Title: "Unfinished"})
	require.NoError(t, err)
	return pub, draft
}

func call(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), name string, args map[string]any) (*mcp.CallToolResult, string) {
	t.Helper()
	res, err := h(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return res, text.Text
}

func TestExportArticleXML(t *testing.T) {
	a := newTestApp(t)
	pub, draft := seed(t, a)
	h := mcp.NewTypedToolHandler(exportHandler(a))

	tests := []struct {
		name    string
		args    map[string]any
		isError bool
		want    string
	}{
		{"by id", map[string]any{"id": pub.ID}, false, "<article-title>Photo 51</article-title>"},
		{"by slug", map[string]any{"slug": pub.Slug}, false, "<journal-title>MCP Journal</journal-title>"},
		{"draft", map[string]any{"id": draft.ID}, true, ""},
		{"missing", map[string]any{"slug": "nope"}, true, ""},
		{"no selector", map[string]any{}, true, "id or slug is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, text := call(t, h, "export_article_xml", tt.args)
			assert.Equal(t, tt.isError, res.IsError, text)
			if tt.want != "" {
				assert.Contains(t, text, tt.want)
			}
			if !tt.isError {
				assert.True(t, strings.HasPrefix(text, "<?xml"))
			}
		})
	}
}

func TestArticleDownloadURL(t *testing.T) {
	a := newTestApp(t)
	pub, draft := seed(t, a)
	h := mcp.NewTypedToolHandler(downloadURLHandler(a))

	_, text := call(t, h, "article_download_url", map[string]any{"id": pub.ID, "preview": true})
	var got dto.DownloadURLDTO
	require.NoError(t, sonic.UnmarshalString(text, &got))
	assert.Equal(t, "http://journal.test/articles/photo-51/xml/preview/", got.URL)

	_, text = call(t, h, "article_download_url", map[string]any{"id": draft.ID})
	require.NoError(t, sonic.UnmarshalString(text, &got))
	assert.Equal(t, fmt.Sprintf("http://journal.test/?p=%d&xml=true", draft.ID), got.URL)

	res, _ := call(t, h, "article_download_url", map[string]any{"id": 0})
	assert.True(t, res.IsError)
}

func TestListPublishedArticles(t *testing.T) {
	a := newTestApp(t)
	pub, _ := seed(t, a)
	h := mcp.NewTypedToolHandler(listHandler(a))

	_, text := call(t, h, "list_published_articles", map[string]any{"pageSize": 500})
	var got struct {
		List []struct {
			ID    int64  `json:"id"`
			Title string `json:"title"`
		} `json:"list"`
		Pager struct {
			Page      int `json:"page"`
			PageSize  int `json:"pageSize"`
			TotalRows int `json:"totalRows"`
		} `json:"pager"`
	}
	require.NoError(t, sonic.UnmarshalString(text, &got))
	require.Len(t, got.List, 1, "drafts stay hidden")
	assert.Equal(t, pub.ID, got.List[0].ID)
	assert.Equal(t, 1, got.Pager.Page)
	assert.Equal(t, 10, got.Pager.PageSize)
	assert.Equal(t, 1, got.Pager.TotalRows)
}

func TestHTTPHandler(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(Handler(a, ""))
	defer srv.Close()

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`
	req, err := http.NewRequest(http.MethodPost, srv.URL+DefaultEndpoint, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Mcp-Session-Id"))
}
