package routers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/learncss/Annotum/internal/app"
	"github.com/learncss/Annotum/internal/dao"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var dbSeq atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Code    int                    `json:"code"`
	Status  bool                   `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	app    *app.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	yaml := fmt.Sprintf(`
database:
  type: sqlite
  path: "file:router_test_%d?mode=memory&cache=shared"
  max-open-conns: 1
site:
  base-url: http://journal.test
journal:
  title: Router Journal
  publisher-name: Router Press
storage:
  type: localfs
  save-path: %q
tracer:
  enabled: true
`, dbSeq.Add(1), t.TempDir())

	cfg, err := app.ParseConfig([]byte(yaml))
	require.NoError(t, err)

	lg := zap.NewNop()
	dbCfg := cfg.DatabaseConfig()
	db, err := dao.NewDBEngineWithConfig(dbCfg, lg)
	require.NoError(t, err)

	a, err := app.NewApp(cfg, lg, db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })

	uni, err := NewTranslator()
	require.NoError(t, err)

	return &testServer{t: t, engine: NewRouter(a, uni, nil), app: a}
}

func (s *testServer) do(method, target, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := sonic.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("token", token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &e), w.Body.String())
	return e
}

func (s *testServer) register(username string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/user/register", "", map[string]string{
		"email":           username + "@example.org",
		"username":        username,
		"password":        "secret1",
		"confirmPassword": "secret1",
		"lastName":        "Curie",
	})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	e := decode(s.t, w)
	require.True(s.t, e.Status, w.Body.String())
	return e.Data["token"].(string)
}

func (s *testServer) article(token string, body map[string]interface{}) int64 {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/article", token, body)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	e := decode(s.t, w)
	require.True(s.t, e.Status, w.Body.String())
	return int64(e.Data["id"].(float64))
}

func TestPublishedDownload(t *testing.T) {
	s := newTestServer(t)
	token := s.register("marie")
	id := s.article(token, map[string]interface{}{"title": "Router Test", "status": "published", "content": "<p>x</p>"})

	for _, target := range []string{"/articles/router-test/xml", "/articles/router-test/xml/", fmt.Sprintf("/?p=%d&xml=true", id)} {
		w := s.do(http.MethodGet, target, "", nil)
		require.Equal(t, http.StatusOK, w.Code, target)
		assert.Equal(t, "text/xml; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="router-test.xml"`, w.Header().Get("Content-Disposition"))
		assert.Contains(t, w.Body.String(), "<article-title>Router Test</article-title>")
		assert.Contains(t, w.Body.String(), "Router Press")
		assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
	}

	w := s.do(http.MethodGet, "/articles/router-test/xml/?screen=true", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))

	w = s.do(http.MethodGet, fmt.Sprintf("/?p=%d", id), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/articles/missing/xml/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreviewDownload(t *testing.T) {
	s := newTestServer(t)
	owner := s.register("owner")
	stranger := s.register("stranger")
	id := s.article(owner, map[string]interface{}{"title": "Draft Paper"})

	plain := fmt.Sprintf("/?p=%d&xml=true", id)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, plain, "", nil).Code, "drafts are not downloadable")

	preview := plain + "&preview=true"
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, preview, "", nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, preview, stranger, nil).Code)

	w := s.do(http.MethodGet, preview, owner, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Draft Paper")

	w = s.do(http.MethodPost, "/api/article/autosave", owner, map[string]interface{}{"id": id, "title": "Autosaved Paper"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, preview+"&autosave=true", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Autosaved Paper")

	w = s.do(http.MethodGet, plain+"&autosave=true", owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "autosave alone does not imply preview")
}

func TestDownloadURL(t *testing.T) {
	s := newTestServer(t)
	token := s.register("marie")
	pub := s.article(token, map[string]interface{}{"title": "Linked", "status": "published"})
	draft := s.article(token, map[string]interface{}{"title": "Unlinked"})

	w := s.do(http.MethodGet, fmt.Sprintf("/api/article/download_url?id=%d&preview=true&autosave=true", pub), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://journal.test/articles/linked/xml/preview/?autosave=true", decode(t, w).Data["url"])

	w = s.do(http.MethodGet, fmt.Sprintf("/api/article/download_url?id=%d", draft), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fmt.Sprintf("http://journal.test/?p=%d&xml=true", draft), decode(t, w).Data["url"])

	w = s.do(http.MethodGet, "/api/article/download_url", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPIAuthAndMisc(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/article", "", map[string]string{"title": "x"}).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/user/info", "bogus", nil).Code)

	token := s.register("marie")
	w := s.do(http.MethodGet, "/api/user/info", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "marie", decode(t, w).Data["username"])

	w = s.do(http.MethodPost, "/api/admin/archive", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code, "no admin configured")

	w = s.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w).Data["status"])

	w = s.do(http.MethodGet, "/api/version", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, app.Name, decode(t, w).Data["name"])

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/nope", "", nil).Code)
}

func TestCommentsAndList(t *testing.T) {
	s := newTestServer(t)
	token := s.register("marie")
	id := s.article(token, map[string]interface{}{"title": "Discussed", "status": "published"})

	w := s.do(http.MethodPost, "/api/article/comment", "", map[string]interface{}{"articleId": id, "authorName": "Guest", "content": "Well done"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, fmt.Sprintf("/api/article/comments?articleId=%d", id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Well done")

	w = s.do(http.MethodGet, "/articles/discussed/xml/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Well done")

	w = s.do(http.MethodGet, "/api/articles?page=1&pageSize=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalRows":1`)
}

func TestPrivateRouter(t *testing.T) {
	s := newTestServer(t)
	r := NewPrivateRouterWithLogger("release", zap.NewNop(), s.app.WorkerPool())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/vars", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "archive_pool")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
