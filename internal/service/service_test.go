package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/learncss/Annotum/internal/dao"
	"github.com/learncss/Annotum/internal/domain"
	"github.com/learncss/Annotum/internal/dto"
	"github.com/learncss/Annotum/pkg/app"
	"github.com/learncss/Annotum/pkg/code"
	"github.com/learncss/Annotum/pkg/jats"
	"github.com/learncss/Annotum/pkg/storage"
	"github.com/learncss/Annotum/pkg/workerpool"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var dbSeq atomic.Int64

type testEnv struct {
	cfg      *ServiceConfig
	users    UserService
	articles ArticleService
	comments CommentService
	export   ExportService

	articleRepo   domain.ArticleRepository
	commentRepo   domain.CommentRepository
	userRepo      domain.UserRepository
	relationRepo  domain.RelationRepository
	referenceRepo domain.ReferenceRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := dao.NewDBEngineWithConfig(dao.DatabaseConfig{
		Type:         "sqlite",
		Path:         fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", dbSeq.Add(1)),
		TablePrefix:  "an_",
		MaxOpenConns: 1,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	d := dao.New(db, context.Background(), dao.WithConfig(&dao.DatabaseConfig{AutoMigrate: true}))

	cfg := &ServiceConfig{
		User: UserServiceConfig{RegisterIsEnable: true, AdminUID: 99},
		Site: SiteServiceConfig{
			BaseURL:          "http://journal.test",
			ArticleBase:      "articles",
			PrettyPermalinks: true,
			WorkflowEnabled:  true,
		},
		Export: ExportServiceConfig{
			Now: func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) },
		},
		Archive: ArchiveServiceConfig{Prefix: "jats", StorageType: storage.LOCAL},
		Journal: jats.Journal{Title: "Journal of Tests", PublisherName: "Test Press"},
	}

	env := &testEnv{
		cfg:         cfg,
		articleRepo: dao.NewArticleRepository(d),
		commentRepo: dao.NewCommentRepository(d),
		userRepo:    dao.NewUserRepository(d),
	}
	env.relationRepo = dao.NewRelationRepository(d)
	env.referenceRepo = dao.NewReferenceRepository(d)
	relationRepo, referenceRepo := env.relationRepo, env.referenceRepo
	lg := zap.NewNop()

	env.users = NewUserService(env.userRepo, app.NewTokenManager(app.TokenConfig{SecretKey: "test"}), lg, cfg)
	env.articles = NewArticleService(env.articleRepo, relationRepo, referenceRepo, env.userRepo, lg, cfg)
	env.comments = NewCommentService(env.commentRepo, env.articleRepo, env.userRepo, lg, cfg)
	env.export = NewExportService(env.articleRepo, env.commentRepo, relationRepo, referenceRepo, env.userRepo, lg, cfg)
	return env
}

func (e *testEnv) register(t *testing.T, username string) *dto.UserDTO {
	t.Helper()
	u, err := e.users.Register(context.Background(), &dto.UserCreateRequest{
		Email:           username + "@example.org",
		Username:        username,
		Password:        "secret1",
		ConfirmPassword: "secret1",
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Affiliation:     "Dept of Math",
		Institution:     "Analytical College",
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) article(t *testing.T, uid int64, req dto.ArticleSaveRequest) *dto.ArticleDTO {
	t.Helper()
	a, err := e.articles.Save(context.Background(), uid, &req)
	require.NoError(t, err)
	return a
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	u := env.register(t, "ada")
	assert.NotEmpty(t, u.Token)
	assert.NotZero(t, u.UID)

	_, err := env.users.Register(ctx, &dto.UserCreateRequest{
		Email: "ada@example.org", Username: "other", Password: "secret1", ConfirmPassword: "secret1",
	})
	assert.ErrorIs(t, err, code.ErrorUserAlreadyExists)

	_, err = env.users.Register(ctx, &dto.UserCreateRequest{
		Email: "b@example.org", Username: "bob", Password: "secret1", ConfirmPassword: "secret2",
	})
	assert.ErrorIs(t, err, code.ErrorPasswordNotValid)

	for _, cred := range []string{"ada", "ada@example.org"} {
		got, err := env.users.Login(ctx, &dto.UserLoginRequest{Credentials: cred, Password: "secret1"}, "127.0.0.1")
		require.NoError(t, err, cred)
		assert.Equal(t, u.UID, got.UID)
	}

	_, err = env.users.Login(ctx, &dto.UserLoginRequest{Credentials: "ada", Password: "wrong"}, "")
	assert.ErrorIs(t, err, code.ErrorUserLoginPasswordFailed)
	_, err = env.users.Login(ctx, &dto.UserLoginRequest{Credentials: "nobody", Password: "secret1"}, "")
	assert.ErrorIs(t, err, code.ErrorUserLoginPasswordFailed)

	info, err := env.users.GetInfo(ctx, u.UID)
	require.NoError(t, err)
	assert.Equal(t, "Analytical College", info.Institution)

	_, err = env.users.GetInfo(ctx, 12345)
	assert.ErrorIs(t, err, code.ErrorUserNotFound)

	env.cfg.User.RegisterIsEnable = false
	_, err = env.users.Register(ctx, &dto.UserCreateRequest{Email: "c@example.org", Username: "carol"})
	assert.ErrorIs(t, err, code.ErrorUserRegisterIsDisable)
}

func TestArticleService_SaveAndSlug(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.register(t, "owner")

	a := env.article(t, owner.UID, dto.ArticleSaveRequest{Title: "On Testing"})
	assert.Equal(t, "on-testing", a.Slug)
	assert.Equal(t, string(domain.ArticleStatusDraft), a.Status)
	require.Len(t, a.Authors, 1, "owner becomes the default author")
	assert.Equal(t, "Lovelace", a.Authors[0].Surname)
	assert.Equal(t, "Analytical College", a.Authors[0].Institution)

	b := env.article(t, owner.UID, dto.ArticleSaveRequest{Title: "On Testing"})
	assert.Equal(t, "on-testing-2", b.Slug)

	_, err := env.articles.Save(ctx, owner.UID, &dto.ArticleSaveRequest{Title: "x", Slug: "on-testing"})
	assert.ErrorIs(t, err, code.ErrorArticleSlugExists)

	// updating keeps the slug when it belongs to the same article
	a2, err := env.articles.Save(ctx, owner.UID, &dto.ArticleSaveRequest{ID: a.ID, Title: "On Testing", Slug: "on-testing", Status: "published"})
	require.NoError(t, err)
	assert.Equal(t, "on-testing", a2.Slug)
	assert.False(t, a2.PublishedAt.IsZero())
	assert.Len(t, a2.Authors, 1, "authors survive an update without authors")

	other := env.register(t, "other")
	_, err = env.articles.Save(ctx, other.UID, &dto.ArticleSaveRequest{ID: a.ID, Title: "hijack"})
	assert.ErrorIs(t, err, code.ErrorPermissionDenied)

	// the admin may edit anything
	_, err = env.articles.Save(ctx, env.cfg.User.AdminUID, &dto.ArticleSaveRequest{ID: a.ID, Title: "On Testing", Status: "published"})
	assert.NoError(t, err)
}

func TestArticleService_GetListDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.register(t, "owner")
	stranger := env.register(t, "stranger")

	draft := env.article(t, owner.UID, dto.ArticleSaveRequest{Title: "Draft"})
	pub := env.article(t, owner.UID, dto.ArticleSaveRequest{Title: "Public", Status: "published"})

	_, err := env.articles.Get(ctx, stranger.UID, &dto.ArticleGetRequest{ID: draft.ID})
	assert.ErrorIs(t, err, code.ErrorArticleNotFound, "drafts are hidden from others")

	got, err := env.articles.Get(ctx, owner.UID, &dto.ArticleGetRequest{ID: draft.ID})
	require.NoError(t, err)
	assert.Equal(t, "Draft", got.Title)

	got, err = env.articles.Get(ctx, 0, &dto.ArticleGetRequest{Slug: "public"})
	require.NoError(t, err)
	assert.Equal(t, pub.ID, got.ID)

	_, err = env.articles.Get(ctx, 0, &dto.ArticleGetRequest{})
	assert.ErrorIs(t, err, code.ErrorInvalidParams)

	pager := &app.Pager{Page: 1, PageSize: 10}
	list, total, err := env.articles.List(ctx, 0, &dto.ArticleListRequest{}, pager)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Content)

	_, total, err = env.articles.List(ctx, owner.UID, &dto.ArticleListRequest{Mine: true}, pager)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	assert.ErrorIs(t, env.articles.Delete(ctx, stranger.UID, draft.ID), code.ErrorPermissionDenied)
	require.NoError(t, env.articles.Delete(ctx, owner.UID, draft.ID))
	_, err = env.articles.Get(ctx, owner.UID, &dto.ArticleGetRequest{ID: draft.ID})
	assert.ErrorIs(t, err, code.ErrorArticleNotFound)
}

func TestCommentService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.register(t, "owner")

	draft := env.article(t, owner.UID, dto.ArticleSaveRequest{Title: "Draft"})
	pub := env.article(t, owner.UID, dto.ArticleSaveRequest{Title: "Public", Status: "published"})

	_, err := env.comments.Create(ctx, 0, &dto.CommentCreateRequest{ArticleID: draft.ID, AuthorName: "x", Content: "hi"})
	assert.ErrorIs(t, err, code.ErrorArticleNotPublished)

	_, err = env.comments.Create(ctx, 0, &dto.CommentCreateRequest{ArticleID: pub.ID, Content: "hi"})
	assert.ErrorIs(t, err, code.ErrorInvalidParams)

	c, err := env.comments.Create(ctx, owner.UID, &dto.CommentCreateRequest{ArticleID: pub.ID, Content: "registered"})
	require.NoError(t, err)
	assert.True(t, c.Approved)
	assert.Equal(t, owner.UID, c.UID)

	env.cfg.User.CommentModeration = true
	c, err = env.comments.Create(ctx, 0, &dto.CommentCreateRequest{ArticleID: pub.ID, AuthorName: "Guest", Content: "held"})
	require.NoError(t, err)
	assert.False(t, c.Approved)

	env.cfg.User.CommentModeration = false
	_, err = env.comments.Create(ctx, 0, &dto.CommentCreateRequest{ArticleID: pub.ID, AuthorName: "Guest", Content: "shown"})
	require.NoError(t, err)

	list, err := env.comments.List(ctx, pub.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "registered", list[0].Content)
	assert.Equal(t, "shown", list[1].Content)
}

func TestExportService_Published(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.register(t, "owner")

	related := env.article(t, owner.UID, dto.ArticleSaveRequest{
		Title: "Earlier Work", Status: "published", Meta: dto.ArticleMetaDTO{DOI: "10.1/early"},
	})
	draftRelated := env.article(t, owner.UID, dto.ArticleSaveRequest{Title: "Unfinished"})
	a := env.article(t, owner.UID, dto.ArticleSaveRequest{
		Title:      "Findings & Results",
		Excerpt:    "Short abstract",
		Content:    "<p>Body</p>",
		Status:     "published",
		Ancestors:  []int64{related.ID, draftRelated.ID, 424242},
		References: "<ref-list><ref id=\"r1\"/></ref-list>",
		Meta:       dto.ArticleMetaDTO{DOI: "10.1/main"},
	})
	_, err := env.comments.Create(ctx, 0, &dto.CommentCreateRequest{ArticleID: a.ID, AuthorName: "Guest", AuthorURL: "http://guest.example", Content: "Nice"})
	require.NoError(t, err)

	res, err := env.export.Export(ctx, &dto.ExportRequest{Slug: a.Slug}, 0)
	require.NoError(t, err)
	assert.Equal(t, "findings-results.xml", res.Filename)

	out := string(res.Body)
	assert.Contains(t, out, "<article-title>Findings &amp; Results</article-title>")
	assert.Contains(t, out, "<copyright-year>2025</copyright-year>")
	assert.Contains(t, out, "Test Press")
	assert.Contains(t, out, "Short abstract")
	assert.Contains(t, out, "<p>Body</p>")
	assert.Contains(t, out, `<ref-list><ref id="r1"/></ref-list>`)
	assert.Contains(t, out, `xlink:href="http://journal.test/articles/earlier-work/"`)
	assert.NotContains(t, out, "unfinished")
	assert.Contains(t, out, "<response")
	assert.Contains(t, out, "Nice")

	byID, err := env.export.Render(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Body, byID.Body, "rendering is deterministic")

	env.cfg.Site.WorkflowEnabled = false
	res, err = env.export.Export(ctx, &dto.ExportRequest{ID: a.ID}, 0)
	require.NoError(t, err)
	assert.NotContains(t, string(res.Body), "<related-article")
}

func TestExportService_Errors(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.register(t, "owner")
	stranger := env.register(t, "stranger")
	draft := env.article(t, owner.UID, dto.ArticleSaveRequest{Title: "Draft"})

	tests := []struct {
		name string
		req  dto.ExportRequest
		uid  int64
		want *code.Code
	}{
		{"missing", dto.ExportRequest{ID: 9999}, 0, code.ErrorArticleNotFound},
		{"no selector", dto.ExportRequest{}, 0, code.ErrorArticleNotFound},
		{"unpublished", dto.ExportRequest{ID: draft.ID}, owner.UID, code.ErrorArticleNotPublished},
		{"preview anonymous", dto.ExportRequest{ID: draft.ID, Preview: true}, 0, code.ErrorNotUserAuthToken},
		{"preview stranger", dto.ExportRequest{ID: draft.ID, Preview: true}, stranger.UID, code.ErrorPermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := env.export.Export(ctx, &req, tt.uid)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExportService_PreviewAutosave(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.register(t, "owner")
	draft := env.article(t, owner.UID, dto.ArticleSaveRequest{Title: "Saved Title", Content: "<p>saved</p>"})

	res, err := env.export.Export(ctx, &dto.ExportRequest{ID: draft.ID, Preview: true, Autosave: true}, owner.UID)
	require.NoError(t, err, "autosave without a revision falls back to the saved article")
	assert.Contains(t, string(res.Body), "Saved Title")

	_, err = env.articles.Autosave(ctx, owner.UID, &dto.ArticleAutosaveRequest{ID: draft.ID, Title: "Autosaved Title", Content: "<p>newer</p>"})
	require.NoError(t, err)

	res, err = env.export.Export(ctx, &dto.ExportRequest{ID: draft.ID, Preview: true, Autosave: true}, owner.UID)
	require.NoError(t, err)
	assert.Contains(t, string(res.Body), "Autosaved Title")
	assert.Contains(t, string(res.Body), "<p>newer</p>")
	assert.Equal(t, "autosaved-title.xml", res.Filename)

	res, err = env.export.Export(ctx, &dto.ExportRequest{ID: draft.ID, Preview: true}, owner.UID)
	require.NoError(t, err)
	assert.Contains(t, string(res.Body), "Saved Title", "autosave is only used when requested")

	res, err = env.export.Export(ctx, &dto.ExportRequest{ID: draft.ID, Preview: true}, env.cfg.User.AdminUID)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Body)
}

func TestExportService_DownloadURL(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.register(t, "owner")
	pub := env.article(t, owner.UID, dto.ArticleSaveRequest{Title: "Public", Status: "published"})
	draft := env.article(t, owner.UID, dto.ArticleSaveRequest{Title: "Draft"})

	tests := []struct {
		name     string
		id       int64
		pretty   bool
		preview  bool
		autosave bool
		want     string
	}{
		{"pretty", pub.ID, true, false, false, "http://journal.test/articles/public/xml/"},
		{"pretty preview", pub.ID, true, true, false, "http://journal.test/articles/public/xml/preview/"},
		{"pretty autosave", pub.ID, true, true, true, "http://journal.test/articles/public/xml/preview/?autosave=true"},
		{"pretty autosave without preview", pub.ID, true, false, true, "http://journal.test/articles/public/xml/"},
		{"draft is plain", draft.ID, true, true, true, fmt.Sprintf("http://journal.test/?p=%d&xml=true&preview=true&autosave=true", draft.ID)},
		{"plain", pub.ID, false, false, false, fmt.Sprintf("http://journal.test/?p=%d&xml=true", pub.ID)},
		{"plain preview", pub.ID, false, true, false, fmt.Sprintf("http://journal.test/?p=%d&xml=true&preview=true", pub.ID)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.cfg.Site.PrettyPermalinks = tt.pretty
			got, err := env.export.DownloadURL(ctx, tt.id, tt.preview, tt.autosave)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := env.export.DownloadURL(ctx, 9999, false, false)
	assert.ErrorIs(t, err, code.ErrorArticleNotFound)
}

func TestExportService_ConcurrentPublished(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.register(t, "owner")
	pub := env.article(t, owner.UID, dto.ArticleSaveRequest{Title: "Popular", Status: "published"})

	var wg sync.WaitGroup
	bodies := make([][]byte, 8)
	for i := range bodies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := env.export.Render(ctx, pub.ID)
			if assert.NoError(t, err) {
				bodies[i] = res.Body
			}
		}(i)
	}
	wg.Wait()
	for _, b := range bodies[1:] {
		assert.Equal(t, bodies[0], b)
	}
}

// blockingComments holds the first listing until release is closed and then
// honours the caller's context the way the database driver does.
type blockingComments struct {
	domain.CommentRepository
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (b *blockingComments) ListApprovedByArticle(ctx context.Context, articleID int64) ([]*domain.Comment, error) {
	if b.calls.Add(1) == 1 {
		close(b.entered)
		<-b.release
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.CommentRepository.ListApprovedByArticle(ctx, articleID)
}

func TestExportService_SharedRenderOutlivesFirstCaller(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner")
	pub := env.article(t, owner.UID, dto.ArticleSaveRequest{Title: "Shared", Status: "published"})

	comments := &blockingComments{
		CommentRepository: env.commentRepo,
		entered:           make(chan struct{}),
		release:           make(chan struct{}),
	}
	export := NewExportService(env.articleRepo, comments, env.relationRepo, env.referenceRepo, env.userRepo, zap.NewNop(), env.cfg)
	req := &dto.ExportRequest{ID: pub.ID}

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := export.Export(first, req, 0)
		firstErr <- err
	}()
	<-comments.entered

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	second := make(chan error, 1)
	var body []byte
	go func() {
		res, err := export.Export(context.Background(), req, 0)
		if err == nil {
			body = res.Body
		}
		second <- err
	}()
	time.Sleep(100 * time.Millisecond)
	close(comments.release)

	require.NoError(t, <-second)
	assert.Contains(t, string(body), "<article-title>Shared</article-title>")
	assert.EqualValues(t, 1, comments.calls.Load(), "second caller joins the running render")
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "a-title.xml", Filename(&domain.Article{ID: 3, Title: "A Title!"}))
	assert.Equal(t, "article-3.xml", Filename(&domain.Article{ID: 3, Title: "!!!"}))
}

func TestArchiveService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.register(t, "owner")
	env.article(t, owner.UID, dto.ArticleSaveRequest{Title: "First", Status: "published"})
	env.article(t, owner.UID, dto.ArticleSaveRequest{Title: "Second", Status: "published"})
	draft := env.article(t, owner.UID, dto.ArticleSaveRequest{Title: "Hidden"})

	dir := t.TempDir()
	store, err := storage.NewClient(&storage.Config{Type: storage.LOCAL, SavePath: dir})
	require.NoError(t, err)

	pool := workerpool.New(&workerpool.Config{MaxWorkers: 2, QueueSize: 4}, nil)
	t.Cleanup(func() { _ = pool.Shutdown(context.Background()) })

	svc := NewArchiveService(env.articleRepo, env.export, store, pool, zap.NewNop(), env.cfg)
	res, err := svc.ArchiveAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Stored)
	assert.Zero(t, res.Failed)
	assert.Equal(t, []string{"jats/first.xml", "jats/second.xml"}, res.Keys)

	body, err := os.ReadFile(filepath.Join(dir, "jats", "first.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(body), "<article-title>First</article-title>")

	_, err = svc.ArchiveOne(ctx, draft.ID)
	assert.ErrorIs(t, err, code.ErrorArticleNotPublished)

	noStore := NewArchiveService(env.articleRepo, env.export, nil, pool, zap.NewNop(), env.cfg)
	_, err = noStore.ArchiveAll(ctx)
	assert.ErrorIs(t, err, code.ErrorArchiveStorageUnavailable)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "jats/a.xml", ObjectKey("jats", "a"))
	assert.Equal(t, "a.xml", ObjectKey("", "a"))
}

func TestArticleToJATS_Authors(t *testing.T) {
	out, err := articleToJATS(&domain.Article{ID: 1, Title: "T"})
	require.NoError(t, err)
	assert.Empty(t, out.Authors)

	out, err = articleToJATS(&domain.Article{
		ID: 2,
		Authors: []domain.AuthorSnapshot{
			{UID: 5, Surname: "Curie", GivenNames: "Marie", Institution: "Sorbonne", Link: "https://curie.example"},
			{Surname: "Pierre"},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Authors, 2)
	assert.Equal(t, jats.Author{Surname: "Curie", GivenNames: "Marie", Institution: "Sorbonne", Link: "https://curie.example"}, out.Authors[0])
	assert.Equal(t, "Pierre", out.Authors[1].Surname)
}
