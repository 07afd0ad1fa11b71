package upgrade

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/learncss/Annotum/internal/dao"
	"github.com/learncss/Annotum/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := dao.NewDBEngineWithConfig(dao.DatabaseConfig{
		Type:         "sqlite",
		Path:         fmt.Sprintf("file:upgrade_test_%d?mode=memory&cache=shared", dbSeq.Add(1)),
		TablePrefix:  "an_",
		MaxOpenConns: 1,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, dao.New(db, context.Background()).Migrate())
	return db
}

type fakeMigration struct {
	version string
	runs    *int
	fail    bool
}

func (f *fakeMigration) Version() string     { return f.version }
func (f *fakeMigration) Description() string { return "fake " + f.version }
func (f *fakeMigration) Up(*gorm.DB, context.Context) error {
	*f.runs++
	if f.fail {
		return fmt.Errorf("boom")
	}
	return nil
}

func TestRun_OrderAndIdempotence(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	var a, b, future int
	m := NewMigrationManager(db, nil, "0.2.0")
	m.migrations = []Migration{
		&fakeMigration{version: "0.2.0", runs: &b},
		&fakeMigration{version: "0.1.5", runs: &a},
		&fakeMigration{version: "0.3.0", runs: &future},
	}

	n, err := m.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
	assert.Zero(t, future, "newer than the binary")

	var versions []SchemaVersion
	require.NoError(t, db.Order("id").Find(&versions).Error)
	require.Len(t, versions, 2)
	assert.Equal(t, "0.1.5", versions[0].Version)
	assert.Equal(t, "0.2.0", versions[1].Version)

	n, err = m.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, a)
}

func TestRun_FailureIsNotRecorded(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	var runs int
	m := NewMigrationManager(db, nil, "1.0.0")
	m.migrations = []Migration{&fakeMigration{version: "0.9.0", runs: &runs, fail: true}}

	_, err := m.Run(ctx)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&SchemaVersion{}).Count(&count).Error)
	assert.Zero(t, count)

	_, err = NewMigrationManager(db, nil, "dev").Run(ctx)
	assert.Error(t, err, "invalid running version")
}

func TestDataMigrations(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	updated := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	published := &model.Article{UID: 1, Slug: "p", Title: "P", Status: "published", CreatedAt: updated, UpdatedAt: updated}
	draft := &model.Article{UID: 1, Slug: "d", Title: "D", Status: "draft", CreatedAt: updated, UpdatedAt: updated}
	require.NoError(t, db.Create(published).Error)
	require.NoError(t, db.Create(draft).Error)

	member := &model.Comment{ArticleID: published.ID, UID: 7, Content: "hi"}
	anon := &model.Comment{ArticleID: published.ID, AuthorName: "anon", Content: "hey"}
	require.NoError(t, db.Create(member).Error)
	require.NoError(t, db.Create(anon).Error)

	require.NoError(t, Execute(ctx, db, nil, "0.1.0"))

	var gotPublished, gotDraft model.Article
	require.NoError(t, db.First(&gotPublished, published.ID).Error)
	require.NotNil(t, gotPublished.PublishedAt)
	assert.Equal(t, 2023, gotPublished.PublishedAt.Year())

	require.NoError(t, db.First(&gotDraft, draft.ID).Error)
	assert.Nil(t, gotDraft.PublishedAt)

	var gotMember, gotAnon model.Comment
	require.NoError(t, db.First(&gotMember, member.ID).Error)
	assert.True(t, gotMember.Approved)
	require.NoError(t, db.First(&gotAnon, anon.ID).Error)
	assert.False(t, gotAnon.Approved)
}
