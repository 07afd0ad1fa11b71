package dao

import (
	"context"

	"github.com/learncss/Annotum/internal/domain"
	"github.com/learncss/Annotum/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type relationRepository struct {
	dao *Dao
}

// NewRelationRepository 创建 RelationRepository 实例
func NewRelationRepository(dao *Dao) domain.RelationRepository {
	return &relationRepository{dao: dao}
}

func (r *relationRepository) db(ctx context.Context) *gorm.DB {
	return r.dao.migrate("ArticleRelation").WithContext(ctx)
}

// ListAncestors 按保存顺序返回上游文章 ID
func (r *relationRepository) ListAncestors(ctx context.Context, articleID int64) ([]int64, error) {
	var ids []int64
	err := r.db(ctx).Model(&model.ArticleRelation{}).
		Where("article_id = ?", articleID).
		Order("sort ASC, id ASC").
		Pluck("ancestor_id", &ids).Error
	return ids, err
}

// Replace 覆盖文章的上游文章列表
func (r *relationRepository) Replace(ctx context.Context, articleID int64, ancestors []int64) error {
	return r.db(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", articleID).Delete(&model.ArticleRelation{}).Error; err != nil {
			return err
		}
		if len(ancestors) == 0 {
			return nil
		}
		rows := make([]model.ArticleRelation, 0, len(ancestors))
		for i, id := range ancestors {
			rows = append(rows, model.ArticleRelation{ArticleID: articleID, AncestorID: id, Sort: i})
		}
		return tx.Create(&rows).Error
	})
}

type referenceRepository struct {
	dao *Dao
}

// NewReferenceRepository 创建 ReferenceRepository 实例
func NewReferenceRepository(dao *Dao) domain.ReferenceRepository {
	return &referenceRepository{dao: dao}
}

func (r *referenceRepository) db(ctx context.Context) *gorm.DB {
	return r.dao.migrate("ArticleReference").WithContext(ctx)
}

// GetMarkup 获取已渲染的参考文献片段
func (r *referenceRepository) GetMarkup(ctx context.Context, articleID int64) (string, error) {
	var m model.ArticleReference
	err := r.db(ctx).Where("article_id = ?", articleID).Limit(1).Find(&m).Error
	return m.Markup, err
}

// Save 保存参考文献片段
func (r *referenceRepository) Save(ctx context.Context, articleID int64, markup string) error {
	return r.db(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "article_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"markup"}),
	}).Create(&model.ArticleReference{ArticleID: articleID, Markup: markup}).Error
}

var (
	_ domain.RelationRepository  = (*relationRepository)(nil)
	_ domain.ReferenceRepository = (*referenceRepository)(nil)
)
