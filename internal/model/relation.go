package model

// ArticleRelation mapped from table <article_relation>
type ArticleRelation struct {
	ID         int64 `gorm:"column:id;primaryKey" json:"id"`
	ArticleID  int64 `gorm:"column:article_id;not null;index:idx_relation_article" json:"articleId"`
	AncestorID int64 `gorm:"column:ancestor_id;not null" json:"ancestorId"`
	Sort       int   `gorm:"column:sort;not null;default:0" json:"sort"`
}

// ArticleReference mapped from table <article_reference>
type ArticleReference struct {
	ArticleID int64  `gorm:"column:article_id;primaryKey;autoIncrement:false" json:"articleId"`
	Markup    string `gorm:"column:markup;type:text" json:"markup"`
}
