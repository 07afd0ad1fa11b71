// Package model 定义数据模型
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate migrates the tables registered under key.
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {
	case "Article":
		return db.AutoMigrate(&Article{}, &ArticleRevision{})
	case "Comment":
		return db.AutoMigrate(&Comment{})
	case "ArticleRelation":
		return db.AutoMigrate(&ArticleRelation{})
	case "ArticleReference":
		return db.AutoMigrate(&ArticleReference{})
	case "User":
		return db.AutoMigrate(&User{})
	}
	return nil
}
