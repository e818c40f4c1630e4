package mysql

import (
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// Migrate 按依赖顺序自动迁移所有博客表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.User{},
		&entities.Category{},
		&entities.Location{},
		&entities.Post{},
		&entities.Comment{},
	)
}
