package mysql

import (
	"time"

	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// PostQuery 描述一次帖子列表查询
// - ApplyVisibility 为 true 时只返回对非作者可见的帖子 (见 visibleAt)
// - CategorySlug / AuthorID 为空表示不按该维度收窄
type PostQuery struct {
	Now             time.Time
	ApplyVisibility bool
	CategorySlug    string
	AuthorID        string
}

// joinCategories 左连接未删除的分类，可见性判断和按分类收窄都依赖它。
// 软删除的分类连接结果为 NULL，等同于帖子没有分类。
func joinCategories(db *gorm.DB) *gorm.DB {
	return db.Joins("LEFT JOIN categories ON categories.id = posts.category_id AND categories.deleted_at IS NULL")
}

// visibleAt 帖子可见性谓词: 已发布、发布时间不晚于 now、无分类或分类已发布
func visibleAt(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where("posts.is_published = ?", true).
			Where("posts.pub_date <= ?", now).
			Where("(categories.id IS NULL OR categories.is_published = ?)", true)
	}
}

// byFilters 应用 PostQuery 中的可见性与收窄条件
func byFilters(q PostQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = joinCategories(db)
		if q.ApplyVisibility {
			db = db.Scopes(visibleAt(q.Now))
		}
		if q.CategorySlug != "" {
			db = db.Where("categories.slug = ?", q.CategorySlug)
		}
		if q.AuthorID != "" {
			db = db.Where("posts.author_id = ?", q.AuthorID)
		}
		return db
	}
}

// withCommentCount 通过子查询实时统计未删除的评论数
func withCommentCount(db *gorm.DB) *gorm.DB {
	commentCount := db.Session(&gorm.Session{NewDB: true}).
		Model(&entities.Comment{}).
		Select("COUNT(*)").
		Where("comments.post_id = posts.id")
	return db.Select("posts.*, (?) AS comment_count", commentCount)
}

// withListRelations 预加载作者与分类；地点只有在已发布时才加载，未发布的地点不展示
func withListRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Category").
		Preload("Location", "is_published = ?", true)
}

// newestFirst 发布时间倒序，同一时间按标题升序，最后按 ID 保证顺序稳定
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("posts.pub_date DESC").Order("posts.title ASC").Order("posts.id DESC")
}
