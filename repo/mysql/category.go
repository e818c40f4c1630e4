package mysql

import (
	"context"
	"errors"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// CategoryRepository 分类的持久化操作
type CategoryRepository interface {
	// GetBySlug 按 slug 获取分类 (不区分发布状态)，未找到返回 commonerrors.ErrRepoNotFound
	GetBySlug(ctx context.Context, slug string) (*entities.Category, error)
	// Exists 判断分类是否存在，供表单校验使用
	Exists(ctx context.Context, id uint64) (bool, error)
	CreateCategory(ctx context.Context, category *entities.Category) error
}

type categoryRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

func NewCategoryRepository(db *gorm.DB, logger *core.ZapLogger) CategoryRepository {
	return &categoryRepository{db: db, logger: logger}
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 slug 获取分类失败", zap.Error(err), zap.String("slug", slug))
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	return exists[entities.Category](ctx, r.db, id)
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *entities.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		r.logger.Error("创建分类失败", zap.Error(err), zap.String("slug", category.Slug))
		return err
	}
	return nil
}

// exists 判断主键为 id 的未删除记录是否存在
func exists[T any](ctx context.Context, db *gorm.DB, id uint64) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
