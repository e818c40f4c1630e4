package mysql

import (
	"context"
	"errors"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// PostRepository 定义了帖子数据的持久化操作接口。
type PostRepository interface {
	// CountPosts 统计满足查询条件的帖子总数，用于分页。
	CountPosts(ctx context.Context, q PostQuery) (int64, error)

	// ListPosts 按 "发布时间倒序、标题升序" 返回一页帖子，附带作者、分类、地点与评论数。
	ListPosts(ctx context.Context, q PostQuery, offset, limit int) ([]*entities.Post, error)

	// GetPostByID 获取单个帖子 (不做可见性判断，由服务层根据查看者决定)。
	// - 未找到时返回 commonerrors.ErrRepoNotFound。
	GetPostByID(ctx context.Context, id uint64) (*entities.Post, error)

	// CreatePost 持久化一个新的帖子，成功后 post.ID 被回填。
	CreatePost(ctx context.Context, post *entities.Post) error

	// UpdatePost 更新帖子的可编辑字段 (不包括发布标记与作者)。
	UpdatePost(ctx context.Context, post *entities.Post) error

	// DeletePost 在同一事务中软删除帖子及其所有评论。
	DeletePost(ctx context.Context, id uint64) error
}

type postRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewPostRepository 是 postRepository 的构造函数。
func NewPostRepository(db *gorm.DB, logger *core.ZapLogger) PostRepository {
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

func (r *postRepository) CountPosts(ctx context.Context, q PostQuery) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.Post{}).Scopes(byFilters(q)).Count(&total).Error; err != nil {
		r.logger.Error("统计帖子数量失败", zap.Error(err), zap.Any("query", q))
		return 0, err
	}
	return total, nil
}

func (r *postRepository) ListPosts(ctx context.Context, q PostQuery, offset, limit int) ([]*entities.Post, error) {
	posts := make([]*entities.Post, 0, limit)
	err := r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Scopes(byFilters(q), withCommentCount, withListRelations, newestFirst).
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		r.logger.Error("查询帖子列表失败", zap.Error(err), zap.Any("query", q), zap.Int("offset", offset), zap.Int("limit", limit))
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetPostByID(ctx context.Context, id uint64) (*entities.Post, error) {
	var post entities.Post
	err := r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Scopes(withCommentCount, withListRelations).
		Where("posts.id = ?", id).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Debug("帖子不存在", zap.Uint64("postID", id))
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取帖子失败", zap.Error(err), zap.Uint64("postID", id))
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) CreatePost(ctx context.Context, post *entities.Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		r.logger.Error("创建帖子失败", zap.Error(err), zap.String("authorID", post.AuthorID))
		return err
	}
	return nil
}

func (r *postRepository) UpdatePost(ctx context.Context, post *entities.Post) error {
	result := r.db.WithContext(ctx).
		Model(post).
		Select("title", "text", "pub_date", "category_id", "location_id", "image_url", "image_key").
		Omit(clause.Associations).
		Updates(post)
	if result.Error != nil {
		r.logger.Error("更新帖子失败", zap.Error(result.Error), zap.Uint64("postID", post.ID))
		return result.Error
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("尝试更新帖子但未找到记录或记录已被删除", zap.Uint64("postID", post.ID))
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

func (r *postRepository) DeletePost(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&entities.Comment{}).Error; err != nil {
			r.logger.Error("删除帖子评论失败", zap.Error(err), zap.Uint64("postID", id))
			return err
		}
		result := tx.Delete(&entities.Post{}, id)
		if result.Error != nil {
			r.logger.Error("删除帖子失败", zap.Error(result.Error), zap.Uint64("postID", id))
			return result.Error
		}
		if result.RowsAffected == 0 {
			return commonerrors.ErrRepoNotFound
		}
		return nil
	})
}
