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

// CommentRepository 评论的持久化操作
type CommentRepository interface {
	// ListByPost 按创建时间升序返回帖子的全部评论，附带作者。
	ListByPost(ctx context.Context, postID uint64) ([]*entities.Comment, error)

	// GetForPost 获取指定帖子下的评论，评论不存在或不属于该帖子时返回 commonerrors.ErrRepoNotFound。
	GetForPost(ctx context.Context, postID, commentID uint64) (*entities.Comment, error)

	CreateComment(ctx context.Context, comment *entities.Comment) error
	UpdateCommentText(ctx context.Context, commentID uint64, text string) error
	DeleteComment(ctx context.Context, commentID uint64) error
}

type commentRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

func NewCommentRepository(db *gorm.DB, logger *core.ZapLogger) CommentRepository {
	return &commentRepository{db: db, logger: logger}
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint64) ([]*entities.Comment, error) {
	var comments []*entities.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	if err != nil {
		r.logger.Error("查询帖子评论失败", zap.Error(err), zap.Uint64("postID", postID))
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) GetForPost(ctx context.Context, postID, commentID uint64) (*entities.Comment, error) {
	var comment entities.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("获取评论失败", zap.Error(err), zap.Uint64("postID", postID), zap.Uint64("commentID", commentID))
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) CreateComment(ctx context.Context, comment *entities.Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		r.logger.Error("创建评论失败", zap.Error(err), zap.Uint64("postID", comment.PostID))
		return err
	}
	return nil
}

func (r *commentRepository) UpdateCommentText(ctx context.Context, commentID uint64, text string) error {
	result := r.db.WithContext(ctx).Model(&entities.Comment{}).Where("id = ?", commentID).Update("text", text)
	if result.Error != nil {
		r.logger.Error("更新评论失败", zap.Error(result.Error), zap.Uint64("commentID", commentID))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

func (r *commentRepository) DeleteComment(ctx context.Context, commentID uint64) error {
	result := r.db.WithContext(ctx).Delete(&entities.Comment{}, commentID)
	if result.Error != nil {
		r.logger.Error("删除评论失败", zap.Error(result.Error), zap.Uint64("commentID", commentID))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}
