package mysql

import (
	"context"
	"fmt"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// PublishTarget 可以切换发布状态的内容类型
type PublishTarget string

const (
	PublishTargetPost     PublishTarget = "post"
	PublishTargetCategory PublishTarget = "category"
	PublishTargetLocation PublishTarget = "location"
)

// PublishRepository 批量修改内容的发布标记。
// - 发布标记只能通过这里修改，帖子/评论的编辑接口不会触碰它。
type PublishRepository interface {
	// SetPublished 将 ids 对应记录的 is_published 设置为 published，返回实际更新的行数。
	SetPublished(ctx context.Context, target PublishTarget, ids []uint64, published bool) (int64, error)
}

type publishRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

func NewPublishRepository(db *gorm.DB, logger *core.ZapLogger) PublishRepository {
	return &publishRepository{db: db, logger: logger}
}

func (r *publishRepository) SetPublished(ctx context.Context, target PublishTarget, ids []uint64, published bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var model interface{}
	switch target {
	case PublishTargetPost:
		model = &entities.Post{}
	case PublishTargetCategory:
		model = &entities.Category{}
	case PublishTargetLocation:
		model = &entities.Location{}
	default:
		return 0, fmt.Errorf("未知的发布目标类型: %q", target)
	}

	result := r.db.WithContext(ctx).
		Model(model).
		Where("id IN ?", ids).
		Update("is_published", published)
	if result.Error != nil {
		r.logger.Error("批量更新发布状态失败",
			zap.Error(result.Error),
			zap.String("target", string(target)),
			zap.Uint64s("ids", ids),
			zap.Bool("published", published),
		)
		return 0, result.Error
	}

	r.logger.Info("批量更新发布状态成功",
		zap.String("target", string(target)),
		zap.Int("requested", len(ids)),
		zap.Int64("affected", result.RowsAffected),
		zap.Bool("published", published),
	)
	return result.RowsAffected, nil
}
