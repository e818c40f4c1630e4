package service

import (
	"context"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/models/events"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// PublishService 处理来自管理后台的发布状态切换指令
type PublishService interface {
	// ApplyToggle 校验并执行一条指令，返回受影响的行数。
	// 指令无效时返回 myErrors.FieldErrors。
	ApplyToggle(ctx context.Context, cmd events.PublishToggleCommand) (int64, error)
}

type publishService struct {
	publishRepo mysql.PublishRepository
	logger      *core.ZapLogger
}

func NewPublishService(publishRepo mysql.PublishRepository, logger *core.ZapLogger) PublishService {
	return &publishService{publishRepo: publishRepo, logger: logger}
}

func (s *publishService) ApplyToggle(ctx context.Context, cmd events.PublishToggleCommand) (int64, error) {
	errs := myErrors.FieldErrors{}
	target := mysql.PublishTarget(cmd.Target)
	switch target {
	case mysql.PublishTargetPost, mysql.PublishTargetCategory, mysql.PublishTargetLocation:
	default:
		errs["target"] = "未知的目标类型"
	}
	if len(cmd.IDs) == 0 {
		errs["ids"] = "ids 不能为空"
	}
	if cmd.Published == nil {
		errs["published"] = "published 必填"
	}
	if len(errs) > 0 {
		return 0, errs
	}

	affected, err := s.publishRepo.SetPublished(ctx, target, cmd.IDs, *cmd.Published)
	if err != nil {
		return 0, err
	}
	s.logger.Info("发布状态切换指令执行完成",
		zap.String("event_id", cmd.EventID),
		zap.String("target", cmd.Target),
		zap.Int64("affected", affected),
	)
	return affected, nil
}
