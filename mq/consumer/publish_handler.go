package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Xushengqwer/go-common/core"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/models/events"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/service"
)

// MessageHandler 定义了处理 Kafka 消息的接口
type MessageHandler interface {
	Handle(ctx context.Context, msg kafka.Message) error
}

// PublishToggleHandler 消费管理后台的发布状态切换指令
type PublishToggleHandler struct {
	logger         *core.ZapLogger
	publishService service.PublishService
}

func NewPublishToggleHandler(logger *core.ZapLogger, publishService service.PublishService) *PublishToggleHandler {
	return &PublishToggleHandler{
		logger:         logger,
		publishService: publishService,
	}
}

// Handle 无法解析或内容无效的消息直接丢弃 (返回 nil)，数据库错误返回给调用方
func (h *PublishToggleHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var cmd events.PublishToggleCommand
	if err := json.Unmarshal(msg.Value, &cmd); err != nil {
		h.logger.Error("PublishToggleHandler: 反序列化 Kafka 消息失败", zap.Error(err), zap.ByteString("value", msg.Value))
		return nil
	}

	affected, err := h.publishService.ApplyToggle(ctx, cmd)
	if err != nil {
		if errors.Is(err, myErrors.ErrValidation) {
			h.logger.Warn("PublishToggleHandler: 指令无效，已丢弃", zap.Error(err), zap.String("event_id", cmd.EventID))
			return nil
		}
		return fmt.Errorf("PublishToggleHandler: 执行发布状态切换失败: %w", err)
	}

	h.logger.Info("PublishToggleHandler: 指令处理完成",
		zap.String("event_id", cmd.EventID),
		zap.String("target", cmd.Target),
		zap.Int64("affected", affected),
		zap.Int64("offset", msg.Offset),
	)
	return nil
}
