package producer

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/Xushengqwer/go-common/core"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/models/events"
)

// messageWriter 是 kafka.Writer 中用到的部分，便于测试替换
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaProducer Kafka 消息生产者，实现 service.EventPublisher
type KafkaProducer struct {
	writer messageWriter
	logger *core.ZapLogger
	topics config.Topics
}

// NewKafkaProducer 创建一个新的 Kafka 生产者实例
func NewKafkaProducer(cfg config.KafkaConfig, logger *core.ZapLogger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaProducer{
		writer: writer,
		logger: logger,
		topics: cfg.Topics,
	}
}

// SendEvent 发送事件到指定 Kafka 主题，key 决定分区，同一帖子的事件保持顺序
func (p *KafkaProducer) SendEvent(ctx context.Context, topic string, key []byte, event interface{}) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("序列化 Kafka 事件失败", zap.Error(err), zap.String("topic", topic))
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: eventBytes,
	})
	if err != nil {
		p.logger.Error("写入 Kafka 消息失败", zap.Error(err), zap.String("topic", topic))
		return err
	}
	p.logger.Debug("成功发送 Kafka 消息", zap.String("topic", topic), zap.ByteString("payload", eventBytes))
	return nil
}

// PublishPostEvent 发送帖子变更事件
func (p *KafkaProducer) PublishPostEvent(ctx context.Context, event events.PostEvent) error {
	return p.SendEvent(ctx, p.topics.PostEvents, postKey(event.PostID), event)
}

// PublishCommentEvent 发送评论变更事件，按所属帖子分区
func (p *KafkaProducer) PublishCommentEvent(ctx context.Context, event events.CommentEvent) error {
	return p.SendEvent(ctx, p.topics.CommentEvents, postKey(event.PostID), event)
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

func postKey(postID uint64) []byte {
	return strconv.AppendUint(nil, postID, 10)
}
