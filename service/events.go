package service

import (
	"context"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/events"
)

// EventPublisher 博客事件的发布者，由 mq/producer.KafkaProducer 实现
type EventPublisher interface {
	PublishPostEvent(ctx context.Context, event events.PostEvent) error
	PublishCommentEvent(ctx context.Context, event events.CommentEvent) error
}

// eventNotifier 在后台 goroutine 中发送事件，发送失败只记录日志，不影响主流程。
// publisher 为 nil 时 (未配置 Kafka) 直接跳过。
type eventNotifier struct {
	publisher EventPublisher
	logger    *core.ZapLogger
}

func (n eventNotifier) post(eventType events.EventType, post *entities.Post) {
	if n.publisher == nil {
		return
	}
	pubDate := post.PubDate
	event := events.PostEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		Timestamp:  time.Now().UTC(),
		PostID:     post.ID,
		AuthorID:   post.AuthorID,
		Title:      post.Title,
		CategoryID: post.CategoryID,
		PubDate:    &pubDate,
	}
	go func() {
		if err := n.publisher.PublishPostEvent(context.Background(), event); err != nil {
			n.logger.Error("发送帖子事件失败", zap.Error(err), zap.String("type", string(eventType)), zap.Uint64("post_id", event.PostID))
		}
	}()
}

func (n eventNotifier) comment(eventType events.EventType, comment *entities.Comment) {
	if n.publisher == nil {
		return
	}
	event := events.CommentEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		CommentID: comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
	}
	go func() {
		if err := n.publisher.PublishCommentEvent(context.Background(), event); err != nil {
			n.logger.Error("发送评论事件失败", zap.Error(err), zap.String("type", string(eventType)), zap.Uint64("comment_id", event.CommentID))
		}
	}()
}
