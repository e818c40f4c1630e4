package events

import "time"

// EventType 博客事件类型
type EventType string

const (
	PostCreated    EventType = "post.created"
	PostUpdated    EventType = "post.updated"
	PostDeleted    EventType = "post.deleted"
	CommentCreated EventType = "comment.created"
	CommentUpdated EventType = "comment.updated"
	CommentDeleted EventType = "comment.deleted"
)

// PostEvent 帖子变更事件，发送到 kafkaConfig.topics.postEvents
type PostEvent struct {
	EventID    string     `json:"event_id"`
	Type       EventType  `json:"type"`
	Timestamp  time.Time  `json:"timestamp"`
	PostID     uint64     `json:"post_id"`
	AuthorID   string     `json:"author_id"`
	Title      string     `json:"title,omitempty"`
	CategoryID *uint64    `json:"category_id,omitempty"`
	PubDate    *time.Time `json:"pub_date,omitempty"`
}

// CommentEvent 评论变更事件，发送到 kafkaConfig.topics.commentEvents
type CommentEvent struct {
	EventID   string    `json:"event_id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	CommentID uint64    `json:"comment_id"`
	PostID    uint64    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
}

// PublishToggleCommand 管理后台投递的批量发布状态切换指令
// - Target: post / category / location
// - Published 必填，缺失视为无效消息
type PublishToggleCommand struct {
	EventID   string   `json:"event_id"`
	Target    string   `json:"target"`
	IDs       []uint64 `json:"ids"`
	Published *bool    `json:"published"`
}
