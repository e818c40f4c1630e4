package vo

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// CommentVO 评论响应结构
type CommentVO struct {
	ID        uint64    `json:"id"`
	PostID    uint64    `json:"post_id"`
	Text      string    `json:"text"`
	Author    *AuthorVO `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	// CanEdit 当前查看者是否为评论作者
	CanEdit bool `json:"can_edit"`
}

// PostDetailVO 帖子详情页: 帖子 + 按时间升序的评论
type PostDetailVO struct {
	Post     *PostResponse `json:"post"`
	Comments []*CommentVO  `json:"comments"`
	// CanEdit 当前查看者是否为帖子作者
	CanEdit bool `json:"can_edit"`
}

func MapComment(c *entities.Comment, viewerID string) *CommentVO {
	return &CommentVO{
		ID:        c.ID,
		PostID:    c.PostID,
		Text:      c.Text,
		Author:    MapAuthor(c.Author),
		CreatedAt: c.CreatedAt,
		CanEdit:   c.IsAuthoredBy(viewerID),
	}
}

func MapComments(comments []*entities.Comment, viewerID string) []*CommentVO {
	out := make([]*CommentVO, 0, len(comments))
	for _, c := range comments {
		out = append(out, MapComment(c, viewerID))
	}
	return out
}
