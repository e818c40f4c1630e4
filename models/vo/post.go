package vo

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// AuthorVO 作者的公开信息
type AuthorVO struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// CategoryVO 分类信息
type CategoryVO struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// LocationVO 地点信息 (只有已发布的地点会出现在响应中)
type LocationVO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// PostResponse 帖子的响应数据结构
type PostResponse struct {
	ID           uint64      `json:"id"`
	Title        string      `json:"title"`
	Text         string      `json:"text"`
	PubDate      time.Time   `json:"pub_date"`
	ImageURL     string      `json:"image_url,omitempty"`
	IsPublished  bool        `json:"is_published"`
	ViewCount    int64       `json:"view_count"`
	CommentCount int64       `json:"comment_count"`
	Author       *AuthorVO   `json:"author"`
	Category     *CategoryVO `json:"category"` // 没有分类时为 null
	Location     *LocationVO `json:"location"` // 没有地点或地点未发布时为 null
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func MapAuthor(u *entities.User) *AuthorVO {
	if u == nil {
		return nil
	}
	return &AuthorVO{ID: u.ID, Username: u.Username, FirstName: u.FirstName, LastName: u.LastName}
}

func MapCategory(c *entities.Category) *CategoryVO {
	if c == nil {
		return nil
	}
	return &CategoryVO{ID: c.ID, Title: c.Title, Slug: c.Slug, Description: c.Description}
}

// MapPostToResponse 将帖子实体转换为响应结构
func MapPostToResponse(post *entities.Post) *PostResponse {
	resp := &PostResponse{
		ID:           post.ID,
		Title:        post.Title,
		Text:         post.Text,
		PubDate:      post.PubDate,
		ImageURL:     post.ImageURL,
		IsPublished:  post.Published(),
		ViewCount:    post.ViewCount,
		CommentCount: post.CommentCount,
		Author:       MapAuthor(post.Author),
		Category:     MapCategory(post.Category),
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
	}
	if post.Location != nil && post.Location.Published() {
		resp.Location = &LocationVO{ID: post.Location.ID, Name: post.Location.Name}
	}
	return resp
}

// MapPostsToPostResponsesVO 批量转换，空输入返回空切片而不是 nil，便于前端处理
func MapPostsToPostResponsesVO(posts []*entities.Post) []*PostResponse {
	responses := make([]*PostResponse, 0, len(posts))
	for _, post := range posts {
		if post == nil {
			continue
		}
		responses = append(responses, MapPostToResponse(post))
	}
	return responses
}
