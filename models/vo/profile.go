package vo

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// ProfileVO 用户资料。邮箱只在本人查看时返回。
type ProfileVO struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email,omitempty"`
	DateJoined time.Time `json:"date_joined"`
}

// ProfilePageVO 个人主页: 用户资料 + 帖子列表的一页
type ProfilePageVO struct {
	Profile *ProfileVO `json:"profile"`
	// IsOwner 查看者就是主页主人，此时列表包含未发布、定时发布的帖子
	IsOwner bool `json:"is_owner"`
	PostPageVO
}

func MapProfile(u *entities.User, includeEmail bool) *ProfileVO {
	p := &ProfileVO{
		ID:         u.ID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		DateJoined: u.CreatedAt,
	}
	if includeEmail {
		p.Email = u.Email
	}
	return p
}
