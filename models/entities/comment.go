package entities

// Comment 帖子评论，按创建时间升序展示
type Comment struct {
	PublishedModel

	Text string `gorm:"type:text;not null"`

	// 所属帖子，帖子删除时评论一并删除
	PostID uint64 `gorm:"not null;index"`
	Post   *Post  `gorm:"constraint:OnDelete:CASCADE"`

	AuthorID string `gorm:"type:char(36);not null;index"`
	Author   *User  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// IsAuthoredBy 判断 viewerID 是否为评论作者
func (c *Comment) IsAuthoredBy(viewerID string) bool {
	return viewerID != "" && c.AuthorID == viewerID
}
