package entities

import "time"

// Post 博客帖子
// - 表名: posts
// - 可见性: IsPublished && PubDate <= now && (无分类 || 分类已发布)，作者本人不受限制
type Post struct {
	PublishedModel

	// 标题，最大 256 个字符
	Title string `gorm:"type:varchar(256);not null"`

	// 正文
	Text string `gorm:"type:text;not null"`

	// 发布时间。设置为未来时间可以实现定时发布。
	PubDate time.Time `gorm:"not null;index"`

	// 图片的公共访问地址，以及它在对象存储中的 Key (删除帖子时用来清理图片)
	ImageURL string `gorm:"type:varchar(512)"`
	ImageKey string `gorm:"type:varchar(255)"`

	// 作者，删除用户时级联删除其帖子
	AuthorID string `gorm:"type:char(36);not null;index"`
	Author   *User  `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	// 分类与地点均可为空，被删除时置空
	CategoryID *uint64   `gorm:"index"`
	Category   *Category `gorm:"constraint:OnDelete:SET NULL"`
	LocationID *uint64   `gorm:"index"`
	Location   *Location `gorm:"constraint:OnDelete:SET NULL"`

	// 浏览量，由定时任务从 Redis 同步
	ViewCount int64 `gorm:"not null;default:0"`

	// 评论数，查询时通过子查询实时计算，不落库
	CommentCount int64 `gorm:"->;-:migration"`
}

// VisibleAt 判断帖子在 now 时刻对非作者是否可见。
// 调用前需要已加载 Category (CategoryID 不为空时)，未加载的分类视为不存在。
func (p *Post) VisibleAt(now time.Time) bool {
	if !p.Published() || p.PubDate.After(now) {
		return false
	}
	return p.Category == nil || p.Category.Published()
}

// IsAuthoredBy 判断 viewerID 是否为帖子作者，匿名用户 (空 ID) 永远不是作者
func (p *Post) IsAuthoredBy(viewerID string) bool {
	return viewerID != "" && p.AuthorID == viewerID
}
