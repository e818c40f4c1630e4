package entities

// Category 帖子分类
// - Slug 用于构建 /category/{slug}/ 地址，只允许字母、数字、下划线和连字符
// - 分类取消发布后，其下的帖子对所有非作者读者隐藏
type Category struct {
	PublishedModel

	Title       string `gorm:"type:varchar(256);not null"`
	Description string `gorm:"type:text;not null"`
	Slug        string `gorm:"type:varchar(64);uniqueIndex;not null"`
}
