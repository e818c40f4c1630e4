package entities

import "github.com/Xushengqwer/go-common/models/entities"

// PublishedModel 可发布内容的公共字段
// - 嵌入 BaseModel (ID, CreatedAt, UpdatedAt, DeletedAt)，并增加发布标记
// - Category / Location / Post / Comment 均嵌入此结构
type PublishedModel struct {
	entities.BaseModel

	// 是否已发布。取消发布后内容对非作者隐藏。
	// - 新建记录时由服务层显式置为 true。数据库不设默认值，否则 GORM 会把显式的 false 当成零值替换成默认值。
	IsPublished bool `gorm:"not null;index"`
}

// Published 返回记录当前是否处于发布状态
func (m PublishedModel) Published() bool {
	return m.IsPublished
}
