package entities

import "time"

// User 博客用户
// - 账号由外部身份服务创建，本服务只保存展示与资料编辑所需的字段
// - ID 与网关透传的 X-User-ID 一致 (UUID)
type User struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex;not null"`
	FirstName string    `gorm:"type:varchar(150)"`
	LastName  string    `gorm:"type:varchar(150)"`
	Email     string    `gorm:"type:varchar(254)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
