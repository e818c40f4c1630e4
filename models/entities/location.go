package entities

// Location 帖子的地点标签，只影响展示，不参与可见性判断
type Location struct {
	PublishedModel

	Name string `gorm:"type:varchar(256);not null"`
}
