package config

// BlogConfig 博客业务相关配置
type BlogConfig struct {
	// PostsPerPage 列表页每页帖子数量，<=0 时使用 constant.DefaultPostsPerPage
	PostsPerPage int `mapstructure:"postsPerPage" json:"postsPerPage" yaml:"postsPerPage"`

	// LoginURL 未登录用户访问需要登录的接口时被重定向到的地址 (由认证服务提供)
	LoginURL string `mapstructure:"loginURL" json:"loginURL" yaml:"loginURL"`

	// MaxImageSizeMB 帖子图片的大小上限 (MB)
	MaxImageSizeMB int64 `mapstructure:"maxImageSizeMB" json:"maxImageSizeMB" yaml:"maxImageSizeMB"`
}
