package constant

import "time"

const (
	ServiceName    = "blog_service"
	ServiceVersion = "1.0.0"
)

const (
	// DefaultPostsPerPage 列表页默认每页帖子数量
	DefaultPostsPerPage = 10

	// DefaultLoginURL 未配置 blogConfig.loginURL 时的登录入口
	DefaultLoginURL = "/auth/login/"

	// DefaultMaxImageSizeMB 帖子图片默认大小上限
	DefaultMaxImageSizeMB int64 = 5

	// PostImageKeyPrefix 帖子图片在对象存储中的 Key 前缀
	PostImageKeyPrefix = "post_images/"
)

// SyncViewCountInterval 浏览量同步任务默认的 cron 表达式
const SyncViewCountInterval = "@every 1m"

// ViewDedupTTL 同一用户对同一帖子的浏览只计数一次的时间窗口
const ViewDedupTTL time.Duration = 12 * time.Hour
