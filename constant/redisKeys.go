package constant

// Redis Key 相关常量
const (
	// PostViewedPrefix 是浏览去重标记的 Key 前缀。
	// 每个 (帖子, 用户) 一个 Key，过期时间为 ViewDedupTTL，存在期间该用户的再次浏览不计数。
	// 示例 Key: "post_viewed:123:0b6f...-uuid"
	// Redis 类型: String
	PostViewedPrefix = "post_viewed:"

	// PostViewCountPrefix 是帖子浏览量计数器的 Key 前缀。
	// 示例 Key: "post_view_count:123"，值 "58" 表示帖子 123 被浏览 58 次
	// Redis 类型: String
	PostViewCountPrefix = "post_view_count:"
)
