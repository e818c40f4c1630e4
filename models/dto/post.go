package dto

import (
	"strings"
	"time"
)

// PostFormRequest 创建/编辑帖子的表单 (multipart/form-data 或 x-www-form-urlencoded)
// - 图片通过 multipart 的 image 字段上传，不在此结构中
// - 发布标记不可通过表单设置
type PostFormRequest struct {
	Title      string  `form:"title" binding:"required,max=256"`
	Text       string  `form:"text" binding:"required"`
	PubDate    string  `form:"pub_date" binding:"required"`
	CategoryID *uint64 `form:"category_id"`
	LocationID *uint64 `form:"location_id"`
}

// pubDateLayouts 支持 RFC3339 以及 HTML datetime-local 控件的格式，后者按 UTC 解析
var pubDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParsePubDate 解析发布时间，统一转换为 UTC
func ParsePubDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range pubDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// OptionalID 表单中的空值或 0 视为未选择
func OptionalID(id *uint64) *uint64 {
	if id == nil || *id == 0 {
		return nil
	}
	v := *id
	return &v
}
