package dto

// PageQuery 列表页的分页参数。
// page 按字符串接收，非数字不会导致绑定失败，而是回退到第一页。
type PageQuery struct {
	Page string `form:"page"`
}
