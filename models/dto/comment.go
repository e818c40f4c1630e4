package dto

// CommentFormRequest 添加/编辑评论的表单
type CommentFormRequest struct {
	Text string `form:"text" binding:"required"`
}
