package controller

import (
	"net/http"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/service"
)

// CommentController 评论的添加、编辑、删除，成功后都回到帖子详情页
type CommentController struct {
	commentService service.CommentService
	loginURL       string
}

func NewCommentController(commentService service.CommentService, loginURL string) *CommentController {
	return &CommentController{commentService: commentService, loginURL: loginURL}
}

// commentPath 解析帖子 ID 与评论 ID
func commentPath(c *gin.Context) (postID, commentID uint64, ok bool) {
	if postID, ok = parseIDParam(c, "id"); !ok {
		return 0, 0, false
	}
	if commentID, ok = parseIDParam(c, "cid"); !ok {
		return 0, 0, false
	}
	return postID, commentID, true
}

// AddComment 添加评论
// @Summary      添加评论
// @Description  帖子必须存在。成功后重定向到帖子详情页。
// @Tags         comments (评论)
// @Accept       x-www-form-urlencoded
// @Param        X-User-ID header string true "用户 ID (由网关注入)"
// @Param        id path int true "帖子 ID"
// @Param        text formData string true "评论内容"
// @Success      302 "重定向到帖子详情页"
// @Failure      400 {object} vo.FieldErrorsResponseWrapper "表单校验失败"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /posts/{id}/comment [post]
func (ctrl *CommentController) AddComment(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CommentFormRequest
	if !bindForm(c, &req) {
		return
	}
	if _, err := ctrl.commentService.AddComment(c.Request.Context(), currentViewer(c), postID, &req); err != nil {
		handleServiceError(c, err, ctrl.loginURL, PostDetailURL(postID))
		return
	}
	c.Redirect(http.StatusFound, PostDetailURL(postID))
}

// GetCommentForEdit 获取评论编辑表单的当前值
// @Summary      评论编辑表单
// @Description  评论必须属于该帖子，否则返回 404。非作者重定向到帖子详情页。
// @Tags         comments (评论)
// @Produce      json
// @Param        X-User-ID header string true "用户 ID (由网关注入)"
// @Param        id path int true "帖子 ID"
// @Param        cid path int true "评论 ID"
// @Success      200 {object} vo.BaseResponseWrapper "评论当前内容"
// @Success      302 "非作者重定向到帖子详情页"
// @Failure      404 {object} vo.BaseResponseWrapper "评论不存在"
// @Router       /posts/{id}/comment/{cid}/edit [get]
func (ctrl *CommentController) GetCommentForEdit(c *gin.Context) {
	postID, commentID, ok := commentPath(c)
	if !ok {
		return
	}
	comment, err := ctrl.commentService.GetCommentForEdit(c.Request.Context(), currentViewer(c), postID, commentID)
	if err != nil {
		handleServiceError(c, err, ctrl.loginURL, PostDetailURL(postID))
		return
	}
	response.RespondSuccess(c, comment)
}

// UpdateComment 编辑评论
// @Summary      编辑评论
// @Description  只有评论作者可以编辑，非作者重定向到帖子详情页且评论内容不变。
// @Tags         comments (评论)
// @Accept       x-www-form-urlencoded
// @Param        X-User-ID header string true "用户 ID (由网关注入)"
// @Param        id path int true "帖子 ID"
// @Param        cid path int true "评论 ID"
// @Param        text formData string true "评论内容"
// @Success      302 "重定向到帖子详情页"
// @Failure      400 {object} vo.FieldErrorsResponseWrapper "表单校验失败"
// @Failure      404 {object} vo.BaseResponseWrapper "评论不存在"
// @Router       /posts/{id}/comment/{cid}/edit [post]
func (ctrl *CommentController) UpdateComment(c *gin.Context) {
	postID, commentID, ok := commentPath(c)
	if !ok {
		return
	}
	if _, err := ctrl.commentService.GetCommentForEdit(c.Request.Context(), currentViewer(c), postID, commentID); err != nil {
		handleServiceError(c, err, ctrl.loginURL, PostDetailURL(postID))
		return
	}
	var req dto.CommentFormRequest
	if !bindForm(c, &req) {
		return
	}
	if _, err := ctrl.commentService.UpdateComment(c.Request.Context(), currentViewer(c), postID, commentID, &req); err != nil {
		handleServiceError(c, err, ctrl.loginURL, PostDetailURL(postID))
		return
	}
	c.Redirect(http.StatusFound, PostDetailURL(postID))
}

// DeleteComment 删除评论
// @Summary      删除评论
// @Description  只有评论作者可以删除，非作者重定向到帖子详情页。
// @Tags         comments (评论)
// @Param        X-User-ID header string true "用户 ID (由网关注入)"
// @Param        id path int true "帖子 ID"
// @Param        cid path int true "评论 ID"
// @Success      302 "重定向到帖子详情页"
// @Failure      404 {object} vo.BaseResponseWrapper "评论不存在"
// @Router       /posts/{id}/comment/{cid}/delete [post]
func (ctrl *CommentController) DeleteComment(c *gin.Context) {
	postID, commentID, ok := commentPath(c)
	if !ok {
		return
	}
	if err := ctrl.commentService.DeleteComment(c.Request.Context(), currentViewer(c), postID, commentID); err != nil {
		handleServiceError(c, err, ctrl.loginURL, PostDetailURL(postID))
		return
	}
	c.Redirect(http.StatusFound, PostDetailURL(postID))
}

func (ctrl *CommentController) RegisterRoutes(auth gin.IRouter) {
	auth.POST("/posts/:id/comment", ctrl.AddComment)
	auth.GET("/posts/:id/comment/:cid/edit", ctrl.GetCommentForEdit)
	auth.POST("/posts/:id/comment/:cid/edit", ctrl.UpdateComment)
	auth.POST("/posts/:id/comment/:cid/delete", ctrl.DeleteComment)
}
