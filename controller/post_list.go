package controller

import (
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/service"
)

// PostListController 首页、分类页与个人主页的帖子列表
type PostListController struct {
	postListService service.PostListService
	loginURL        string
}

func NewPostListController(postListService service.PostListService, loginURL string) *PostListController {
	return &PostListController{postListService: postListService, loginURL: loginURL}
}

// Index 首页
// @Summary      首页帖子列表
// @Description  列出所有对外可见的帖子: 已发布、发布时间不晚于当前时间、所属分类已发布 (或没有分类)。按发布时间倒序，同一时间按标题升序。页码越界时回退到第一页或最后一页。
// @Tags         posts (帖子)
// @Produce      json
// @Param        page query string false "页码 (从1开始，last 表示最后一页)"
// @Success      200 {object} vo.PostPageResponseWrapper "帖子列表的一页"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       / [get]
func (ctrl *PostListController) Index(c *gin.Context) {
	var query dto.PageQuery
	_ = c.ShouldBindQuery(&query)

	page, err := ctrl.postListService.ListIndexPosts(c.Request.Context(), query.Page)
	if err != nil {
		handleServiceError(c, err, ctrl.loginURL, "/")
		return
	}
	response.RespondSuccess(c, page, "获取帖子列表成功")
}

// CategoryPosts 分类页
// @Summary      分类帖子列表
// @Description  列出某个分类下的可见帖子。分类不存在或未发布时返回 404。
// @Tags         posts (帖子)
// @Produce      json
// @Param        slug path string true "分类标识"
// @Param        page query string false "页码 (从1开始，last 表示最后一页)"
// @Success      200 {object} vo.CategoryPageResponseWrapper "分类信息与帖子列表"
// @Failure      404 {object} vo.BaseResponseWrapper "分类不存在或未发布"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /category/{slug}/ [get]
func (ctrl *PostListController) CategoryPosts(c *gin.Context) {
	var query dto.PageQuery
	_ = c.ShouldBindQuery(&query)

	page, err := ctrl.postListService.ListCategoryPosts(c.Request.Context(), c.Param("slug"), query.Page)
	if err != nil {
		handleServiceError(c, err, ctrl.loginURL, "/")
		return
	}
	response.RespondSuccess(c, page, "获取分类帖子列表成功")
}

// ProfilePosts 个人主页
// @Summary      用户主页
// @Description  用户资料与其帖子列表。本人查看时包含未发布与定时发布的帖子，其他人只能看到可见帖子。
// @Tags         profile (个人主页)
// @Produce      json
// @Param        X-User-ID header string false "查看者用户 ID (由网关注入)"
// @Param        username path string true "用户名"
// @Param        page query string false "页码 (从1开始，last 表示最后一页)"
// @Success      200 {object} vo.ProfilePageResponseWrapper "用户资料与帖子列表"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /profile/{username}/ [get]
func (ctrl *PostListController) ProfilePosts(c *gin.Context) {
	var query dto.PageQuery
	_ = c.ShouldBindQuery(&query)

	page, err := ctrl.postListService.ListProfilePosts(c.Request.Context(), currentViewer(c), c.Param("username"), query.Page)
	if err != nil {
		handleServiceError(c, err, ctrl.loginURL, "/")
		return
	}
	response.RespondSuccess(c, page, "获取用户主页成功")
}

func (ctrl *PostListController) RegisterRoutes(r gin.IRouter) {
	r.GET("/", ctrl.Index)
	r.GET("/category/:slug/", ctrl.CategoryPosts)
	r.GET("/profile/:username/", ctrl.ProfilePosts)
}
