package controller

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/service"
)

// PostController 帖子详情以及帖子的创建、编辑、删除
type PostController struct {
	postService service.PostService
	loginURL    string
}

func NewPostController(postService service.PostService, loginURL string) *PostController {
	return &PostController{postService: postService, loginURL: loginURL}
}

// formImage 读取可选的 image 文件字段
func formImage(c *gin.Context) (*multipart.FileHeader, error) {
	image, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	return image, err
}

// redirectToAuthorProfile 帖子写操作成功后回到作者主页
func redirectToAuthorProfile(c *gin.Context, post *vo.PostResponse) {
	if post.Author == nil {
		c.Redirect(http.StatusFound, PostDetailURL(post.ID))
		return
	}
	c.Redirect(http.StatusFound, ProfileURL(post.Author.Username))
}

// GetPostDetail 帖子详情
// @Summary      帖子详情
// @Description  返回帖子及其评论 (按创建时间升序)。对非作者不可见的帖子返回 404，作者本人始终可以查看。
// @Tags         posts (帖子)
// @Produce      json
// @Param        X-User-ID header string false "查看者用户 ID (由网关注入)"
// @Param        id path int true "帖子 ID"
// @Success      200 {object} vo.PostDetailResponseWrapper "帖子详情"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在或不可见"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /posts/{id}/ [get]
func (ctrl *PostController) GetPostDetail(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	detail, err := ctrl.postService.GetPostDetail(c.Request.Context(), currentViewer(c), postID)
	if err != nil {
		handleServiceError(c, err, ctrl.loginURL, PostDetailURL(postID))
		return
	}
	response.RespondSuccess(c, detail, "获取帖子详情成功")
}

// CreatePost 创建帖子
// @Summary      创建帖子
// @Description  作者为当前用户。成功后重定向到作者主页。引用的分类或地点不存在时返回字段错误。
// @Tags         posts (帖子)
// @Accept       multipart/form-data
// @Param        X-User-ID header string true "用户 ID (由网关注入)"
// @Param        title formData string true "标题"
// @Param        text formData string true "正文"
// @Param        pub_date formData string true "发布时间 (RFC3339 或 2006-01-02T15:04，UTC)"
// @Param        category_id formData int false "分类 ID"
// @Param        location_id formData int false "地点 ID"
// @Param        image formData file false "帖子图片"
// @Success      302 "重定向到作者主页"
// @Failure      400 {object} vo.FieldErrorsResponseWrapper "表单校验失败"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /posts/create [post]
func (ctrl *PostController) CreatePost(c *gin.Context) {
	var req dto.PostFormRequest
	if !bindForm(c, &req) {
		return
	}
	image, err := formImage(c)
	if err != nil {
		respondFieldErrors(c, map[string]string{"image": "图片读取失败"})
		return
	}

	post, err := ctrl.postService.CreatePost(c.Request.Context(), currentViewer(c), &req, image)
	if err != nil {
		handleServiceError(c, err, ctrl.loginURL, "/")
		return
	}
	redirectToAuthorProfile(c, post)
}

// GetPostForEdit 获取帖子编辑表单的当前值
// @Summary      帖子编辑表单
// @Description  只有作者可以获取，非作者重定向到帖子详情页。
// @Tags         posts (帖子)
// @Produce      json
// @Param        X-User-ID header string true "用户 ID (由网关注入)"
// @Param        id path int true "帖子 ID"
// @Success      200 {object} vo.PostDetailResponseWrapper "帖子当前内容"
// @Success      302 "非作者重定向到帖子详情页"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /posts/{id}/edit [get]
func (ctrl *PostController) GetPostForEdit(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	post, err := ctrl.postService.GetPostForEdit(c.Request.Context(), currentViewer(c), postID)
	if err != nil {
		handleServiceError(c, err, ctrl.loginURL, PostDetailURL(postID))
		return
	}
	response.RespondSuccess(c, post)
}

// UpdatePost 编辑帖子
// @Summary      编辑帖子
// @Description  只有作者可以编辑，非作者重定向到帖子详情页。成功后重定向到作者主页。上传新图片会替换旧图片。
// @Tags         posts (帖子)
// @Accept       multipart/form-data
// @Param        X-User-ID header string true "用户 ID (由网关注入)"
// @Param        id path int true "帖子 ID"
// @Param        title formData string true "标题"
// @Param        text formData string true "正文"
// @Param        pub_date formData string true "发布时间"
// @Param        category_id formData int false "分类 ID"
// @Param        location_id formData int false "地点 ID"
// @Param        image formData file false "新的帖子图片"
// @Success      302 "重定向到作者主页或帖子详情页"
// @Failure      400 {object} vo.FieldErrorsResponseWrapper "表单校验失败"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /posts/{id}/edit [post]
func (ctrl *PostController) UpdatePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	// 非作者直接重定向，不进入表单校验
	if _, err := ctrl.postService.GetPostForEdit(c.Request.Context(), currentViewer(c), postID); err != nil {
		handleServiceError(c, err, ctrl.loginURL, PostDetailURL(postID))
		return
	}
	var req dto.PostFormRequest
	if !bindForm(c, &req) {
		return
	}
	image, err := formImage(c)
	if err != nil {
		respondFieldErrors(c, map[string]string{"image": "图片读取失败"})
		return
	}

	post, err := ctrl.postService.UpdatePost(c.Request.Context(), currentViewer(c), postID, &req, image)
	if err != nil {
		handleServiceError(c, err, ctrl.loginURL, PostDetailURL(postID))
		return
	}
	redirectToAuthorProfile(c, post)
}

// DeletePost 删除帖子
// @Summary      删除帖子
// @Description  只有作者可以删除，非作者重定向到帖子详情页。评论随帖子一起删除。成功后重定向到作者主页。
// @Tags         posts (帖子)
// @Param        X-User-ID header string true "用户 ID (由网关注入)"
// @Param        id path int true "帖子 ID"
// @Success      302 "重定向到作者主页或帖子详情页"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /posts/{id}/delete [post]
func (ctrl *PostController) DeletePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	post, err := ctrl.postService.DeletePost(c.Request.Context(), currentViewer(c), postID)
	if err != nil {
		handleServiceError(c, err, ctrl.loginURL, PostDetailURL(postID))
		return
	}
	redirectToAuthorProfile(c, post)
}

// RegisterRoutes public 为匿名可访问的路由组，auth 为需要登录的路由组
func (ctrl *PostController) RegisterRoutes(public, auth gin.IRouter) {
	public.GET("/posts/:id/", ctrl.GetPostDetail)

	auth.POST("/posts/create", ctrl.CreatePost)
	auth.GET("/posts/:id/edit", ctrl.GetPostForEdit)
	auth.POST("/posts/:id/edit", ctrl.UpdatePost)
	auth.POST("/posts/:id/delete", ctrl.DeletePost)
}
