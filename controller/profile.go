package controller

import (
	"net/http"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/service"
)

// ProfileController 编辑本人资料
type ProfileController struct {
	profileService service.ProfileService
	loginURL       string
}

func NewProfileController(profileService service.ProfileService, loginURL string) *ProfileController {
	return &ProfileController{profileService: profileService, loginURL: loginURL}
}

// GetOwnProfile 获取本人资料
// @Summary      本人资料
// @Tags         profile (个人主页)
// @Produce      json
// @Param        X-User-ID header string true "用户 ID (由网关注入)"
// @Success      200 {object} vo.ProfileResponseWrapper "本人资料 (含邮箱)"
// @Success      302 "未登录重定向到登录页"
// @Router       /profile/edit [get]
func (ctrl *ProfileController) GetOwnProfile(c *gin.Context) {
	profile, err := ctrl.profileService.GetOwnProfile(c.Request.Context(), currentViewer(c))
	if err != nil {
		handleServiceError(c, err, ctrl.loginURL, "/")
		return
	}
	response.RespondSuccess(c, profile)
}

// UpdateProfile 更新本人资料
// @Summary      更新本人资料
// @Description  可修改 first_name、last_name、username、email。用户名必须唯一。成功后重定向到新的主页地址。
// @Tags         profile (个人主页)
// @Accept       x-www-form-urlencoded
// @Param        X-User-ID header string true "用户 ID (由网关注入)"
// @Param        username formData string true "用户名"
// @Param        first_name formData string false "名"
// @Param        last_name formData string false "姓"
// @Param        email formData string false "邮箱"
// @Success      302 "重定向到本人主页"
// @Failure      400 {object} vo.FieldErrorsResponseWrapper "表单校验失败"
// @Router       /profile/edit [post]
func (ctrl *ProfileController) UpdateProfile(c *gin.Context) {
	var req dto.ProfileFormRequest
	if !bindForm(c, &req) {
		return
	}
	profile, err := ctrl.profileService.UpdateProfile(c.Request.Context(), currentViewer(c), &req)
	if err != nil {
		handleServiceError(c, err, ctrl.loginURL, "/")
		return
	}
	c.Redirect(http.StatusFound, ProfileURL(profile.Username))
}

func (ctrl *ProfileController) RegisterRoutes(auth gin.IRouter) {
	auth.GET("/profile/edit", ctrl.GetOwnProfile)
	auth.POST("/profile/edit", ctrl.UpdateProfile)
}
