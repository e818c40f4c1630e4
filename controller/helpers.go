package controller

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/constants"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Xushengqwer/blog_service/myErrors"
)

// currentViewer 从 gin.Context 中取出网关透传的用户 ID，匿名访问时为空字符串
func currentViewer(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(string(constants.UserIDKey)))
}

// PostDetailURL 帖子详情页地址
func PostDetailURL(postID uint64) string {
	return fmt.Sprintf("/posts/%d/", postID)
}

// ProfileURL 用户主页地址
func ProfileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

// LoginRedirectURL 登录页地址，next 为登录后返回的路径
func LoginRedirectURL(loginURL, next string) string {
	return loginURL + "?next=" + url.QueryEscape(next)
}

func redirectToLogin(c *gin.Context, loginURL string) {
	c.Redirect(http.StatusFound, LoginRedirectURL(loginURL, c.Request.URL.RequestURI()))
}

// parseIDParam 解析路径中的数字 ID，非法 ID 与不存在的资源一样返回 404
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, "资源不存在")
		return 0, false
	}
	return id, true
}

// respondFieldErrors 返回 400 以及 字段名 -> 错误信息
func respondFieldErrors(c *gin.Context, errs myErrors.FieldErrors) {
	c.JSON(http.StatusBadRequest, response.APIResponse[map[string]string]{
		Code:    response.ErrCodeClientInvalidInput,
		Message: myErrors.ErrValidation.Error(),
		Data:    errs,
	})
}

// handleServiceError 把服务层错误翻译为 HTTP 响应:
//   - 未登录或未知用户: 重定向到登录页
//   - 资源不存在 (含对查看者不可见的帖子): 404
//   - 非作者的修改: 重定向到 detailURL
//   - 表单校验失败: 400 + 字段错误
//   - 其他: 500
func handleServiceError(c *gin.Context, err error, loginURL, detailURL string) {
	var fieldErrs myErrors.FieldErrors
	switch {
	case errors.Is(err, commonerrors.ErrUserNotLoggedIn):
		redirectToLogin(c, loginURL)
	case errors.Is(err, commonerrors.ErrRepoNotFound):
		response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, "资源不存在")
	case errors.Is(err, myErrors.ErrNotAuthor):
		c.Redirect(http.StatusFound, detailURL)
	case errors.As(err, &fieldErrs):
		respondFieldErrors(c, fieldErrs)
	default:
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "服务器内部错误")
	}
}

// bindForm 绑定表单，失败时直接写出 400 响应并返回 false
func bindForm(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		respondFieldErrors(c, bindingFieldErrors(err))
		return false
	}
	return true
}

// bindingFieldErrors 将 gin 绑定 / validator 的错误转换为字段错误
func bindingFieldErrors(err error) myErrors.FieldErrors {
	errs := myErrors.FieldErrors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["form"] = "表单格式无效"
		return errs
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			errs[fe.Field()] = "该字段为必填项"
		case "max":
			errs[fe.Field()] = "长度不能超过 " + fe.Param()
		case "email":
			errs[fe.Field()] = "请输入有效的邮箱地址"
		default:
			errs[fe.Field()] = "字段值无效"
		}
	}
	return errs
}

var registerFieldNamesOnce sync.Once

// RegisterFormFieldNames 让校验错误使用 form 标签中的字段名 (例如 pub_date 而不是 PubDate)
func RegisterFormFieldNames() {
	registerFieldNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
			switch name {
			case "-":
				return ""
			case "":
				return field.Name
			}
			return name
		})
	})
}

// RequireLogin 需要登录的路由，匿名访问时重定向到登录页
func RequireLogin(loginURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentViewer(c) == "" {
			redirectToLogin(c, loginURL)
			c.Abort()
			return
		}
		c.Next()
	}
}
