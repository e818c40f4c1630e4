package router

import (
	"net/http"

	"github.com/Xushengqwer/go-common/core"
	commonMiddleware "github.com/Xushengqwer/go-common/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	appConfig "github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/controller"
)

// Controllers 路由需要的全部控制器
type Controllers struct {
	PostList *controller.PostListController
	Post     *controller.PostController
	Comment  *controller.CommentController
	Profile  *controller.ProfileController
}

// SetupRouter 配置 Gin 引擎、中间件并注册路由。所有业务路由挂在根路径下。
func SetupRouter(logger *core.ZapLogger, cfg *appConfig.BlogServiceConfig, ctrls Controllers) *gin.Engine {
	controller.RegisterFormFieldNames()

	router := gin.New()

	// 1. OTel (最先，处理追踪上下文和 Span)
	router.Use(otelgin.Middleware(constant.ServiceName))
	// 2. Panic Recovery
	router.Use(commonMiddleware.ErrorHandlingMiddleware(logger))
	// 3. 访问日志
	router.Use(commonMiddleware.RequestLoggerMiddleware(logger.Logger()))
	// 4. 超时控制，未配置时不启用
	if timeout := cfg.ServerConfig.RequestTimeout; timeout > 0 {
		router.Use(commonMiddleware.RequestTimeoutMiddleware(logger, timeout))
	}
	// 5. 用户上下文 (网关透传的 X-User-ID)
	router.Use(commonMiddleware.UserContextMiddleware())

	loginURL := cfg.BlogConfig.LoginURL
	if loginURL == "" {
		loginURL = constant.DefaultLoginURL
	}
	auth := router.Group("/", controller.RequireLogin(loginURL))

	ctrls.PostList.RegisterRoutes(router)
	ctrls.Post.RegisterRoutes(router, auth)
	ctrls.Comment.RegisterRoutes(auth)
	ctrls.Profile.RegisterRoutes(auth)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	logger.Info("Gin 路由器设置完成")
	return router
}
