package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	sharedCore "github.com/Xushengqwer/go-common/core"
	sharedTracing "github.com/Xushengqwer/go-common/core/tracing"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/controller"
	"github.com/Xushengqwer/blog_service/dependencies"
	_ "github.com/Xushengqwer/blog_service/docs"
	"github.com/Xushengqwer/blog_service/mq/consumer"
	"github.com/Xushengqwer/blog_service/mq/producer"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	redisrepo "github.com/Xushengqwer/blog_service/repo/redis"
	"github.com/Xushengqwer/blog_service/router"
	"github.com/Xushengqwer/blog_service/service"
	"github.com/Xushengqwer/blog_service/tasks"
)

// @title           Blog Service API
// @version         1.0
// @description     博客服务: 帖子、分类、评论与个人主页，按发布状态与发布时间控制可见性。

// @host      localhost:8083
// @BasePath  /
// @schemes http https
func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "Path to configuration file")
	flag.Parse()

	// 1. 加载配置
	var cfg appConfig.BlogServiceConfig
	if err := sharedCore.LoadConfig(configFile, &cfg); err != nil {
		log.Fatalf("FATAL: 加载配置失败 (%s): %v", configFile, err)
	}

	// 2. 初始化 Logger
	logger, loggerErr := sharedCore.NewZapLogger(cfg.ZapConfig)
	if loggerErr != nil {
		log.Fatalf("FATAL: 初始化 ZapLogger 失败: %v", loggerErr)
	}
	defer func() {
		if err := logger.Logger().Sync(); err != nil {
			log.Printf("WARN: ZapLogger Sync 失败: %v\n", err)
		}
	}()

	// 3. 链路追踪
	if cfg.TracerConfig.Enabled {
		tracerShutdown, err := sharedTracing.InitTracerProvider(constant.ServiceName, constant.ServiceVersion, cfg.TracerConfig)
		if err != nil {
			logger.Fatal("初始化 TracerProvider 失败", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerShutdown(ctx); err != nil {
				logger.Error("关闭 TracerProvider 失败", zap.Error(err))
			}
		}()
		logger.Info("分布式追踪已初始化")
	} else {
		logger.Info("分布式追踪已禁用")
	}

	// --- 4. 核心依赖 ---
	db, err := dependencies.InitDatabase(&cfg, logger)
	if err != nil {
		logger.Fatal("初始化数据库失败", zap.Error(err))
	}

	rdb, err := dependencies.InitRedis(&cfg.RedisConfig, logger)
	if err != nil {
		logger.Fatal("初始化 Redis 失败", zap.Error(err))
	}
	defer rdb.Close()

	// 图片存储可选，未启用时上传图片会得到字段错误
	var images service.ImageStore
	if cfg.COSConfig.Enabled {
		cosClient, cosErr := dependencies.InitCOS(&cfg.COSConfig, logger)
		if cosErr != nil {
			logger.Fatal("初始化 COS 客户端失败", zap.Error(cosErr))
		}
		images = cosClient
	} else {
		logger.Warn("未启用 COS，帖子图片上传不可用")
	}

	// Kafka 生产者可选。注意不能把 nil 的 *KafkaProducer 赋给接口。
	var publisher service.EventPublisher
	if len(cfg.KafkaConfig.Brokers) > 0 {
		kafkaProducer := producer.NewKafkaProducer(cfg.KafkaConfig, logger)
		defer func() {
			if err := kafkaProducer.Close(); err != nil {
				logger.Error("关闭 Kafka 生产者失败", zap.Error(err))
			}
		}()
		publisher = kafkaProducer
		logger.Info("Kafka 生产者已初始化")
	} else {
		logger.Warn("未配置 Kafka brokers，博客事件不会发送")
	}

	// --- 5. 仓库层 ---
	postRepo := mysql.NewPostRepository(db, logger)
	commentRepo := mysql.NewCommentRepository(db, logger)
	categoryRepo := mysql.NewCategoryRepository(db, logger)
	locationRepo := mysql.NewLocationRepository(db, logger)
	userRepo := mysql.NewUserRepository(db, logger)
	publishRepo := mysql.NewPublishRepository(db, logger)
	postBatchRepo := mysql.NewPostBatchOperationsRepository(db, logger, cfg.ViewSyncConfig)
	postViewRepo := redisrepo.NewPostViewRepository(rdb, logger, cfg.ViewSyncConfig)

	// --- 6. 服务层 ---
	postService := service.NewPostService(service.PostServiceDeps{
		PostRepo:       postRepo,
		CommentRepo:    commentRepo,
		CategoryRepo:   categoryRepo,
		LocationRepo:   locationRepo,
		UserRepo:       userRepo,
		PostViewRepo:   postViewRepo,
		Images:         images,
		Events:         publisher,
		MaxImageSizeMB: cfg.BlogConfig.MaxImageSizeMB,
	}, logger)
	postListService := service.NewPostListService(postRepo, categoryRepo, userRepo, cfg.BlogConfig.PostsPerPage, logger)
	commentService := service.NewCommentService(postRepo, commentRepo, userRepo, publisher, logger)
	profileService := service.NewProfileService(userRepo, logger)
	publishService := service.NewPublishService(publishRepo, logger)

	// --- 7. 控制器 ---
	loginURL := cfg.BlogConfig.LoginURL
	if loginURL == "" {
		loginURL = constant.DefaultLoginURL
	}
	ctrls := router.Controllers{
		PostList: controller.NewPostListController(postListService, loginURL),
		Post:     controller.NewPostController(postService, loginURL),
		Comment:  controller.NewCommentController(commentService, loginURL),
		Profile:  controller.NewProfileController(profileService, loginURL),
	}

	// --- 8. Kafka 消费者: 发布状态切换指令 ---
	var consumers []*consumer.Consumer
	var consumerWg sync.WaitGroup
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	if topic := cfg.KafkaConfig.Topics.PublishToggles; len(cfg.KafkaConfig.Brokers) > 0 && topic != "" {
		groupID := cfg.KafkaConfig.ConsumerGroupID
		if groupID == "" {
			groupID = constant.ServiceName + "_group"
		}
		toggleConsumer, err := consumer.NewConsumer(&cfg.KafkaConfig, groupID, topic,
			consumer.NewPublishToggleHandler(logger, publishService), logger)
		if err != nil {
			logger.Fatal("初始化发布状态切换消费者失败", zap.Error(err))
		}
		consumers = append(consumers, toggleConsumer)
	} else {
		logger.Warn("Kafka 未配置或 publishToggles topic 为空，跳过消费者初始化")
	}
	for _, c := range consumers {
		consumerWg.Add(1)
		go func(cons *consumer.Consumer) {
			defer consumerWg.Done()
			cons.Start(consumerCtx)
		}(c)
	}

	// --- 9. 定时任务 ---
	syncTask := tasks.NewViewCountSyncTask(postViewRepo, postBatchRepo, cfg.ViewSyncConfig, logger)
	if err := syncTask.Start(); err != nil {
		logger.Fatal("启动浏览量同步任务失败", zap.Error(err))
	}

	// --- 10. HTTP 服务器 ---
	serverAddr := fmt.Sprintf("%s:%s", cfg.ServerConfig.ListenAddr, cfg.ServerConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router.SetupRouter(logger, &cfg, ctrls),
	}
	go func() {
		logger.Info("HTTP 服务器开始监听", zap.String("address", serverAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 服务器启动失败", zap.Error(err))
		}
	}()

	// --- 11. 优雅关停 ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	logger.Info("收到关停信号，开始优雅退出...", zap.String("signal", receivedSignal.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// a. HTTP 服务器 (处理完当前请求)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("关闭 HTTP 服务器失败", zap.Error(err))
	}

	// b. Kafka 消费者
	consumerCancel()
	consumerWg.Wait()
	for _, c := range consumers {
		if err := c.Close(); err != nil {
			logger.Error("关闭 Kafka 消费者时出错", zap.Error(err))
		}
	}

	// c. 定时任务，等待正在执行的同步完成
	select {
	case <-syncTask.Stop().Done():
		logger.Info("浏览量同步任务已停止")
	case <-shutdownCtx.Done():
		logger.Error("等待定时任务停止超时", zap.Error(shutdownCtx.Err()))
	}

	// d. 关停前做最后一次浏览量同步，避免丢失最近一分钟的计数
	if err := syncTask.SyncOnce(shutdownCtx); err != nil {
		logger.Error("关停前同步浏览量失败", zap.Error(err))
	}

	logger.Info("服务已成功关闭")
}
