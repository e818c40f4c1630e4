package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "seeder",
		Short:         "博客服务测试数据工具",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSeedCmd())
	return root
}

func newSeedCmd() *cobra.Command {
	var (
		configFile string
		randSeed   int64
		opts       SeedOptions
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "生成用户、分类、地点、帖子与评论",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}

			var cfg appConfig.BlogServiceConfig
			if err := core.LoadConfig(configFile, &cfg); err != nil {
				return fmt.Errorf("加载配置失败 (%s): %w", configFile, err)
			}
			logger, err := core.NewZapLogger(cfg.ZapConfig)
			if err != nil {
				return fmt.Errorf("初始化 ZapLogger 失败: %w", err)
			}
			defer func() { _ = logger.Logger().Sync() }()

			db, err := dependencies.InitDatabase(&cfg, logger)
			if err != nil {
				return err
			}

			repos := SeedRepos{
				Users:      mysql.NewUserRepository(db, logger),
				Categories: mysql.NewCategoryRepository(db, logger),
				Locations:  mysql.NewLocationRepository(db, logger),
				Posts:      mysql.NewPostRepository(db, logger),
				Comments:   mysql.NewCommentRepository(db, logger),
			}
			if randSeed == 0 {
				randSeed = time.Now().UnixNano()
			}

			startTime := time.Now()
			stats, err := Seed(cmd.Context(), repos, gofakeit.New(randSeed), opts, logger)
			if err != nil {
				return err
			}
			logger.Info("数据填充完成",
				zap.Int("users", stats.Users),
				zap.Int("categories", stats.Categories),
				zap.Int("locations", stats.Locations),
				zap.Int("posts", stats.Posts),
				zap.Int("comments", stats.Comments),
				zap.Duration("耗时", time.Since(startTime)),
			)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "config/config.development.yaml", "配置文件路径")
	flags.Int64Var(&randSeed, "seed", 0, "随机数种子 (0 表示使用当前时间)")
	flags.IntVar(&opts.Users, "users", 5, "用户数量")
	flags.IntVar(&opts.Categories, "categories", 4, "分类数量")
	flags.IntVar(&opts.Locations, "locations", 4, "地点数量")
	flags.IntVar(&opts.Posts, "posts", 50, "帖子数量")
	flags.IntVar(&opts.CommentsPerPost, "comments", 3, "每个帖子的最大评论数")
	return cmd
}
