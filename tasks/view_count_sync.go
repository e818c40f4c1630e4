package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/repo/redis"
)

// ViewCountSyncTask 负责定时将 Redis 中的帖子浏览量同步到数据库。
type ViewCountSyncTask struct {
	postViewRepo  redis.PostViewRepository
	postBatchRepo mysql.PostBatchOperationsRepository
	cron          *cron.Cron
	schedule      string
	logger        *core.ZapLogger
}

// NewViewCountSyncTask 创建浏览量同步任务，调度表达式为空时使用 constant.SyncViewCountInterval。
// 需调用 Start 才会开始调度。
func NewViewCountSyncTask(
	postViewRepo redis.PostViewRepository,
	postBatchRepo mysql.PostBatchOperationsRepository,
	cfg config.ViewSyncConfig,
	logger *core.ZapLogger,
) *ViewCountSyncTask {
	schedule := cfg.Schedule
	if schedule == "" {
		schedule = constant.SyncViewCountInterval
	}
	return &ViewCountSyncTask{
		postViewRepo:  postViewRepo,
		postBatchRepo: postBatchRepo,
		cron:          cron.New(),
		schedule:      schedule,
		logger:        logger,
	}
}

// Start 注册并启动 cron 作业，调度表达式非法时返回错误。
func (t *ViewCountSyncTask) Start() error {
	entryID, err := t.cron.AddFunc(t.schedule, func() {
		startTime := time.Now()
		// 单次执行的超时
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		if err := t.SyncOnce(ctx); err != nil {
			t.logger.Error("帖子浏览量同步任务执行失败", zap.Error(err))
			return
		}
		t.logger.Info("帖子浏览量同步任务执行完毕", zap.Duration("duration", time.Since(startTime)))
	})
	if err != nil {
		return fmt.Errorf("添加帖子浏览量同步 cron 作业失败 (schedule: %s): %w", t.schedule, err)
	}

	t.cron.Start()
	t.logger.Info("帖子浏览量同步定时任务已启动",
		zap.String("schedule", t.schedule),
		zap.Int("cronEntryID", int(entryID)),
	)
	return nil
}

// SyncOnce 执行一次同步:
// 1. 从 Redis 获取全量帖子浏览量。
// 2. 分批写回数据库。
func (t *ViewCountSyncTask) SyncOnce(ctx context.Context) error {
	viewCounts, err := t.postViewRepo.GetAllViewCounts(ctx)
	if err != nil {
		return fmt.Errorf("从 Redis 获取全量浏览量失败: %w", err)
	}
	if len(viewCounts) == 0 {
		t.logger.Debug("Redis 中没有浏览量数据，无需同步")
		return nil
	}

	if err := t.postBatchRepo.BatchUpdatePostViewCounts(ctx, viewCounts); err != nil {
		return fmt.Errorf("批量更新浏览量失败 (%d 个帖子): %w", len(viewCounts), err)
	}
	t.logger.Info("浏览量已写回数据库", zap.Int("posts", len(viewCounts)))
	return nil
}

// Stop 停止调度，返回的 context 在正在执行的作业结束后关闭。
func (t *ViewCountSyncTask) Stop() context.Context {
	t.logger.Info("正在停止帖子浏览量同步定时任务...")
	return t.cron.Stop()
}
