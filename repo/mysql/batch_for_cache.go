package mysql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/models/entities"
)

// PostBatchOperationsRepository 面向后台任务的批量数据库操作
type PostBatchOperationsRepository interface {
	// BatchUpdatePostViewCounts 将 Redis 中的浏览量分批、并发地写回 posts.view_count。
	// 部分批次失败不会中断其他批次，所有失败会被聚合后返回。
	BatchUpdatePostViewCounts(ctx context.Context, viewCounts map[uint64]int64) error
}

type postBatchOperationsRepository struct {
	db          *gorm.DB
	logger      *core.ZapLogger
	viewSyncCfg config.ViewSyncConfig
}

func NewPostBatchOperationsRepository(db *gorm.DB, logger *core.ZapLogger, viewSyncCfg config.ViewSyncConfig) PostBatchOperationsRepository {
	return &postBatchOperationsRepository{db: db, logger: logger, viewSyncCfg: viewSyncCfg}
}

type updateItem struct {
	ID        uint64
	ViewCount int64
}

func (r *postBatchOperationsRepository) BatchUpdatePostViewCounts(ctx context.Context, viewCounts map[uint64]int64) error {
	totalUpdates := len(viewCounts)
	if totalUpdates == 0 {
		r.logger.Debug("BatchUpdatePostViewCounts: 没有需要更新的帖子浏览量")
		return nil
	}

	// --- 1. 加载并验证配置 ---
	batchSize := r.viewSyncCfg.BatchSize
	if batchSize <= 0 {
		batchSize = 500
		r.logger.Warn("BatchUpdatePostViewCounts: 配置 BatchSize 无效，使用默认值", zap.Int("defaultBatchSize", batchSize))
	}
	concurrencyLevel := r.viewSyncCfg.ConcurrencyLevel
	if concurrencyLevel <= 0 {
		concurrencyLevel = 1
		r.logger.Warn("BatchUpdatePostViewCounts: 配置 ConcurrencyLevel 无效，顺序执行")
	}

	// --- 2. 切分批次 ---
	items := make([]updateItem, 0, totalUpdates)
	for id, count := range viewCounts {
		items = append(items, updateItem{ID: id, ViewCount: count})
	}
	var batches [][]updateItem
	for i := 0; i < totalUpdates; i += batchSize {
		end := min(i+batchSize, totalUpdates)
		batches = append(batches, items[i:end])
	}

	r.logger.Info("BatchUpdatePostViewCounts: 开始并发批量更新",
		zap.Int("总数", totalUpdates),
		zap.Int("批大小", batchSize),
		zap.Int("并发数", concurrencyLevel),
		zap.Int("批次数", len(batches)),
	)
	start := time.Now()

	// --- 3. 有界并发执行，每个批次的错误单独记录，不取消其他批次 ---
	var g errgroup.Group
	g.SetLimit(concurrencyLevel)
	batchErrs := make([]error, len(batches))
	for i, batch := range batches {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				batchErrs[i] = fmt.Errorf("批次 %d 未执行: %w", i, err)
				return nil
			}
			batchErrs[i] = r.processBatch(ctx, batch, i)
			return nil
		})
	}
	_ = g.Wait()

	// --- 4. 聚合结果 ---
	err := errors.Join(batchErrs...)
	if err != nil {
		r.logger.Error("并发批量更新浏览量存在失败批次", zap.Error(err), zap.Duration("总耗时", time.Since(start)))
		return fmt.Errorf("并发批量更新浏览量失败: %w", err)
	}
	r.logger.Info("并发批量更新浏览量完成", zap.Duration("总耗时", time.Since(start)), zap.Int("批次数", len(batches)))
	return nil
}

// processBatch 使用一条 CASE WHEN 语句更新单个批次
func (r *postBatchOperationsRepository) processBatch(ctx context.Context, batch []updateItem, batchNo int) error {
	var (
		ids          []uint64
		sqlCase      strings.Builder
		updateParams []interface{}
	)
	sqlCase.WriteString("CASE id ")
	for _, item := range batch {
		ids = append(ids, item.ID)
		sqlCase.WriteString("WHEN ? THEN ? ")
		updateParams = append(updateParams, item.ID, item.ViewCount)
	}
	sqlCase.WriteString("END")

	err := r.db.WithContext(ctx).Model(&entities.Post{}).
		Where("id IN ?", ids).
		UpdateColumn("view_count", gorm.Expr(sqlCase.String(), updateParams...)).Error
	if err != nil {
		r.logger.Error("processBatch: 数据库更新批次失败", zap.Int("batch", batchNo), zap.Int("batchSize", len(batch)), zap.Error(err))
		return fmt.Errorf("批次 %d (大小 %d) 更新失败: %w", batchNo, len(batch), err)
	}
	return nil
}
