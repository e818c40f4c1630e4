package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
)

// countViewScript 原子地完成 "去重标记 + 计数"。
// KEYS[1]: 去重标记 Key, KEYS[2]: 浏览量计数 Key
// ARGV[1]: 去重窗口 (秒)
// 返回 1 表示本次浏览被计数，0 表示窗口内重复浏览。
var countViewScript = redis.NewScript(`
	if redis.call("SET", KEYS[1], "1", "NX", "EX", ARGV[1]) then
		redis.call("INCR", KEYS[2])
		return 1
	end
	return 0
`)

// PostViewRepository 定义了帖子浏览量相关的 Redis 操作接口。
type PostViewRepository interface {
	// IncrementViewCount 增加指定帖子的浏览量。
	// - 同一用户在 constant.ViewDedupTTL 内对同一帖子的多次浏览只计一次。
	// - 返回 counted 表示本次是否实际计数。
	IncrementViewCount(ctx context.Context, postID uint64, userID string) (counted bool, err error)

	// GetAllViewCounts 使用 SCAN + MGET 分批获取 Redis 中所有帖子的浏览量，作为同步到数据库的数据源。
	GetAllViewCounts(ctx context.Context) (map[uint64]int64, error)
}

type postViewRepository struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
	viewSyncCfg config.ViewSyncConfig
	dedupTTL    time.Duration
}

// NewPostViewRepository 创建 PostViewRepository 实例。
func NewPostViewRepository(redisClient *redis.Client, logger *core.ZapLogger, viewSyncCfg config.ViewSyncConfig) PostViewRepository {
	return &postViewRepository{
		redisClient: redisClient,
		logger:      logger,
		viewSyncCfg: viewSyncCfg,
		dedupTTL:    constant.ViewDedupTTL,
	}
}

func (r *postViewRepository) IncrementViewCount(ctx context.Context, postID uint64, userID string) (bool, error) {
	viewedKey := fmt.Sprintf("%s%d:%s", constant.PostViewedPrefix, postID, userID)
	viewCountKey := fmt.Sprintf("%s%d", constant.PostViewCountPrefix, postID)

	res, err := countViewScript.Run(ctx, r.redisClient, []string{viewedKey, viewCountKey}, int64(r.dedupTTL/time.Second)).Int()
	if err != nil {
		r.logger.Error("Lua 脚本执行失败：增加帖子浏览量", zap.Error(err), zap.Uint64("postID", postID), zap.String("userID", userID))
		return false, fmt.Errorf("原子性增加浏览量失败 (PostID: %d): %w", postID, err)
	}

	if res == 0 {
		r.logger.Debug("去重窗口内的重复浏览，跳过计数", zap.Uint64("postID", postID), zap.String("userID", userID))
		return false, nil
	}
	r.logger.Debug("成功增加帖子浏览量", zap.Uint64("postID", postID))
	return true, nil
}

// GetAllViewCounts 使用 SCAN 命令安全地迭代并获取所有帖子的浏览量。
func (r *postViewRepository) GetAllViewCounts(ctx context.Context) (map[uint64]int64, error) {
	viewCounts := make(map[uint64]int64)
	var cursor uint64
	matchPattern := constant.PostViewCountPrefix + "*"
	scanCount := r.viewSyncCfg.ScanBatchSize
	if scanCount <= 0 {
		scanCount = 1000
		r.logger.Warn("GetAllViewCounts: 配置中的 ScanBatchSize 无效，使用默认值",
			zap.Int64("defaultScanBatchSize", scanCount),
			zap.Int64("configuredScanBatchSize", r.viewSyncCfg.ScanBatchSize),
		)
	}

	startTime := time.Now()
	for {
		keys, nextCursor, err := r.redisClient.Scan(ctx, cursor, matchPattern, scanCount).Result()
		if err != nil {
			r.logger.Error("执行 Redis SCAN 命令失败", zap.Error(err), zap.Uint64("cursor", cursor))
			return nil, fmt.Errorf("扫描 Redis Keys 失败 (模式: %s): %w", matchPattern, err)
		}

		if len(keys) > 0 {
			values, mgetErr := r.redisClient.MGet(ctx, keys...).Result()
			if mgetErr != nil {
				r.logger.Error("执行 Redis MGET 批量获取浏览量失败", zap.Error(mgetErr), zap.Int("keys", len(keys)))
				return nil, fmt.Errorf("批量获取浏览量值失败 (%d keys): %w", len(keys), mgetErr)
			}

			for i, key := range keys {
				postID, parseErr := strconv.ParseUint(strings.TrimPrefix(key, constant.PostViewCountPrefix), 10, 64)
				if parseErr != nil {
					r.logger.Error("从 Redis Key 解析 PostID 失败，已跳过该 Key", zap.Error(parseErr), zap.String("key", key))
					continue
				}
				// Key 可能在 SCAN 与 MGET 之间过期或被删除
				valueStr, ok := values[i].(string)
				if !ok {
					continue
				}
				count, parseCountErr := strconv.ParseInt(valueStr, 10, 64)
				if parseCountErr != nil {
					r.logger.Error("解析 Redis 中的浏览量值失败，已跳过", zap.Error(parseCountErr), zap.String("key", key), zap.String("value", valueStr))
					continue
				}
				viewCounts[postID] = count
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	r.logger.Info("完成扫描 Redis 帖子浏览量",
		zap.Int("posts", len(viewCounts)),
		zap.Duration("duration", time.Since(startTime)),
	)
	return viewCounts, nil
}
