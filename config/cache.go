package config

import "time"

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Addr         string        `mapstructure:"addr" json:"addr" yaml:"addr"`
	Password     string        `mapstructure:"password" json:"-" yaml:"password"`
	DB           int           `mapstructure:"db" json:"db" yaml:"db"`
	PoolSize     int           `mapstructure:"poolSize" json:"poolSize" yaml:"poolSize"`
	DialTimeout  time.Duration `mapstructure:"dialTimeout" json:"dialTimeout" yaml:"dialTimeout"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout" json:"readTimeout" yaml:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout" json:"writeTimeout" yaml:"writeTimeout"`
}

// ViewSyncConfig 包含浏览量同步任务相关的配置
type ViewSyncConfig struct {
	// BatchSize 是将 Redis 中的浏览量同步到数据库时，每个 UPDATE 批次处理的帖子数量。
	// 例如 200,000 条浏览量、BatchSize 为 500 时，会被拆成 400 个批次，
	// 每个批次通过一条 CASE WHEN 语句完成更新。
	BatchSize int `mapstructure:"batchSize" json:"batchSize" yaml:"batchSize"`

	// ConcurrencyLevel 是同时执行批次更新的 goroutine 数量，决定了同时向数据库发起更新的连接数。
	ConcurrencyLevel int `mapstructure:"concurrencyLevel" json:"concurrencyLevel" yaml:"concurrencyLevel"`

	// ScanBatchSize 是 SCAN 浏览量 Key 时传给 COUNT 的建议值。
	// Redis 不保证精确返回此数量，只作为提示。
	ScanBatchSize int64 `mapstructure:"scanBatchSize" json:"scanBatchSize" yaml:"scanBatchSize"`

	// Schedule 同步任务的 cron 表达式，为空时使用 constant.SyncViewCountInterval
	Schedule string `mapstructure:"schedule" json:"schedule" yaml:"schedule"`
}
