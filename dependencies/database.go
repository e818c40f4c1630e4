package dependencies

import (
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	appConfig "github.com/Xushengqwer/blog_service/config"
	mysqlrepo "github.com/Xushengqwer/blog_service/repo/mysql"
)

const (
	dbMaxRetries    = 5
	dbRetryInterval = 2 * time.Second
)

// openDialector 根据驱动名称构造 GORM Dialector，空驱动名按 mysql 处理
func openDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "", "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", driver)
	}
}

// InitDatabase 初始化数据库连接，配置读写分离 (如果配置了从库)、连接池，并执行自动迁移。
// 所有时间统一使用 UTC。
func InitDatabase(cfg *appConfig.BlogServiceConfig, logger *core.ZapLogger) (*gorm.DB, error) {
	dbCfg := cfg.DatabaseConfig

	// --- 主库连接 ---
	if dbCfg.Write.DSN == "" {
		return nil, fmt.Errorf("主数据库 DSN (databaseConfig.write.dsn) 未配置")
	}
	writeDialector, err := openDialector(dbCfg.Driver, dbCfg.Write.DSN)
	if err != nil {
		return nil, err
	}
	gormConfig := &gorm.Config{
		Logger:  core.NewGormLogger(logger, cfg.GormLogConfig),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	var db *gorm.DB
	logger.Info("开始连接主数据库...", zap.String("driver", dbCfg.Driver))
	for i := 0; i < dbMaxRetries; i++ {
		db, err = gorm.Open(writeDialector, gormConfig)
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				if err = sqlDB.Ping(); err == nil {
					break
				}
			} else {
				err = dbErr
			}
		}
		logger.Warn("无法连接到主数据库，尝试重试", zap.Int("retry", i+1), zap.Int("maxRetries", dbMaxRetries), zap.Error(err))
		if i < dbMaxRetries-1 {
			time.Sleep(dbRetryInterval)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("无法连接到主数据库: %w", err)
	}
	logger.Info("成功连接到主数据库")

	// --- 读写分离 (dbresolver) ---
	replicas := make([]gorm.Dialector, 0, len(dbCfg.Read))
	for i, replicaCfg := range dbCfg.Read {
		if replicaCfg.DSN == "" {
			logger.Warn("发现空的从库 DSN 配置，已跳过", zap.Int("index", i))
			continue
		}
		replica, dErr := openDialector(dbCfg.Driver, replicaCfg.DSN)
		if dErr != nil {
			return nil, dErr
		}
		replicas = append(replicas, replica)
	}
	if len(replicas) > 0 {
		resolver := dbresolver.Register(dbresolver.Config{
			Sources:  []gorm.Dialector{writeDialector},
			Replicas: replicas,
			Policy:   dbresolver.StrictRoundRobinPolicy(),
		})
		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("配置 GORM 读写分离失败: %w", err)
		}
		logger.Info("成功配置 GORM 读写分离插件", zap.Int("从库数量", len(replicas)))
	} else {
		logger.Info("未配置有效的从数据库，不启用读写分离")
	}

	// --- 连接池: 共享设置可被主库的独立设置覆盖 ---
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("无法获取数据库对象: %w", err)
	}
	maxIdle, maxOpen, maxLife := poolSettings(dbCfg)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Duration(maxLife) * time.Second)
	logger.Info("配置数据库连接池",
		zap.Int("最大空闲连接数", maxIdle),
		zap.Int("最大打开连接数", maxOpen),
		zap.Int("连接最大生命周期(秒)", maxLife),
	)

	// --- 自动迁移 (发送到主库) ---
	if err := mysqlrepo.Migrate(db); err != nil {
		return nil, fmt.Errorf("数据库自动迁移失败: %w", err)
	}
	logger.Info("数据库自动迁移完成")
	return db, nil
}

func poolSettings(dbCfg appConfig.DatabaseConfig) (maxIdle, maxOpen, maxLife int) {
	maxIdle, maxOpen, maxLife = dbCfg.SharedMaxIdleConns, dbCfg.SharedMaxOpenConns, dbCfg.SharedConnMaxLifetime
	if dbCfg.Write.MaxIdleConns != nil {
		maxIdle = *dbCfg.Write.MaxIdleConns
	}
	if dbCfg.Write.MaxOpenConns != nil {
		maxOpen = *dbCfg.Write.MaxOpenConns
	}
	if dbCfg.Write.ConnMaxLifetime != nil {
		maxLife = *dbCfg.Write.ConnMaxLifetime
	}
	return maxIdle, maxOpen, maxLife
}
