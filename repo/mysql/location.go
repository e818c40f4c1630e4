package mysql

import (
	"context"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// LocationRepository 地点的持久化操作
type LocationRepository interface {
	Exists(ctx context.Context, id uint64) (bool, error)
	CreateLocation(ctx context.Context, location *entities.Location) error
}

type locationRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

func NewLocationRepository(db *gorm.DB, logger *core.ZapLogger) LocationRepository {
	return &locationRepository{db: db, logger: logger}
}

func (r *locationRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	ok, err := exists[entities.Location](ctx, r.db, id)
	if err != nil {
		r.logger.Error("查询地点是否存在失败", zap.Error(err), zap.Uint64("locationID", id))
	}
	return ok, err
}

func (r *locationRepository) CreateLocation(ctx context.Context, location *entities.Location) error {
	if err := r.db.WithContext(ctx).Create(location).Error; err != nil {
		r.logger.Error("创建地点失败", zap.Error(err), zap.String("name", location.Name))
		return err
	}
	return nil
}
