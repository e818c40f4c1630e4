package mysql

import (
	"context"
	"errors"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// UserRepository 用户资料的持久化操作
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	// UsernameTaken 判断用户名是否已被 excludeID 以外的用户占用
	UsernameTaken(ctx context.Context, username, excludeID string) (bool, error)
	CreateUser(ctx context.Context, user *entities.User) error
	// UpdateProfile 更新用户名、姓名与邮箱
	UpdateProfile(ctx context.Context, user *entities.User) error
}

type userRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

func NewUserRepository(db *gorm.DB, logger *core.ZapLogger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *userRepository) first(ctx context.Context, cond string, arg string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("查询用户失败", zap.Error(err), zap.String("cond", cond), zap.String("arg", arg))
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UsernameTaken(ctx context.Context, username, excludeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error
	if err != nil {
		r.logger.Error("检查用户名占用失败", zap.Error(err), zap.String("username", username))
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		r.logger.Error("创建用户失败", zap.Error(err), zap.String("username", user.Username))
		return err
	}
	return nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *entities.User) error {
	result := r.db.WithContext(ctx).
		Model(user).
		Select("username", "first_name", "last_name", "email").
		Updates(user)
	if result.Error != nil {
		r.logger.Error("更新用户资料失败", zap.Error(result.Error), zap.String("userID", user.ID))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}
