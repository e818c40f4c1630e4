package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// ProfileService 个人资料的读取与编辑
type ProfileService interface {
	GetOwnProfile(ctx context.Context, viewerID string) (*vo.ProfileVO, error)
	// UpdateProfile 用户名必须唯一，冲突时返回 username 字段错误
	UpdateProfile(ctx context.Context, viewerID string, req *dto.ProfileFormRequest) (*vo.ProfileVO, error)
}

type profileService struct {
	userRepo mysql.UserRepository
	logger   *core.ZapLogger
}

func NewProfileService(userRepo mysql.UserRepository, logger *core.ZapLogger) ProfileService {
	return &profileService{userRepo: userRepo, logger: logger}
}

func (s *profileService) GetOwnProfile(ctx context.Context, viewerID string) (*vo.ProfileVO, error) {
	user, err := s.viewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return vo.MapProfile(user, true), nil
}

// viewer 获取当前用户，未登录或用户不存在时返回 commonerrors.ErrUserNotLoggedIn
func (s *profileService) viewer(ctx context.Context, viewerID string) (*entities.User, error) {
	if viewerID == "" {
		return nil, commonerrors.ErrUserNotLoggedIn
	}
	user, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrUserNotLoggedIn
		}
		return nil, err
	}
	return user, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, viewerID string, req *dto.ProfileFormRequest) (*vo.ProfileVO, error) {
	user, err := s.viewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, myErrors.NewFieldError("username", "用户名不能为空")
	}
	taken, err := s.userRepo.UsernameTaken(ctx, username, viewerID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, myErrors.NewFieldError("username", "该用户名已被占用")
	}

	user.Username = username
	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.Email = strings.TrimSpace(req.Email)
	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("用户资料已更新", zap.String("userID", viewerID))
	return vo.MapProfile(user, true), nil
}
