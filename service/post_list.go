package service

import (
	"context"
	"errors"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// PostListService 帖子列表相关的业务逻辑: 首页、分类页、个人主页
type PostListService interface {
	// ListIndexPosts 首页: 所有可见帖子
	ListIndexPosts(ctx context.Context, page string) (*vo.PostPageVO, error)

	// ListCategoryPosts 分类页: 分类不存在或未发布时返回 commonerrors.ErrRepoNotFound
	ListCategoryPosts(ctx context.Context, slug, page string) (*vo.CategoryPageVO, error)

	// ListProfilePosts 个人主页: 用户不存在时返回 commonerrors.ErrRepoNotFound。
	// 查看者是主页主人时列出其全部帖子 (含未发布与定时发布)，否则只列出可见帖子。
	ListProfilePosts(ctx context.Context, viewerID, username, page string) (*vo.ProfilePageVO, error)
}

type postListService struct {
	postRepo     mysql.PostRepository
	categoryRepo mysql.CategoryRepository
	userRepo     mysql.UserRepository
	perPage      int
	logger       *core.ZapLogger
	now          func() time.Time
}

func NewPostListService(
	postRepo mysql.PostRepository,
	categoryRepo mysql.CategoryRepository,
	userRepo mysql.UserRepository,
	perPage int,
	logger *core.ZapLogger,
) PostListService {
	if perPage <= 0 {
		perPage = constant.DefaultPostsPerPage
	}
	return &postListService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		perPage:      perPage,
		logger:       logger,
		now:          utcNow,
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func (s *postListService) ListIndexPosts(ctx context.Context, page string) (*vo.PostPageVO, error) {
	return s.listPage(ctx, mysql.PostQuery{Now: s.now(), ApplyVisibility: true}, page)
}

func (s *postListService) ListCategoryPosts(ctx context.Context, slug, page string) (*vo.CategoryPageVO, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !category.Published() {
		s.logger.Debug("分类未发布", zap.String("slug", slug))
		return nil, commonerrors.ErrRepoNotFound
	}

	postPage, err := s.listPage(ctx, mysql.PostQuery{Now: s.now(), ApplyVisibility: true, CategorySlug: slug}, page)
	if err != nil {
		return nil, err
	}
	return &vo.CategoryPageVO{Category: vo.MapCategory(category), PostPageVO: *postPage}, nil
}

func (s *postListService) ListProfilePosts(ctx context.Context, viewerID, username, page string) (*vo.ProfilePageVO, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			s.logger.Debug("个人主页用户不存在", zap.String("username", username))
		}
		return nil, err
	}

	isOwner := viewerID != "" && viewerID == user.ID
	q := mysql.PostQuery{Now: s.now(), ApplyVisibility: !isOwner, AuthorID: user.ID}
	postPage, err := s.listPage(ctx, q, page)
	if err != nil {
		return nil, err
	}
	return &vo.ProfilePageVO{
		Profile:    vo.MapProfile(user, isOwner),
		IsOwner:    isOwner,
		PostPageVO: *postPage,
	}, nil
}

// listPage 先统计总数并校正页码，再查询该页数据
func (s *postListService) listPage(ctx context.Context, q mysql.PostQuery, rawPage string) (*vo.PostPageVO, error) {
	total, err := s.postRepo.CountPosts(ctx, q)
	if err != nil {
		return nil, err
	}
	page := Paginate(total, rawPage, s.perPage)

	posts, err := s.postRepo.ListPosts(ctx, q, page.Offset(), page.PerPage)
	if err != nil {
		return nil, err
	}
	return &vo.PostPageVO{
		Posts: vo.MapPostsToPostResponsesVO(posts),
		Page:  page.ToVO(),
	}, nil
}
