package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/events"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/repo/redis"
)

// PostService 定义了帖子详情与帖子增删改的业务逻辑。
type PostService interface {
	// GetPostDetail 获取帖子详情及其评论。
	// - 帖子不存在，或对查看者不可见 (且查看者不是作者) 时返回 commonerrors.ErrRepoNotFound。
	// - 已登录的查看者会异步累加一次浏览量。
	GetPostDetail(ctx context.Context, viewerID string, postID uint64) (*vo.PostDetailVO, error)

	// CreatePost 以查看者为作者创建帖子，新帖子默认已发布。
	CreatePost(ctx context.Context, viewerID string, req *dto.PostFormRequest, image *multipart.FileHeader) (*vo.PostResponse, error)

	// GetPostForEdit 获取编辑表单的初始数据，非作者返回 myErrors.ErrNotAuthor。
	GetPostForEdit(ctx context.Context, viewerID string, postID uint64) (*vo.PostResponse, error)

	// UpdatePost 作者编辑帖子，非作者返回 myErrors.ErrNotAuthor，发布标记保持不变。
	UpdatePost(ctx context.Context, viewerID string, postID uint64, req *dto.PostFormRequest, image *multipart.FileHeader) (*vo.PostResponse, error)

	// DeletePost 作者删除帖子及其评论，返回被删除帖子的快照。
	DeletePost(ctx context.Context, viewerID string, postID uint64) (*vo.PostResponse, error)
}

type postService struct {
	postRepo     mysql.PostRepository
	commentRepo  mysql.CommentRepository
	categoryRepo mysql.CategoryRepository
	locationRepo mysql.LocationRepository
	userRepo     mysql.UserRepository
	postViewRepo redis.PostViewRepository // 可为 nil，表示不统计浏览量
	images       ImageStore               // 可为 nil，表示不支持上传图片
	notifier     eventNotifier
	maxImageSize int64
	logger       *core.ZapLogger
	now          func() time.Time
}

// PostServiceDeps 帖子服务的依赖集合
type PostServiceDeps struct {
	PostRepo       mysql.PostRepository
	CommentRepo    mysql.CommentRepository
	CategoryRepo   mysql.CategoryRepository
	LocationRepo   mysql.LocationRepository
	UserRepo       mysql.UserRepository
	PostViewRepo   redis.PostViewRepository
	Images         ImageStore
	Events         EventPublisher
	MaxImageSizeMB int64
}

func NewPostService(deps PostServiceDeps, logger *core.ZapLogger) PostService {
	maxMB := deps.MaxImageSizeMB
	if maxMB <= 0 {
		maxMB = constant.DefaultMaxImageSizeMB
	}
	return &postService{
		postRepo:     deps.PostRepo,
		commentRepo:  deps.CommentRepo,
		categoryRepo: deps.CategoryRepo,
		locationRepo: deps.LocationRepo,
		userRepo:     deps.UserRepo,
		postViewRepo: deps.PostViewRepo,
		images:       deps.Images,
		notifier:     eventNotifier{publisher: deps.Events, logger: logger},
		maxImageSize: maxMB << 20,
		logger:       logger,
		now:          utcNow,
	}
}

func (s *postService) GetPostDetail(ctx context.Context, viewerID string, postID uint64) (*vo.PostDetailVO, error) {
	// 1. 获取帖子并判断可见性，对查看者不可见的帖子与不存在的帖子表现一致
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	isAuthor := post.IsAuthoredBy(viewerID)
	if !isAuthor && !post.VisibleAt(s.now()) {
		s.logger.Debug("帖子对查看者不可见", zap.Uint64("postID", postID), zap.String("viewerID", viewerID))
		return nil, commonerrors.ErrRepoNotFound
	}

	// 2. 评论按时间升序
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	// 3. 异步累加浏览量
	if viewerID != "" && s.postViewRepo != nil {
		go func() {
			if _, viewErr := s.postViewRepo.IncrementViewCount(context.Background(), postID, viewerID); viewErr != nil {
				s.logger.Error("增加帖子浏览量失败", zap.Error(viewErr), zap.Uint64("postID", postID))
			}
		}()
	}

	return &vo.PostDetailVO{
		Post:     vo.MapPostToResponse(post),
		Comments: vo.MapComments(comments, viewerID),
		CanEdit:  isAuthor,
	}, nil
}

func (s *postService) CreatePost(ctx context.Context, viewerID string, req *dto.PostFormRequest, image *multipart.FileHeader) (*vo.PostResponse, error) {
	if err := s.ensureUser(ctx, viewerID); err != nil {
		return nil, err
	}

	post := &entities.Post{AuthorID: viewerID}
	post.IsPublished = true
	if err := s.applyForm(ctx, post, req, image); err != nil {
		return nil, err
	}

	var uploaded *uploadedImage
	if image != nil {
		var err error
		if uploaded, err = s.uploadImage(ctx, image, viewerID); err != nil {
			return nil, err
		}
		post.ImageURL, post.ImageKey = uploaded.URL, uploaded.Key
	}

	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		if uploaded != nil {
			s.logger.Warn("创建帖子失败，清理已上传的图片", zap.String("objectKey", uploaded.Key))
			s.removeImage(uploaded.Key)
		}
		return nil, err
	}
	s.logger.Info("帖子创建成功", zap.Uint64("postID", post.ID), zap.String("authorID", viewerID))
	s.notifier.post(events.PostCreated, post)

	return s.reload(ctx, post.ID)
}

func (s *postService) GetPostForEdit(ctx context.Context, viewerID string, postID uint64) (*vo.PostResponse, error) {
	post, err := s.authoredPost(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}
	return vo.MapPostToResponse(post), nil
}

func (s *postService) UpdatePost(ctx context.Context, viewerID string, postID uint64, req *dto.PostFormRequest, image *multipart.FileHeader) (*vo.PostResponse, error) {
	post, err := s.authoredPost(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}
	if err := s.applyForm(ctx, post, req, image); err != nil {
		return nil, err
	}

	oldImageKey := post.ImageKey
	var uploaded *uploadedImage
	if image != nil {
		if uploaded, err = s.uploadImage(ctx, image, viewerID); err != nil {
			return nil, err
		}
		post.ImageURL, post.ImageKey = uploaded.URL, uploaded.Key
	}

	if err := s.postRepo.UpdatePost(ctx, post); err != nil {
		if uploaded != nil {
			s.removeImage(uploaded.Key)
		}
		return nil, err
	}
	if uploaded != nil {
		s.removeImage(oldImageKey)
	}
	s.logger.Info("帖子更新成功", zap.Uint64("postID", postID))
	s.notifier.post(events.PostUpdated, post)

	return s.reload(ctx, postID)
}

func (s *postService) DeletePost(ctx context.Context, viewerID string, postID uint64) (*vo.PostResponse, error) {
	post, err := s.authoredPost(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.DeletePost(ctx, postID); err != nil {
		return nil, err
	}
	s.removeImage(post.ImageKey)
	s.logger.Info("帖子及其评论已删除", zap.Uint64("postID", postID))
	s.notifier.post(events.PostDeleted, post)

	return vo.MapPostToResponse(post), nil
}

// authoredPost 获取帖子并校验查看者是作者
func (s *postService) authoredPost(ctx context.Context, viewerID string, postID uint64) (*entities.Post, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.IsAuthoredBy(viewerID) {
		s.logger.Warn("非作者尝试修改帖子", zap.Uint64("postID", postID), zap.String("viewerID", viewerID))
		return nil, myErrors.ErrNotAuthor
	}
	return post, nil
}

// ensureUser 查看者必须是已知用户
func (s *postService) ensureUser(ctx context.Context, viewerID string) error {
	return ensureUser(ctx, s.userRepo, viewerID)
}

func ensureUser(ctx context.Context, userRepo mysql.UserRepository, viewerID string) error {
	if viewerID == "" {
		return commonerrors.ErrUserNotLoggedIn
	}
	if _, err := userRepo.GetByID(ctx, viewerID); err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return commonerrors.ErrUserNotLoggedIn
		}
		return err
	}
	return nil
}

// applyForm 校验表单并写入 post，有任何字段错误时返回 myErrors.FieldErrors 且不修改 post
func (s *postService) applyForm(ctx context.Context, post *entities.Post, req *dto.PostFormRequest, image *multipart.FileHeader) error {
	errs := myErrors.FieldErrors{}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		errs["title"] = "标题不能为空"
	}
	if strings.TrimSpace(req.Text) == "" {
		errs["text"] = "正文不能为空"
	}
	pubDate, ok := dto.ParsePubDate(req.PubDate)
	if !ok {
		errs["pub_date"] = "发布时间格式不正确"
	}

	categoryID := dto.OptionalID(req.CategoryID)
	if categoryID != nil {
		found, err := s.categoryRepo.Exists(ctx, *categoryID)
		if err != nil {
			return err
		}
		if !found {
			errs["category_id"] = "分类不存在"
		}
	}
	locationID := dto.OptionalID(req.LocationID)
	if locationID != nil {
		found, err := s.locationRepo.Exists(ctx, *locationID)
		if err != nil {
			return err
		}
		if !found {
			errs["location_id"] = "地点不存在"
		}
	}
	s.checkImage(image, errs)

	if len(errs) > 0 {
		return errs
	}

	post.Title = title
	post.Text = req.Text
	post.PubDate = pubDate
	post.CategoryID = categoryID
	post.LocationID = locationID
	return nil
}

func (s *postService) reload(ctx context.Context, postID uint64) (*vo.PostResponse, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return vo.MapPostToResponse(post), nil
}
