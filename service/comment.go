package service

import (
	"context"
	"strings"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/events"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// CommentService 评论的增删改
type CommentService interface {
	// AddComment 在帖子下添加评论，帖子必须存在。
	AddComment(ctx context.Context, viewerID string, postID uint64, req *dto.CommentFormRequest) (*vo.CommentVO, error)

	// GetCommentForEdit 获取编辑表单的初始数据。
	GetCommentForEdit(ctx context.Context, viewerID string, postID, commentID uint64) (*vo.CommentVO, error)

	// UpdateComment / DeleteComment: 评论必须属于该帖子，否则返回 commonerrors.ErrRepoNotFound；
	// 非作者返回 myErrors.ErrNotAuthor。
	UpdateComment(ctx context.Context, viewerID string, postID, commentID uint64, req *dto.CommentFormRequest) (*vo.CommentVO, error)
	DeleteComment(ctx context.Context, viewerID string, postID, commentID uint64) error
}

type commentService struct {
	postRepo    mysql.PostRepository
	commentRepo mysql.CommentRepository
	userRepo    mysql.UserRepository
	notifier    eventNotifier
	logger      *core.ZapLogger
}

func NewCommentService(
	postRepo mysql.PostRepository,
	commentRepo mysql.CommentRepository,
	userRepo mysql.UserRepository,
	publisher EventPublisher,
	logger *core.ZapLogger,
) CommentService {
	return &commentService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		notifier:    eventNotifier{publisher: publisher, logger: logger},
		logger:      logger,
	}
}

func (s *commentService) AddComment(ctx context.Context, viewerID string, postID uint64, req *dto.CommentFormRequest) (*vo.CommentVO, error) {
	if err := ensureUser(ctx, s.userRepo, viewerID); err != nil {
		return nil, err
	}
	if _, err := s.postRepo.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}
	text, err := commentText(req)
	if err != nil {
		return nil, err
	}

	comment := &entities.Comment{Text: text, PostID: postID, AuthorID: viewerID}
	comment.IsPublished = true
	if err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	s.logger.Info("评论创建成功", zap.Uint64("postID", postID), zap.Uint64("commentID", comment.ID))
	s.notifier.comment(events.CommentCreated, comment)
	return vo.MapComment(comment, viewerID), nil
}

func (s *commentService) GetCommentForEdit(ctx context.Context, viewerID string, postID, commentID uint64) (*vo.CommentVO, error) {
	comment, err := s.authoredComment(ctx, viewerID, postID, commentID)
	if err != nil {
		return nil, err
	}
	return vo.MapComment(comment, viewerID), nil
}

func (s *commentService) UpdateComment(ctx context.Context, viewerID string, postID, commentID uint64, req *dto.CommentFormRequest) (*vo.CommentVO, error) {
	comment, err := s.authoredComment(ctx, viewerID, postID, commentID)
	if err != nil {
		return nil, err
	}
	text, err := commentText(req)
	if err != nil {
		return nil, err
	}
	if err := s.commentRepo.UpdateCommentText(ctx, commentID, text); err != nil {
		return nil, err
	}
	comment.Text = text
	s.notifier.comment(events.CommentUpdated, comment)
	return vo.MapComment(comment, viewerID), nil
}

func (s *commentService) DeleteComment(ctx context.Context, viewerID string, postID, commentID uint64) error {
	comment, err := s.authoredComment(ctx, viewerID, postID, commentID)
	if err != nil {
		return err
	}
	if err := s.commentRepo.DeleteComment(ctx, commentID); err != nil {
		return err
	}
	s.logger.Info("评论已删除", zap.Uint64("postID", postID), zap.Uint64("commentID", commentID))
	s.notifier.comment(events.CommentDeleted, comment)
	return nil
}

func (s *commentService) authoredComment(ctx context.Context, viewerID string, postID, commentID uint64) (*entities.Comment, error) {
	comment, err := s.commentRepo.GetForPost(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if !comment.IsAuthoredBy(viewerID) {
		s.logger.Warn("非作者尝试修改评论", zap.Uint64("commentID", commentID), zap.String("viewerID", viewerID))
		return nil, myErrors.ErrNotAuthor
	}
	return comment, nil
}

func commentText(req *dto.CommentFormRequest) (string, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return "", myErrors.NewFieldError("text", "评论内容不能为空")
	}
	return text, nil
}
