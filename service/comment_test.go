package service

import (
	"context"
	"testing"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/events"
	"github.com/Xushengqwer/blog_service/myErrors"
)

func TestCommentService(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCommentService(env.posts, env.comments, env.users, env.events, env.logger)
	ctx := context.Background()

	alice := env.user("u-alice", "alice")
	bob := env.user("u-bob", "bob")
	post := env.post(alice, "Post", env.now.Add(-time.Hour), true, nil)
	other := env.post(alice, "Other", env.now.Add(-time.Hour), true, nil)

	_, err := svc.AddComment(ctx, bob.ID, post.ID+100, &dto.CommentFormRequest{Text: "hi"})
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)

	_, err = svc.AddComment(ctx, "ghost", post.ID, &dto.CommentFormRequest{Text: "hi"})
	assert.ErrorIs(t, err, commonerrors.ErrUserNotLoggedIn)

	_, err = svc.AddComment(ctx, bob.ID, post.ID, &dto.CommentFormRequest{Text: "   "})
	assert.ErrorIs(t, err, myErrors.ErrValidation)

	created, err := svc.AddComment(ctx, bob.ID, post.ID, &dto.CommentFormRequest{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", created.Text)
	assert.True(t, created.CanEdit)
	assert.Equal(t, events.CommentCreated, receive(t, env.events.comments).Type)

	// 非作者
	_, err = svc.UpdateComment(ctx, alice.ID, post.ID, created.ID, &dto.CommentFormRequest{Text: "hijack"})
	assert.ErrorIs(t, err, myErrors.ErrNotAuthor)
	assert.ErrorIs(t, svc.DeleteComment(ctx, alice.ID, post.ID, created.ID), myErrors.ErrNotAuthor)

	// 评论不属于该帖子
	_, err = svc.UpdateComment(ctx, bob.ID, other.ID, created.ID, &dto.CommentFormRequest{Text: "x"})
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)

	forEdit, err := svc.GetCommentForEdit(ctx, bob.ID, post.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", forEdit.Text)

	updated, err := svc.UpdateComment(ctx, bob.ID, post.ID, created.ID, &dto.CommentFormRequest{Text: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)
	assert.Equal(t, events.CommentUpdated, receive(t, env.events.comments).Type)

	require.NoError(t, svc.DeleteComment(ctx, bob.ID, post.ID, created.ID))
	assert.Equal(t, events.CommentDeleted, receive(t, env.events.comments).Type)

	_, err = svc.GetCommentForEdit(ctx, bob.ID, post.ID, created.ID)
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
}

func TestCommentService_NilPublisher(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCommentService(env.posts, env.comments, env.users, nil, env.logger)
	ctx := context.Background()

	alice := env.user("u-alice", "alice")
	post := env.post(alice, "Post", env.now, true, nil)

	_, err := svc.AddComment(ctx, alice.ID, post.ID, &dto.CommentFormRequest{Text: "quiet"})
	require.NoError(t, err)
}
