package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/blog_service/models/entities"
)

func TestListPosts_Visibility(t *testing.T) {
	db := newTestDB(t)
	f := fixture{t: t, db: db}
	repo := NewPostRepository(db, newTestLogger(t))
	ctx := context.Background()
	now := time.Now().UTC()

	alice := f.user("u-alice", "alice")
	bob := f.user("u-bob", "bob")
	travel := f.category("travel", true)
	hidden := f.category("hidden", false)
	removed := f.category("removed", false)
	require.NoError(t, db.Delete(removed).Error)

	sameDay := now.Add(-2 * time.Hour)
	f.post(alice, "Beta", sameDay)
	f.post(bob, "Alpha", sameDay, inCategory(travel))
	f.post(alice, "Newest", now.Add(-time.Hour))
	f.post(alice, "Draft", now.Add(-time.Hour), unpublished())
	f.post(bob, "Scheduled", now.Add(time.Hour))
	f.post(bob, "In hidden category", now.Add(-time.Hour), inCategory(hidden))
	f.post(alice, "In removed category", now.Add(-3*time.Hour), inCategory(removed))

	q := PostQuery{Now: now, ApplyVisibility: true}

	total, err := repo.CountPosts(ctx, q)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)

	posts, err := repo.ListPosts(ctx, q, 0, 10)
	require.NoError(t, err)
	want := []string{"Newest", "Alpha", "Beta", "In removed category"}
	if diff := cmp.Diff(want, titles(posts)); diff != "" {
		t.Errorf("可见帖子顺序不符 (-want +got):\n%s", diff)
	}

	page, err := repo.ListPosts(ctx, q, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta", "In removed category"}, titles(page))
}

func TestListPosts_Narrowing(t *testing.T) {
	db := newTestDB(t)
	f := fixture{t: t, db: db}
	repo := NewPostRepository(db, newTestLogger(t))
	ctx := context.Background()
	now := time.Now().UTC()

	alice := f.user("u-alice", "alice")
	bob := f.user("u-bob", "bob")
	travel := f.category("travel", true)

	f.post(alice, "Alice trip", now.Add(-time.Hour), inCategory(travel))
	f.post(bob, "Bob trip", now.Add(-2*time.Hour), inCategory(travel))
	f.post(alice, "Alice draft", now.Add(-time.Hour), unpublished())
	f.post(alice, "Alice future", now.Add(time.Hour))

	byCategory, err := repo.ListPosts(ctx, PostQuery{Now: now, ApplyVisibility: true, CategorySlug: "travel"}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice trip", "Bob trip"}, titles(byCategory))

	// 作者查看自己的主页时不应用可见性条件
	own, err := repo.ListPosts(ctx, PostQuery{Now: now, AuthorID: alice.ID}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice future", "Alice draft", "Alice trip"}, titles(own))

	visitor, err := repo.ListPosts(ctx, PostQuery{Now: now, ApplyVisibility: true, AuthorID: alice.ID}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice trip"}, titles(visitor))
}

func TestListPosts_RelationsAndCommentCount(t *testing.T) {
	db := newTestDB(t)
	f := fixture{t: t, db: db}
	repo := NewPostRepository(db, newTestLogger(t))
	ctx := context.Background()
	now := time.Now().UTC()

	alice := f.user("u-alice", "alice")
	travel := f.category("travel", true)
	shown := f.location("Moscow", true)
	secret := f.location("Secret base", false)

	withComments := f.post(alice, "With comments", now.Add(-time.Hour), inCategory(travel), atLocation(shown))
	f.post(alice, "Secret place", now.Add(-2*time.Hour), atLocation(secret))
	f.comment(withComments, alice, "first")
	f.comment(withComments, alice, "second")
	deleted := f.comment(withComments, alice, "deleted")
	require.NoError(t, db.Delete(deleted).Error)

	posts, err := repo.ListPosts(ctx, PostQuery{Now: now, ApplyVisibility: true}, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	first := posts[0]
	assert.EqualValues(t, 2, first.CommentCount)
	require.NotNil(t, first.Author)
	assert.Equal(t, "alice", first.Author.Username)
	require.NotNil(t, first.Category)
	assert.Equal(t, "travel", first.Category.Slug)
	require.NotNil(t, first.Location)
	assert.Equal(t, "Moscow", first.Location.Name)

	second := posts[1]
	assert.EqualValues(t, 0, second.CommentCount)
	assert.Nil(t, second.Location, "未发布的地点不加载")
}

func TestGetPostByID(t *testing.T) {
	db := newTestDB(t)
	f := fixture{t: t, db: db}
	repo := NewPostRepository(db, newTestLogger(t))
	ctx := context.Background()

	alice := f.user("u-alice", "alice")
	post := f.post(alice, "Draft", time.Now().UTC(), unpublished())
	f.comment(post, alice, "note")

	got, err := repo.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Draft", got.Title)
	assert.False(t, got.IsPublished)
	assert.EqualValues(t, 1, got.CommentCount)

	_, err = repo.GetPostByID(ctx, post.ID+100)
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
}

func TestUpdatePost_KeepsPublishFlagAndAuthor(t *testing.T) {
	db := newTestDB(t)
	f := fixture{t: t, db: db}
	repo := NewPostRepository(db, newTestLogger(t))
	ctx := context.Background()

	alice := f.user("u-alice", "alice")
	travel := f.category("travel", true)
	post := f.post(alice, "Old", time.Now().UTC(), inCategory(travel), unpublished())

	update := &entities.Post{Title: "New", Text: "body", PubDate: post.PubDate}
	update.ID = post.ID
	update.IsPublished = true
	update.AuthorID = "someone-else"
	require.NoError(t, repo.UpdatePost(ctx, update))

	got, err := repo.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Nil(t, got.CategoryID, "分类被清空")
	assert.False(t, got.IsPublished, "编辑不改变发布标记")
	assert.Equal(t, alice.ID, got.AuthorID)

	missing := &entities.Post{Title: "x"}
	missing.ID = post.ID + 100
	assert.ErrorIs(t, repo.UpdatePost(ctx, missing), commonerrors.ErrRepoNotFound)
}

func TestDeletePost_RemovesComments(t *testing.T) {
	db := newTestDB(t)
	f := fixture{t: t, db: db}
	repo := NewPostRepository(db, newTestLogger(t))
	comments := NewCommentRepository(db, newTestLogger(t))
	ctx := context.Background()

	alice := f.user("u-alice", "alice")
	post := f.post(alice, "Doomed", time.Now().UTC())
	f.comment(post, alice, "a")
	f.comment(post, alice, "b")

	require.NoError(t, repo.DeletePost(ctx, post.ID))

	_, err := repo.GetPostByID(ctx, post.ID)
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)

	left, err := comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	assert.ErrorIs(t, repo.DeletePost(ctx, post.ID), commonerrors.ErrRepoNotFound)
}
