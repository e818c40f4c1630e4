package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/blog_service/models/entities"
)

func TestSetPublished(t *testing.T) {
	db := newTestDB(t)
	f := fixture{t: t, db: db}
	repo := NewPublishRepository(db, newTestLogger(t))
	ctx := context.Background()

	alice := f.user("u-alice", "alice")
	p1 := f.post(alice, "one", time.Now().UTC())
	p2 := f.post(alice, "two", time.Now().UTC())
	travel := f.category("travel", true)

	affected, err := repo.SetPublished(ctx, PublishTargetPost, []uint64{p1.ID, p2.ID, 999}, false)
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)

	var post entities.Post
	require.NoError(t, db.First(&post, p1.ID).Error)
	assert.False(t, post.IsPublished)

	_, err = repo.SetPublished(ctx, PublishTargetCategory, []uint64{travel.ID}, false)
	require.NoError(t, err)
	var category entities.Category
	require.NoError(t, db.First(&category, travel.ID).Error)
	assert.False(t, category.IsPublished)

	affected, err = repo.SetPublished(ctx, PublishTargetPost, nil, true)
	require.NoError(t, err)
	assert.Zero(t, affected)

	_, err = repo.SetPublished(ctx, PublishTarget("user"), []uint64{1}, true)
	assert.Error(t, err)
}
