package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPost_VisibleAt(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	published := func(v bool) PublishedModel { return PublishedModel{IsPublished: v} }

	tests := []struct {
		name string
		post Post
		want bool
	}{
		{
			name: "已发布且无分类",
			post: Post{PublishedModel: published(true), PubDate: now.Add(-time.Hour)},
			want: true,
		},
		{
			name: "发布时间等于当前时间",
			post: Post{PublishedModel: published(true), PubDate: now},
			want: true,
		},
		{
			name: "定时发布尚未到达",
			post: Post{PublishedModel: published(true), PubDate: now.Add(time.Minute)},
			want: false,
		},
		{
			name: "帖子未发布",
			post: Post{PublishedModel: published(false), PubDate: now.Add(-time.Hour)},
			want: false,
		},
		{
			name: "分类未发布",
			post: Post{
				PublishedModel: published(true),
				PubDate:        now.Add(-time.Hour),
				Category:       &Category{PublishedModel: published(false)},
			},
			want: false,
		},
		{
			name: "分类已发布",
			post: Post{
				PublishedModel: published(true),
				PubDate:        now.Add(-time.Hour),
				Category:       &Category{PublishedModel: published(true)},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.post.VisibleAt(now))
		})
	}
}

func TestIsAuthoredBy(t *testing.T) {
	post := Post{AuthorID: "u-1"}
	assert.True(t, post.IsAuthoredBy("u-1"))
	assert.False(t, post.IsAuthoredBy("u-2"))

	anonymous := Post{}
	assert.False(t, anonymous.IsAuthoredBy(""), "匿名用户不能成为作者")

	comment := Comment{AuthorID: "u-1"}
	assert.True(t, comment.IsAuthoredBy("u-1"))
	assert.False(t, comment.IsAuthoredBy(""))
}

func TestPublishedModel_Published(t *testing.T) {
	hidden := PublishedModel{IsPublished: false}
	shown := PublishedModel{IsPublished: true}

	assert.False(t, Category{PublishedModel: hidden}.Published())
	assert.False(t, Location{PublishedModel: hidden}.Published())
	assert.True(t, Post{PublishedModel: shown}.Published())
	assert.True(t, Comment{PublishedModel: shown}.Published())
}
