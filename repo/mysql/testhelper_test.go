package mysql

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Xushengqwer/blog_service/models/entities"
)

func newTestLogger(t *testing.T) *core.ZapLogger {
	t.Helper()
	logger, err := core.NewZapLogger(config.ZapConfig{Level: "warn", Encoding: "console"})
	require.NoError(t, err)
	return logger
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "blog.db")), &gorm.Config{
		Logger:  gormlogger.Discard,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// fixture 直接写库构造测试数据
type fixture struct {
	t  *testing.T
	db *gorm.DB
}

func (f fixture) user(id, username string) *entities.User {
	u := &entities.User{ID: id, Username: username}
	require.NoError(f.t, f.db.Create(u).Error)
	return u
}

func (f fixture) category(slug string, published bool) *entities.Category {
	c := &entities.Category{Title: slug, Description: slug, Slug: slug}
	c.IsPublished = published
	require.NoError(f.t, f.db.Create(c).Error)
	return c
}

func (f fixture) location(name string, published bool) *entities.Location {
	l := &entities.Location{Name: name}
	l.IsPublished = published
	require.NoError(f.t, f.db.Create(l).Error)
	return l
}

type postOpt func(*entities.Post)

func inCategory(c *entities.Category) postOpt {
	return func(p *entities.Post) { p.CategoryID = &c.ID }
}

func atLocation(l *entities.Location) postOpt {
	return func(p *entities.Post) { p.LocationID = &l.ID }
}

func unpublished() postOpt {
	return func(p *entities.Post) { p.IsPublished = false }
}

func (f fixture) post(author *entities.User, title string, pubDate time.Time, opts ...postOpt) *entities.Post {
	p := &entities.Post{Title: title, Text: title, PubDate: pubDate, AuthorID: author.ID}
	p.IsPublished = true
	for _, opt := range opts {
		opt(p)
	}
	require.NoError(f.t, f.db.Omit(clause.Associations).Create(p).Error)
	return p
}

func (f fixture) comment(post *entities.Post, author *entities.User, text string) *entities.Comment {
	c := &entities.Comment{Text: text, PostID: post.ID, AuthorID: author.ID}
	c.IsPublished = true
	require.NoError(f.t, f.db.Omit(clause.Associations).Create(c).Error)
	return c
}

func titles(posts []*entities.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}
