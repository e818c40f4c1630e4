package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/events"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// testEnv 基于 sqlite 的真实仓库 + 外部依赖的替身
type testEnv struct {
	t          *testing.T
	db         *gorm.DB
	logger     *core.ZapLogger
	posts      mysql.PostRepository
	comments   mysql.CommentRepository
	categories mysql.CategoryRepository
	locations  mysql.LocationRepository
	users      mysql.UserRepository
	views      *fakeViewRepo
	images     *fakeImageStore
	events     *fakePublisher
	now        time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "blog.db")), &gorm.Config{
		Logger:  gormlogger.Discard,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, mysql.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	logger, err := core.NewZapLogger(config.ZapConfig{Level: "warn", Encoding: "console"})
	require.NoError(t, err)

	return &testEnv{
		t:          t,
		db:         db,
		logger:     logger,
		posts:      mysql.NewPostRepository(db, logger),
		comments:   mysql.NewCommentRepository(db, logger),
		categories: mysql.NewCategoryRepository(db, logger),
		locations:  mysql.NewLocationRepository(db, logger),
		users:      mysql.NewUserRepository(db, logger),
		views:      &fakeViewRepo{calls: make(chan uint64, 10)},
		images:     &fakeImageStore{objects: map[string][]byte{}, deleted: make(chan string, 10)},
		events:     &fakePublisher{posts: make(chan events.PostEvent, 10), comments: make(chan events.CommentEvent, 10)},
		now:        time.Now().UTC(),
	}
}

func (e *testEnv) postService() *postService {
	svc := NewPostService(PostServiceDeps{
		PostRepo:     e.posts,
		CommentRepo:  e.comments,
		CategoryRepo: e.categories,
		LocationRepo: e.locations,
		UserRepo:     e.users,
		PostViewRepo: e.views,
		Images:       e.images,
		Events:       e.events,
	}, e.logger).(*postService)
	svc.now = func() time.Time { return e.now }
	return svc
}

func (e *testEnv) postListService(perPage int) *postListService {
	svc := NewPostListService(e.posts, e.categories, e.users, perPage, e.logger).(*postListService)
	svc.now = func() time.Time { return e.now }
	return svc
}

func (e *testEnv) user(id, username string) *entities.User {
	u := &entities.User{ID: id, Username: username}
	require.NoError(e.t, e.users.CreateUser(context.Background(), u))
	return u
}

func (e *testEnv) category(slug string, published bool) *entities.Category {
	c := &entities.Category{Title: slug, Description: slug, Slug: slug}
	c.IsPublished = published
	require.NoError(e.t, e.categories.CreateCategory(context.Background(), c))
	return c
}

func (e *testEnv) post(author *entities.User, title string, pubDate time.Time, published bool, category *entities.Category) *entities.Post {
	p := &entities.Post{Title: title, Text: "text of " + title, PubDate: pubDate, AuthorID: author.ID}
	p.IsPublished = published
	if category != nil {
		p.CategoryID = &category.ID
	}
	require.NoError(e.t, e.posts.CreatePost(context.Background(), p))
	return p
}

func (e *testEnv) comment(post *entities.Post, author *entities.User, text string) *entities.Comment {
	c := &entities.Comment{Text: text, PostID: post.ID, AuthorID: author.ID}
	c.IsPublished = true
	require.NoError(e.t, e.comments.CreateComment(context.Background(), c))
	return c
}

// imageHeader 构造一个 multipart 图片文件头
func imageHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

type fakeViewRepo struct {
	calls chan uint64
}

func (f *fakeViewRepo) IncrementViewCount(_ context.Context, postID uint64, _ string) (bool, error) {
	f.calls <- postID
	return true, nil
}

func (f *fakeViewRepo) GetAllViewCounts(context.Context) (map[uint64]int64, error) {
	return nil, nil
}

type fakeImageStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted chan string
}

func (f *fakeImageStore) UploadFile(_ context.Context, objectKey string, reader io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[objectKey] = data
	return "https://img.example.com/" + objectKey, nil
}

func (f *fakeImageStore) DeleteObject(_ context.Context, objectKey string) error {
	f.mu.Lock()
	delete(f.objects, objectKey)
	f.mu.Unlock()
	f.deleted <- objectKey
	return nil
}

type fakePublisher struct {
	posts    chan events.PostEvent
	comments chan events.CommentEvent
}

func (f *fakePublisher) PublishPostEvent(_ context.Context, event events.PostEvent) error {
	f.posts <- event
	return nil
}

func (f *fakePublisher) PublishCommentEvent(_ context.Context, event events.CommentEvent) error {
	f.comments <- event
	return nil
}

// receive 等待异步发送的结果
func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("等待异步结果超时")
		var zero T
		return zero
	}
}
