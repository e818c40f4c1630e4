package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appConfig "github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/controller"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/service"
)

const testLoginURL = "/auth/login/"

type blogServer struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
	users  mysql.UserRepository
	posts  mysql.PostRepository
	cats   mysql.CategoryRepository
	cmts   mysql.CommentRepository
}

func newBlogServer(t *testing.T, perPage int) *blogServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	logger, err := core.NewZapLogger(config.ZapConfig{Level: "error", Encoding: "console"})
	require.NoError(t, err)

	postRepo := mysql.NewPostRepository(db, logger)
	commentRepo := mysql.NewCommentRepository(db, logger)
	categoryRepo := mysql.NewCategoryRepository(db, logger)
	locationRepo := mysql.NewLocationRepository(db, logger)
	userRepo := mysql.NewUserRepository(db, logger)

	postService := service.NewPostService(service.PostServiceDeps{
		PostRepo:     postRepo,
		CommentRepo:  commentRepo,
		CategoryRepo: categoryRepo,
		LocationRepo: locationRepo,
		UserRepo:     userRepo,
	}, logger)
	postListService := service.NewPostListService(postRepo, categoryRepo, userRepo, perPage, logger)
	commentService := service.NewCommentService(postRepo, commentRepo, userRepo, nil, logger)
	profileService := service.NewProfileService(userRepo, logger)

	cfg := &appConfig.BlogServiceConfig{BlogConfig: appConfig.BlogConfig{LoginURL: testLoginURL, PostsPerPage: perPage}}
	r := SetupRouter(logger, cfg, Controllers{
		PostList: controller.NewPostListController(postListService, testLoginURL),
		Post:     controller.NewPostController(postService, testLoginURL),
		Comment:  controller.NewCommentController(commentService, testLoginURL),
		Profile:  controller.NewProfileController(profileService, testLoginURL),
	})

	return &blogServer{t: t, router: r, db: db, users: userRepo, posts: postRepo, cats: categoryRepo, cmts: commentRepo}
}

func (s *blogServer) user(id, username string) *entities.User {
	u := &entities.User{ID: id, Username: username}
	require.NoError(s.t, s.users.CreateUser(context.Background(), u))
	return u
}

func (s *blogServer) category(slug string, published bool) *entities.Category {
	c := &entities.Category{Title: slug, Slug: slug}
	c.IsPublished = published
	require.NoError(s.t, s.cats.CreateCategory(context.Background(), c))
	return c
}

func (s *blogServer) post(author *entities.User, title string, pubDate time.Time, published bool) *entities.Post {
	p := &entities.Post{Title: title, Text: "text", PubDate: pubDate, AuthorID: author.ID}
	p.IsPublished = published
	require.NoError(s.t, s.posts.CreatePost(context.Background(), p))
	return p
}

func (s *blogServer) comment(post *entities.Post, author *entities.User, text string) *entities.Comment {
	c := &entities.Comment{Text: text, PostID: post.ID, AuthorID: author.ID}
	c.IsPublished = true
	require.NoError(s.t, s.cmts.CreateComment(context.Background(), c))
	return c
}

func (s *blogServer) do(method, target, viewerID string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if viewerID != "" {
		req.Header.Set("X-User-ID", viewerID)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var body response.APIResponse[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Data
}

func postTitles(posts []*vo.PostResponse) []string {
	titles := make([]string, 0, len(posts))
	for _, p := range posts {
		titles = append(titles, p.Title)
	}
	return titles
}

func detailPath(id uint64) string {
	return "/posts/" + strconv.FormatUint(id, 10) + "/"
}

func TestIndex_OrdersByPubDateThenTitle(t *testing.T) {
	s := newBlogServer(t, 10)
	author := s.user("u-1", "alice")
	yesterday := time.Now().UTC().Add(-24 * time.Hour).Truncate(time.Second)
	s.post(author, "B", yesterday, true)
	s.post(author, "A", yesterday, true)
	s.post(author, "Newest", yesterday.Add(time.Hour), true)
	s.post(author, "Hidden", yesterday, false)
	s.post(author, "Scheduled", time.Now().UTC().Add(time.Hour), true)

	w := s.do(http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	page := decode[vo.PostPageVO](t, w)
	if diff := cmp.Diff([]string{"Newest", "A", "B"}, postTitles(page.Posts)); diff != "" {
		t.Errorf("listing order mismatch (-want +got):\n%s", diff)
	}
}

func TestPostDetail_UnpublishedVisibleOnlyToAuthor(t *testing.T) {
	s := newBlogServer(t, 10)
	author := s.user("u-1", "alice")
	s.user("u-2", "bob")
	p := s.post(author, "Draft", time.Now().UTC().Add(-time.Hour), false)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, detailPath(p.ID), "", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, detailPath(p.ID), "u-2", nil).Code)

	w := s.do(http.MethodGet, detailPath(p.ID), "u-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[vo.PostDetailVO](t, w)
	assert.Equal(t, "Draft", detail.Post.Title)
	assert.True(t, detail.CanEdit)
}

func TestPostDetail_InvalidIDIsNotFound(t *testing.T) {
	s := newBlogServer(t, 10)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/posts/abc/", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/posts/999/", "", nil).Code)
}

func TestCategory_UnpublishedIsNotFound(t *testing.T) {
	s := newBlogServer(t, 10)
	s.category("hidden", false)
	s.category("travel", true)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/category/hidden/", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/category/missing/", "", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/category/travel/", "", nil).Code)
}

func TestIndex_ClampsOutOfRangePages(t *testing.T) {
	s := newBlogServer(t, 2)
	author := s.user("u-1", "alice")
	base := time.Now().UTC().Add(-48 * time.Hour)
	for i := 0; i < 5; i++ {
		s.post(author, "post "+strconv.Itoa(i), base.Add(time.Duration(i)*time.Minute), true)
	}

	for target, want := range map[string]int{
		"/?page=0":    1,
		"/?page=abc":  1,
		"/?page=99":   3,
		"/?page=last": 3,
		"/?page=2":    2,
	} {
		w := s.do(http.MethodGet, target, "", nil)
		require.Equal(t, http.StatusOK, w.Code, target)
		page := decode[vo.PostPageVO](t, w)
		assert.Equal(t, want, page.Page.Number, target)
		assert.Equal(t, 3, page.Page.NumPages, target)
	}
}

func TestMutations_RedirectAnonymousToLogin(t *testing.T) {
	s := newBlogServer(t, 10)

	w := s.do(http.MethodPost, "/posts/create", "", url.Values{"title": {"t"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, testLoginURL+"?next=%2Fposts%2Fcreate", w.Header().Get("Location"))

	w = s.do(http.MethodGet, "/profile/edit", "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), testLoginURL))
}

func TestCreatePost_FieldErrorsAndSuccessRedirect(t *testing.T) {
	s := newBlogServer(t, 10)
	s.user("u-1", "alice")

	w := s.do(http.MethodPost, "/posts/create", "u-1", url.Values{"text": {"body"}, "pub_date": {"2024-01-02T10:00"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	fieldErrs := decode[map[string]string](t, w)
	assert.Contains(t, fieldErrs, "title")

	w = s.do(http.MethodPost, "/posts/create", "u-1", url.Values{
		"title": {"Hello"}, "text": {"body"}, "pub_date": {"2024-01-02T10:00"}, "category_id": {"404"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]string](t, w), "category_id")

	w = s.do(http.MethodPost, "/posts/create", "u-1", url.Values{
		"title": {"Hello"}, "text": {"body"}, "pub_date": {"2024-01-02T10:00"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/alice/", w.Header().Get("Location"))

	var count int64
	require.NoError(t, s.db.Model(&entities.Post{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEditPost_NonAuthorRedirectedToDetail(t *testing.T) {
	s := newBlogServer(t, 10)
	author := s.user("u-1", "alice")
	s.user("u-2", "bob")
	p := s.post(author, "Original", time.Now().UTC().Add(-time.Hour), true)

	form := url.Values{"title": {"Hijacked"}, "text": {"x"}, "pub_date": {"2024-01-02T10:00"}}
	w := s.do(http.MethodPost, detailPath(p.ID)+"edit", "u-2", form)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detailPath(p.ID), w.Header().Get("Location"))

	w = s.do(http.MethodPost, detailPath(p.ID)+"delete", "u-2", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detailPath(p.ID), w.Header().Get("Location"))

	stored, err := s.posts.GetPostByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", stored.Title)
}

func TestComments_CountAndNonAuthorEdit(t *testing.T) {
	s := newBlogServer(t, 10)
	author := s.user("u-1", "alice")
	s.user("u-2", "bob")
	p := s.post(author, "Post", time.Now().UTC().Add(-time.Hour), true)

	w := s.do(http.MethodPost, detailPath(p.ID)+"comment", "u-2", url.Values{"text": {"first!"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detailPath(p.ID), w.Header().Get("Location"))

	page := decode[vo.PostPageVO](t, s.do(http.MethodGet, "/", "", nil))
	require.Len(t, page.Posts, 1)
	assert.Equal(t, int64(1), page.Posts[0].CommentCount)

	c := s.comment(p, author, "by alice")
	editPath := detailPath(p.ID) + "comment/" + strconv.FormatUint(c.ID, 10) + "/edit"

	w = s.do(http.MethodPost, editPath, "u-2", url.Values{"text": {"changed by bob"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detailPath(p.ID), w.Header().Get("Location"))

	stored, err := s.cmts.GetForPost(context.Background(), p.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "by alice", stored.Text)

	other := s.post(author, "Other", time.Now().UTC().Add(-time.Hour), true)
	wrongParent := detailPath(other.ID) + "comment/" + strconv.FormatUint(c.ID, 10) + "/edit"
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, wrongParent, "u-1", url.Values{"text": {"x"}}).Code)
}

func TestEdit_NonAuthorInvalidFormRedirectedBeforeValidation(t *testing.T) {
	s := newBlogServer(t, 10)
	author := s.user("u-1", "alice")
	s.user("u-2", "bob")
	p := s.post(author, "Post", time.Now().UTC().Add(-time.Hour), true)
	c := s.comment(p, author, "by alice")

	w := s.do(http.MethodPost, detailPath(p.ID)+"edit", "u-2", url.Values{"title": {""}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detailPath(p.ID), w.Header().Get("Location"))

	editPath := detailPath(p.ID) + "comment/" + strconv.FormatUint(c.ID, 10) + "/edit"
	w = s.do(http.MethodPost, editPath, "u-2", url.Values{})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detailPath(p.ID), w.Header().Get("Location"))

	// 作者提交同样的空表单仍然得到字段错误
	w = s.do(http.MethodPost, editPath, "u-1", url.Values{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfile_AuthorSeesOwnDrafts(t *testing.T) {
	s := newBlogServer(t, 10)
	author := s.user("u-1", "alice")
	s.user("u-2", "bob")
	s.post(author, "Public", time.Now().UTC().Add(-time.Hour), true)
	s.post(author, "Draft", time.Now().UTC().Add(-time.Hour), false)

	own := decode[vo.ProfilePageVO](t, s.do(http.MethodGet, "/profile/alice/", "u-1", nil))
	assert.True(t, own.IsOwner)
	assert.ElementsMatch(t, []string{"Public", "Draft"}, postTitles(own.Posts))

	other := decode[vo.ProfilePageVO](t, s.do(http.MethodGet, "/profile/alice/", "u-2", nil))
	assert.False(t, other.IsOwner)
	assert.Equal(t, []string{"Public"}, postTitles(other.Posts))

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/profile/nobody/", "", nil).Code)
}

func TestProfileEdit(t *testing.T) {
	s := newBlogServer(t, 10)
	s.user("u-1", "alice")
	s.user("u-2", "bob")

	w := s.do(http.MethodPost, "/profile/edit", "u-1", url.Values{"username": {"bob"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]string](t, w), "username")

	w = s.do(http.MethodPost, "/profile/edit", "u-1", url.Values{"username": {"alice2"}, "email": {"a@example.com"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/alice2/", w.Header().Get("Location"))

	profile := decode[vo.ProfileVO](t, s.do(http.MethodGet, "/profile/edit", "u-1", nil))
	assert.Equal(t, "alice2", profile.Username)
	assert.Equal(t, "a@example.com", profile.Email)

	// 网关透传了未知用户
	w = s.do(http.MethodGet, "/profile/edit", "ghost", nil)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestPing(t *testing.T) {
	s := newBlogServer(t, 10)
	w := s.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}
