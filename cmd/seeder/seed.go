package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// SeedOptions 各类数据的生成数量
type SeedOptions struct {
	Users           int
	Categories      int
	Locations       int
	Posts           int
	CommentsPerPost int
}

func (o SeedOptions) Validate() error {
	if o.Users <= 0 {
		return errors.New("用户数量必须大于 0")
	}
	if o.Posts < 0 || o.Categories < 0 || o.Locations < 0 || o.CommentsPerPost < 0 {
		return errors.New("数量不能为负")
	}
	return nil
}

// SeedRepos 填充数据用到的仓库
type SeedRepos struct {
	Users      mysql.UserRepository
	Categories mysql.CategoryRepository
	Locations  mysql.LocationRepository
	Posts      mysql.PostRepository
	Comments   mysql.CommentRepository
}

// SeedStats 实际写入的数量
type SeedStats struct {
	Users, Categories, Locations, Posts, Comments int
}

// Seed 通过仓库层写入随机数据。
// 约 1/5 的分类、地点与帖子未发布，约 1/10 的帖子发布时间在未来，便于观察可见性规则。
func Seed(ctx context.Context, repos SeedRepos, faker *gofakeit.Faker, opts SeedOptions, logger *core.ZapLogger) (SeedStats, error) {
	var stats SeedStats
	now := time.Now().UTC()

	users := make([]*entities.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		u := &entities.User{
			ID:        uuid.NewString(),
			Username:  fmt.Sprintf("%s%d", strings.ToLower(faker.Username()), i),
			FirstName: faker.FirstName(),
			LastName:  faker.LastName(),
			Email:     faker.Email(),
		}
		if err := repos.Users.CreateUser(ctx, u); err != nil {
			return stats, fmt.Errorf("创建用户失败: %w", err)
		}
		users = append(users, u)
	}
	stats.Users = len(users)

	categories := make([]*entities.Category, 0, opts.Categories)
	for i := 0; i < opts.Categories; i++ {
		c := &entities.Category{
			Title:       faker.BuzzWord(),
			Description: faker.Sentence(12),
			Slug:        fmt.Sprintf("%s-%d", strings.ToLower(faker.Word()), i),
		}
		c.IsPublished = i%5 != 4
		if err := repos.Categories.CreateCategory(ctx, c); err != nil {
			return stats, fmt.Errorf("创建分类失败: %w", err)
		}
		categories = append(categories, c)
	}
	stats.Categories = len(categories)

	locations := make([]*entities.Location, 0, opts.Locations)
	for i := 0; i < opts.Locations; i++ {
		l := &entities.Location{Name: faker.City()}
		l.IsPublished = i%5 != 4
		if err := repos.Locations.CreateLocation(ctx, l); err != nil {
			return stats, fmt.Errorf("创建地点失败: %w", err)
		}
		locations = append(locations, l)
	}
	stats.Locations = len(locations)

	for i := 0; i < opts.Posts; i++ {
		author := users[faker.Number(0, len(users)-1)]
		pubDate := faker.DateRange(now.AddDate(0, -6, 0), now).UTC()
		if i%10 == 9 {
			pubDate = now.Add(time.Duration(faker.Number(1, 72)) * time.Hour)
		}
		p := &entities.Post{
			Title:    strings.TrimSuffix(faker.Sentence(faker.Number(3, 8)), "."),
			Text:     faker.Paragraph(2, 4, 12, "\n\n"),
			PubDate:  pubDate,
			AuthorID: author.ID,
		}
		p.IsPublished = i%5 != 4
		if len(categories) > 0 && faker.Number(0, 3) > 0 {
			p.CategoryID = &categories[faker.Number(0, len(categories)-1)].ID
		}
		if len(locations) > 0 && faker.Bool() {
			p.LocationID = &locations[faker.Number(0, len(locations)-1)].ID
		}
		if err := repos.Posts.CreatePost(ctx, p); err != nil {
			return stats, fmt.Errorf("创建帖子失败: %w", err)
		}
		stats.Posts++

		for j := faker.Number(0, opts.CommentsPerPost); j > 0; j-- {
			c := &entities.Comment{
				Text:     faker.Sentence(faker.Number(4, 16)),
				PostID:   p.ID,
				AuthorID: users[faker.Number(0, len(users)-1)].ID,
			}
			c.IsPublished = true
			if err := repos.Comments.CreateComment(ctx, c); err != nil {
				return stats, fmt.Errorf("创建评论失败: %w", err)
			}
			stats.Comments++
		}
		logger.Debug("已创建帖子", zap.Uint64("post_id", p.ID), zap.Int("index", i+1))
	}
	return stats, nil
}
