package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"customblog/internal/blog"
	"customblog/internal/models"
)

// Development credentials created by Seed.
const (
	SeedEmail    = "writer@customblog.local"
	SeedPassword = "writer"
)

// Members is the member persistence Seed needs. Both the PostgreSQL and
// the in-memory member stores satisfy it.
type Members interface {
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
	Create(ctx context.Context, m *models.Member) error
}

// Seed populates a datastore with development data: one member owning a
// blog with a parent category, a child category and a welcome article.
// It does nothing when the seed member already exists.
func Seed(ctx context.Context, members Members, svc *blog.Service) error {
	existing, err := members.FindByEmail(ctx, SeedEmail)
	if err != nil {
		return fmt.Errorf("seed check member: %w", err)
	}
	if existing != nil {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	m := &models.Member{
		ID:           uuid.New(),
		Email:        SeedEmail,
		PasswordHash: string(hash),
		DisplayName:  "Writer",
	}
	if err := members.Create(ctx, m); err != nil {
		return fmt.Errorf("seed insert member: %w", err)
	}

	b, err := svc.CreateBlog(ctx, m.ID, "My Blog")
	if err != nil {
		return fmt.Errorf("seed blog: %w", err)
	}

	agg := svc.Blog(b.ID, m.ID)
	parent, err := agg.AddCategory(ctx, blog.CategoryInput{Name: "General"})
	if err != nil {
		return fmt.Errorf("seed parent category: %w", err)
	}
	child, err := agg.AddCategory(ctx, blog.CategoryInput{Name: "Announcements", ParentID: &parent.ID})
	if err != nil {
		return fmt.Errorf("seed child category: %w", err)
	}

	_, err = svc.CreateArticle(ctx, blog.ArticleInput{
		BlogID:     b.ID,
		AuthorID:   m.ID,
		CategoryID: &child.ID,
		Title:      "Welcome",
		Body:       "Your blog is ready. Sign in to start writing.",
	})
	if err != nil {
		return fmt.Errorf("seed article: %w", err)
	}

	slog.Info("database seeded with development member",
		"email", SeedEmail,
		"password", SeedPassword,
		"blog_id", b.ID,
	)
	return nil
}
