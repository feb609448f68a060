package blog_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"customblog/internal/blog"
	"customblog/internal/memstore"
	"customblog/internal/models"
	"customblog/internal/pagination"
)

// fakeClock hands out timestamps that only move when told to.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	ctx   context.Context
	store *memstore.Store
	clock *fakeClock
	svc   *blog.Service
	owner models.Member
	blog  *models.Blog
}

// newFixture returns a service over an empty memory store with one member
// owning one blog. The page size is 5.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctx := context.Background()
	store := memstore.New()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	calc, err := pagination.NewCalculator(5)
	require.NoError(t, err)

	svc := blog.NewService(store, calc, blog.WithClock(clock.Now))

	owner := models.Member{Email: "owner@example.com", DisplayName: "Owner"}
	require.NoError(t, store.Members().Create(ctx, &owner))

	b, err := svc.CreateBlog(ctx, owner.ID, "Owner's notes")
	require.NoError(t, err)

	return &fixture{ctx: ctx, store: store, clock: clock, svc: svc, owner: owner, blog: b}
}

// member registers another member.
func (f *fixture) member(t *testing.T, email string) models.Member {
	t.Helper()
	m := models.Member{Email: email, DisplayName: email}
	require.NoError(t, f.store.Members().Create(f.ctx, &m))
	return m
}

// otherBlog creates a second tenant with its own owner.
func (f *fixture) otherBlog(t *testing.T) *models.Blog {
	t.Helper()
	m := f.member(t, "other-"+uuid.NewString()[:8]+"@example.com")
	b, err := f.svc.CreateBlog(f.ctx, m.ID, "Other")
	require.NoError(t, err)
	return b
}

func (f *fixture) settings() *blog.Aggregate {
	return f.svc.Blog(f.blog.ID, f.owner.ID)
}

func (f *fixture) parentCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	c, err := f.settings().AddCategory(f.ctx, blog.CategoryInput{Name: name})
	require.NoError(t, err)
	return c
}

func (f *fixture) childCategory(t *testing.T, name string, parent *models.Category) *models.Category {
	t.Helper()
	c, err := f.settings().AddCategory(f.ctx, blog.CategoryInput{Name: name, ParentID: &parent.ID})
	require.NoError(t, err)
	return c
}

func (f *fixture) article(t *testing.T, title string, categoryID *uuid.UUID) *models.Article {
	t.Helper()
	a, err := f.svc.CreateArticle(f.ctx, blog.ArticleInput{
		BlogID:     f.blog.ID,
		AuthorID:   f.owner.ID,
		CategoryID: categoryID,
		Title:      title,
		Body:       "body of " + title,
	})
	require.NoError(t, err)
	return a
}

func articleTitles(items []models.Article) []string {
	titles := make([]string, len(items))
	for i, a := range items {
		titles[i] = a.Title
	}
	return titles
}
