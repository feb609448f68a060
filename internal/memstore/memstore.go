// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package memstore is an in-process implementation of blog.Datastore.
// Transactions are serialized and copy-on-write: a transaction works on a
// private copy of the data that replaces the shared copy only on commit.
// It enforces the same referential rules as the PostgreSQL schema.
package memstore

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"customblog/internal/blog"
	"customblog/internal/models"
)

// ErrConstraint is returned when a write would break referential integrity.
var ErrConstraint = errors.New("constraint violation")

type state struct {
	seq        int64
	members    map[uuid.UUID]models.Member
	blogs      map[uuid.UUID]models.Blog
	categories map[uuid.UUID]models.Category
	articles   map[uuid.UUID]models.Article
	comments   map[uuid.UUID]models.Comment
}

func (st *state) clone() *state {
	return &state{
		seq:        st.seq,
		members:    maps.Clone(st.members),
		blogs:      maps.Clone(st.blogs),
		categories: maps.Clone(st.categories),
		articles:   maps.Clone(st.articles),
		comments:   maps.Clone(st.comments),
	}
}

func (st *state) next() int64 {
	st.seq++
	return st.seq
}

// Store holds all records in memory.
type Store struct {
	mu   sync.Mutex
	data *state
}

// New returns an empty Store.
func New() *Store {
	return &Store{data: &state{
		members:    make(map[uuid.UUID]models.Member),
		blogs:      make(map[uuid.UUID]models.Blog),
		categories: make(map[uuid.UUID]models.Category),
		articles:   make(map[uuid.UUID]models.Article),
		comments:   make(map[uuid.UUID]models.Comment),
	}}
}

// WithinTx runs fn against a private copy of the data and publishes the
// copy only if fn returns nil. A panic in fn discards the copy.
func (s *Store) WithinTx(ctx context.Context, fn func(tx blog.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(&tx{st: work}); err != nil {
		return err
	}
	s.data = work
	return nil
}

// Members returns the member directory of the store.
func (s *Store) Members() *MemberStore {
	return &MemberStore{s: s}
}

// MemberStore manages member accounts outside of engine transactions.
type MemberStore struct {
	s *Store
}

// FindByEmail returns the member with the given email. Returns nil if not found.
func (m *MemberStore) FindByEmail(_ context.Context, email string) (*models.Member, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, member := range m.s.data.members {
		if strings.EqualFold(member.Email, email) {
			found := member
			return &found, nil
		}
	}
	return nil, nil
}

// Create stores a new member, assigning an ID when none is set.
func (m *MemberStore) Create(_ context.Context, member *models.Member) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.data.members {
		if strings.EqualFold(existing.Email, member.Email) {
			return fmt.Errorf("create member %s: %w", member.Email, ErrConstraint)
		}
	}
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	m.s.data.members[member.ID] = *member
	return nil
}

// tx implements blog.Tx over a working copy.
type tx struct {
	st *state
}

func (t *tx) FindMember(_ context.Context, id uuid.UUID) (*models.Member, error) {
	m, ok := t.st.members[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (t *tx) FindBlog(_ context.Context, id uuid.UUID) (*models.Blog, error) {
	b, ok := t.st.blogs[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (t *tx) ListBlogsByMember(_ context.Context, memberID uuid.UUID) ([]models.Blog, error) {
	var items []models.Blog
	for _, b := range t.st.blogs {
		if b.MemberID == memberID {
			items = append(items, b)
		}
	}
	slices.SortFunc(items, func(a, b models.Blog) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return items, nil
}

func (t *tx) CreateBlog(_ context.Context, b *models.Blog) error {
	if _, ok := t.st.members[b.MemberID]; !ok {
		return fmt.Errorf("create blog: member %s: %w", b.MemberID, ErrConstraint)
	}
	row := *b
	row.CategoryIDs, row.ArticleIDs = nil, nil
	t.st.blogs[b.ID] = row
	return nil
}

func (t *tx) UpdateBlog(_ context.Context, b *models.Blog) error {
	row, ok := t.st.blogs[b.ID]
	if !ok {
		return nil
	}
	row.Name = b.Name
	row.UpdatedAt = b.UpdatedAt
	t.st.blogs[b.ID] = row
	return nil
}

func (t *tx) FindCategory(_ context.Context, id uuid.UUID) (*models.Category, error) {
	c, ok := t.st.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (t *tx) ListCategoriesByBlog(_ context.Context, blogID uuid.UUID) ([]models.Category, error) {
	var items []models.Category
	for _, c := range t.st.categories {
		if c.BlogID == blogID {
			items = append(items, c)
		}
	}
	slices.SortFunc(items, func(a, b models.Category) int { return cmp.Compare(a.Seq, b.Seq) })
	return items, nil
}

func (t *tx) CreateCategory(_ context.Context, c *models.Category) error {
	if _, ok := t.st.blogs[c.BlogID]; !ok {
		return fmt.Errorf("create category: blog %s: %w: %w", c.BlogID, ErrConstraint, blog.ErrInvalidReference)
	}
	if c.ParentID != nil {
		if _, ok := t.st.categories[*c.ParentID]; !ok {
			return fmt.Errorf("create category: parent %s: %w: %w", *c.ParentID, ErrConstraint, blog.ErrInvalidReference)
		}
	}
	c.Seq = t.st.next()
	row := *c
	row.ChildIDs = nil
	t.st.categories[c.ID] = row
	return nil
}

func (t *tx) UpdateCategory(_ context.Context, c *models.Category) error {
	row, ok := t.st.categories[c.ID]
	if !ok {
		return nil
	}
	row.Name = c.Name
	row.UpdatedAt = c.UpdatedAt
	t.st.categories[c.ID] = row
	return nil
}

func (t *tx) DeleteCategory(_ context.Context, id uuid.UUID) error {
	for _, c := range t.st.categories {
		if c.ParentID != nil && *c.ParentID == id {
			return fmt.Errorf("delete category %s: referenced by child %s: %w: %w", id, c.ID, ErrConstraint, blog.ErrHasDependents)
		}
	}
	for _, a := range t.st.articles {
		if a.CategoryID != nil && *a.CategoryID == id {
			return fmt.Errorf("delete category %s: referenced by article %s: %w: %w", id, a.ID, ErrConstraint, blog.ErrHasDependents)
		}
	}
	delete(t.st.categories, id)
	return nil
}

func (t *tx) FindArticle(_ context.Context, id uuid.UUID) (*models.Article, error) {
	a, ok := t.st.articles[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// match reports whether an article passes the filter.
func match(a models.Article, f blog.ArticleFilter) bool {
	if a.BlogID != f.BlogID {
		return false
	}
	if f.CategoryIDs == nil {
		return true
	}
	return a.CategoryID != nil && slices.Contains(f.CategoryIDs, *a.CategoryID)
}

func (t *tx) CountArticles(_ context.Context, f blog.ArticleFilter) (int, error) {
	n := 0
	for _, a := range t.st.articles {
		if match(a, f) {
			n++
		}
	}
	return n, nil
}

func (t *tx) ListArticles(_ context.Context, f blog.ArticleFilter, offset, limit int) ([]models.Article, error) {
	var items []models.Article
	for _, a := range t.st.articles {
		if match(a, f) {
			items = append(items, a)
		}
	}
	// Newest first; equal timestamps keep insertion order.
	slices.SortFunc(items, func(a, b models.Article) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Seq, b.Seq)
	})

	if offset >= len(items) {
		return []models.Article{}, nil
	}
	end := min(offset+limit, len(items))
	return items[offset:end], nil
}

func (t *tx) ListArticleIDs(_ context.Context, blogID uuid.UUID) ([]uuid.UUID, error) {
	var items []models.Article
	for _, a := range t.st.articles {
		if a.BlogID == blogID {
			items = append(items, a)
		}
	}
	slices.SortFunc(items, func(a, b models.Article) int { return cmp.Compare(a.Seq, b.Seq) })

	ids := make([]uuid.UUID, 0, len(items))
	for _, a := range items {
		ids = append(ids, a.ID)
	}
	return ids, nil
}

func (t *tx) CreateArticle(_ context.Context, a *models.Article) error {
	if _, ok := t.st.blogs[a.BlogID]; !ok {
		return fmt.Errorf("create article: blog %s: %w: %w", a.BlogID, ErrConstraint, blog.ErrInvalidReference)
	}
	if _, ok := t.st.members[a.AuthorID]; !ok {
		return fmt.Errorf("create article: author %s: %w: %w", a.AuthorID, ErrConstraint, blog.ErrInvalidReference)
	}
	if a.CategoryID != nil {
		if _, ok := t.st.categories[*a.CategoryID]; !ok {
			return fmt.Errorf("create article: category %s: %w: %w", *a.CategoryID, ErrConstraint, blog.ErrInvalidReference)
		}
	}
	a.Seq = t.st.next()
	t.st.articles[a.ID] = *a
	return nil
}

func (t *tx) UncategorizeArticles(_ context.Context, categoryIDs []uuid.UUID) (int, error) {
	n := 0
	for id, a := range t.st.articles {
		if a.CategoryID != nil && slices.Contains(categoryIDs, *a.CategoryID) {
			a.CategoryID = nil
			t.st.articles[id] = a
			n++
		}
	}
	return n, nil
}

func (t *tx) FindComment(_ context.Context, id uuid.UUID) (*models.Comment, error) {
	c, ok := t.st.comments[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (t *tx) ListCommentsByArticle(_ context.Context, articleID uuid.UUID) ([]models.Comment, error) {
	var items []models.Comment
	for _, c := range t.st.comments {
		if c.ArticleID == articleID {
			items = append(items, c)
		}
	}
	slices.SortFunc(items, func(a, b models.Comment) int { return cmp.Compare(a.Seq, b.Seq) })
	return items, nil
}

func (t *tx) CreateComment(_ context.Context, c *models.Comment) error {
	if _, ok := t.st.articles[c.ArticleID]; !ok {
		return fmt.Errorf("create comment: article %s: %w", c.ArticleID, ErrConstraint)
	}
	if _, ok := t.st.members[c.AuthorID]; !ok {
		return fmt.Errorf("create comment: author %s: %w", c.AuthorID, ErrConstraint)
	}
	if c.ParentID != nil {
		if _, ok := t.st.comments[*c.ParentID]; !ok {
			return fmt.Errorf("create comment: parent %s: %w", *c.ParentID, ErrConstraint)
		}
	}
	c.Seq = t.st.next()
	t.st.comments[c.ID] = *c
	return nil
}
