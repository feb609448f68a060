package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"customblog/internal/blog"
	"customblog/internal/models"
)

// txStores binds every store to one *sql.Tx and satisfies blog.Tx.
type txStores struct {
	members    *MemberStore
	blogs      *BlogStore
	categories *CategoryStore
	articles   *ArticleStore
	comments   *CommentStore
}

var _ blog.Tx = (*txStores)(nil)

func newTxStores(tx *sql.Tx) *txStores {
	return &txStores{
		members:    NewMemberStore(tx),
		blogs:      NewBlogStore(tx),
		categories: NewCategoryStore(tx),
		articles:   NewArticleStore(tx),
		comments:   NewCommentStore(tx),
	}
}

func (t *txStores) FindMember(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	return t.members.FindByID(ctx, id)
}

func (t *txStores) FindBlog(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	return t.blogs.FindByID(ctx, id)
}

func (t *txStores) ListBlogsByMember(ctx context.Context, memberID uuid.UUID) ([]models.Blog, error) {
	return t.blogs.ListByMember(ctx, memberID)
}

func (t *txStores) CreateBlog(ctx context.Context, b *models.Blog) error {
	return t.blogs.Create(ctx, b)
}

func (t *txStores) UpdateBlog(ctx context.Context, b *models.Blog) error {
	return t.blogs.Update(ctx, b)
}

func (t *txStores) FindCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return t.categories.FindByID(ctx, id)
}

func (t *txStores) ListCategoriesByBlog(ctx context.Context, blogID uuid.UUID) ([]models.Category, error) {
	return t.categories.ListByBlog(ctx, blogID)
}

func (t *txStores) CreateCategory(ctx context.Context, c *models.Category) error {
	return t.categories.Create(ctx, c)
}

func (t *txStores) UpdateCategory(ctx context.Context, c *models.Category) error {
	return t.categories.Update(ctx, c)
}

func (t *txStores) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return t.categories.Delete(ctx, id)
}

func (t *txStores) FindArticle(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	return t.articles.FindByID(ctx, id)
}

func (t *txStores) CountArticles(ctx context.Context, f blog.ArticleFilter) (int, error) {
	return t.articles.Count(ctx, f)
}

func (t *txStores) ListArticles(ctx context.Context, f blog.ArticleFilter, offset, limit int) ([]models.Article, error) {
	return t.articles.List(ctx, f, offset, limit)
}

func (t *txStores) ListArticleIDs(ctx context.Context, blogID uuid.UUID) ([]uuid.UUID, error) {
	return t.articles.ListIDs(ctx, blogID)
}

func (t *txStores) CreateArticle(ctx context.Context, a *models.Article) error {
	return t.articles.Create(ctx, a)
}

func (t *txStores) UncategorizeArticles(ctx context.Context, categoryIDs []uuid.UUID) (int, error) {
	return t.articles.Uncategorize(ctx, categoryIDs)
}

func (t *txStores) FindComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	return t.comments.FindByID(ctx, id)
}

func (t *txStores) ListCommentsByArticle(ctx context.Context, articleID uuid.UUID) ([]models.Comment, error) {
	return t.comments.ListByArticle(ctx, articleID)
}

func (t *txStores) CreateComment(ctx context.Context, c *models.Comment) error {
	return t.comments.Create(ctx, c)
}
