package blog_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customblog/internal/blog"
	"customblog/internal/models"
)

func TestNewParentCategory(t *testing.T) {
	blogID := uuid.New()
	c := blog.NewParentCategory("Travel", blogID, time.Now())

	assert.Equal(t, models.CategoryStatusParent, c.Status)
	assert.Nil(t, c.ParentID)
	assert.Equal(t, blogID, c.BlogID)
	assert.NotEqual(t, uuid.Nil, c.ID)
}

func TestNewChildCategory(t *testing.T) {
	blogID := uuid.New()
	now := time.Now()
	parent := blog.NewParentCategory("Travel", blogID, now)

	child, err := blog.NewChildCategory("Japan", parent, blogID, now)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryStatusChild, child.Status)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, parent.ID, *child.ParentID)
	assert.Equal(t, blogID, child.BlogID)

	tests := []struct {
		name   string
		parent *models.Category
		blogID uuid.UUID
	}{
		{"child as parent", child, blogID},
		{"parent of another blog", parent, uuid.New()},
		{"missing parent", nil, blogID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := blog.NewChildCategory("Kyoto", tt.parent, tt.blogID, now)
			assert.ErrorIs(t, err, blog.ErrInvalidHierarchy)
		})
	}
}

func TestListCategoriesOfBlog(t *testing.T) {
	f := newFixture(t)

	travel := f.parentCategory(t, "Travel")
	code := f.parentCategory(t, "Code")
	japan := f.childCategory(t, "Japan", travel)
	golang := f.childCategory(t, "Go", code)
	peru := f.childCategory(t, "Peru", travel)

	// Categories of another tenant never show up.
	other := f.otherBlog(t)
	_, err := f.svc.Blog(other.ID, other.MemberID).AddCategory(f.ctx, blog.CategoryInput{Name: "Elsewhere"})
	require.NoError(t, err)

	cats, err := f.svc.ListCategoriesOfBlog(f.ctx, f.blog.ID)
	require.NoError(t, err)

	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Travel", "Code", "Japan", "Go", "Peru"}, names)

	assert.Equal(t, []uuid.UUID{japan.ID, peru.ID}, cats[0].ChildIDs)
	assert.Equal(t, []uuid.UUID{golang.ID}, cats[1].ChildIDs)
	assert.Empty(t, cats[2].ChildIDs)

	// Every child points at a parent category of the same blog.
	byID := make(map[uuid.UUID]models.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	for _, c := range cats {
		if !c.IsChild() {
			assert.Nil(t, c.ParentID)
			continue
		}
		parent, ok := byID[*c.ParentID]
		require.True(t, ok)
		assert.True(t, parent.IsParent())
		assert.Equal(t, c.BlogID, parent.BlogID)
	}
}

func TestListCategoriesOfMissingBlog(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ListCategoriesOfBlog(f.ctx, uuid.New())
	assert.ErrorIs(t, err, blog.ErrNotFound)
}

func TestAddChildUnderChildFails(t *testing.T) {
	f := newFixture(t)
	travel := f.parentCategory(t, "Travel")
	japan := f.childCategory(t, "Japan", travel)

	_, err := f.settings().AddCategory(f.ctx, blog.CategoryInput{Name: "Kyoto", ParentID: &japan.ID})
	assert.ErrorIs(t, err, blog.ErrInvalidHierarchy)

	_, err = f.settings().AddCategory(f.ctx, blog.CategoryInput{Name: "Kyoto", ParentID: ptr(uuid.New())})
	assert.ErrorIs(t, err, blog.ErrNotFound)
}

func TestAddChildUnderForeignParentFails(t *testing.T) {
	f := newFixture(t)
	other := f.otherBlog(t)
	foreign, err := f.svc.Blog(other.ID, other.MemberID).AddCategory(f.ctx, blog.CategoryInput{Name: "Theirs"})
	require.NoError(t, err)

	_, err = f.settings().AddCategory(f.ctx, blog.CategoryInput{Name: "Mine", ParentID: &foreign.ID})
	assert.ErrorIs(t, err, blog.ErrInvalidHierarchy)
}

func TestAddCategoryValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.settings().AddCategory(f.ctx, blog.CategoryInput{Name: "   "})
	var fields blog.FieldErrors
	require.True(t, errors.As(err, &fields))
	assert.Contains(t, fields, "name")
	assert.ErrorIs(t, err, blog.ErrInvalidInput)

	cats, err := f.svc.ListCategoriesOfBlog(f.ctx, f.blog.ID)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestEditCategory(t *testing.T) {
	f := newFixture(t)
	travel := f.parentCategory(t, "Travel")
	japan := f.childCategory(t, "Japan", travel)
	f.clock.Advance(time.Minute)

	renamed, err := f.settings().EditCategory(f.ctx, japan.ID, "  Nippon ")
	require.NoError(t, err)
	assert.Equal(t, "Nippon", renamed.Name)
	assert.Equal(t, models.CategoryStatusChild, renamed.Status)
	assert.Equal(t, travel.ID, *renamed.ParentID)
	assert.True(t, renamed.UpdatedAt.After(renamed.CreatedAt))

	stored, err := f.svc.GetCategory(f.ctx, japan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nippon", stored.Name)
}

func TestCategoryMutationsAreScopedToTheBlog(t *testing.T) {
	f := newFixture(t)
	other := f.otherBlog(t)
	theirs, err := f.svc.Blog(other.ID, other.MemberID).AddCategory(f.ctx, blog.CategoryInput{Name: "Theirs"})
	require.NoError(t, err)

	_, err = f.settings().EditCategory(f.ctx, theirs.ID, "Hijacked")
	assert.ErrorIs(t, err, blog.ErrForbidden)

	_, err = f.settings().DeleteCategory(f.ctx, theirs.ID, blog.DeleteOptions{ReassignDependents: true})
	assert.ErrorIs(t, err, blog.ErrForbidden)

	stored, err := f.svc.GetCategory(f.ctx, theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, "Theirs", stored.Name)

	_, err = f.settings().EditCategory(f.ctx, uuid.New(), "Nope")
	assert.ErrorIs(t, err, blog.ErrNotFound)
}

func TestCategoryMutationsRequireActor(t *testing.T) {
	f := newFixture(t)
	anon := f.svc.Blog(f.blog.ID, uuid.Nil)

	_, err := anon.AddCategory(f.ctx, blog.CategoryInput{Name: "Travel"})
	assert.ErrorIs(t, err, blog.ErrUnauthenticated)

	_, err = anon.Rename(f.ctx, "New name")
	assert.ErrorIs(t, err, blog.ErrUnauthenticated)
}

func TestBlogMutationsRequireOwner(t *testing.T) {
	f := newFixture(t)
	travel := f.parentCategory(t, "Travel")
	stranger := f.member(t, "stranger@example.com")

	tests := []struct {
		name  string
		actor uuid.UUID
		want  error
	}{
		{"unknown member", uuid.New(), blog.ErrUnauthenticated},
		{"member of another blog", stranger.ID, blog.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := f.svc.Blog(f.blog.ID, tt.actor)

			_, err := agg.Rename(f.ctx, "Taken over")
			assert.ErrorIs(t, err, tt.want)

			_, err = agg.AddCategory(f.ctx, blog.CategoryInput{Name: "Injected"})
			assert.ErrorIs(t, err, tt.want)

			_, err = agg.AddCategory(f.ctx, blog.CategoryInput{Name: "Injected child", ParentID: &travel.ID})
			assert.ErrorIs(t, err, tt.want)

			_, err = agg.EditCategory(f.ctx, travel.ID, "Renamed")
			assert.ErrorIs(t, err, tt.want)

			_, err = agg.DeleteCategory(f.ctx, travel.ID, blog.DeleteOptions{ReassignDependents: true})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// Nothing changed.
	b, err := f.svc.GetBlog(f.ctx, f.blog.ID)
	require.NoError(t, err)
	assert.Equal(t, "Owner's notes", b.Name)

	cats, err := f.svc.ListCategoriesOfBlog(f.ctx, f.blog.ID)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Travel", cats[0].Name)
}

func TestDeleteParentWithChildFailsWithoutReassignment(t *testing.T) {
	f := newFixture(t)
	travel := f.parentCategory(t, "Travel")
	japan := f.childCategory(t, "Japan", travel)

	_, err := f.settings().DeleteCategory(f.ctx, travel.ID, blog.DeleteOptions{})
	require.ErrorIs(t, err, blog.ErrHasDependents)

	var dep *blog.DependentsError
	require.True(t, errors.As(err, &dep))
	assert.Equal(t, 1, dep.Children)
	assert.Equal(t, 0, dep.Articles)

	// Nothing changed.
	cats, err := f.svc.ListCategoriesOfBlog(f.ctx, f.blog.ID)
	require.NoError(t, err)
	assert.Len(t, cats, 2)

	result, err := f.settings().DeleteCategory(f.ctx, travel.ID, blog.DeleteOptions{ReassignDependents: true})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{japan.ID}, result.RemovedChildren)

	cats, err = f.svc.ListCategoriesOfBlog(f.ctx, f.blog.ID)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestDeleteCategoryWithArticles(t *testing.T) {
	f := newFixture(t)
	travel := f.parentCategory(t, "Travel")
	japan := f.childCategory(t, "Japan", travel)
	onParent := f.article(t, "Packing list", &travel.ID)
	onChild := f.article(t, "Tokyo", &japan.ID)
	untouched := f.article(t, "Loose notes", nil)

	_, err := f.settings().DeleteCategory(f.ctx, japan.ID, blog.DeleteOptions{})
	var dep *blog.DependentsError
	require.True(t, errors.As(err, &dep))
	assert.Equal(t, 0, dep.Children)
	assert.Equal(t, 1, dep.Articles)

	result, err := f.settings().DeleteCategory(f.ctx, travel.ID, blog.DeleteOptions{ReassignDependents: true})
	require.NoError(t, err)
	assert.Equal(t, 2, result.UncategorizedArticles)

	for _, id := range []uuid.UUID{onParent.ID, onChild.ID, untouched.ID} {
		a, err := f.svc.GetArticle(f.ctx, id)
		require.NoError(t, err)
		assert.True(t, a.IsUncategorized(), a.Title)
	}

	_, err = f.svc.GetCategory(f.ctx, japan.ID)
	assert.ErrorIs(t, err, blog.ErrNotFound)
}

func TestDeleteLeafCategory(t *testing.T) {
	f := newFixture(t)
	travel := f.parentCategory(t, "Travel")

	result, err := f.settings().DeleteCategory(f.ctx, travel.ID, blog.DeleteOptions{})
	require.NoError(t, err)
	assert.Empty(t, result.RemovedChildren)
	assert.Zero(t, result.UncategorizedArticles)

	_, err = f.settings().DeleteCategory(f.ctx, travel.ID, blog.DeleteOptions{})
	assert.ErrorIs(t, err, blog.ErrNotFound)
}

func TestCategoryTree(t *testing.T) {
	f := newFixture(t)
	travel := f.parentCategory(t, "Travel")
	japan := f.childCategory(t, "Japan", travel)
	code := f.parentCategory(t, "Code")

	tree, err := f.svc.CategoryTree(f.ctx, f.blog.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, tree.Len())
	assert.Equal(t, []uuid.UUID{travel.ID, code.ID}, tree.Roots())
	assert.Equal(t, []uuid.UUID{japan.ID}, tree.Children(travel.ID))
	assert.Equal(t, []uuid.UUID{travel.ID, japan.ID}, tree.Subtree(travel.ID))
	assert.Equal(t, []uuid.UUID{code.ID}, tree.Subtree(code.ID))

	got, ok := tree.Get(japan.ID)
	require.True(t, ok)
	assert.Equal(t, "Japan", got.Name)
}

func ptr[T any](v T) *T {
	return &v
}
