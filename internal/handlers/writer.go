package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"customblog/internal/blog"
	"customblog/internal/cache"
	"customblog/internal/middleware"
	"customblog/internal/models"
)

// Writer groups the handlers a member uses to manage their own blogs:
// writing articles, renaming the blog and maintaining its categories.
// Every route is mounted behind RequireAuth.
type Writer struct {
	svc      *blog.Service
	listings *cache.ListingCache
}

// NewWriter creates a new Writer handler group. listings may be nil.
func NewWriter(svc *blog.Service, listings *cache.ListingCache) *Writer {
	return &Writer{svc: svc, listings: listings}
}

// ownedBlog loads a blog and checks the signed-in member owns it.
func (wr *Writer) ownedBlog(ctx context.Context, blogID uuid.UUID) (*models.Blog, uuid.UUID, error) {
	member := middleware.MemberID(ctx)
	if member == uuid.Nil {
		return nil, uuid.Nil, blog.ErrUnauthenticated
	}
	b, err := wr.svc.GetBlog(ctx, blogID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if b.MemberID != member {
		return nil, uuid.Nil, fmt.Errorf("blog %s is not owned by %s: %w", blogID, member, blog.ErrForbidden)
	}
	return b, member, nil
}

type nameRequest struct {
	Name string `json:"name"`
}

// MyBlogs lists the blogs of the signed-in member.
func (wr *Writer) MyBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := wr.svc.ListBlogsOfMember(r.Context(), middleware.MemberID(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if blogs == nil {
		blogs = []models.Blog{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"blogs": blogs})
}

// CreateBlog opens a new blog for the signed-in member.
func (wr *Writer) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := wr.svc.CreateBlog(r.Context(), middleware.MemberID(r.Context()), req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

type settingsPage struct {
	Blog       *models.Blog      `json:"blog"`
	Categories []models.Category `json:"categories"`
}

// WriteForm returns what the article editor needs: the blog and the
// categories an article can be filed under.
func (wr *Writer) WriteForm(w http.ResponseWriter, r *http.Request) {
	wr.settingsView(w, r)
}

// Settings returns the blog settings page: the blog and its category tree.
func (wr *Writer) Settings(w http.ResponseWriter, r *http.Request) {
	wr.settingsView(w, r)
}

func (wr *Writer) settingsView(w http.ResponseWriter, r *http.Request) {
	blogID, ok := uuidParam(w, r, "blogID")
	if !ok {
		return
	}

	var resp settingsPage
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		b, _, err := wr.ownedBlog(ctx, blogID)
		resp.Blog = b
		return err
	})
	g.Go(func() error {
		cats, err := wr.svc.ListCategoriesOfBlog(ctx, blogID)
		resp.Categories = cats
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(w, r, err)
		return
	}
	if resp.Categories == nil {
		resp.Categories = []models.Category{}
	}
	writeJSON(w, http.StatusOK, resp)
}

type articleRequest struct {
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	CategoryID *uuid.UUID `json:"category_id"`
}

// CreateArticle publishes a new article in the blog.
func (wr *Writer) CreateArticle(w http.ResponseWriter, r *http.Request) {
	blogID, ok := uuidParam(w, r, "blogID")
	if !ok {
		return
	}
	var req articleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	_, member, err := wr.ownedBlog(r.Context(), blogID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	a, err := wr.svc.CreateArticle(r.Context(), blog.ArticleInput{
		BlogID:     blogID,
		AuthorID:   member,
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Body:       req.Body,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	wr.listings.InvalidateBlog(r.Context(), blogID)
	writeJSON(w, http.StatusCreated, a)
}

// RenameBlog changes the blog's display name.
func (wr *Writer) RenameBlog(w http.ResponseWriter, r *http.Request) {
	blogID, ok := uuidParam(w, r, "blogID")
	if !ok {
		return
	}
	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	_, member, err := wr.ownedBlog(r.Context(), blogID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	b, err := wr.svc.Blog(blogID, member).Rename(r.Context(), req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

type categoryRequest struct {
	Name     string     `json:"name"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// AddCategory creates a parent category, or a child when parent_id is set.
func (wr *Writer) AddCategory(w http.ResponseWriter, r *http.Request) {
	blogID, ok := uuidParam(w, r, "blogID")
	if !ok {
		return
	}
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	_, member, err := wr.ownedBlog(r.Context(), blogID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	c, err := wr.svc.Blog(blogID, member).AddCategory(r.Context(), blog.CategoryInput{
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	wr.listings.InvalidateBlog(r.Context(), blogID)
	writeJSON(w, http.StatusCreated, c)
}

// EditCategory renames a category of the blog.
func (wr *Writer) EditCategory(w http.ResponseWriter, r *http.Request) {
	blogID, ok := uuidParam(w, r, "blogID")
	if !ok {
		return
	}
	categoryID, ok := uuidParam(w, r, "categoryID")
	if !ok {
		return
	}
	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	_, member, err := wr.ownedBlog(r.Context(), blogID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	c, err := wr.svc.Blog(blogID, member).EditCategory(r.Context(), categoryID, req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}

	wr.listings.InvalidateBlog(r.Context(), blogID)
	writeJSON(w, http.StatusOK, c)
}

// DeleteCategory removes a category. Without ?reassign=true a category
// that still has children or articles is refused with 409.
func (wr *Writer) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	blogID, ok := uuidParam(w, r, "blogID")
	if !ok {
		return
	}
	categoryID, ok := uuidParam(w, r, "categoryID")
	if !ok {
		return
	}
	reassign, _ := strconv.ParseBool(r.URL.Query().Get("reassign"))

	_, member, err := wr.ownedBlog(r.Context(), blogID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	res, err := wr.svc.Blog(blogID, member).DeleteCategory(r.Context(), categoryID, blog.DeleteOptions{
		ReassignDependents: reassign,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	wr.listings.InvalidateBlog(r.Context(), blogID)
	writeJSON(w, http.StatusOK, res)
}
