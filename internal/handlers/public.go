// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"customblog/internal/blog"
	"customblog/internal/cache"
	"customblog/internal/middleware"
	"customblog/internal/models"
	"customblog/internal/session"
)

// Public groups the read-only blog pages and comment posting.
type Public struct {
	svc      *blog.Service
	listings *cache.ListingCache
}

// NewPublic creates a new Public handler group. listings may be nil.
func NewPublic(svc *blog.Service, listings *cache.ListingCache) *Public {
	return &Public{svc: svc, listings: listings}
}

// viewer describes the signed-in member, if any, for page chrome.
type viewer struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	IsOwner     bool      `json:"is_owner"`
}

func newViewer(sess *session.Data, b *models.Blog) *viewer {
	if sess == nil {
		return nil
	}
	return &viewer{
		ID:          sess.MemberID,
		DisplayName: sess.DisplayName,
		IsOwner:     b != nil && b.MemberID == sess.MemberID,
	}
}

type blogPage struct {
	Blog       *models.Blog      `json:"blog"`
	Categories []models.Category `json:"categories"`
	Articles   *blog.ArticlePage `json:"articles"`
	Viewer     *viewer           `json:"viewer"`
}

type categoryPage struct {
	Blog       *models.Blog      `json:"blog"`
	Category   *models.Category  `json:"category"`
	Categories []models.Category `json:"categories"`
	Articles   *blog.ArticlePage `json:"articles"`
	Viewer     *viewer           `json:"viewer"`
}

type articleView struct {
	Article  *models.Article  `json:"article"`
	Blog     *models.Blog     `json:"blog"`
	Comments []models.Comment `json:"comments"`
	Viewer   *viewer          `json:"viewer"`
}

// BlogHome serves a blog's landing page: one page of its newest articles,
// the category tree and the blog itself, loaded concurrently.
func (p *Public) BlogHome(w http.ResponseWriter, r *http.Request) {
	blogID, ok := uuidParam(w, r, "blogID")
	if !ok {
		return
	}
	page := pageParam(r)

	var resp blogPage
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		b, err := p.svc.GetBlog(ctx, blogID)
		resp.Blog = b
		return err
	})
	g.Go(func() error {
		cats, err := p.categories(ctx, blogID)
		resp.Categories = cats
		return err
	})
	g.Go(func() error {
		articles, err := p.blogArticles(ctx, blogID, page)
		resp.Articles = articles
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(w, r, err)
		return
	}

	resp.Viewer = newViewer(middleware.SessionFromCtx(r.Context()), resp.Blog)
	writeJSON(w, http.StatusOK, resp)
}

// CategoryPage serves one page of the articles filed directly under a
// category, alongside the blog's category tree.
func (p *Public) CategoryPage(w http.ResponseWriter, r *http.Request) {
	blogID, ok := uuidParam(w, r, "blogID")
	if !ok {
		return
	}
	categoryID, ok := uuidParam(w, r, "categoryID")
	if !ok {
		return
	}
	page := pageParam(r)

	var resp categoryPage
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		b, err := p.svc.GetBlog(ctx, blogID)
		resp.Blog = b
		return err
	})
	g.Go(func() error {
		c, err := p.svc.GetCategory(ctx, categoryID)
		resp.Category = c
		return err
	})
	g.Go(func() error {
		cats, err := p.categories(ctx, blogID)
		resp.Categories = cats
		return err
	})
	g.Go(func() error {
		articles, err := p.categoryArticles(ctx, blogID, categoryID, page)
		resp.Articles = articles
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(w, r, err)
		return
	}

	resp.Viewer = newViewer(middleware.SessionFromCtx(r.Context()), resp.Blog)
	writeJSON(w, http.StatusOK, resp)
}

// ArticleView serves an article with its blog and full comment thread.
// Comments are in posting order; replies reference their parent by id.
func (p *Public) ArticleView(w http.ResponseWriter, r *http.Request) {
	articleID, ok := uuidParam(w, r, "articleID")
	if !ok {
		return
	}

	a, err := p.svc.GetArticle(r.Context(), articleID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := articleView{Article: a}
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		b, err := p.svc.GetBlog(ctx, a.BlogID)
		resp.Blog = b
		return err
	})
	g.Go(func() error {
		thread, err := p.svc.ListThread(ctx, a.ID)
		resp.Comments = thread
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(w, r, err)
		return
	}

	resp.Viewer = newViewer(middleware.SessionFromCtx(r.Context()), resp.Blog)
	writeJSON(w, http.StatusOK, resp)
}

type commentRequest struct {
	Body     string     `json:"body"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// PostComment adds a comment to an article. With parent_id set, the
// comment is a reply to that top-level comment.
func (p *Public) PostComment(w http.ResponseWriter, r *http.Request) {
	articleID, ok := uuidParam(w, r, "articleID")
	if !ok {
		return
	}

	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	author := middleware.MemberID(r.Context())

	var (
		c   *models.Comment
		err error
	)
	if req.ParentID == nil {
		c, err = p.svc.PostTopLevelComment(r.Context(), articleID, author, req.Body)
	} else {
		c, err = p.svc.PostReply(r.Context(), articleID, *req.ParentID, author, req.Body)
	}
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

func (p *Public) categories(ctx context.Context, blogID uuid.UUID) ([]models.Category, error) {
	tree, err := p.svc.CategoryTree(ctx, blogID)
	if err != nil {
		return nil, err
	}
	return tree.Flat(), nil
}

// blogArticles reads a blog listing page through the listing cache.
func (p *Public) blogArticles(ctx context.Context, blogID uuid.UUID, page int) (*blog.ArticlePage, error) {
	l := cache.Listing{BlogID: blogID, Page: page}
	return p.listings.Fetch(ctx, l, func(ctx context.Context) (*blog.ArticlePage, error) {
		return p.svc.ListArticlesOfBlog(ctx, blogID, page)
	})
}

// categoryArticles reads a category listing page through the listing cache.
func (p *Public) categoryArticles(ctx context.Context, blogID, categoryID uuid.UUID, page int) (*blog.ArticlePage, error) {
	l := cache.Listing{BlogID: blogID, CategoryID: &categoryID, Page: page}
	return p.listings.Fetch(ctx, l, func(ctx context.Context) (*blog.ArticlePage, error) {
		return p.svc.ListArticlesOfCategory(ctx, blogID, categoryID, page)
	})
}
