// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for the handler
// tests: an in-memory datastore, an in-process session store and a chi
// router mounting every handler.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"customblog/internal/blog"
	"customblog/internal/memstore"
	"customblog/internal/middleware"
	"customblog/internal/models"
	"customblog/internal/pagination"
	"customblog/internal/session"
	"customblog/internal/store"
)

// fakeSessions keeps sessions in memory, keyed by cookie value.
type fakeSessions struct {
	mu   sync.Mutex
	data map[string]*session.Data
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{data: make(map[string]*session.Data)}
}

func (f *fakeSessions) Create(_ context.Context, w http.ResponseWriter, data *session.Data) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.NewString()
	f.data[id] = data
	http.SetCookie(w, &http.Cookie{Name: session.CookieName, Value: id, Path: "/"})
	return id, nil
}

func (f *fakeSessions) Get(_ context.Context, r *http.Request) (*session.Data, error) {
	c, err := r.Cookie(session.CookieName)
	if err != nil {
		return nil, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[c.Value], nil
}

func (f *fakeSessions) Destroy(_ context.Context, w http.ResponseWriter, r *http.Request) error {
	c, err := r.Cookie(session.CookieName)
	if err != nil {
		return nil
	}
	f.mu.Lock()
	delete(f.data, c.Value)
	f.mu.Unlock()
	http.SetCookie(w, &http.Cookie{Name: session.CookieName, Value: "", Path: "/", MaxAge: -1})
	return nil
}

// login stores a session for m directly and returns its cookie.
func (f *fakeSessions) login(m models.Member) *http.Cookie {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.NewString()
	f.data[id] = &session.Data{MemberID: m.ID, Email: m.Email, DisplayName: m.DisplayName}
	return &http.Cookie{Name: session.CookieName, Value: id}
}

// tickingClock returns a clock that moves one minute per reading, so
// articles created one after another are strictly ordered by time.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Minute)
		return now
	}
}

type testEnv struct {
	t        *testing.T
	ctx      context.Context
	ds       *memstore.Store
	svc      *blog.Service
	sessions *fakeSessions
	handler  http.Handler

	owner  models.Member
	blog   *models.Blog
	cookie *http.Cookie
}

// newTestEnv builds handlers over an empty memory store with one member
// owning one blog, signed in as that member. The page size is 2.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()
	ds := memstore.New()
	pages, err := pagination.NewCalculator(2)
	require.NoError(t, err)
	svc := blog.NewService(ds, pages, blog.WithClock(tickingClock()))
	sessions := newFakeSessions()

	public := NewPublic(svc, nil)
	writer := NewWriter(svc, nil)
	auth := NewAuth(sessions, ds.Members())

	r := chi.NewRouter()
	r.Use(middleware.LoadSession(sessions))
	r.Post("/auth/login", auth.Login)
	r.Post("/auth/logout", auth.Logout)
	r.Get("/auth/me", auth.Me)
	r.Get("/blogs/{blogID}", public.BlogHome)
	r.Get("/blogs/{blogID}/categories/{categoryID}", public.CategoryPage)
	r.Get("/articles/{articleID}", public.ArticleView)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/articles/{articleID}/comments", public.PostComment)
		r.Get("/me/blogs", writer.MyBlogs)
		r.Post("/blogs", writer.CreateBlog)
		r.Get("/blogs/{blogID}/write", writer.WriteForm)
		r.Get("/blogs/{blogID}/settings", writer.Settings)
		r.Post("/blogs/{blogID}/articles", writer.CreateArticle)
		r.Patch("/blogs/{blogID}", writer.RenameBlog)
		r.Post("/blogs/{blogID}/categories", writer.AddCategory)
		r.Patch("/blogs/{blogID}/categories/{categoryID}", writer.EditCategory)
		r.Delete("/blogs/{blogID}/categories/{categoryID}", writer.DeleteCategory)
	})

	env := &testEnv{t: t, ctx: ctx, ds: ds, svc: svc, sessions: sessions, handler: r}
	env.owner = env.member("owner@example.com", "secret")
	env.blog, err = svc.CreateBlog(ctx, env.owner.ID, "Owner's blog")
	require.NoError(t, err)
	env.cookie = sessions.login(env.owner)
	return env
}

// member registers a member with a bcrypt-hashed password.
func (e *testEnv) member(email, password string) models.Member {
	e.t.Helper()
	hash, err := store.HashPassword(password)
	require.NoError(e.t, err)
	m := models.Member{Email: email, PasswordHash: hash, DisplayName: email}
	require.NoError(e.t, e.ds.Members().Create(e.ctx, &m))
	return m
}

// do sends a request with an optional JSON body and session cookie.
func (e *testEnv) do(method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(e.t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

// decode unmarshals a response body into a value of type T.
func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

func (e *testEnv) blogPath(suffix string) string {
	return "/blogs/" + e.blog.ID.String() + suffix
}

// addArticle creates an article through the service.
func (e *testEnv) addArticle(title string, categoryID *uuid.UUID) *models.Article {
	e.t.Helper()
	a, err := e.svc.CreateArticle(e.ctx, blog.ArticleInput{
		BlogID: e.blog.ID, AuthorID: e.owner.ID, CategoryID: categoryID, Title: title, Body: "body of " + title,
	})
	require.NoError(e.t, err)
	return a
}

// addCategory creates a category through the aggregate.
func (e *testEnv) addCategory(name string, parentID *uuid.UUID) *models.Category {
	e.t.Helper()
	c, err := e.svc.Blog(e.blog.ID, e.owner.ID).AddCategory(e.ctx, blog.CategoryInput{Name: name, ParentID: parentID})
	require.NoError(e.t, err)
	return c
}
