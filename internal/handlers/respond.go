// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"customblog/internal/blog"
)

// maxBodyBytes caps request bodies. Article bodies are the largest input.
const maxBodyBytes = 1 << 20

// errorResponse is the JSON shape of every failed request.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// writeJSON sends a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("encode response failed", "error", err)
	}
}

// writeError sends a JSON error body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// respondError maps engine errors to HTTP status codes. Anything it does
// not recognise is logged and reported as a 500 without details.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var fields blog.FieldErrors
	var deps *blog.DependentsError

	switch {
	case errors.As(err, &fields):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Fields: fields,
		})
	case errors.As(err, &deps):
		writeError(w, http.StatusConflict, fmt.Sprintf(
			"category has %d child categories and %d articles; retry with reassign=true to move them",
			deps.Children, deps.Articles))
	case errors.Is(err, blog.ErrHasDependents):
		writeError(w, http.StatusConflict, "category still has dependents; retry the request")
	case errors.Is(err, blog.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, blog.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, blog.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, blog.ErrInvalidHierarchy):
		writeError(w, http.StatusBadRequest, "categories can only be nested one level deep")
	case errors.Is(err, blog.ErrInvalidReference):
		writeError(w, http.StatusBadRequest, "invalid reference")
	default:
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads a size-limited JSON body into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// uuidParam parses a chi URL parameter as a UUID. A malformed id can never
// name a record, so it is reported as 404.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return uuid.Nil, false
	}
	return id, true
}

// pageParam reads the "page" query parameter. Missing or non-numeric values
// mean the first page; out-of-range numbers are clamped by the engine.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return page
}
