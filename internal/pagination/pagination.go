// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pagination converts a total item count and a requested page number
// into a bounded listing window. Out-of-range pages are clamped, never rejected.
package pagination

import "fmt"

// DefaultPageSize is the number of articles shown per listing page.
const DefaultPageSize = 5

// Pagination is the window computed for a single listing request.
// It is never persisted.
type Pagination struct {
	TotalCount int `json:"total_count"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	StartIndex int `json:"start_index"`
}

// Limit returns the number of items that fall inside the window.
func (p Pagination) Limit() int {
	n := p.TotalCount - p.StartIndex
	if n > p.PageSize {
		n = p.PageSize
	}
	if n < 0 {
		return 0
	}
	return n
}

// HasPrev reports whether a page exists before the current one.
func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a page exists after the current one.
func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}

// Calculator computes windows for a fixed page size.
type Calculator struct {
	pageSize int
}

// NewCalculator returns a Calculator for the given page size, which must be positive.
func NewCalculator(pageSize int) (Calculator, error) {
	if pageSize < 1 {
		return Calculator{}, fmt.Errorf("page size must be positive, got %d", pageSize)
	}
	return Calculator{pageSize: pageSize}, nil
}

// PageSize returns the configured page size.
func (c Calculator) PageSize() int {
	return c.pageSize
}

// Paginate returns the window for requestedPage over totalCount items.
// Pages below 1 are clamped to 1 and pages past the end are clamped to the
// last page (or 1 when there are no items).
func (c Calculator) Paginate(totalCount, requestedPage int) Pagination {
	if totalCount < 0 {
		totalCount = 0
	}

	totalPages := totalCount / c.pageSize
	if totalCount%c.pageSize > 0 {
		totalPages++
	}

	page := requestedPage
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	return Pagination{
		TotalCount: totalCount,
		Page:       page,
		PageSize:   c.pageSize,
		TotalPages: totalPages,
		StartIndex: (page - 1) * c.pageSize,
	}
}
