// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Error kinds returned by the engine. Callers match them with errors.Is;
// every returned error wraps exactly one of them.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidHierarchy = errors.New("invalid category hierarchy")
	ErrInvalidReference = errors.New("invalid reference")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrForbidden        = errors.New("forbidden")
	ErrHasDependents    = errors.New("category has dependents")
	ErrInvalidInput     = errors.New("invalid input")
)

// DependentsError reports why a category could not be deleted.
type DependentsError struct {
	CategoryID uuid.UUID
	Children   int
	Articles   int
}

func (e *DependentsError) Error() string {
	return fmt.Sprintf("category %s has %d child categories and %d articles", e.CategoryID, e.Children, e.Articles)
}

// Is makes DependentsError match ErrHasDependents.
func (e *DependentsError) Is(target error) bool {
	return target == ErrHasDependents
}

// FieldErrors maps form field names to a human-readable message.
// Validation failures never mutate state.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, f[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Is makes FieldErrors match ErrInvalidInput.
func (f FieldErrors) Is(target error) bool {
	return target == ErrInvalidInput
}
