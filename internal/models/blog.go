// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Blog is a member-owned container for categories and articles.
// It holds identities of its categories and articles, never the records.
type Blog struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	MemberID  uuid.UUID `json:"member_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Virtual fields populated by the engine.
	CategoryIDs []uuid.UUID `json:"category_ids,omitempty"`
	ArticleIDs  []uuid.UUID `json:"article_ids,omitempty"`
}

// Rename changes the blog's display name.
func (b *Blog) Rename(name string) {
	b.Name = name
}
