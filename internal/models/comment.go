package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reply to an article. ParentID is set when the comment
// answers another top-level comment of the same article.
type Comment struct {
	ID        uuid.UUID  `json:"id"`
	ArticleID uuid.UUID  `json:"article_id"`
	AuthorID  uuid.UUID  `json:"author_id"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	Body      string     `json:"body"`
	Seq       int64      `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsReply returns true if the comment is nested under another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
