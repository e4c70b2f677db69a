package postservice

import (
	"time"

	"github.com/tomaskoller/inkwell/internal/common"
)

// storageKey is the substrate key the whole post collection lives under.
const storageKey = "blogPosts"

type Post struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// Content is stored in Markdown format.
	Content string `json:"content"`
	// Excerpt is a short summary shown in listings, edited independently of
	// Content.
	Excerpt  string `json:"excerpt"`
	AuthorID string `json:"authorId"`
	// AuthorName is a snapshot of the author's display name taken at creation
	// time. It is never re-derived from the account collection afterwards.
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Published  bool      `json:"published"`
}

type postModel struct {
	sub common.Substrate
	c   *common.Cache
}

// PostService owns the post collection. It performs no role checks: callers
// are expected to gate admin-only mutations on the session before invoking it.
type PostService struct {
	m *postModel
}
