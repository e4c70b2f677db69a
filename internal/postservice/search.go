package postservice

import (
	"slices"
	"strings"
)

// SortOrder selects one of the listing orders offered to readers.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
	SortTitle  SortOrder = "title"
	SortAuthor SortOrder = "author"
)

// Search filters posts to those whose title, excerpt, or author name contains
// the term, case-insensitively. A blank term matches everything. The result
// keeps the input order; search is a derived view, nothing is stored.
func Search(posts []Post, term string) []Post {
	term = strings.TrimSpace(term)
	if term == "" {
		return posts
	}

	needle := strings.ToLower(term)

	var matched []Post
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Excerpt), needle) ||
			strings.Contains(strings.ToLower(p.AuthorName), needle) {
			matched = append(matched, p)
		}
	}

	return matched
}

// SortPosts returns a sorted copy of posts. All orders are stable: posts that
// compare equal keep their relative input order.
func SortPosts(posts []Post, order SortOrder) []Post {
	sorted := slices.Clone(posts)

	switch order {
	case SortOldest:
		slices.SortStableFunc(sorted, func(a, b Post) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case SortTitle:
		slices.SortStableFunc(sorted, func(a, b Post) int {
			return strings.Compare(a.Title, b.Title)
		})
	case SortAuthor:
		slices.SortStableFunc(sorted, func(a, b Post) int {
			return strings.Compare(a.AuthorName, b.AuthorName)
		})
	default:
		slices.SortStableFunc(sorted, func(a, b Post) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}

	return sorted
}
