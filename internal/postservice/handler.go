package postservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tomaskoller/inkwell/internal/common"
)

func NewPostService(sub common.Substrate, c *common.Cache) *PostService {
	return &PostService{m: newPostModel(sub, c)}
}

type CreatePostRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Excerpt    string `json:"excerpt"`
	AuthorID   string `json:"authorId"`
	AuthorName string `json:"authorName"`
	Published  bool   `json:"published"`
}

// UpdatePostRequest carries a partial update. Nil fields are left untouched;
// there is no way to distinguish "unset this field" from "field not given".
type UpdatePostRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Excerpt   *string `json:"excerpt"`
	Published *bool   `json:"published"`
}

// GetAll returns the full collection in storage order.
func (s *PostService) GetAll(ctx context.Context) ([]Post, error) {
	return s.m.load(ctx)
}

// GetPublished returns the published posts, newest first. Posts with equal
// timestamps keep their relative storage order.
func (s *PostService) GetPublished(ctx context.Context) ([]Post, error) {
	posts, err := s.m.load(ctx)
	if err != nil {
		return nil, err
	}

	var published []Post
	for _, p := range posts {
		if p.Published {
			published = append(published, p)
		}
	}

	return SortPosts(published, SortNewest), nil
}

// GetByID returns the post with the given id, or nil if there is none.
// An unknown id is not an error.
func (s *PostService) GetByID(ctx context.Context, id string) (*Post, error) {
	posts, err := s.m.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], nil
		}
	}

	return nil, nil
}

// GetByAuthor returns all posts by one author, published or not, newest first.
func (s *PostService) GetByAuthor(ctx context.Context, authorID string) ([]Post, error) {
	posts, err := s.m.load(ctx)
	if err != nil {
		return nil, err
	}

	var byAuthor []Post
	for _, p := range posts {
		if p.AuthorID == authorID {
			byAuthor = append(byAuthor, p)
		}
	}

	return SortPosts(byAuthor, SortNewest), nil
}

// Create appends a new post to the collection and persists it. The id is
// freshly generated and never reused; createdAt and updatedAt start equal.
// Create fails only if the substrate write fails.
func (s *PostService) Create(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	posts, err := s.m.load(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := Post{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		AuthorID:   req.AuthorID,
		AuthorName: req.AuthorName,
		CreatedAt:  now,
		UpdatedAt:  now,
		Published:  req.Published,
	}

	posts = append(posts, post)
	if err := s.m.save(ctx, posts); err != nil {
		return nil, err
	}

	return &post, nil
}

// Update merges the given fields over the stored post and persists the
// collection. updatedAt is bumped on every successful update, even when no
// semantic field changed; createdAt is never touched. An unknown id returns
// (nil, nil) and performs no write.
func (s *PostService) Update(ctx context.Context, id string, req *UpdatePostRequest) (*Post, error) {
	posts, err := s.m.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range posts {
		if posts[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil
	}

	if req.Title != nil {
		posts[idx].Title = *req.Title
	}
	if req.Content != nil {
		posts[idx].Content = *req.Content
	}
	if req.Excerpt != nil {
		posts[idx].Excerpt = *req.Excerpt
	}
	if req.Published != nil {
		posts[idx].Published = *req.Published
	}
	posts[idx].UpdatedAt = time.Now().UTC()

	if err := s.m.save(ctx, posts); err != nil {
		return nil, err
	}

	return &posts[idx], nil
}

// Delete removes the post with the given id and reports whether anything was
// removed. Deleting an unknown id is not an error. Posts are not cascaded
// when an account goes away; the author link simply dangles.
func (s *PostService) Delete(ctx context.Context, id string) (bool, error) {
	posts, err := s.m.load(ctx)
	if err != nil {
		return false, err
	}

	remaining := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.ID != id {
			remaining = append(remaining, p)
		}
	}

	if len(remaining) == len(posts) {
		return false, nil
	}

	if err := s.m.save(ctx, remaining); err != nil {
		return false, err
	}

	return true, nil
}
