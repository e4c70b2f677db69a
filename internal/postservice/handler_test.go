package postservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomaskoller/inkwell/internal/common"
)

func setupTestService(t *testing.T) *PostService {
	t.Helper()
	return NewPostService(common.NewMemorySubstrate(), common.TestCache(t))
}

// createTestPost inserts a post with a fixed creation time, bypassing the
// service so tests can control ordering.
func createTestPost(t *testing.T, s *PostService, title, authorID string, createdAt time.Time, published bool) Post {
	t.Helper()
	ctx := context.Background()

	posts, err := s.m.load(ctx)
	require.NoError(t, err)

	post := Post{
		ID:         title + "-" + createdAt.Format(time.RFC3339Nano),
		Title:      title,
		Content:    "content of " + title,
		Excerpt:    "excerpt of " + title,
		AuthorID:   authorID,
		AuthorName: "Author " + authorID,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
		Published:  published,
	}

	require.NoError(t, s.m.save(ctx, append(posts, post)))

	return post
}

func TestCreatePost(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()

	req := &CreatePostRequest{
		Title:      "Test Post",
		Content:    "This is a test post.",
		Excerpt:    "A test post.",
		AuthorID:   "1",
		AuthorName: "Admin User",
		Published:  false,
	}

	post, err := s.Create(ctx, req)
	require.NoError(t, err)

	assert.NotEmpty(t, post.ID)
	assert.Equal(t, req.Title, post.Title)
	assert.Equal(t, req.Content, post.Content)
	assert.Equal(t, req.Excerpt, post.Excerpt)
	assert.Equal(t, req.AuthorID, post.AuthorID)
	assert.Equal(t, req.AuthorName, post.AuthorName)
	assert.False(t, post.Published)
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)

	// round-trip: the stored record equals the returned one
	got, err := s.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *post, *got)
}

func TestCreatePostUniqueIDs(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		post, err := s.Create(ctx, &CreatePostRequest{Title: "T", Content: "C", AuthorID: "1", AuthorName: "A"})
		require.NoError(t, err)
		assert.False(t, seen[post.ID], "duplicate id %q", post.ID)
		seen[post.ID] = true
	}

	posts, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 50)
}

func TestGetAllPreservesStorageOrder(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()

	posts, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts, "empty substrate yields an empty collection")

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	// inserted newest-first on purpose: storage order is insertion order
	createTestPost(t, s, "newer", "1", base.Add(time.Hour), true)
	createTestPost(t, s, "older", "1", base, true)

	posts, err = s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Title)
	assert.Equal(t, "older", posts[1].Title)
}

func TestGetPublished(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	createTestPost(t, s, "first", "1", base, true)
	createTestPost(t, s, "second", "1", base.Add(time.Second), true)
	createTestPost(t, s, "third", "2", base.Add(2*time.Second), true)
	createTestPost(t, s, "draft", "2", base.Add(3*time.Second), false)

	posts, err := s.GetPublished(ctx)
	require.NoError(t, err)

	require.Len(t, posts, 3)
	assert.Equal(t, "third", posts[0].Title)
	assert.Equal(t, "second", posts[1].Title)
	assert.Equal(t, "first", posts[2].Title)
}

func TestGetPublishedTieBreakIsStable(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()

	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	createTestPost(t, s, "a", "1", at, true)
	createTestPost(t, s, "b", "1", at, true)
	createTestPost(t, s, "c", "1", at, true)

	posts, err := s.GetPublished(ctx)
	require.NoError(t, err)

	require.Len(t, posts, 3)
	assert.Equal(t, "a", posts[0].Title)
	assert.Equal(t, "b", posts[1].Title)
	assert.Equal(t, "c", posts[2].Title)
}

func TestGetByID(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()

	post := createTestPost(t, s, "findme", "1", time.Now().UTC(), true)

	t.Run("known id", func(t *testing.T) {
		got, err := s.GetByID(ctx, post.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, post.Title, got.Title)
	})

	t.Run("unknown id", func(t *testing.T) {
		got, err := s.GetByID(ctx, "nope")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestGetByAuthor(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	createTestPost(t, s, "mine old", "1", base, true)
	createTestPost(t, s, "theirs", "2", base.Add(time.Second), true)
	createTestPost(t, s, "mine draft", "1", base.Add(2*time.Second), false)

	posts, err := s.GetByAuthor(ctx, "1")
	require.NoError(t, err)

	require.Len(t, posts, 2)
	assert.Equal(t, "mine draft", posts[0].Title, "unpublished posts are included and newest comes first")
	assert.Equal(t, "mine old", posts[1].Title)
}

func TestUpdatePost(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()

	post := createTestPost(t, s, "original", "1", time.Now().UTC().Add(-time.Hour), false)

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		title := "renamed"
		updated, err := s.Update(ctx, post.ID, &UpdatePostRequest{Title: &title})
		require.NoError(t, err)
		require.NotNil(t, updated)

		assert.Equal(t, "renamed", updated.Title)
		assert.Equal(t, post.Content, updated.Content)
		assert.Equal(t, post.Excerpt, updated.Excerpt)
		assert.False(t, updated.Published)
		assert.Equal(t, post.CreatedAt, updated.CreatedAt)
		assert.True(t, updated.UpdatedAt.After(post.UpdatedAt))
	})

	t.Run("updatedAt bumps even without semantic change", func(t *testing.T) {
		before, err := s.GetByID(ctx, post.ID)
		require.NoError(t, err)

		updated, err := s.Update(ctx, post.ID, &UpdatePostRequest{})
		require.NoError(t, err)
		require.NotNil(t, updated)

		assert.Equal(t, before.Title, updated.Title)
		assert.False(t, updated.UpdatedAt.Before(before.UpdatedAt))
		assert.Equal(t, before.CreatedAt, updated.CreatedAt)
	})

	t.Run("unknown id is absent, not an error", func(t *testing.T) {
		updated, err := s.Update(ctx, "nope", &UpdatePostRequest{})
		assert.NoError(t, err)
		assert.Nil(t, updated)
	})
}

func TestPublishThenList(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()

	post, err := s.Create(ctx, &CreatePostRequest{
		Title:      "T",
		Content:    "C",
		Excerpt:    "E",
		AuthorID:   "1",
		AuthorName: "A",
		Published:  false,
	})
	require.NoError(t, err)

	published, err := s.GetPublished(ctx)
	require.NoError(t, err)
	assert.Empty(t, published)

	flag := true
	_, err = s.Update(ctx, post.ID, &UpdatePostRequest{Published: &flag})
	require.NoError(t, err)

	published, err = s.GetPublished(ctx)
	require.NoError(t, err)

	count := 0
	for _, p := range published {
		if p.ID == post.ID {
			count++
		}
	}
	assert.Equal(t, 1, count, "the post appears exactly once after publishing")
}

func TestDeletePost(t *testing.T) {
	s := setupTestService(t)
	ctx := context.Background()

	post := createTestPost(t, s, "doomed", "1", time.Now().UTC(), true)
	createTestPost(t, s, "survivor", "1", time.Now().UTC(), true)

	deleted, err := s.Delete(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// second delete of the same id reports nothing removed
	deleted, err = s.Delete(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	posts, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "survivor", posts[0].Title)
}

func TestPostsRoundTripThroughSQLite(t *testing.T) {
	sub := common.TestSubstrate(t)
	s := NewPostService(sub, common.TestCache(t))
	ctx := context.Background()

	post, err := s.Create(ctx, &CreatePostRequest{
		Title:      "Persisted",
		Content:    "Body",
		Excerpt:    "Short",
		AuthorID:   "1",
		AuthorName: "Admin User",
		Published:  true,
	})
	require.NoError(t, err)

	// a second service over the same substrate sees the write
	other := NewPostService(sub, common.TestCache(t))
	got, err := other.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, post.Title, got.Title)
	assert.True(t, post.CreatedAt.Equal(got.CreatedAt))
}
