package postservice

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/tomaskoller/inkwell/internal/common"
)

func newPostModel(sub common.Substrate, c *common.Cache) *postModel {
	return &postModel{sub: sub, c: c}
}

// load returns the full collection in storage order. An absent substrate key
// yields an empty collection, not an error. The caller gets its own copy; the
// cached slice is never handed out directly.
func (m *postModel) load(ctx context.Context) ([]Post, error) {
	if v, ok := m.c.Get(common.CacheKeyCollection(storageKey)); ok {
		if posts, ok := v.([]Post); ok {
			return slices.Clone(posts), nil
		}
	}

	raw, found, err := m.sub.Get(ctx, storageKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var posts []Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		return nil, &common.SubstrateError{Op: "decode", Key: storageKey, Err: err}
	}

	m.c.Set(common.CacheKeyCollection(storageKey), slices.Clone(posts))

	return posts, nil
}

// save serializes the complete collection in one write. The cache is only
// refreshed after the substrate write succeeded.
func (m *postModel) save(ctx context.Context, posts []Post) error {
	if posts == nil {
		posts = []Post{}
	}

	raw, err := json.Marshal(posts)
	if err != nil {
		return &common.SubstrateError{Op: "encode", Key: storageKey, Err: err}
	}

	if err := m.sub.Set(ctx, storageKey, string(raw)); err != nil {
		return err
	}

	m.c.Set(common.CacheKeyCollection(storageKey), slices.Clone(posts))

	return nil
}

// exists reports whether the substrate holds a post collection at all,
// bypassing the cache. Used by seeding.
func (m *postModel) exists(ctx context.Context) (bool, error) {
	_, found, err := m.sub.Get(ctx, storageKey)
	return found, err
}
