// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package database

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps users and blogs in maps. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]User
	blogs map[string]Blog

	// scans counts BlogIDs calls; tests use it to observe cache refreshes.
	scans int
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]User),
		blogs: make(map[string]Blog),
	}
}

// PutUser inserts or replaces u.
func (s *MemoryStore) PutUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// PutBlog inserts or replaces b.
func (s *MemoryStore) PutBlog(b Blog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blogs[b.ID] = b
}

// Users implements Store. Results are sorted by id.
func (s *MemoryStore) Users(ctx context.Context) ([]User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Blogs implements Store. Results are sorted by id.
func (s *MemoryStore) Blogs(ctx context.Context) ([]Blog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Blog, 0, len(s.blogs))
	for _, b := range s.blogs {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// BlogIDs implements Store.
func (s *MemoryStore) BlogIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scans++

	ids := make([]string, 0, len(s.blogs))
	for id := range s.blogs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// BlogIDScans reports how many times BlogIDs has been called.
func (s *MemoryStore) BlogIDScans() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scans
}

// BlogsWithAuthors implements Store.
func (s *MemoryStore) BlogsWithAuthors(ctx context.Context, ids []string) ([]AuthoredBlog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]AuthoredBlog, 0, len(ids))
	for _, id := range ids {
		b, ok := s.blogs[id]
		if !ok {
			continue
		}
		u, ok := s.users[b.Author]
		if !ok {
			continue
		}
		out = append(out, AuthoredBlog{
			Blog:   b,
			Author: Author{ID: u.ID, Name: u.Name, ProfileImage: u.ProfileImage},
		})
	}
	return out, nil
}

// Ping implements Store.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close implements Store.
func (s *MemoryStore) Close(context.Context) error {
	return nil
}
