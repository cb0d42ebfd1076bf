// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

// Package database provides read access to the blogging platform's user and
// blog collections.
//
// Three backends implement Store:
//   - MongoStore: the production document store (collections "users" and "blogs")
//   - DuckDBStore: an embedded single-file store for local runs and fixtures
//   - MemoryStore: an in-process store for tests
//
// All identifiers cross this boundary as strings. Mongo ObjectIDs are
// rendered as their 24 character hex form.
package database

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// User is a platform account as seen by the recommender.
type User struct {
	ID           string
	Name         string
	ProfileImage string
	Interests    []string // tags the user follows ("myInterests")
	Following    []string // author ids the user follows
	ReadArticles []string // blog ids the user has read
	Blogs        []string // blog ids the user has written
}

// Blog is a content item. Views and Likes are nil when the source document
// has no such field.
type Blog struct {
	ID            string
	Author        string
	Title         string
	Description   string
	Img           string
	Tags          []string
	Views         *int64
	Likes         *int64
	CommentsCount int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Author is the display subset of a User attached to a joined blog.
type Author struct {
	ID           string
	Name         string
	ProfileImage string
}

// AuthoredBlog is a Blog joined with its author.
type AuthoredBlog struct {
	Blog
	Author Author
}

// Store is the full read interface used by training and serving.
type Store interface {
	// Users returns every user.
	Users(ctx context.Context) ([]User, error)

	// Blogs returns every blog.
	Blogs(ctx context.Context) ([]Blog, error)

	// BlogIDs returns the distinct identifiers of all blogs.
	BlogIDs(ctx context.Context) ([]string, error)

	// BlogsWithAuthors returns the blogs named by ids joined with their
	// authors, in the order of ids. Blogs whose author does not exist and
	// ids that match no blog are omitted.
	BlogsWithAuthors(ctx context.Context, ids []string) ([]AuthoredBlog, error)

	// Ping checks connectivity.
	Ping(ctx context.Context) error

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}

// orderByIDs reorders joined rows to follow ids. Rows whose id is not in
// ids are dropped; duplicate ids yield the row once per occurrence.
func orderByIDs(ids []string, rows []AuthoredBlog) []AuthoredBlog {
	byID := make(map[string]AuthoredBlog, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}
	out := make([]AuthoredBlog, 0, len(rows))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

func int64Ptr(v int64) *int64 { return &v }
