// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/goccy/go-json"

	"github.com/tomtom215/blogminds/internal/logging"
)

// DuckDBStore keeps users and blogs in an embedded DuckDB file. List
// valued fields are stored as JSON text.
type DuckDBStore struct {
	conn *sql.DB
}

const duckdbSchema = `
CREATE TABLE IF NOT EXISTS users (
	id            VARCHAR PRIMARY KEY,
	name          VARCHAR NOT NULL DEFAULT '',
	profile_image VARCHAR NOT NULL DEFAULT '',
	interests     VARCHAR NOT NULL DEFAULT '[]',
	following     VARCHAR NOT NULL DEFAULT '[]',
	read_articles VARCHAR NOT NULL DEFAULT '[]',
	blogs         VARCHAR NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS blogs (
	id             VARCHAR PRIMARY KEY,
	author         VARCHAR NOT NULL,
	title          VARCHAR NOT NULL DEFAULT '',
	description    VARCHAR NOT NULL DEFAULT '',
	img            VARCHAR NOT NULL DEFAULT '',
	tags           VARCHAR NOT NULL DEFAULT '[]',
	views          BIGINT,
	likes_count    BIGINT,
	comments_count BIGINT NOT NULL DEFAULT 0,
	created_at     TIMESTAMP,
	updated_at     TIMESTAMP
);
`

// NewDuckDBStore opens (creating if needed) the database at path and
// ensures the schema exists. An empty path opens an in-memory database.
func NewDuckDBStore(ctx context.Context, path string) (*DuckDBStore, error) {
	if dir := filepath.Dir(path); path != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", dir, err)
		}
	}

	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	if _, err := conn.ExecContext(ctx, duckdbSchema); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("create schema: %w", err)
	}

	logging.Info().Str("path", path).Msg("Opened DuckDB store")
	return &DuckDBStore{conn: conn}, nil
}

// PutUser inserts or replaces u.
func (s *DuckDBStore) PutUser(ctx context.Context, u User) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO users (id, name, profile_image, interests, following, read_articles, blogs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.ProfileImage,
		mustJSON(u.Interests), mustJSON(u.Following), mustJSON(u.ReadArticles), mustJSON(u.Blogs),
	)
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", u.ID, err)
	}
	return nil
}

// PutBlog inserts or replaces b.
func (s *DuckDBStore) PutBlog(ctx context.Context, b Blog) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO blogs (id, author, title, description, img, tags, views, likes_count, comments_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Author, b.Title, b.Description, b.Img, mustJSON(b.Tags),
		nullInt(b.Views), nullInt(b.Likes), b.CommentsCount,
		nullTime(b.CreatedAt), nullTime(b.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert blog %s: %w", b.ID, err)
	}
	return nil
}

// Users implements Store.
func (s *DuckDBStore) Users(ctx context.Context) ([]User, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, name, profile_image, interests, following, read_articles, blogs FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var (
			u                                   User
			interests, following, read, written string
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.ProfileImage, &interests, &following, &read, &written); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if err := unmarshalLists(
			listField{interests, &u.Interests},
			listField{following, &u.Following},
			listField{read, &u.ReadArticles},
			listField{written, &u.Blogs},
		); err != nil {
			return nil, fmt.Errorf("decode user %s: %w", u.ID, err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

const blogColumns = `b.id, b.author, b.title, b.description, b.img, b.tags, b.views, b.likes_count, b.comments_count, b.created_at, b.updated_at`

// Blogs implements Store.
func (s *DuckDBStore) Blogs(ctx context.Context) ([]Blog, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT `+blogColumns+` FROM blogs b ORDER BY b.id`)
	if err != nil {
		return nil, fmt.Errorf("query blogs: %w", err)
	}
	defer rows.Close()

	var out []Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// BlogIDs implements Store.
func (s *DuckDBStore) BlogIDs(ctx context.Context) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT DISTINCT id FROM blogs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query blog ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan blog id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// BlogsWithAuthors implements Store with an inner join on users.
func (s *DuckDBStore) BlogsWithAuthors(ctx context.Context, ids []string) ([]AuthoredBlog, error) {
	if len(ids) == 0 {
		return []AuthoredBlog{}, nil
	}

	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := `SELECT ` + blogColumns + `, u.id, u.name, u.profile_image
		FROM blogs b
		JOIN users u ON u.id = b.author
		WHERE b.id IN (` + strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ") + `)`

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query authored blogs: %w", err)
	}
	defer rows.Close()

	var joined []AuthoredBlog
	for rows.Next() {
		var (
			ab                   AuthoredBlog
			tags                 string
			views, likes         sql.NullInt64
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(
			&ab.ID, &ab.Blog.Author, &ab.Title, &ab.Description, &ab.Img, &tags,
			&views, &likes, &ab.CommentsCount, &createdAt, &updatedAt,
			&ab.Author.ID, &ab.Author.Name, &ab.Author.ProfileImage,
		); err != nil {
			return nil, fmt.Errorf("scan authored blog: %w", err)
		}
		fillBlog(&ab.Blog, views, likes, createdAt, updatedAt)
		if err := json.Unmarshal([]byte(tags), &ab.Tags); err != nil {
			return nil, fmt.Errorf("decode tags of %s: %w", ab.ID, err)
		}
		joined = append(joined, ab)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orderByIDs(ids, joined), nil
}

// Ping implements Store.
func (s *DuckDBStore) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Close implements Store.
func (s *DuckDBStore) Close(context.Context) error {
	return s.conn.Close()
}

func scanBlog(rows *sql.Rows) (Blog, error) {
	var (
		b                    Blog
		tags                 string
		views, likes         sql.NullInt64
		createdAt, updatedAt sql.NullTime
	)
	if err := rows.Scan(&b.ID, &b.Author, &b.Title, &b.Description, &b.Img, &tags,
		&views, &likes, &b.CommentsCount, &createdAt, &updatedAt); err != nil {
		return Blog{}, fmt.Errorf("scan blog: %w", err)
	}
	fillBlog(&b, views, likes, createdAt, updatedAt)
	if err := json.Unmarshal([]byte(tags), &b.Tags); err != nil {
		return Blog{}, fmt.Errorf("decode tags of %s: %w", b.ID, err)
	}
	return b, nil
}

func fillBlog(b *Blog, views, likes sql.NullInt64, createdAt, updatedAt sql.NullTime) {
	if views.Valid {
		b.Views = int64Ptr(views.Int64)
	}
	if likes.Valid {
		b.Likes = int64Ptr(likes.Int64)
	}
	if createdAt.Valid {
		b.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		b.UpdatedAt = updatedAt.Time
	}
}

type listField struct {
	raw string
	dst *[]string
}

func unmarshalLists(fields ...listField) error {
	for _, f := range fields {
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return err
		}
	}
	return nil
}

func mustJSON(v []string) string {
	if v == nil {
		return "[]"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func closeQuietly(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close DuckDB connection")
	}
}
