// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package models

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/blogminds/internal/database"
)

func TestRecommendedBlogJSONFields(t *testing.T) {
	t.Parallel()

	views := int64(12)
	created := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	row := database.AuthoredBlog{
		Blog: database.Blog{
			ID:            "b1",
			Author:        "u1",
			Title:         "Go",
			Tags:          []string{"go"},
			Views:         &views,
			CommentsCount: 3,
			CreatedAt:     created,
			UpdatedAt:     created,
		},
		Author: database.Author{ID: "u1", Name: "Ada", ProfileImage: "ada.png"},
	}

	data, err := json.Marshal(NewRecommendedBlog(&row))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	for _, key := range []string{"_id", "title", "description", "img", "tags", "views", "commentsCount", "createdAt", "updatedAt", "author"} {
		if _, ok := got[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
	if _, ok := got["likesCount"]; ok {
		t.Errorf("likesCount should be omitted when absent: %s", data)
	}

	author, ok := got["author"].(map[string]interface{})
	if !ok {
		t.Fatalf("author = %T", got["author"])
	}
	if author["_id"] != "u1" || author["name"] != "Ada" || author["profileImage"] != "ada.png" {
		t.Errorf("author = %v", author)
	}
	if got["createdAt"] != "2024-05-01T09:30:00Z" {
		t.Errorf("createdAt = %v", got["createdAt"])
	}
}

func TestRecommendedBlogZeroTimesAndNilTags(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(NewRecommendedBlog(&database.AuthoredBlog{Blog: database.Blog{ID: "b2"}}))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	s := string(data)
	if strings.Contains(s, "createdAt") || strings.Contains(s, "updatedAt") {
		t.Errorf("zero timestamps should be omitted: %s", s)
	}
	if !strings.Contains(s, `"tags":[]`) {
		t.Errorf("nil tags should encode as []: %s", s)
	}
}

func TestNewRecommendationsResponseEmpty(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(NewRecommendationsResponse("u9", nil))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"user_id":"u9","top_recommendations":[]}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}
