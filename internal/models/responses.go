// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package models

import (
	"time"

	"github.com/tomtom215/blogminds/internal/database"
)

// Response messages fixed by existing clients.
const (
	MsgUserIDMissing   = "User ID parameter is missing"
	MsgModelTrained    = "Model trained successfully"
	MsgTrainingStarted = "Model training started"
	MsgModelNotTrained = "model not trained"
	MsgInternalError   = "internal server error"
)

// Author is the display subset of a user joined onto a blog.
type Author struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage"`
}

// RecommendedBlog is one entry of top_recommendations.
type RecommendedBlog struct {
	ID            string     `json:"_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Img           string     `json:"img"`
	Tags          []string   `json:"tags"`
	Views         *int64     `json:"views,omitempty"`
	LikesCount    *int64     `json:"likesCount,omitempty"`
	CommentsCount int64      `json:"commentsCount"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
	Author        Author     `json:"author"`
}

// RecommendationsResponse is the body of GET /get_blogs.
type RecommendationsResponse struct {
	UserID             string            `json:"user_id"`
	TopRecommendations []RecommendedBlog `json:"top_recommendations"`
}

// MessageResponse carries a human readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
	JobID   string `json:"job_id,omitempty"`
}

// ErrorResponse is the body of every 4xx and 5xx reply.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status          string  `json:"status"`
	Store           string  `json:"store"`
	ModelGeneration uint64  `json:"model_generation"`
	UptimeSeconds   float64 `json:"uptime_seconds"`
}

// NewRecommendedBlog converts a joined store row. Zero timestamps are
// omitted.
func NewRecommendedBlog(b *database.AuthoredBlog) RecommendedBlog {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return RecommendedBlog{
		ID:            b.ID,
		Title:         b.Title,
		Description:   b.Description,
		Img:           b.Img,
		Tags:          tags,
		Views:         b.Views,
		LikesCount:    b.Likes,
		CommentsCount: b.CommentsCount,
		CreatedAt:     timePtr(b.CreatedAt),
		UpdatedAt:     timePtr(b.UpdatedAt),
		Author: Author{
			ID:           b.Author.ID,
			Name:         b.Author.Name,
			ProfileImage: b.Author.ProfileImage,
		},
	}
}

// NewRecommendationsResponse builds the /get_blogs body. The result is
// never nil so it encodes as [].
func NewRecommendationsResponse(userID string, items []database.AuthoredBlog) RecommendationsResponse {
	out := make([]RecommendedBlog, 0, len(items))
	for i := range items {
		out = append(out, NewRecommendedBlog(&items[i]))
	}
	return RecommendationsResponse{UserID: userID, TopRecommendations: out}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
