// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package recommend

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/tomtom215/blogminds/internal/database"
)

// Signal weights.
const (
	readWeight       = 0.5
	authoredWeight   = 0.5
	interestWeight   = 0.5
	followingWeight  = 0.5
	popularityWeight = 0.2

	// defaultCount stands in for a missing view or like count.
	defaultCount = 1
)

// Rate synthesizes the implicit rating of blog b for user u.
func Rate(u *database.User, b *database.Blog) float64 {
	return newProfile(u).rate(b)
}

// profile holds a user's signals as sets for repeated scoring.
type profile struct {
	read      map[string]struct{}
	authored  map[string]struct{}
	following map[string]struct{}
	interests map[string]struct{}
}

func newProfile(u *database.User) profile {
	return profile{
		read:      toSet(u.ReadArticles),
		authored:  toSet(u.Blogs),
		following: toSet(u.Following),
		interests: toSet(u.Interests),
	}
}

func (p profile) rate(b *database.Blog) float64 {
	var r float64
	if _, ok := p.read[b.ID]; ok {
		r += readWeight
	}
	if _, ok := p.authored[b.ID]; ok {
		r += authoredWeight
	}
	if p.sharesTag(b) {
		r += interestWeight
	}
	if _, ok := p.following[b.Author]; ok {
		r += followingWeight
	}
	r += popularityWeight * logCount(b.Views)
	r += popularityWeight * logCount(b.Likes)
	return r
}

// fires reports whether any behavioural indicator is set for b.
func (p profile) fires(b *database.Blog) bool {
	if _, ok := p.read[b.ID]; ok {
		return true
	}
	if _, ok := p.authored[b.ID]; ok {
		return true
	}
	if _, ok := p.following[b.Author]; ok {
		return true
	}
	return p.sharesTag(b)
}

func (p profile) sharesTag(b *database.Blog) bool {
	for _, tag := range b.Tags {
		if _, ok := p.interests[tag]; ok {
			return true
		}
	}
	return false
}

// logCount returns ln(1+n), with nil read as defaultCount and negative
// counts floored at zero.
func logCount(n *int64) float64 {
	v := int64(defaultCount)
	if n != nil {
		v = *n
	}
	if v < 0 {
		v = 0
	}
	return math.Log1p(float64(v))
}

func toSet(vals []string) map[string]struct{} {
	set := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		set[v] = struct{}{}
	}
	return set
}

// ExtractRatings loads every user and blog and returns one rating per
// (user, blog) pair.
func ExtractRatings(ctx context.Context, src DataProvider) ([]Rating, error) {
	users, blogs, err := loadSignals(ctx, src)
	if err != nil {
		return nil, err
	}
	return crossProduct(ctx, users, blogs)
}

// ExtractSparseRatings returns ratings only for pairs where an indicator
// fires, plus up to negatives randomly chosen other blogs per user.
func ExtractSparseRatings(ctx context.Context, src DataProvider, negatives int, seed int64) ([]Rating, error) {
	users, blogs, err := loadSignals(ctx, src)
	if err != nil {
		return nil, err
	}
	return sparse(ctx, users, blogs, negatives, seed)
}

func loadSignals(ctx context.Context, src DataProvider) ([]database.User, []database.Blog, error) {
	users, err := src.Users(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load users: %w", err)
	}
	blogs, err := src.Blogs(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load blogs: %w", err)
	}
	return users, blogs, nil
}

func crossProduct(ctx context.Context, users []database.User, blogs []database.Blog) ([]Rating, error) {
	out := make([]Rating, 0, len(users)*len(blogs))
	for i := range users {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := newProfile(&users[i])
		for j := range blogs {
			out = append(out, Rating{
				UserID: users[i].ID,
				ItemID: blogs[j].ID,
				Value:  p.rate(&blogs[j]),
			})
		}
	}
	return out, nil
}

func sparse(ctx context.Context, users []database.User, blogs []database.Blog, negatives int, seed int64) ([]Rating, error) {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // sampling, not security
	if negatives < 0 {
		negatives = 0
	}

	var out []Rating
	for i := range users {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := newProfile(&users[i])

		var rest []int
		for j := range blogs {
			if p.fires(&blogs[j]) {
				out = append(out, Rating{UserID: users[i].ID, ItemID: blogs[j].ID, Value: p.rate(&blogs[j])})
				continue
			}
			rest = append(rest, j)
		}

		rng.Shuffle(len(rest), func(a, b int) { rest[a], rest[b] = rest[b], rest[a] })
		if len(rest) > negatives {
			rest = rest[:negatives]
		}
		for _, j := range rest {
			out = append(out, Rating{UserID: users[i].ID, ItemID: blogs[j].ID, Value: p.rate(&blogs[j])})
		}
	}
	return out, nil
}
