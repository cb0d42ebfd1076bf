// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package recommend

import (
	"math"
	"math/rand"
)

// Entry is a rating addressed by dense user and item indices.
type Entry struct {
	User  int
	Item  int
	Value float64
}

// Dataset is an in-memory rating matrix bound to a scale. Raw ids are mapped
// to dense indices in order of first appearance.
type Dataset struct {
	scale     Scale
	ratings   []Rating
	entries   []Entry
	userIndex map[string]int
	itemIndex map[string]int
	users     []string
	items     []string
	mean      float64
}

// NewDataset binds ratings to scale.
func NewDataset(ratings []Rating, scale Scale) *Dataset {
	d := &Dataset{
		scale:     scale,
		ratings:   ratings,
		entries:   make([]Entry, len(ratings)),
		userIndex: make(map[string]int),
		itemIndex: make(map[string]int),
	}

	var sum float64
	for i, r := range ratings {
		u, ok := d.userIndex[r.UserID]
		if !ok {
			u = len(d.users)
			d.userIndex[r.UserID] = u
			d.users = append(d.users, r.UserID)
		}
		it, ok := d.itemIndex[r.ItemID]
		if !ok {
			it = len(d.items)
			d.itemIndex[r.ItemID] = it
			d.items = append(d.items, r.ItemID)
		}
		d.entries[i] = Entry{User: u, Item: it, Value: r.Value}
		sum += r.Value
	}
	if len(ratings) > 0 {
		d.mean = sum / float64(len(ratings))
	}
	return d
}

// Scale returns the rating scale.
func (d *Dataset) Scale() Scale { return d.scale }

// Len returns the number of ratings.
func (d *Dataset) Len() int { return len(d.entries) }

// NumUsers returns the number of distinct users.
func (d *Dataset) NumUsers() int { return len(d.users) }

// NumItems returns the number of distinct items.
func (d *Dataset) NumItems() int { return len(d.items) }

// GlobalMean returns the mean rating, or 0 for an empty dataset.
func (d *Dataset) GlobalMean() float64 { return d.mean }

// Entries returns the indexed ratings in insertion order.
func (d *Dataset) Entries() []Entry { return d.entries }

// Ratings returns the raw ratings in insertion order.
func (d *Dataset) Ratings() []Rating { return d.ratings }

// UserIDs returns raw user ids by dense index.
func (d *Dataset) UserIDs() []string { return d.users }

// ItemIDs returns raw item ids by dense index.
func (d *Dataset) ItemIDs() []string { return d.items }

// Split shuffles the ratings with seed and holds out ceil(testFraction*n)
// of them. Each side is indexed independently.
func (d *Dataset) Split(testFraction float64, seed int64) (train, test *Dataset) {
	n := len(d.ratings)
	nTest := int(math.Ceil(testFraction * float64(n)))
	if nTest > n {
		nTest = n
	}
	if nTest < 0 {
		nTest = 0
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n) //nolint:gosec // reproducible split
	testRatings := make([]Rating, 0, nTest)
	trainRatings := make([]Rating, 0, n-nTest)
	for i, idx := range perm {
		if i < nTest {
			testRatings = append(testRatings, d.ratings[idx])
		} else {
			trainRatings = append(trainRatings, d.ratings[idx])
		}
	}
	return NewDataset(trainRatings, d.scale), NewDataset(testRatings, d.scale)
}

// Evaluate returns the root mean squared error of m over test. An empty
// test set scores 0.
func Evaluate(m Model, test *Dataset) float64 {
	if test.Len() == 0 {
		return 0
	}
	var sum float64
	for _, r := range test.ratings {
		diff := m.Estimate(r.UserID, r.ItemID) - r.Value
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(test.Len()))
}
