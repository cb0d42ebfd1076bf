// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package database

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tomtom215/blogminds/internal/logging"
)

// MongoConfig configures MongoStore.
type MongoConfig struct {
	URL             string
	Database        string
	UsersCollection string
	BlogsCollection string
	ConnectTimeout  time.Duration
}

// MongoStore reads users and blogs from MongoDB.
type MongoStore struct {
	client *mongo.Client
	users  *mongo.Collection
	blogs  *mongo.Collection
	cfg    MongoConfig
}

// mongoUser mirrors a "users" document. Id fields are left untyped because
// the platform stores both ObjectIDs and plain strings.
type mongoUser struct {
	ID           interface{}   `bson:"_id"`
	Name         string        `bson:"name"`
	ProfileImage string        `bson:"profileImage"`
	Interests    []string      `bson:"myInterests"`
	Following    []interface{} `bson:"following"`
	ReadArticles []interface{} `bson:"readArticles"`
	Blogs        []interface{} `bson:"blogs"`
}

// mongoBlog mirrors a "blogs" document.
type mongoBlog struct {
	ID            interface{} `bson:"_id"`
	Author        interface{} `bson:"author"`
	Title         string      `bson:"title"`
	Description   string      `bson:"description"`
	Img           string      `bson:"img"`
	Tags          []string    `bson:"tags"`
	Views         *float64    `bson:"views"`
	LikesCount    *float64    `bson:"likesCount"`
	CommentsCount float64     `bson:"commentsCount"`
	CreatedAt     time.Time   `bson:"createdAt"`
	UpdatedAt     time.Time   `bson:"updatedAt"`
}

// mongoAuthoredBlog is one row of the $lookup/$unwind pipeline.
type mongoAuthoredBlog struct {
	Doc       mongoBlog `bson:",inline"`
	AuthorDoc struct {
		ID           interface{} `bson:"_id"`
		Name         string      `bson:"name"`
		ProfileImage string      `bson:"profileImage"`
	} `bson:"authorDoc"`
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(cfg.Database)
	logging.Info().
		Str("database", cfg.Database).
		Str("users", cfg.UsersCollection).
		Str("blogs", cfg.BlogsCollection).
		Msg("Connected to MongoDB")

	return &MongoStore{
		client: client,
		users:  db.Collection(cfg.UsersCollection),
		blogs:  db.Collection(cfg.BlogsCollection),
		cfg:    cfg,
	}, nil
}

// Users implements Store.
func (s *MongoStore) Users(ctx context.Context) ([]User, error) {
	cur, err := s.users.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	out := make([]User, len(docs))
	for i := range docs {
		d := &docs[i]
		out[i] = User{
			ID:           idString(d.ID),
			Name:         d.Name,
			ProfileImage: d.ProfileImage,
			Interests:    d.Interests,
			Following:    idStrings(d.Following),
			ReadArticles: idStrings(d.ReadArticles),
			Blogs:        idStrings(d.Blogs),
		}
	}
	return out, nil
}

// Blogs implements Store.
func (s *MongoStore) Blogs(ctx context.Context) ([]Blog, error) {
	cur, err := s.blogs.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find blogs: %w", err)
	}
	var docs []mongoBlog
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode blogs: %w", err)
	}

	out := make([]Blog, len(docs))
	for i := range docs {
		out[i] = docs[i].toBlog()
	}
	return out, nil
}

// BlogIDs implements Store.
func (s *MongoStore) BlogIDs(ctx context.Context) ([]string, error) {
	vals, err := s.blogs.Distinct(ctx, "_id", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("distinct blog ids: %w", err)
	}
	return idStrings(vals), nil
}

// BlogsWithAuthors implements Store with a $lookup join on the author field.
func (s *MongoStore) BlogsWithAuthors(ctx context.Context, ids []string) ([]AuthoredBlog, error) {
	if len(ids) == 0 {
		return []AuthoredBlog{}, nil
	}

	cur, err := s.blogs.Aggregate(ctx, authoredBlogsPipeline(ids, s.cfg.UsersCollection))
	if err != nil {
		return nil, fmt.Errorf("aggregate blogs: %w", err)
	}
	var docs []mongoAuthoredBlog
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode blogs: %w", err)
	}

	rows := make([]AuthoredBlog, len(docs))
	for i := range docs {
		d := &docs[i]
		rows[i] = AuthoredBlog{
			Blog: d.Doc.toBlog(),
			Author: Author{
				ID:           idString(d.AuthorDoc.ID),
				Name:         d.AuthorDoc.Name,
				ProfileImage: d.AuthorDoc.ProfileImage,
			},
		}
	}
	return orderByIDs(ids, rows), nil
}

// authoredBlogsPipeline matches the requested blogs, joins their author and
// drops blogs without one ($unwind without preserveNullAndEmptyArrays).
func authoredBlogsPipeline(ids []string, usersCollection string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: matchIDs(ids)}}}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "author"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "authorDoc"},
		}}},
		{{Key: "$unwind", Value: "$authorDoc"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "author", Value: 1},
			{Key: "title", Value: 1},
			{Key: "description", Value: 1},
			{Key: "img", Value: 1},
			{Key: "tags", Value: 1},
			{Key: "views", Value: 1},
			{Key: "likesCount", Value: 1},
			{Key: "commentsCount", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "updatedAt", Value: 1},
			{Key: "authorDoc._id", Value: 1},
			{Key: "authorDoc.name", Value: 1},
			{Key: "authorDoc.profileImage", Value: 1},
		}}},
	}
}

// matchIDs expands each id into its ObjectID form (when it parses as one)
// and its string form, so $in matches either storage convention.
func matchIDs(ids []string) bson.A {
	out := make(bson.A, 0, 2*len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
		out = append(out, id)
	}
	return out
}

// Ping implements Store.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close implements Store.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (d *mongoBlog) toBlog() Blog {
	return Blog{
		ID:            idString(d.ID),
		Author:        idString(d.Author),
		Title:         d.Title,
		Description:   d.Description,
		Img:           d.Img,
		Tags:          d.Tags,
		Views:         countPtr(d.Views),
		Likes:         countPtr(d.LikesCount),
		CommentsCount: int64(math.Round(d.CommentsCount)),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func countPtr(v *float64) *int64 {
	if v == nil {
		return nil
	}
	return int64Ptr(int64(math.Round(*v)))
}

// idString normalizes a BSON identifier to a string.
func idString(v interface{}) string {
	switch id := v.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

func idStrings(vals []interface{}) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s := idString(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
