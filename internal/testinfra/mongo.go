// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

//go:build integration

package testinfra

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// DefaultMongoImage is the MongoDB image used by StartMongo.
const DefaultMongoImage = "mongo:7.0"

// MongoContainer is a running MongoDB instance.
type MongoContainer struct {
	*mongodb.MongoDBContainer
	URI string
}

// StartMongo starts MongoDB and registers its termination with t.Cleanup.
// The test is skipped when Docker is unavailable.
func StartMongo(t *testing.T) *MongoContainer {
	t.Helper()
	SkipIfNoDocker(t)

	ctx := context.Background()
	c, err := mongodb.Run(ctx, DefaultMongoImage)
	if c != nil {
		CleanupContainer(t, c)
	}
	if err != nil {
		t.Fatalf("start mongo container: %v", err)
	}

	uri, err := c.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("mongo connection string: %v", err)
	}
	return &MongoContainer{MongoDBContainer: c, URI: uri}
}
