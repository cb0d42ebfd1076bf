// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

// Package models defines the JSON bodies of the HTTP API.
//
// Field names follow the document store ("_id", "likesCount",
// "profileImage") so existing clients keep working. Every id is a string.
package models
