// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package api

import "errors"

var (
	// errMissingParam marks a required query parameter that was absent.
	errMissingParam = errors.New("missing query parameter")

	// errInvalidParam marks a query parameter that did not parse.
	errInvalidParam = errors.New("invalid query parameter")
)
