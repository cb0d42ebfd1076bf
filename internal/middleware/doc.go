// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

/*
Package middleware provides the HTTP middleware shared by every route.

All middleware here has the Chi signature func(http.Handler) http.Handler
and is installed globally by the api router:

	r.Use(middleware.RequestID)         // X-Request-ID in and out, request id in ctx
	r.Use(middleware.AccessLog)         // one zerolog line per request
	r.Use(middleware.PrometheusMetrics) // api_requests_total, api_request_duration_seconds

PrometheusMetrics labels requests with the matched Chi route pattern rather
than the raw URL path, so query strings and path parameters such as job ids
do not create new series. Requests that match no route are labelled
"unmatched".
*/
package middleware
