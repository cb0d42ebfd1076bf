// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

/*
Package api serves the recommendation HTTP interface on a Chi router.

Routes:

	GET /get_blogs?user_id=&page=&page_size=  ranked, author-enriched blogs
	GET /train_model                          retrain (blocking or async)
	GET /train_model/status/{id}              training job record
	GET /health                               store ping and model generation
	GET /metrics                              Prometheus exposition

Every route passes through RequestID, RealIP, Recoverer, CORS, AccessLog
and PrometheusMetrics. Per-IP rate limiting is added when
security.rate_limit_disabled is false.

Error bodies are always {"error": "..."}. Unexpected failures reply 500
with a fixed message and log the cause with the request id. With
api.strict_params set, malformed page parameters reply 400 and a missing
model replies 404; otherwise both are 500, which existing clients rely on.
*/
package api
