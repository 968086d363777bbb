// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

/*
Package middleware provides HTTP middleware shared across route groups.

The package currently carries the Prometheus instrumentation middleware,
which records request counts, latency histograms, and the active request
gauge for every API route. Endpoint labels use the chi route pattern
(/api/movie/{id}) instead of the raw URL path so per-movie paths do not fan
out into unbounded label cardinality.

The middleware uses the func(http.HandlerFunc) http.HandlerFunc shape and is
bridged into Chi's r.Use() via the adapter in the api package.
*/
package middleware
