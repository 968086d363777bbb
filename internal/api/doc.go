// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

/*
Package api provides the HTTP layer for CineMatch.

This package implements the REST endpoints the frontend calls for movie
discovery, AI recommendations, and chat, plus the observability surfaces.
It sits between the web UI and the two upstream gateways (internal/tmdb and
internal/gemini) and owns the degraded-response contract: upstream failure
never surfaces as an API error on browse endpoints.

Key Components:

  - Router: Chi route configuration and middleware stack
  - Handler: request handlers for all endpoints
  - ChiMiddleware: CORS, rate limiting, and security header factories
  - Response formatting: flat JSON bodies marshaled with goccy/go-json

Endpoint Groups:

 1. Frontend (/):
    Static assets and the single-page app shell.

 2. Health (/health):
    Credential-presence health report, computed without upstream calls.

 3. Movie API (/api/):
    Trending, search, detail, and genre endpoints backed by TMDB, plus the
    AI recommendation and chat endpoints backed by Gemini.

 4. Observability (/metrics, /swagger):
    Prometheus exposition and OpenAPI documentation.

Degradation Contract:

Browse endpoints answer 200 with empty lists when TMDB is unconfigured or
failing. AI endpoints answer 200 with fixed fallback replies when Gemini is
unconfigured, over budget, or failing. Only client input errors (400), an
unknown movie (404), and the recommendation flow without TMDB (503) produce
error statuses.
*/
package api
