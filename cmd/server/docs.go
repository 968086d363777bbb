// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

// Package main provides the CineMatch HTTP server
//
// CineMatch aggregates TMDB movie metadata with Google Gemini generative
// ranking behind a small JSON API for the CineMatch frontend.
//
// @title CineMatch API
// @version 1.0
// @description AI-powered movie discovery backend aggregating TMDB metadata with Gemini recommendations and chat.
// @description
// @description ## Graceful Degradation
// @description
// @description Every endpoint stays up when upstream credentials are missing: browsing endpoints serve empty lists, recommendations fall back to rating order, and chat answers with a fixed notice. /health reports which credentials are configured.
// @description
// @description ## Rate Limiting
// @description
// @description Browsing endpoints default to 100 requests per minute per IP. Generation endpoints (/api/recommend, /api/chat) are limited to 20 per minute because they consume metered Gemini quota.
// @description
// @description ## Error Responses
// @description
// @description All failing endpoints answer with a uniform body:
// @description
// @description {"error": "Human-readable error message"}
//
// @contact.name GitHub Repository
// @contact.url https://github.com/cinematch/cinematch/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:5000
// @BasePath /
// @schemes http https
//
// @tag.name Core
// @tag.description Health and readiness reporting
//
// @tag.name Movies
// @tag.description Movie browsing backed by TMDB: trending, search, details, genres
//
// @tag.name AI
// @tag.description Gemini-backed personalized recommendations and conversational discovery
package main
