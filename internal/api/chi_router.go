// CineMatch - AI-Powered Movie Discovery
// Copyright 2026 CineMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package api

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/cinematch/cinematch/internal/middleware"
)

// Router sets up HTTP routes using the Chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	staticDir     string
}

// NewRouter creates a router serving the API, the observability surfaces,
// and the static frontend from staticDir.
func NewRouter(handler *Handler, chiMW *ChiMiddleware, staticDir string) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}

	return &Router{
		handler:       handler,
		chiMiddleware: chiMW,
		staticDir:     staticDir,
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
// This allows handler-func style middleware to work with Chi's r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes using the Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(RequestIDWithLogging())      // Add X-Request-ID header with logging context
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(Recoverer())                 // Panics become logged JSON 500s
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	// ========================
	// Health Endpoint
	// ========================
	// Permissive rate limiting so monitoring tools can poll freely
	r.Route("/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
	})

	// ========================
	// Movie & AI Endpoints
	// ========================
	r.Route("/api", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/trending", router.handler.Trending)
		r.Get("/search", router.handler.Search)
		r.Get("/movie/{id}", router.handler.MovieDetail)
		r.Get("/genres", router.handler.Genres)

		// Generation endpoints carry a stricter budget than browsing
		r.With(router.chiMiddleware.RateLimitAI()).Post("/recommend", router.handler.Recommend)
		r.With(router.chiMiddleware.RateLimitAI()).Post("/chat", router.handler.Chat)

		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			respondError(w, http.StatusNotFound, "Not found")
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
			respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		})
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// ========================
	// Static Files & SPA
	// ========================
	// Must be last - catches all unmatched routes
	r.Get("/*", router.serveStaticOrIndex)

	return r
}

// serveStaticOrIndex serves frontend assets, falling back to index.html so
// client-side routes deep-link correctly.
func (router *Router) serveStaticOrIndex(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	// Cache-Control by file type: long for fingerprinted assets, short for
	// the shell so updates roll out quickly
	if strings.HasSuffix(path, ".js") || strings.HasSuffix(path, ".css") {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	} else if strings.HasSuffix(path, ".png") || strings.HasSuffix(path, ".svg") || strings.HasSuffix(path, ".jpg") || strings.HasSuffix(path, ".webp") {
		w.Header().Set("Cache-Control", "public, max-age=604800")
	} else {
		w.Header().Set("Cache-Control", "public, max-age=300")
	}

	if path != "/" && path != "/index.html" && router.fileExists(path) {
		http.FileServer(http.Dir(router.staticDir)).ServeHTTP(w, r)
		return
	}

	// SPA fallback - serve index.html for unknown routes
	http.ServeFile(w, r, filepath.Join(router.staticDir, "index.html"))
}

// fileExists reports whether path names a regular file under the static dir.
func (router *Router) fileExists(path string) bool {
	f, err := http.Dir(router.staticDir).Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return false
	}

	return !stat.IsDir()
}
