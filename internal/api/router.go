// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robleto/reawarding/internal/middleware"
)

// Router ties the handler set to the middleware stack.
type Router struct {
	handler *Handler
	mw      *ChiMiddleware
}

// NewRouter creates a router for the given handler and middleware factory.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	return &Router{handler: handler, mw: mw}
}

// chiMiddleware adapts func(http.HandlerFunc) http.HandlerFunc middleware to
// Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Setup builds the full route tree.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5))
	r.Use(router.mw.CORS())

	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/api/v1/health", router.handler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.mw.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Post("/session/signin", router.handler.SignIn)
		r.Post("/session/signout", router.handler.SignOut)

		r.Post("/rankings", router.handler.UpsertRanking)
		r.Get("/rankings", router.handler.ListRankings)

		r.Get("/movies", router.handler.ListMovies)
		r.Get("/movies/years", router.handler.MovieYears)
		r.Post("/movies/import", router.handler.ImportMovie)

		r.Get("/awards", router.handler.Awards)
		r.Get("/awards/nominations", router.handler.GetNominations)
		r.Post("/awards/nominations", router.handler.SaveNominations)

		r.Post("/guest/interactions", router.handler.RecordInteraction)
		r.Get("/guest/interactions", router.handler.ListInteractions)

		r.Get("/banner", router.handler.Banner)
		r.Post("/banner/dismiss", router.handler.DismissBanner)
		r.Post("/banner/dismiss-permanent", router.handler.DismissBannerPermanently)

		r.Post("/migrate", router.handler.Migrate)
	})

	return r
}
