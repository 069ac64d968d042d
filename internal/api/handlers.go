// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/robleto/reawarding/internal/banner"
	"github.com/robleto/reawarding/internal/cache"
	"github.com/robleto/reawarding/internal/identity"
	"github.com/robleto/reawarding/internal/migration"
	"github.com/robleto/reawarding/internal/models"
)

// RankingStore is the ranking repository surface the handlers need.
// *database.DB satisfies it.
type RankingStore interface {
	UpsertRanking(ctx context.Context, userID string, movieID int64, seenIt bool, ranking *int) (*models.RankingRecord, error)
	ListRankings(ctx context.Context, userID string, movieIDs []int64) ([]models.RankingRecord, error)
}

// MovieCatalog is the catalog surface the handlers need.
type MovieCatalog interface {
	UpsertMovie(ctx context.Context, movie *models.Movie) error
	ListMovies(ctx context.Context, filter models.MovieFilter) ([]models.Movie, error)
	ListMoviesWithRankings(ctx context.Context, userID string, filter models.MovieFilter) ([]models.MovieWithRanking, error)
	ListYears(ctx context.Context, minCount int) ([]int, error)
}

// NominationStore persists curated award nominations.
type NominationStore interface {
	SaveNominations(ctx context.Context, nom *models.AwardNominations) error
	GetNominations(ctx context.Context, userID string, year int) (*models.AwardNominations, error)
	ListNominationYears(ctx context.Context, userID string) ([]int, error)
}

// AwardSource produces the rated-movie rows award aggregation runs over.
type AwardSource interface {
	ListAwardRecords(ctx context.Context, userID string) ([]models.AwardRecord, error)
}

// GuestStore is the guest interaction surface the handlers need.
type GuestStore interface {
	RecordInteraction(ctx context.Context, movieID int64, patch models.InteractionPatch) (models.GuestInteraction, error)
	Interactions() []models.GuestInteraction
	Interaction(movieID int64) (models.GuestInteraction, bool)
	InteractionCount() int
	HasInteracted() bool
	Meta() models.GuestSessionMeta
	DismissBanner()
	DismissPermanently(ctx context.Context)
	Degraded() bool
}

// MigrationRunner triggers the guest-to-account transfer.
type MigrationRunner interface {
	Run(ctx context.Context, userID string) migration.Result
}

// BannerPoller exposes the arbitrated banner state.
type BannerPoller interface {
	Current() banner.Banner
	Refresh() banner.Banner
}

// MovieImporter fetches catalog metadata from TMDB. Nil when the
// integration is disabled.
type MovieImporter interface {
	GetMovie(ctx context.Context, id int64) (*models.Movie, error)
}

// Handler holds the dependencies for every API endpoint.
type Handler struct {
	rankings    RankingStore
	catalog     MovieCatalog
	nominations NominationStore
	awardSource AwardSource
	guest       GuestStore
	migrator    MigrationRunner
	banner      BannerPoller
	importer    MovieImporter
	jwt         *identity.JWTManager
	notifier    *identity.Notifier
	cache       *cache.Cache
	startTime   time.Time
}

// HandlerDeps bundles the constructor arguments for NewHandler.
type HandlerDeps struct {
	Rankings    RankingStore
	Catalog     MovieCatalog
	Nominations NominationStore
	AwardSource AwardSource
	Guest       GuestStore
	Migrator    MigrationRunner
	Banner      BannerPoller
	Importer    MovieImporter
	JWT         *identity.JWTManager
	Notifier    *identity.Notifier
}

// NewHandler creates the API handler. Importer may be nil; the import
// endpoint then reports the integration as unavailable.
func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		rankings:    deps.Rankings,
		catalog:     deps.Catalog,
		nominations: deps.Nominations,
		awardSource: deps.AwardSource,
		guest:       deps.Guest,
		migrator:    deps.Migrator,
		banner:      deps.Banner,
		importer:    deps.Importer,
		jwt:         deps.JWT,
		notifier:    deps.Notifier,
		cache:       cache.New(time.Minute),
		startTime:   time.Now(),
	}
}

// userIDFromRequest resolves the bearer token to a user ID. It returns ""
// when no token is present; invalid tokens return an error.
func (h *Handler) userIDFromRequest(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" || h.jwt == nil {
		return "", nil
	}

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", identity.ErrInvalidToken
	}

	return h.jwt.ValidateToken(token)
}

// requireUser resolves the bearer token and writes a 401 envelope when the
// caller is not authenticated. The bool reports whether to proceed.
func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := h.userIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, codeAuthentication, "Invalid authentication token", err)
		return "", false
	}
	if userID == "" {
		respondError(w, http.StatusUnauthorized, codeAuthentication, "Authentication required", nil)
		return "", false
	}
	return userID, true
}
