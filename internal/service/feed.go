package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/mealfeed/backend/internal/feed"
	"github.com/pageza/mealfeed/backend/internal/logging"
	"github.com/pageza/mealfeed/backend/internal/metrics"
)

// FeedConfig tunes feed assembly.
type FeedConfig struct {
	// CandidateLimit bounds the recipes fetched for ranking.
	CandidateLimit int
	// AnonymousTTL is how long the anonymous feed stays cached. Zero disables caching.
	AnonymousTTL time.Duration
}

// FeedService assembles personalized and anonymous feeds.
type FeedService struct {
	contexts ContextBuilder
	recipes  CandidateProvider
	cache    FeedCache
	cfg      FeedConfig
}

var _ IFeedService = (*FeedService)(nil)

// NewFeedService wires a feed service. cache may be nil.
func NewFeedService(contexts ContextBuilder, recipes CandidateProvider, cache FeedCache, cfg FeedConfig) *FeedService {
	if cfg.CandidateLimit <= 0 {
		cfg.CandidateLimit = 100
	}
	return &FeedService{contexts: contexts, recipes: recipes, cache: cache, cfg: cfg}
}

// Personalized ranks the recipes visible to the user against their profile,
// inventory and reactions.
func (s *FeedService) Personalized(ctx context.Context, userID uuid.UUID, filters feed.Filters) ([]feed.ScoredRecipe, error) {
	start := time.Now()

	fctx, householdID, err := s.contexts.FeedContext(ctx, userID)
	if err != nil {
		return nil, err
	}
	candidates, err := s.recipes.Candidates(ctx, householdID, filters.Query, s.cfg.CandidateLimit)
	if err != nil {
		return nil, err
	}

	result := feed.Rank(candidates, fctx, filters)

	if ev := logging.Ctx(ctx).Debug(); len(result) > 0 && ev.Enabled() {
		top := result[0]
		ev.Str("user_id", userID.String()).
			Str("recipe_id", top.ID.String()).
			Interface("breakdown", feed.Explain(&top.Recipe, fctx, filters, feed.Rating{Avg: top.AvgRating, Count: top.ReviewCount})).
			Msg("top feed entry")
	}

	metrics.RecordFeed(metrics.PathPersonalized, len(candidates), time.Since(start))
	return result, nil
}

// Anonymous returns the newest global recipes. Cache failures are logged and
// the feed is built from the database instead.
func (s *FeedService) Anonymous(ctx context.Context) ([]feed.ScoredRecipe, error) {
	start := time.Now()
	useCache := s.cache != nil && s.cfg.AnonymousTTL > 0

	if useCache {
		cached, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			metrics.RecordCache(metrics.CacheError)
			logging.Ctx(ctx).Warn().Err(err).Msg("anonymous feed cache unavailable")
		case ok:
			metrics.RecordCache(metrics.CacheHit)
			metrics.RecordFeed(metrics.PathAnonymous, 0, time.Since(start))
			return cached, nil
		default:
			metrics.RecordCache(metrics.CacheMiss)
		}
	}

	recipes, err := s.recipes.RecentGlobal(ctx, feed.MaxResults)
	if err != nil {
		return nil, err
	}
	result := feed.Recent(recipes)

	if useCache {
		if err := s.cache.Set(ctx, result, s.cfg.AnonymousTTL); err != nil {
			metrics.RecordCache(metrics.CacheError)
			logging.Ctx(ctx).Warn().Err(err).Msg("failed to store anonymous feed")
		}
	}

	metrics.RecordFeed(metrics.PathAnonymous, len(recipes), time.Since(start))
	return result, nil
}
