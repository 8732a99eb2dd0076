package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/mealfeed/backend/config"
	"github.com/pageza/mealfeed/backend/internal/api"
	"github.com/pageza/mealfeed/backend/internal/database"
	"github.com/pageza/mealfeed/backend/internal/logging"
	"github.com/pageza/mealfeed/backend/internal/middleware"
	"github.com/pageza/mealfeed/backend/internal/router"
	"github.com/pageza/mealfeed/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	public *middleware.IPRateLimiter
}

// Deps are the external resources the server is built on. Redis and Images
// are optional: without Redis the anonymous feed is not cached and engagement
// writes are not rate limited.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Images service.ImageSigner
}

// New wires services, limiters and routes.
func New(cfg *config.Config, deps Deps) *Server {
	var (
		cache      service.FeedCache
		engagement *middleware.RateLimiter
	)
	if deps.Redis != nil {
		cache = service.NewRedisFeedCache(deps.Redis)
		engagement = middleware.NewReactionRateLimiter(deps.Redis, cfg.ReactionRateLimit, cfg.ReactionRateWindow)
	}
	public := middleware.NewIPRateLimiter(cfg.PublicRatePerSecond, cfg.PublicRateBurst)

	profiles := service.NewProfileService(deps.DB)
	recipes := service.NewRecipeService(deps.DB)
	svc := api.Services{
		Auth:     service.NewAuthService(deps.DB, cfg.JWTSecret, cfg.JWTTTL),
		Profiles: profiles,
		Recipes:  recipes,
		Feed: service.NewFeedService(profiles, recipes, cache, service.FeedConfig{
			CandidateLimit: cfg.CandidateLimit,
			AnonymousTTL:   cfg.AnonymousFeedTTL,
		}),
		Households: service.NewHouseholdService(deps.DB),
		Inventory:  service.NewInventoryService(deps.DB),
		Engagement: service.NewEngagementService(deps.DB, cache),
		Images:     deps.Images,
	}

	r := router.SetupRouter(svc, router.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Limiters:       api.Limiters{Engagement: engagement, Public: public},
		Health: func(ctx context.Context) error {
			return database.HealthCheck(ctx, deps.DB)
		},
	})

	return &Server{
		router: r,
		db:     deps.DB,
		public: public,
		http: &http.Server{
			Addr:              cfg.Address(),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", s.http.Addr).Msg("server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case err, ok := <-errCh:
			if ok {
				return err
			}
			return nil
		case <-ticker.C:
			if removed := s.public.Cleanup(); removed > 0 {
				logging.Debug().Int("removed", removed).Msg("pruned idle rate limiters")
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			logging.Info().Msg("shutting down server")
			return s.Stop(shutdownCtx)
		}
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
