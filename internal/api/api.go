package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/mealfeed/backend/internal/middleware"
	"github.com/pageza/mealfeed/backend/internal/service"
)

// Services bundles the collaborators the handlers depend on.
type Services struct {
	Auth       service.IAuthService
	Profiles   service.IProfileService
	Recipes    service.IRecipeService
	Feed       service.IFeedService
	Households service.IHouseholdService
	Inventory  service.IInventoryService
	Engagement service.IEngagementService
	// Images is optional; without it image keys are returned as stored.
	Images service.ImageSigner
}

// Limiters are optional request limiters; nil disables the limit.
type Limiters struct {
	Engagement *middleware.RateLimiter
	Public     *middleware.IPRateLimiter
}

// RegisterRoutes mounts every /api/v1 route on v1.
func RegisterRoutes(v1 *gin.RouterGroup, svc Services, limits Limiters) {
	var public []gin.HandlerFunc
	if limits.Public != nil {
		public = append(public, limits.Public.Middleware())
	}
	requireAuth := middleware.AuthMiddleware(svc.Auth)
	optionalAuth := middleware.OptionalAuth(svc.Auth)

	engagementWrites := []gin.HandlerFunc{requireAuth}
	if limits.Engagement != nil {
		engagementWrites = append(engagementWrites, limits.Engagement.RateLimitMiddleware())
	}

	NewAuthHandler(svc.Auth).RegisterRoutes(v1.Group("/auth", public...))
	NewFeedHandler(svc.Feed, svc.Images).RegisterRoutes(v1.Group("", append(public, optionalAuth)...))
	NewRecipeHandler(svc.Recipes, svc.Households, svc.Images).RegisterRoutes(v1.Group("/recipes", requireAuth))
	NewEngagementHandler(svc.Engagement, svc.Images).RegisterRoutes(v1, engagementWrites, append(public, optionalAuth), requireAuth)
	NewHouseholdHandler(svc.Households, svc.Inventory).RegisterRoutes(v1.Group("", requireAuth))
	NewProfileHandler(svc.Profiles).RegisterRoutes(v1.Group("/profile", requireAuth))
}
