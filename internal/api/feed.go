package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealfeed/backend/internal/feed"
	"github.com/pageza/mealfeed/backend/internal/middleware"
	"github.com/pageza/mealfeed/backend/internal/service"
	"github.com/pageza/mealfeed/backend/internal/types"
)

// FeedHandler serves the home feed. Authenticated callers get the ranked
// feed; everyone else gets the newest global recipes.
type FeedHandler struct {
	feedService service.IFeedService
	images      service.ImageSigner
}

func NewFeedHandler(feedService service.IFeedService, images service.ImageSigner) *FeedHandler {
	return &FeedHandler{feedService: feedService, images: images}
}

func (h *FeedHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/feed", h.GetFeed)
}

func (h *FeedHandler) GetFeed(c *gin.Context) {
	var q types.FeedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid query parameters")
		return
	}

	var (
		recipes []feed.ScoredRecipe
		err     error
	)
	if userID, ok := middleware.UserID(c); ok {
		recipes, err = h.feedService.Personalized(c.Request.Context(), userID, feed.Filters{
			Query:       strings.TrimSpace(q.Query),
			Diet:        normalizeTag(q.Diet),
			Cuisine:     normalizeTag(q.Cuisine),
			HideSkipped: q.SkipFilter(),
		})
	} else {
		recipes, err = h.feedService.Anonymous(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}

	service.SignImages(c.Request.Context(), h.images, recipes)
	c.JSON(http.StatusOK, recipes)
}
