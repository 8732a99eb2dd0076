package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/mealfeed/backend/internal/feed"
	"github.com/pageza/mealfeed/backend/internal/middleware"
	"github.com/pageza/mealfeed/backend/internal/models"
	"github.com/pageza/mealfeed/backend/internal/service"
	"github.com/pageza/mealfeed/backend/internal/types"
)

// EngagementHandler serves reactions, reviews and bookmarks.
type EngagementHandler struct {
	engagement service.IEngagementService
	images     service.ImageSigner
}

func NewEngagementHandler(engagement service.IEngagementService, images service.ImageSigner) *EngagementHandler {
	return &EngagementHandler{engagement: engagement, images: images}
}

// RegisterRoutes mounts the handlers. writes guards reaction and review
// writes, public guards the anonymous-friendly reads and authed guards the
// bookmark toggle.
func (h *EngagementHandler) RegisterRoutes(router *gin.RouterGroup, writes, public []gin.HandlerFunc, authed gin.HandlerFunc) {
	router.POST("/reactions", append(writes, h.React)...)
	router.GET("/reviews", append(public, h.ListReviews)...)
	router.POST("/reviews", append(writes, h.CreateReview)...)
	router.GET("/bookmarks", append(public, h.ListBookmarks)...)
	router.POST("/bookmarks", authed, h.ToggleBookmark)
}

func (h *EngagementHandler) React(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	reaction, err := h.engagement.React(c.Request.Context(), userID, req.RecipeID, models.ReactionType(req.Type))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reaction)
}

func (h *EngagementHandler) ListReviews(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Query("recipeId"))
	if err != nil {
		badRequest(c, "missing or invalid recipeId")
		return
	}

	reviews, err := h.engagement.Reviews(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *EngagementHandler) CreateReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	review, err := h.engagement.Review(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// ListBookmarks returns the caller's bookmarked recipes, or an empty list for
// anonymous callers.
func (h *EngagementHandler) ListBookmarks(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusOK, []feed.ScoredRecipe{})
		return
	}

	recipes, err := h.engagement.Bookmarks(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	service.SignImages(c.Request.Context(), h.images, recipes)
	c.JSON(http.StatusOK, recipes)
}

func (h *EngagementHandler) ToggleBookmark(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "missing recipeId")
		return
	}

	bookmarked, err := h.engagement.ToggleBookmark(c.Request.Context(), userID, req.RecipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.BookmarkResponse{Bookmarked: bookmarked})
}
