package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealfeed/backend/internal/feed"
	"github.com/pageza/mealfeed/backend/internal/service"
	"github.com/pageza/mealfeed/backend/internal/types"
)

// RecipeHandler lists, shows and creates recipes visible to the caller's household.
type RecipeHandler struct {
	recipeService    service.IRecipeService
	householdService service.IHouseholdService
	images           service.ImageSigner
}

func NewRecipeHandler(recipeService service.IRecipeService, householdService service.IHouseholdService, images service.ImageSigner) *RecipeHandler {
	return &RecipeHandler{
		recipeService:    recipeService,
		householdService: householdService,
		images:           images,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("", h.ListRecipes)
	router.GET("/:id", h.GetRecipe)
	router.POST("", h.CreateRecipe)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var q types.RecipeListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid query parameters")
		return
	}
	q.Query = strings.TrimSpace(q.Query)
	q.Diet = normalizeTag(q.Diet)
	q.Cuisine = normalizeTag(q.Cuisine)

	householdID, err := h.householdService.Primary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	recipes, err := h.recipeService.ListVisible(c.Request.Context(), householdID, &q)
	if err != nil {
		respondError(c, err)
		return
	}

	service.SignImages(c.Request.Context(), h.images, recipes)
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	householdID, err := h.householdService.Primary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipeService.GetVisible(c.Request.Context(), id, householdID)
	if err != nil {
		respondError(c, err)
		return
	}

	single := []feed.ScoredRecipe{*recipe}
	service.SignImages(c.Request.Context(), h.images, single)
	c.JSON(http.StatusOK, single[0])
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		badRequest(c, "title is required")
		return
	}

	householdID, err := h.householdService.RequirePrimary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipeService.CreateCustom(c.Request.Context(), householdID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}
