package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/mealfeed/backend/internal/feed"
	"github.com/pageza/mealfeed/backend/internal/models"
	"github.com/pageza/mealfeed/backend/internal/types"
	"gorm.io/gorm"
)

// recipeListLimit bounds the plain recipe listing before tag filters apply.
const recipeListLimit = 100

// RecipeService loads the recipes visible to a caller and creates household recipes.
type RecipeService struct {
	db *gorm.DB
}

// Ensure RecipeService implements CandidateProvider
var _ CandidateProvider = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// Candidates returns the recipes visible to a household (global ones plus the
// household's own), newest first, with ingredients, steps and reviews loaded.
// A non-empty query keeps recipes whose title or description contains it,
// case-insensitively.
func (s *RecipeService) Candidates(ctx context.Context, householdID *uuid.UUID, query string, limit int) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	q := s.withDetails(ctx)
	q = visibleTo(q, householdID)
	if query = strings.TrimSpace(query); query != "" {
		like := "%" + escapeLike(strings.ToLower(query)) + "%"
		q = q.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, like, like)
	}
	err := q.Order("created_at DESC").Order("id ASC").Limit(limit).Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate recipes: %w", err)
	}
	return recipes, nil
}

// RecentGlobal returns up to limit global recipes, newest first.
func (s *RecipeService) RecentGlobal(ctx context.Context, limit int) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	err := s.withDetails(ctx).
		Where("is_global = ?", true).
		Order("created_at DESC").Order("id ASC").
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent recipes: %w", err)
	}
	return recipes, nil
}

// GetVisible loads one recipe if it is global or belongs to householdID.
func (s *RecipeService) GetVisible(ctx context.Context, id uuid.UUID, householdID *uuid.UUID) (*feed.ScoredRecipe, error) {
	var recipe models.Recipe
	err := visibleTo(s.withDetails(ctx), householdID).Where("id = ?", id).First(&recipe).Error
	if err != nil {
		return nil, notFound(err)
	}
	annotated := feed.Annotate(recipe)
	return &annotated, nil
}

// ListVisible is the plain recipe listing: visible recipes matching query,
// newest first, with diet and cuisine applied as hard tag filters.
func (s *RecipeService) ListVisible(ctx context.Context, householdID *uuid.UUID, filter *types.RecipeListQuery) ([]feed.ScoredRecipe, error) {
	recipes, err := s.Candidates(ctx, householdID, filter.Query, recipeListLimit)
	if err != nil {
		return nil, err
	}
	kept := recipes[:0]
	for _, r := range recipes {
		if filter.Diet != "" && !r.Tags.Diets.Contains(filter.Diet) {
			continue
		}
		if filter.Cuisine != "" && !r.Tags.Cuisines.Contains(filter.Cuisine) {
			continue
		}
		kept = append(kept, r)
	}
	return feed.AnnotateAll(kept), nil
}

// CreateCustom stores a household-owned recipe. Servings default to 1 and
// steps are numbered from 1 in the order given.
func (s *RecipeService) CreateCustom(ctx context.Context, householdID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	recipe := models.Recipe{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Servings:    1,
		SourceType:  models.SourceCustom,
		Image:       req.Image,
		IsGlobal:    false,
		HouseholdID: &householdID,
		Tags: models.RecipeTags{
			Cuisines:  models.StringList(req.Cuisines).Clean(),
			Diets:     models.StringList(req.Diets).Clean(),
			Allergens: models.StringList(req.Allergens).Clean(),
		},
		Ingredients: make([]models.RecipeIngredient, 0, len(req.Ingredients)),
		Steps:       make([]models.RecipeStep, 0, len(req.Steps)),
		Reviews:     []models.RecipeReview{},
	}
	if req.Servings != nil {
		recipe.Servings = *req.Servings
	}
	for _, ing := range req.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			Name:     strings.TrimSpace(ing.Name),
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}
	for i, step := range req.Steps {
		recipe.Steps = append(recipe.Steps, models.RecipeStep{Position: i + 1, Text: step.Text})
	}

	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return &recipe, nil
}

func (s *RecipeService) withDetails(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Reviews")
}

func visibleTo(q *gorm.DB, householdID *uuid.UUID) *gorm.DB {
	if householdID == nil {
		return q.Where("is_global = ?", true)
	}
	return q.Where("(is_global = ? OR household_id = ?)", true, *householdID)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
