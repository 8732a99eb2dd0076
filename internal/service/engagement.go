package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/mealfeed/backend/internal/feed"
	"github.com/pageza/mealfeed/backend/internal/logging"
	"github.com/pageza/mealfeed/backend/internal/models"
	"github.com/pageza/mealfeed/backend/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EngagementService records reactions, reviews and bookmarks.
type EngagementService struct {
	db    *gorm.DB
	cache FeedCache
}

var _ IEngagementService = (*EngagementService)(nil)

// NewEngagementService creates the service. cache may be nil; when set, it is
// invalidated whenever a review changes a rating shown in the anonymous feed.
func NewEngagementService(db *gorm.DB, cache FeedCache) *EngagementService {
	return &EngagementService{db: db, cache: cache}
}

// React stores the user's reaction to a recipe, replacing any earlier one.
func (s *EngagementService) React(ctx context.Context, userID, recipeID uuid.UUID, reaction models.ReactionType) (*models.RecipeReaction, error) {
	if !reaction.Valid() {
		return nil, ErrInvalidReaction
	}
	if err := s.recipeVisible(ctx, userID, recipeID); err != nil {
		return nil, err
	}

	row := models.RecipeReaction{UserID: userID, RecipeID: recipeID, Type: reaction}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"type", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save reaction: %w", err)
	}

	var stored models.RecipeReaction
	if err := s.db.WithContext(ctx).Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to reload reaction: %w", err)
	}
	return &stored, nil
}

// Reviews lists a recipe's reviews, newest first, with their authors.
func (s *EngagementService) Reviews(ctx context.Context, recipeID uuid.UUID) ([]models.RecipeReview, error) {
	reviews := []models.RecipeReview{}
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("recipe_id = ?", recipeID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// Review creates or replaces the user's review of a recipe.
func (s *EngagementService) Review(ctx context.Context, userID uuid.UUID, req *types.ReviewRequest) (*models.RecipeReview, error) {
	if err := s.recipeVisible(ctx, userID, req.RecipeID); err != nil {
		return nil, err
	}

	rating := req.Rating
	var review models.RecipeReview
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND recipe_id = ?", userID, req.RecipeID).First(&review).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			review = models.RecipeReview{UserID: userID, RecipeID: req.RecipeID, Rating: &rating, Comment: req.Comment}
			return tx.Create(&review).Error
		case err != nil:
			return err
		}
		review.Rating = &rating
		review.Comment = req.Comment
		return tx.Model(&review).Updates(map[string]interface{}{
			"rating":     rating,
			"comment":    req.Comment,
			"updated_at": time.Now(),
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("failed to invalidate anonymous feed")
		}
	}
	return &review, nil
}

// Bookmarks returns the user's bookmarked recipes annotated with ratings,
// most recently bookmarked first.
func (s *EngagementService) Bookmarks(ctx context.Context, userID uuid.UUID) ([]feed.ScoredRecipe, error) {
	var bookmarks []models.RecipeBookmark
	err := s.db.WithContext(ctx).
		Preload("Recipe.Ingredients").
		Preload("Recipe.Steps", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Recipe.Reviews").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	out := make([]feed.ScoredRecipe, 0, len(bookmarks))
	for _, b := range bookmarks {
		out = append(out, feed.Annotate(b.Recipe))
	}
	return out, nil
}

// ToggleBookmark removes the bookmark if it exists and creates it otherwise.
// It reports whether the recipe is bookmarked afterwards.
func (s *EngagementService) ToggleBookmark(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	if err := s.recipeVisible(ctx, userID, recipeID); err != nil {
		return false, err
	}

	var bookmarked bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.RecipeBookmark{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		bookmarked = true
		return tx.Create(&models.RecipeBookmark{UserID: userID, RecipeID: recipeID}).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to toggle bookmark: %w", err)
	}
	return bookmarked, nil
}

// recipeVisible returns ErrNotFound unless the recipe is global or belongs to
// the user's primary household.
func (s *EngagementService) recipeVisible(ctx context.Context, userID, recipeID uuid.UUID) error {
	household, err := primaryHousehold(ctx, s.db, userID)
	if err != nil {
		return err
	}
	var count int64
	q := visibleTo(s.db.WithContext(ctx).Model(&models.Recipe{}), household)
	if err := q.Where("id = ?", recipeID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up recipe: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
