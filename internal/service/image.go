package service

import (
	"context"
	"strings"
	"time"

	"github.com/pageza/mealfeed/backend/config"
	"github.com/pageza/mealfeed/backend/internal/feed"
	"github.com/pageza/mealfeed/backend/internal/logging"
)

// ImageSigner turns stored image keys into URLs a browser can fetch.
type ImageSigner interface {
	SignURL(ctx context.Context, key string) (string, error)
}

// S3ImageSigner presigns GET requests for recipe images in S3.
type S3ImageSigner struct {
	s3  *config.S3Config
	ttl time.Duration
}

func NewS3ImageSigner(s3 *config.S3Config, ttl time.Duration) *S3ImageSigner {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &S3ImageSigner{s3: s3, ttl: ttl}
}

func (s *S3ImageSigner) SignURL(ctx context.Context, key string) (string, error) {
	return s.s3.GeneratePresignedURL(ctx, key, s.ttl)
}

// SignImages replaces object keys in recipe images with signed URLs in place.
// Absolute URLs are left alone, and a key that fails to sign is dropped.
func SignImages(ctx context.Context, signer ImageSigner, recipes []feed.ScoredRecipe) {
	if signer == nil {
		return
	}
	for i := range recipes {
		img := recipes[i].Image
		if img == nil || *img == "" || isAbsoluteURL(*img) {
			continue
		}
		url, err := signer.SignURL(ctx, *img)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("key", *img).Msg("failed to sign recipe image")
			recipes[i].Image = nil
			continue
		}
		recipes[i].Image = &url
	}
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
