package config

import (
	"context"
	"testing"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePresignedURL(t *testing.T) {
	cfg := &Config{S3Bucket: "mealfeed-images", AWSRegion: "us-east-1"}
	s3cfg, err := NewS3Config(context.Background(), cfg,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", "")))
	require.NoError(t, err)

	url, err := s3cfg.GeneratePresignedURL(context.Background(), "recipes/soup.jpg", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "mealfeed-images")
	assert.Contains(t, url, "recipes/soup.jpg")
	assert.Contains(t, url, "X-Amz-Expires=900")
}

func TestNewS3ConfigRequiresBucket(t *testing.T) {
	_, err := NewS3Config(context.Background(), &Config{AWSRegion: "us-east-1"})
	assert.Error(t, err)
}
