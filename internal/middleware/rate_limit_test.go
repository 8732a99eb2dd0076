package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealfeed/backend/internal/testhelpers"
)

func TestRateLimiterIsAllowed(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	rl := NewRateLimiter(client, RateLimitConfig{Window: time.Minute, Limit: 2, KeyPrefix: "test"})
	ctx := context.Background()

	allowed, remaining, reset, err := rl.IsAllowed(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)
	assert.True(t, reset.After(time.Now()))

	allowed, remaining, _, err = rl.IsAllowed(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 0, remaining)

	allowed, remaining, _, err = rl.IsAllowed(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)

	allowed, _, _, err = rl.IsAllowed(ctx, "user-2")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimitMiddleware(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	rl := NewReactionRateLimiter(client, 1, time.Minute)
	userID := uuid.New()

	r := gin.New()
	r.POST("/reactions",
		AuthMiddleware(stubValidator{token: "good", userID: userID}),
		rl.RateLimitMiddleware(),
		func(c *gin.Context) { c.Status(http.StatusCreated) })

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/reactions", nil)
		req.Header.Set("Authorization", "Bearer good")
		return serve(r, req)
	}

	rr := send()
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))

	rr = send()
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
}

func TestRateLimitMiddlewarePassesThroughOnRedisError(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	rl := NewReactionRateLimiter(client, 1, time.Minute)
	require.NoError(t, client.Close())

	r := gin.New()
	r.POST("/reactions",
		AuthMiddleware(stubValidator{token: "good", userID: uuid.New()}),
		rl.RateLimitMiddleware(),
		func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodPost, "/reactions", nil)
	req.Header.Set("Authorization", "Bearer good")
	assert.Equal(t, http.StatusCreated, serve(r, req).Code)
}
