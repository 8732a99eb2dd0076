package api_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/mealfeed/backend/internal/api"
	"github.com/pageza/mealfeed/backend/internal/models"
	"github.com/pageza/mealfeed/backend/internal/service"
	"github.com/pageza/mealfeed/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
}

type prefixSigner struct{}

func (prefixSigner) SignURL(_ context.Context, key string) (string, error) {
	return "https://signed.example.com/" + key, nil
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db := testhelpers.SetupSQLiteDB(t)
	auth := service.NewAuthService(db, "test-secret", time.Hour)
	profiles := service.NewProfileService(db)
	recipes := service.NewRecipeService(db)

	r := gin.New()
	api.RegisterRoutes(r.Group("/api/v1"), api.Services{
		Auth:       auth,
		Profiles:   profiles,
		Recipes:    recipes,
		Feed:       service.NewFeedService(profiles, recipes, nil, service.FeedConfig{CandidateLimit: 100}),
		Households: service.NewHouseholdService(db),
		Inventory:  service.NewInventoryService(db),
		Engagement: service.NewEngagementService(db, nil),
		Images:     prefixSigner{},
	}, api.Limiters{})

	return &testAPI{router: r, db: db, auth: auth}
}

func (a *testAPI) token(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := a.auth.GenerateToken(user)
	require.NoError(t, err)
	return token
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

type feedItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Image       *string `json:"image"`
	IsGlobal    bool    `json:"isGlobal"`
	AvgRating   float64 `json:"avgRating"`
	ReviewCount int     `json:"reviewCount"`
}

func titles(items []feedItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

type errorBody struct {
	Error string `json:"error"`
}
