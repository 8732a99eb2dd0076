package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordFeed(t *testing.T) {
	personalized := testutil.ToFloat64(FeedRequests.WithLabelValues(PathPersonalized))
	anonymous := testutil.ToFloat64(FeedRequests.WithLabelValues(PathAnonymous))

	RecordFeed(PathPersonalized, 42, 3*time.Millisecond)
	RecordFeed(PathAnonymous, 0, time.Millisecond)

	assert.Equal(t, personalized+1, testutil.ToFloat64(FeedRequests.WithLabelValues(PathPersonalized)))
	assert.Equal(t, anonymous+1, testutil.ToFloat64(FeedRequests.WithLabelValues(PathAnonymous)))
	assert.Equal(t, 1, testutil.CollectAndCount(FeedCandidates))
}

func TestRecordCache(t *testing.T) {
	before := testutil.ToFloat64(CacheEvents.WithLabelValues(CacheMiss))
	RecordCache(CacheMiss)
	RecordCache(CacheMiss)
	assert.Equal(t, before+2, testutil.ToFloat64(CacheEvents.WithLabelValues(CacheMiss)))
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/v1/feed", "200"))
	RecordHTTPRequest(http.MethodGet, "/api/v1/feed", http.StatusOK, 10*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/v1/feed", "200")))
}

func TestRecordRateLimited(t *testing.T) {
	before := testutil.ToFloat64(RateLimited.WithLabelValues("reactions"))
	RecordRateLimited("reactions")
	assert.Equal(t, before+1, testutil.ToFloat64(RateLimited.WithLabelValues("reactions")))
}
