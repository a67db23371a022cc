package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAccumulate(t *testing.T) {
	m := New()

	m.RecordUnlock("food_critic")
	m.RecordUnlock("food_critic")
	m.RecordUnlock("explorer")
	m.RecordCache(CacheHit)
	m.RecordLockConflict()
	m.ObserveRequest(http.MethodGet, "/api/v1/recommendations", http.StatusOK, 15*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.unlocks.WithLabelValues("food_critic")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.unlocks.WithLabelValues("explorer")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.recommendationCache.WithLabelValues(CacheHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lockConflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/recommendations", "200")))
}

func TestInstancesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.RecordLockConflict()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.lockConflicts))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.lockConflicts))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.RecordPhoto("presigned")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `tastemap_photo_uploads_total{stage="presigned"} 1`)
}
