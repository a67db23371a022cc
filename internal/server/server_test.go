package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/tastemap/backend/config"
	"github.com/pageza/tastemap/backend/internal/achievement"
	"github.com/pageza/tastemap/backend/internal/api"
	"github.com/pageza/tastemap/backend/internal/database"
	"github.com/pageza/tastemap/backend/internal/logger"
	"github.com/pageza/tastemap/backend/internal/metrics"
	"github.com/pageza/tastemap/backend/internal/recommendation"
	"github.com/pageza/tastemap/backend/internal/service"
	"github.com/pageza/tastemap/backend/internal/testhelpers"
)

func newTestServer(t *testing.T) (*Server, *service.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupSQLite(t)
	log := logger.Nop()
	m := metrics.New()

	rules, err := achievement.DefaultRuleSet()
	require.NoError(t, err)
	achievements := service.NewAchievementService(db, achievement.NewEvaluator(rules, database.NewAchievementStore(db)),
		database.NewLocalLocker(), m, log)
	catalog := service.NewCatalogService(db)
	recs := service.NewRecommendationService(service.NewTasteProfileService(db, log), catalog,
		recommendation.NewRanker(recommendation.DefaultWeights()), service.RecommendationOptions{DefaultLimit: 20, Logger: log})
	tokens := service.NewTokenService("test-secret")

	cfg := &config.Config{
		Environment: config.Test,
		ServerHost:  "localhost",
		ServerPort:  "8080",
		CORSOrigins: []string{"http://localhost:3000"},
	}
	srv := New(cfg, Dependencies{
		DB:     db,
		Tokens: tokens,
		Services: api.Services{
			Profiles:        service.NewTasteProfileService(db, log, recs),
			Catalog:         catalog,
			Recommendations: recs,
			Achievements:    achievements,
		},
		Metrics: m,
		Logger:  log,
	})
	return srv, tokens
}

func TestNew(t *testing.T) {
	srv, _ := newTestServer(t)
	assert.Equal(t, "localhost:8080", srv.http.Addr)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv, tokens := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/achievements", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := tokens.GenerateToken(uuid.New(), "eater")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/achievements", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["achievements"])

	// Photo routes are not mounted without object storage.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/photos/upload-url", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `tastemap_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestShutdownBeforeStart(t *testing.T) {
	srv, _ := newTestServer(t)
	assert.NoError(t, srv.Shutdown(context.Background()))
}
