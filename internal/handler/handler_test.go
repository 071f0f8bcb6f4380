package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelrec/internal/catalog"
	"travelrec/internal/model"
	"travelrec/internal/service"
)

type stubEvaluator struct {
	queries []string
}

func (s *stubEvaluator) Evaluate(_ context.Context, query string) *model.RecommendationResponse {
	s.queries = append(s.queries, query)
	if strings.Contains(query, "nonsense") {
		return service.FailureResponse(query, service.ErrCategoryUndetermined)
	}
	return &model.RecommendationResponse{
		Success:         true,
		Query:           query,
		Category:        "hotels",
		Count:           1,
		Recommendations: []string{"Sea View Grand"},
	}
}

func newTestRouter(ev service.Evaluator, snap *catalog.Snapshot) *gin.Engine {
	gin.SetMode(gin.TestMode)
	rec := NewRecommendationHandler(ev, zerolog.Nop())
	health := NewHealthHandler("travelrec", BuildInfo{Version: "1.2.3"}, snap)
	return NewRouter(rec, health, "*", zerolog.Nop())
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
		wantError  string
	}{
		{"post", http.MethodPost, "/api/v1/recommendations", `{"query":"best hotels in colaba"}`, http.StatusOK, ""},
		{"get", http.MethodGet, "/api/v1/recommendations?q=best+hotels+in+colaba", "", http.StatusOK, ""},
		{"post empty query", http.MethodPost, "/api/v1/recommendations", `{"query":"  "}`, http.StatusBadRequest, "Query is required"},
		{"post empty body", http.MethodPost, "/api/v1/recommendations", "", http.StatusBadRequest, "Query is required"},
		{"get missing q", http.MethodGet, "/api/v1/recommendations", "", http.StatusBadRequest, "Query is required"},
		{"malformed json", http.MethodPost, "/api/v1/recommendations", `{"query":`, http.StatusBadRequest, ""},
		{"engine failure", http.MethodPost, "/api/v1/recommendations", `{"query":"nonsense words"}`, http.StatusInternalServerError, service.ErrCategoryUndetermined.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := &stubEvaluator{}
			w := do(newTestRouter(ev, nil), tt.method, tt.target, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decode(t, w)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, true, body["success"])
				assert.Equal(t, "best hotels in colaba", body["query"])
				assert.Equal(t, []any{"Sea View Grand"}, body["recommendations"])
				return
			}
			assert.Equal(t, false, body["success"])
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body["error"])
			}
			if tt.wantStatus == http.StatusBadRequest {
				assert.Empty(t, ev.queries, "rejected before evaluation")
			}
		})
	}
}

func TestRecommend_UnavailableCatalog(t *testing.T) {
	router := newTestRouter(service.UnavailableService{Err: catalog.ErrUnavailable}, nil)

	w := do(router, http.MethodPost, "/api/v1/recommendations", `{"query":"cheap hotels"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "recommendation data is currently unavailable", body["error"])
}

func TestRequestID(t *testing.T) {
	router := newTestRouter(&stubEvaluator{}, nil)

	w := do(router, http.MethodGet, "/version", "")
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err, "a fresh ID is generated")

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	req.Header.Set(RequestIDHeader, id)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(RequestIDHeader), "a valid incoming ID is kept")

	req = httptest.NewRequest(http.MethodGet, "/version", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
}

func TestHealth(t *testing.T) {
	t.Run("catalog loaded", func(t *testing.T) {
		snap := catalog.NewSnapshot(
			[]*model.Restaurant{{Name: "Dragon Wok"}},
			nil,
			[]*model.Vehicle{{Name: "Audi A4"}, {Name: "BMW X5"}},
		)
		w := do(newTestRouter(&stubEvaluator{}, snap), http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "1.2.3", body["version"])
		cat := body["catalog"].(map[string]any)
		assert.Equal(t, snap.Version(), cat["version"])
		assert.Equal(t, map[string]any{"restaurants": 1.0, "hotels": 0.0, "vehicles": 2.0}, cat["items"])
	})

	t.Run("catalog missing", func(t *testing.T) {
		w := do(newTestRouter(&stubEvaluator{}, nil), http.MethodGet, "/health", "")
		body := decode(t, w)
		assert.Equal(t, "degraded", body["status"])
	})
}

func TestNoRoute(t *testing.T) {
	w := do(newTestRouter(&stubEvaluator{}, nil), http.MethodGet, "/api/v1/search", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, splitOrigins(" http://a.test, ,http://b.test "))
	assert.Nil(t, splitOrigins(""))
}
