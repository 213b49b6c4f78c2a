// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/hunian/internal/config"
	"github.com/tomtom215/hunian/internal/recommend"
)

// fakeRecommender records the last request and returns a canned outcome.
type fakeRecommender struct {
	resp  *recommend.Response
	err   error
	block bool
	got   recommend.Request
	calls int
}

func (f *fakeRecommender) Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error) {
	f.calls++
	f.got = req
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.resp, f.err
}

type fakeStore struct {
	pingErr error
	state   string
}

func (s *fakeStore) Ping(context.Context) error {
	return s.pingErr
}

func (s *fakeStore) BreakerState() string {
	return s.state
}

func sampleResponse() *recommend.Response {
	return &recommend.Response{
		Strategy: recommend.StrategyInteraction,
		Recommendations: []recommend.Candidate{
			{
				Property: recommend.Property{
					ID:           "p3",
					Title:        "Rumah Kemang",
					City:         "Jakarta Selatan",
					District:     "Kemang",
					Price:        4.2e9,
					PropertyType: "house",
					Bedrooms:     3,
					Bathrooms:    2,
					Images:       []string{"https://img.example/p3.jpg", "https://img.example/p3b.jpg"},
					ListingType:  "sale",
					Status:       recommend.StatusApproved,
				},
				Score:  2,
				Reason: "recommended based on users with similar taste",
				Icon:   recommend.IconUsers,
			},
			{
				Property: recommend.Property{
					ID:          "p4",
					Title:       "Apartemen Dago",
					City:        "Bandung",
					ListingType: "rent",
					Status:      recommend.StatusApproved,
				},
				Score:  1,
				Reason: "recommended based on users with similar taste",
				Icon:   recommend.IconUsers,
			},
		},
	}
}

func newTestHandler(rec Recommender, store StoreHealth) *Handler {
	return NewHandler(rec, store, &config.ServerConfig{
		RequestTimeout: time.Second,
		MaxBodyBytes:   1024,
	}, "test")
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func TestNewHandler_Defaults(t *testing.T) {
	h := NewHandler(&fakeRecommender{}, nil, nil, "")
	if h.requestTimeout != 10*time.Second {
		t.Errorf("requestTimeout = %v, want 10s", h.requestTimeout)
	}
	if h.maxBodyBytes != 64<<10 {
		t.Errorf("maxBodyBytes = %d, want %d", h.maxBodyBytes, 64<<10)
	}
}

func TestRecommendations_Success(t *testing.T) {
	rec := &fakeRecommender{resp: sampleResponse()}
	h := newTestHandler(rec, nil)

	body := `{"userId":"u1","sessionId":"s-9","currentFilterId":"f1","k":3}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Recommendations(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.got.UserID != "u1" || rec.got.SessionID != "s-9" || rec.got.CurrentFilterID != "f1" || rec.got.K != 3 {
		t.Errorf("recommend request = %+v", rec.got)
	}

	resp := decodeBody[RecommendationsResponse](t, w)
	if resp.Strategy != recommend.StrategyInteraction {
		t.Errorf("strategy = %q", resp.Strategy)
	}
	if len(resp.Recommendations) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(resp.Recommendations))
	}
	first := resp.Recommendations[0]
	if first.PropertyID != "p3" || first.Bedrooms != 3 || first.Score != 2 || first.Icon != recommend.IconUsers {
		t.Errorf("first = %+v", first)
	}
	if first.Image == nil || *first.Image != "https://img.example/p3.jpg" {
		t.Errorf("first image = %v, want the primary image", first.Image)
	}
	if resp.Recommendations[1].Image != nil {
		t.Errorf("second image = %v, want null", *resp.Recommendations[1].Image)
	}
}

func TestRecommendations_WireFormat(t *testing.T) {
	h := newTestHandler(&fakeRecommender{resp: sampleResponse()}, nil)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	h.Recommendations(w, req)

	var raw map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	recs, ok := raw["recommendations"].([]any)
	if !ok || len(recs) != 2 {
		t.Fatalf("recommendations = %v", raw["recommendations"])
	}
	second, _ := recs[1].(map[string]any)
	for _, key := range []string{
		"propertyId", "title", "city", "district", "price", "propertyType",
		"bedrooms", "bathrooms", "image", "listingType", "score", "reason", "icon",
	} {
		if _, ok := second[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if second["image"] != nil {
		t.Errorf("image = %v, want null", second["image"])
	}
}

func TestRecommendations_EmptyBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no body", ""},
		{"whitespace", "  \n\t"},
		{"empty object", "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecommender{resp: &recommend.Response{Strategy: recommend.StrategyTrending}}
			h := newTestHandler(rec, nil)

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.Recommendations(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			if rec.got.UserID != "" || rec.got.CurrentFilterID != "" {
				t.Errorf("request = %+v, want anonymous", rec.got)
			}
			resp := decodeBody[RecommendationsResponse](t, w)
			if resp.Recommendations == nil {
				t.Error("recommendations should encode as [] not null")
			}
			if !strings.Contains(w.Body.String(), `"recommendations":[]`) {
				t.Errorf("body = %s", w.Body.String())
			}
		})
	}
}

func TestRecommendations_BadRequests(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"malformed json", `{"userId":`, http.StatusBadRequest},
		{"wrong type", `{"userId": 42}`, http.StatusBadRequest},
		{"id with spaces", `{"userId":"a b"}`, http.StatusBadRequest},
		{"id too long", `{"currentFilterId":"` + strings.Repeat("x", 129) + `"}`, http.StatusBadRequest},
		{"negative k", `{"k":-1}`, http.StatusBadRequest},
		{"body too large", `{"sessionId":"` + strings.Repeat("s", 2048) + `"}`, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecommender{resp: sampleResponse()}
			h := newTestHandler(rec, nil)

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.Recommendations(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if rec.calls != 0 {
				t.Error("recommender should not be called for a rejected request")
			}
			resp := decodeBody[ErrorResponse](t, w)
			if resp.Error == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestRecommendations_RecommenderErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"terminal failure", errors.New("trending: connection refused"), http.StatusInternalServerError, "failed to generate recommendations"},
		{"query timeout inside terminal strategy", fmt.Errorf("strategy trending: %w", context.DeadlineExceeded), http.StatusInternalServerError, "failed to generate recommendations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&fakeRecommender{err: tt.err}, nil)

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"userId":"u1"}`))
			w := httptest.NewRecorder()
			h.Recommendations(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			resp := decodeBody[ErrorResponse](t, w)
			if resp.Error != tt.wantMsg {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantMsg)
			}
			if strings.Contains(w.Body.String(), "connection refused") {
				t.Error("internal error text leaked to the client")
			}
		})
	}
}

func TestRecommendations_RequestTimeout(t *testing.T) {
	h := NewHandler(&fakeRecommender{block: true}, nil, &config.ServerConfig{RequestTimeout: 20 * time.Millisecond}, "test")

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()
	h.Recommendations(w, req)

	if w.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want 504", w.Code)
	}
}

func TestRecommendations_ClientCancelWritesNothing(t *testing.T) {
	h := newTestHandler(&fakeRecommender{block: true}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	h.Recommendations(w, req)

	if w.Body.Len() != 0 {
		t.Errorf("body = %q, want nothing written", w.Body.String())
	}
}

func TestHealthLive(t *testing.T) {
	h := newTestHandler(&fakeRecommender{}, &fakeStore{pingErr: errors.New("down")})

	w := httptest.NewRecorder()
	h.HealthLive(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	resp := decodeBody[HealthResponse](t, w)
	if resp.Status != "alive" || resp.Version != "test" {
		t.Errorf("response = %+v", resp)
	}
}

func TestHealthReady(t *testing.T) {
	tests := []struct {
		name        string
		store       StoreHealth
		wantStatus  int
		wantState   string
		wantDB      string
		wantBreaker string
	}{
		{"no store", nil, http.StatusOK, "ready", "not_configured", ""},
		{"healthy", &fakeStore{state: "closed"}, http.StatusOK, "ready", "ok", "closed"},
		{"unreachable", &fakeStore{pingErr: errors.New("closed"), state: "open"}, http.StatusServiceUnavailable, "not_ready", "unreachable", "open"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&fakeRecommender{}, tt.store)

			w := httptest.NewRecorder()
			h.HealthReady(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			resp := decodeBody[HealthResponse](t, w)
			if resp.Status != tt.wantState || resp.Database != tt.wantDB || resp.Breaker != tt.wantBreaker {
				t.Errorf("response = %+v", resp)
			}
		})
	}
}
