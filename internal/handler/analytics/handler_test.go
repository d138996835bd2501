package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	analyticspkg "github.com/mindfulmate/backend/internal/analytics"
	"github.com/mindfulmate/backend/internal/store"
)

func setupRouter(t *testing.T, moods ...string) *chi.Mux {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	for _, m := range moods {
		if _, err := st.AppendMood(ctx, m); err != nil {
			t.Fatalf("AppendMood(%q) err: %v", m, err)
		}
	}

	r := chi.NewRouter()
	New(st).RegisterRoutes(r)
	return r
}

func TestSummaryWeekWindow(t *testing.T) {
	r := setupRouter(t, "Happy", "Sad")

	req := httptest.NewRequest(http.MethodGet, "/analytics/summary?window=week", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var summary analyticspkg.Summary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if summary.Window != analyticspkg.WindowWeek {
		t.Fatalf("unexpected window %q", summary.Window)
	}
	if summary.Count != 2 {
		t.Fatalf("expected 2 fresh entries in window, got %d", summary.Count)
	}
	if summary.Average != 3 { // (5 + 1) / 2
		t.Fatalf("expected average 3, got %v", summary.Average)
	}
	if len(summary.Points) != 2 {
		t.Fatalf("expected 2 chart points, got %d", len(summary.Points))
	}
}

func TestSummaryDefaultsToAllWindow(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/analytics/summary", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var summary analyticspkg.Summary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if summary.Window != analyticspkg.WindowAll {
		t.Fatalf("unexpected window %q", summary.Window)
	}
	if summary.Count != 0 || summary.Average != 0 {
		t.Fatalf("empty history should summarize to zero, got %+v", summary)
	}
}

func TestSummaryRejectsUnknownWindow(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/analytics/summary?window=year", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
