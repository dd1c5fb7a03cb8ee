package searxng

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/search"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "general", r.URL.Query().Get("categories"))
		assert.Equal(t, "week", r.URL.Query().Get("time_range"))
		w.Write([]byte(`{"query":"acme","results":[
			{"title":"a","url":"https://a"},
			{"title":"b","url":"https://b"},
			{"title":"c","url":"https://c"}]}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, 5).Search(context.Background(), &search.Request{
		Query:      "acme",
		MaxResults: 2,
		StartDate:  "2026-01-01",
		EndDate:    "2026-01-08",
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "https://b", resp.Results[1].URL)
}

func TestSearchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0).Search(context.Background(), &search.Request{Query: "acme"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestTimeRange(t *testing.T) {
	tests := []struct {
		start, end, want string
	}{
		{"", "", ""},
		{"garbage", "", ""},
		{"2026-01-01", "2026-01-02", "day"},
		{"2026-01-01", "2026-01-08", "week"},
		{"2026-01-01", "2026-01-20", "month"},
		{"2025-01-01", "2026-01-01", "year"},
	}
	for _, tt := range tests {
		if got := timeRange(tt.start, tt.end); got != tt.want {
			t.Errorf("timeRange(%q, %q) = %q, want %q", tt.start, tt.end, got, tt.want)
		}
	}
}
