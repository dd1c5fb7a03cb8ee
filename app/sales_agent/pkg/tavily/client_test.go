package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/search"
)

func TestSearch(t *testing.T) {
	var got searchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tvly-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"query":"q","results":[{"title":"Acme hires CTO","url":"https://acme.com/news","content":"Acme announced...","score":0.9}]}`))
	}))
	defer srv.Close()

	c := NewClient("tvly-key", WithBaseURL(srv.URL))
	resp, err := c.Search(context.Background(), &search.Request{
		Query:     `"Acme" AND ("press release" OR "job posting")`,
		StartDate: "2026-01-01",
		EndDate:   "2026-01-08",
	})
	require.NoError(t, err)

	assert.Equal(t, "basic", got.SearchDepth)
	assert.Equal(t, "general", got.Topic)
	assert.Equal(t, 5, got.MaxResults)
	assert.Equal(t, "2026-01-01", got.StartDate)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Acme hires CTO", resp.Results[0].Title)
	assert.Equal(t, "https://acme.com/news", resp.Results[0].URL)
}

func TestSearchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewClient("bad", WithBaseURL(srv.URL)).Search(context.Background(), &search.Request{Query: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestSearchBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":`))
	}))
	defer srv.Close()

	_, err := NewClient("k", WithBaseURL(srv.URL), WithHTTPClient(srv.Client())).Search(context.Background(), &search.Request{Query: "x"})
	assert.Error(t, err)
}
