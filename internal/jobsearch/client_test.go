package jobsearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigured(t *testing.T) {
	assert.False(t, NewClient("", "", nil).Configured())
	assert.False(t, NewClient("https://api.example.com", "", nil).Configured())
	assert.False(t, NewClient("", "key", nil).Configured())
	assert.True(t, NewClient("https://api.example.com", "key", nil).Configured())
}

func TestSearch_UnconfiguredReturnsMockResults(t *testing.T) {
	client := NewClient("", "", nil)

	jobs := client.Search(context.Background(), "golang", "Berlin", 10)

	require.Len(t, jobs, 2)
	assert.Equal(t, "mock-001", jobs[0].ExternalID)
	assert.Equal(t, "golang Engineer", jobs[0].Title)
	assert.Equal(t, "Berlin", jobs[0].Location)
	assert.Equal(t, "mock", jobs[0].Source)
}

func TestSearch_MockRespectsLimit(t *testing.T) {
	client := NewClient("", "", nil)

	jobs := client.Search(context.Background(), "golang", "", 1)

	require.Len(t, jobs, 1)
	assert.Equal(t, "Remote", jobs[0].Location)
}

func TestSearch_ProviderResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jobs/search", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "backend", r.URL.Query().Get("q"))
		assert.Equal(t, "Remote", r.URL.Query().Get("location"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{
					"id":           "job-1",
					"title":        "Backend Engineer",
					"company_name": "Acme",
					"location":     "Remote",
					"description":  "<p>Build <b>APIs</b> in Go</p>",
					"url":          "https://acme.example.com/jobs/1",
				},
				{
					"id":          "job-2",
					"title":       "Platform Engineer",
					"company":     "Globex",
					"location":    "Remote",
					"description": "Plain text posting",
					"apply_link":  "https://globex.example.com/apply/2",
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", server.Client())
	jobs := client.Search(context.Background(), "backend", "Remote", 10)

	require.Len(t, jobs, 2)
	assert.Equal(t, "Backend Engineer", jobs[0].Title)
	assert.Equal(t, "Acme", jobs[0].Company)
	assert.Equal(t, "Build APIs in Go", jobs[0].Description, "HTML must be stripped")
	assert.Equal(t, "provider", jobs[0].Source)

	// Field-name variants map onto the common schema.
	assert.Equal(t, "Globex", jobs[1].Company)
	assert.Equal(t, "https://globex.example.com/apply/2", jobs[1].URL)
}

func TestSearch_ProviderLimitEnforced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		results := make([]map[string]any, 5)
		for i := range results {
			results[i] = map[string]any{"id": "x", "title": "T", "description": "d"}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"results": results})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", server.Client())
	jobs := client.Search(context.Background(), "q", "", 2)

	assert.Len(t, jobs, 2)
}

func TestSearch_ProviderErrorFallsBackToMock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", server.Client())
	jobs := client.Search(context.Background(), "golang", "", 10)

	require.NotEmpty(t, jobs)
	assert.Equal(t, "mock", jobs[0].Source)
}

func TestSearch_HydratesMissingDescriptions(t *testing.T) {
	var detailPage string
	mux := http.NewServeMux()
	mux.HandleFunc("/jobs/search", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"id": "job-1", "title": "Engineer", "url": detailPage},
			},
		})
	})
	mux.HandleFunc("/detail", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head><style>.x{}</style></head><body><script>var x;</script><h1>Engineer</h1><p>Ship   software</p></body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	detailPage = server.URL + "/detail"

	client := NewClient(server.URL, "secret", server.Client())
	jobs := client.Search(context.Background(), "engineer", "", 10)

	require.Len(t, jobs, 1)
	assert.Equal(t, "Engineer Ship software", jobs[0].Description)
	assert.NotContains(t, jobs[0].Description, "var x")
	assert.NotContains(t, jobs[0].Description, ".x{}")
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "", stripHTML(""))
	assert.Equal(t, "hello world", stripHTML("<div><p>hello</p>   <span>world</span></div>"))
	assert.Equal(t, "plain text", stripHTML("plain   text"))
}

func TestSearch_DefaultLimitApplied(t *testing.T) {
	var gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		_ = json.NewEncoder(w).Encode(map[string]any{"results": []map[string]any{}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", server.Client())
	_ = client.Search(context.Background(), "q", "", 0)

	assert.Equal(t, "10", gotLimit)
}

func TestFetchPageText_TruncatesLongPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<body>" + strings.Repeat("word ", 1000) + "</body>"))
	}))
	defer server.Close()

	client := NewClient("https://api.example.com", "key", server.Client())
	text, err := client.fetchPageText(context.Background(), server.URL)

	require.NoError(t, err)
	assert.LessOrEqual(t, len(text), maxDescriptionChars)
}
