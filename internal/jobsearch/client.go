// Package jobsearch is a thin integration layer over an external job
// board API. It exists so the application has a clear plug-in point for a
// real provider; when none is configured or the provider is unreachable it
// falls back to deterministic mock postings, which keeps demos and tests
// working offline.
package jobsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultTimeout is the HTTP request timeout for provider calls.
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent identifies the client to the provider.
	DefaultUserAgent = "Mozilla/5.0 (compatible; CandidateRanker/1.0)"
	// DefaultLimit caps a search when the caller does not.
	DefaultLimit = 10

	// maxDetailFetches bounds concurrent detail-page requests.
	maxDetailFetches = 4
	// maxDescriptionChars truncates hydrated descriptions.
	maxDescriptionChars = 2000
)

// Job is a simplified external job posting.
type Job struct {
	ExternalID  string `json:"external_id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
}

// Client queries an external jobs API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a job search client. Empty baseURL or apiKey leaves
// the client unconfigured, in which case searches return mock postings.
// A nil http.Client uses a default client with DefaultTimeout.
func NewClient(baseURL, apiKey string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

// Configured reports whether a real provider can be called.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.apiKey != ""
}

// searchResponse is the provider's search payload.
type searchResponse struct {
	Results []providerJob `json:"results"`
}

// providerJob tolerates the field-name variants seen across providers.
type providerJob struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ApplyLink   string `json:"apply_link"`
}

// Search queries the provider and returns simplified postings. Provider
// failures are absorbed: the caller always gets results, mock ones if the
// real API is unavailable.
func (c *Client) Search(ctx context.Context, query, location string, limit int) []Job {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if !c.Configured() {
		return mockResults(query, location, limit)
	}

	jobs, err := c.searchProvider(ctx, query, location, limit)
	if err != nil {
		return mockResults(query, location, limit)
	}

	c.hydrateDescriptions(ctx, jobs)
	return jobs
}

// searchProvider performs the real API call.
func (c *Client) searchProvider(ctx context.Context, query, location string, limit int) ([]Job, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("location", location)
	params.Set("limit", strconv.Itoa(limit))

	endpoint := c.baseURL + "/jobs/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	jobs := make([]Job, 0, len(parsed.Results))
	for _, raw := range parsed.Results {
		jobs = append(jobs, normalizeJob(raw))
		if len(jobs) == limit {
			break
		}
	}
	return jobs, nil
}

// normalizeJob maps provider fields onto the common schema and strips any
// HTML markup out of the description.
func normalizeJob(raw providerJob) Job {
	company := raw.CompanyName
	if company == "" {
		company = raw.Company
	}
	jobURL := raw.URL
	if jobURL == "" {
		jobURL = raw.ApplyLink
	}
	return Job{
		ExternalID:  raw.ID,
		Title:       raw.Title,
		Company:     company,
		Location:    raw.Location,
		Description: stripHTML(raw.Description),
		URL:         jobURL,
		Source:      "provider",
	}
}

// hydrateDescriptions fetches detail pages for postings the search result
// left without a description. Fetches run concurrently but bounded; a
// failed fetch just leaves the description empty.
func (c *Client) hydrateDescriptions(ctx context.Context, jobs []Job) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxDetailFetches)

	for i := range jobs {
		if jobs[i].Description != "" || jobs[i].URL == "" {
			continue
		}
		g.Go(func() error {
			if text, err := c.fetchPageText(ctx, jobs[i].URL); err == nil {
				jobs[i].Description = text
			}
			return nil
		})
	}
	_ = g.Wait()
}

// fetchPageText retrieves a detail page and reduces it to plain text.
func (c *Client) fetchPageText(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("detail page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript").Remove()

	text := strings.Join(strings.Fields(doc.Text()), " ")
	if len(text) > maxDescriptionChars {
		text = text[:maxDescriptionChars]
	}
	return text, nil
}

// stripHTML converts an HTML fragment to whitespace-normalized plain text.
// Non-HTML input passes through unchanged apart from whitespace collapsing.
func stripHTML(fragment string) string {
	if fragment == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// mockResults provides deterministic postings when no provider is
// configured, mirroring the shape of a real search.
func mockResults(query, location string, limit int) []Job {
	if location == "" {
		location = "Remote"
	}
	jobs := []Job{
		{
			ExternalID:  "mock-001",
			Title:       query + " Engineer",
			Company:     "Example Labs",
			Location:    location,
			Description: fmt.Sprintf("Mock job for %q from the external job search integration layer.", query),
			URL:         "https://jobs.example.com/view/123456789",
			Source:      "mock",
		},
		{
			ExternalID:  "mock-002",
			Title:       "Senior " + query + " Developer",
			Company:     "Example Corp",
			Location:    location,
			Description: fmt.Sprintf("Another mock posting for %q.", query),
			URL:         "https://jobs.example.com/view/987654321",
			Source:      "mock",
		},
	}
	if limit < len(jobs) {
		jobs = jobs[:limit]
	}
	return jobs
}
