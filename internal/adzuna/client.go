package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mhalder/jobsift/internal/model"
	"github.com/mhalder/jobsift/internal/retry"
)

const defaultBaseURL = "https://api.adzuna.com/v1/api/jobs"

// Params narrows an Adzuna search. Query is required; the rest are optional.
type Params struct {
	Query          string
	Country        string // two-letter code Adzuna expects, e.g. "us"
	ResultsPerPage int
	Where          string // location filter
	Category       string // Adzuna category code, e.g. "it-jobs"
}

// Client fetches search pages from the Adzuna jobs API.
type Client struct {
	baseURL    string
	appID      string
	appKey     string
	params     Params
	httpClient *http.Client
	policy     retry.Policy
	logger     *slog.Logger
}

// NewClient creates a client for the given credentials and search parameters.
func NewClient(appID, appKey string, params Params, httpClient *http.Client, policy retry.Policy, logger *slog.Logger) *Client {
	if params.Country == "" {
		params.Country = "us"
	}
	if params.ResultsPerPage <= 0 {
		params.ResultsPerPage = 50
	}
	return &Client{
		baseURL:    defaultBaseURL,
		appID:      appID,
		appKey:     appKey,
		params:     params,
		httpClient: httpClient,
		policy:     policy,
		logger:     logger,
	}
}

// SetBaseURL overrides the API base URL. Used by tests.
func (c *Client) SetBaseURL(base string) { c.baseURL = base }

// searchResponse is the subset of Adzuna's response the pipeline reads.
// Results stays untyped; normalization owns the field mapping.
type searchResponse struct {
	Count   int              `json:"count"`
	Results []map[string]any `json:"results"`
}

// Search fetches one page of results (1-based), retrying transport failures.
func (c *Client) Search(ctx context.Context, page int) (*model.SearchPage, error) {
	return retry.Do(ctx, c.policy, c.logger, "adzuna search", func(ctx context.Context) (*model.SearchPage, error) {
		return c.searchOnce(ctx, page)
	})
}

func (c *Client) searchOnce(ctx context.Context, page int) (*model.SearchPage, error) {
	// Adzuna paginates with integer path segments: /search/1, /search/2, ...
	endpoint := fmt.Sprintf("%s/%s/search/%d", c.baseURL, c.params.Country, page)

	q := url.Values{}
	q.Set("app_id", c.appID)
	q.Set("app_key", c.appKey)
	q.Set("what", c.params.Query)
	q.Set("results_per_page", strconv.Itoa(c.params.ResultsPerPage))
	if c.params.Where != "" {
		q.Set("where", c.params.Where)
	}
	if c.params.Category != "" {
		q.Set("category", c.params.Category)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("adzuna search: %w", err)
	}
	req.Header.Set("User-Agent", "jobsift/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adzuna search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, &model.MalformedResponseError{Op: "adzuna search", Err: err}
	}

	return &model.SearchPage{Count: sr.Count, Results: sr.Results}, nil
}
