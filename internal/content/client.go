package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/driftwood-studio/marquee/internal/errors"
	"github.com/driftwood-studio/marquee/internal/logging"
	"github.com/driftwood-studio/marquee/internal/section"
)

// ErrNotFound is returned when a query resolves to no document.
var ErrNotFound = errors.NewValidationError(errors.ErrCodeDocumentNotFound, "document not found")

// Config holds the content store connection settings.
type Config struct {
	// ProjectID and Dataset identify the hosted content project.
	ProjectID string
	Dataset   string
	// APIVersion is the dated API version string, e.g. "2024-05-01".
	APIVersion string
	// Token authorizes draft reads. Published reads work without it.
	Token string
	// BaseURL overrides the derived endpoint. Used by tests and the
	// self-hosted deployment.
	BaseURL string
}

// endpoint derives the query endpoint for the configured project.
func (c Config) endpoint() string {
	if c.BaseURL != "" {
		return fmt.Sprintf("%s/v%s/data/query/%s", c.BaseURL, c.APIVersion, c.Dataset)
	}
	return fmt.Sprintf("https://%s.api.sanity.io/v%s/data/query/%s",
		c.ProjectID, c.APIVersion, c.Dataset)
}

// Client reads documents from the hosted content store over HTTP. It
// implements Store and Fetcher.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     logging.Logger
}

var (
	_ Store   = (*Client)(nil)
	_ Fetcher = (*Client)(nil)
)

// NewClient creates a content store client. A nil httpClient uses
// http.DefaultClient; timeouts are the caller's concern via context.
func NewClient(config Config, httpClient *http.Client, logger logging.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		config:     config,
		httpClient: httpClient,
		logger:     logger.WithComponent("content"),
	}
}

// queryResponse is the store's response envelope.
type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

// Fetch runs a raw query with named parameters in the given cache mode and
// returns the result payload. Draft mode switches the read perspective to
// include unpublished revisions and marks the request uncacheable.
func (c *Client) Fetch(ctx context.Context, query string, params map[string]string, mode CacheMode) (json.RawMessage, error) {
	values := url.Values{}
	values.Set("query", query)
	for key, value := range params {
		// Named query parameters are JSON-encoded per the store's API.
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, errors.NewInternalError(errors.ErrCodeInternalError,
				"encode query parameter "+key, err)
		}
		values.Set("$"+key, string(encoded))
	}
	if mode == ModeDraft {
		values.Set("perspective", "previewDrafts")
	} else {
		values.Set("perspective", "published")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.config.endpoint()+"?"+values.Encode(), nil)
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInternalError, "build content request", err)
	}
	req.Header.Set("Accept", "application/json")
	if mode == ModeDraft {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
		req.Header.Set("Cache-Control", "no-store")
	}

	c.logger.Debug(ctx, "content fetch", "mode", mode.String(), "query", query)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.ErrFetchFailed(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.ErrFetchFailed(err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.ErrFetchFailed(
			fmt.Errorf("content store returned %d: %s", resp.StatusCode,
				logging.SanitizeForLog(string(body))))
	}

	var envelope queryResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.ErrFetchFailed(err)
	}
	return envelope.Result, nil
}

// pageQuery resolves a page by slug with its section references expanded in
// declared order. Reference order is the authoritative render order.
const pageQuery = `*[_type == "page" && slug.current == $slug][0]{..., sections[]->}`

// PageBySlug implements Store.
func (c *Client) PageBySlug(ctx context.Context, slug string, mode CacheMode) (section.RawRecord, error) {
	return c.fetchRecord(ctx, pageQuery, map[string]string{"slug": slug}, mode)
}

const documentQuery = `*[_id == $id][0]`

// Document implements Store.
func (c *Client) Document(ctx context.Context, id string, mode CacheMode) (section.RawRecord, error) {
	return c.fetchRecord(ctx, documentQuery, map[string]string{"id": id}, mode)
}

func (c *Client) fetchRecord(ctx context.Context, query string, params map[string]string, mode CacheMode) (section.RawRecord, error) {
	result, err := c.Fetch(ctx, query, params, mode)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 || string(result) == "null" {
		return nil, ErrNotFound
	}

	var record section.RawRecord
	if err := json.Unmarshal(result, &record); err != nil {
		return nil, errors.ErrFetchFailed(err)
	}
	return record, nil
}
