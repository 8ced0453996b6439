// Package leetcode is the HTTP client for the hosted LeetCode statistics
// API (alfa-leetcode-api). It only transports and decodes; normalization
// lives in the stats service.
package leetcode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public instance of the statistics API.
const DefaultBaseURL = "https://alfa-leetcode-api.onrender.com"

// DefaultTimeout bounds each request.
const DefaultTimeout = 10 * time.Second

// API is the surface the stats service consumes. Tests substitute a stub.
type API interface {
	Profile(ctx context.Context, username string) (*RawProfile, error)
	Skills(ctx context.Context, username string) (RawSkillBuckets, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Profile fetches the aggregate profile for one user.
func (c *Client) Profile(ctx context.Context, username string) (*RawProfile, error) {
	var profile RawProfile
	endpoint := fmt.Sprintf("%s/userProfile/%s", c.baseURL, url.PathEscape(username))
	if err := c.getJSON(ctx, endpoint, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Skills fetches the per-tag skill breakdown for one user.
func (c *Client) Skills(ctx context.Context, username string) (RawSkillBuckets, error) {
	var buckets RawSkillBuckets
	endpoint := fmt.Sprintf("%s/%s/skill", c.baseURL, url.PathEscape(username))
	if err := c.getJSON(ctx, endpoint, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s: HTTP status %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}
