package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HunterClient talks to the Hunter.io v2 email-finder endpoint.
type HunterClient struct {
	baseURL string
	client  *http.Client
}

// NewHunterClient creates a Hunter.io client. baseURL is normally
// "https://api.hunter.io"; tests point it at a local server.
func NewHunterClient(baseURL string, timeout time.Duration) *HunterClient {
	return &HunterClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// emailFinderResponse is the subset of Hunter's response we care about.
type emailFinderResponse struct {
	Data struct {
		Email string `json:"email"`
		Score int    `json:"score"`
	} `json:"data"`
	Errors []struct {
		ID      string `json:"id"`
		Details string `json:"details"`
	} `json:"errors"`
}

// FindEmail looks up the most likely email for a company at the given domain.
// A lookup that simply finds nothing returns ("", nil); only transport and
// authentication problems are errors.
func (c *HunterClient) FindEmail(ctx context.Context, apiKey, domain, company string) (string, error) {
	q := url.Values{}
	q.Set("domain", domain)
	q.Set("company", company)
	q.Set("api_key", apiKey)

	endpoint := c.baseURL + "/v2/email-finder?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("hunter: build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("hunter: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("hunter: read body: %w", err)
	}

	// Hunter answers 404/422 when it has no email for the domain. That is
	// a normal "none found" outcome, not a failure.
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusUnprocessableEntity {
		return "", nil
	}
	if resp.StatusCode >= 400 {
		var parsed emailFinderResponse
		if json.Unmarshal(body, &parsed) == nil && len(parsed.Errors) > 0 {
			return "", fmt.Errorf("hunter: %s (HTTP %d)", parsed.Errors[0].Details, resp.StatusCode)
		}
		return "", fmt.Errorf("hunter: HTTP %d", resp.StatusCode)
	}

	var parsed emailFinderResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("hunter: decode response: %w", err)
	}

	return parsed.Data.Email, nil
}
