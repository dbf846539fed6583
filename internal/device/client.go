package device

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"pulse/internal/records"
)

// DefaultBaseURL is the production device-data API endpoint.
const DefaultBaseURL = "https://api.pulsewear.io"

// Client is a device-data API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// NewClient creates a client that authenticates every request through the
// token source. Requests are limited to 5/s with small bursts, inside the
// API's published quota.
func NewClient(baseURL string, tokenSource oauth2.TokenSource) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: oauth2.NewClient(context.Background(), tokenSource),
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(5), 10),
	}
}

// GetHeartRateSamples fetches all heart-rate samples on or after a date
// ("YYYY-MM-DD", empty for everything), following pagination.
func (c *Client) GetHeartRateSamples(ctx context.Context, sinceDate string) ([]records.HeartRateSample, error) {
	var samples []records.HeartRateSample

	token := ""
	for {
		params := url.Values{}
		if sinceDate != "" {
			params.Set("since", sinceDate)
		}
		if token != "" {
			params.Set("page_token", token)
		}

		var page heartRatePage
		if err := c.getJSON(ctx, "/v1/heartrate", params, &page); err != nil {
			return nil, err
		}

		for _, s := range page.Samples {
			rec, err := convertSample(s)
			if err != nil {
				return nil, err
			}
			samples = append(samples, rec)
		}

		if page.NextTok == "" {
			break
		}
		token = page.NextTok
	}

	return samples, nil
}

// GetSleepNights fetches all sleep nights on or after a date, following
// pagination.
func (c *Client) GetSleepNights(ctx context.Context, sinceDate string) ([]records.SleepNight, error) {
	var nights []records.SleepNight

	token := ""
	for {
		params := url.Values{}
		if sinceDate != "" {
			params.Set("since", sinceDate)
		}
		if token != "" {
			params.Set("page_token", token)
		}

		var page sleepPage
		if err := c.getJSON(ctx, "/v1/sleep", params, &page); err != nil {
			return nil, err
		}

		for _, n := range page.Nights {
			rec, err := convertNight(n)
			if err != nil {
				return nil, err
			}
			nights = append(nights, rec)
		}

		if page.NextTok == "" {
			break
		}
		token = page.NextTok
	}

	return nights, nil
}

// GetActivityMinutes fetches per-minute activity records on or after a date,
// following pagination.
func (c *Client) GetActivityMinutes(ctx context.Context, sinceDate string) ([]records.ActivityMinute, error) {
	var minutes []records.ActivityMinute

	token := ""
	for {
		params := url.Values{}
		if sinceDate != "" {
			params.Set("since", sinceDate)
		}
		if token != "" {
			params.Set("page_token", token)
		}

		var page activityPage
		if err := c.getJSON(ctx, "/v1/activity", params, &page); err != nil {
			return nil, err
		}

		for _, m := range page.Minutes {
			rec, err := convertMinute(m)
			if err != nil {
				return nil, err
			}
			minutes = append(minutes, rec)
		}

		if page.NextTok == "" {
			break
		}
		token = page.NextTok
	}

	return minutes, nil
}

// getJSON performs a rate-limited GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
