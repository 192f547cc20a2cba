package ads

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"CampaignBot/flow"
	"CampaignBot/internal/config"
	"CampaignBot/internal/lib/sl"
)

// Client talks to the Marketing API. Every call runs against a bounded
// timeout; failures come back as *flow.ExternalError with the platform
// message preserved.
type Client struct {
	baseURL string
	version string
	http    *http.Client
	log     *slog.Logger
}

func NewClient(conf *config.Config, log *slog.Logger) *Client {
	if conf.Ads.AccessToken == "" {
		return nil
	}

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: conf.Ads.AccessToken})
	httpClient := oauth2.NewClient(context.Background(), source)
	httpClient.Timeout = time.Duration(conf.Ads.TimeoutSec) * time.Second

	return &Client{
		baseURL: strings.TrimRight(conf.Ads.BaseURL, "/"),
		version: conf.Ads.ApiVersion,
		http:    httpClient,
		log:     log.With(sl.Module("ads.client")),
	}
}

// apiError is the platform's error envelope.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func (c *Client) endpoint(path string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.version, strings.TrimLeft(path, "/"))
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.endpoint(path)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	return c.do(req, path, out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, idempotencyToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if idempotencyToken != "" {
		req.Header.Set("X-Idempotency-Key", idempotencyToken)
	}

	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, op string, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &flow.ExternalError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &flow.ExternalError{Op: op, Err: err}
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return &flow.ExternalError{Op: op, Message: apiErr.Error.Message}
		}
		return &flow.ExternalError{Op: op, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return &flow.ExternalError{Op: op, Err: fmt.Errorf("decoding response: %w", err)}
		}
	}

	return nil
}
