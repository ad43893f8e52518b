// Package serpapi adapts the SerpAPI search service into typed travel lookups.
//
// The adapter never retries and never panics past its boundary: every failure
// comes back as a *travel.ProviderError inside a Result, and callers decide
// whether to degrade or propagate.
package serpapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/hamzaessahbaoui/travel-planner/pkg/travel"
)

// DefaultBaseURL is the public SerpAPI search endpoint.
const DefaultBaseURL = "https://serpapi.com/search.json"

// DefaultTimeout bounds one outbound search.
const DefaultTimeout = 30 * time.Second

// Engine discriminates the kind of search being issued.
type Engine string

const (
	EngineFlights        Engine = "flights"
	EngineHotels         Engine = "hotels"
	EngineLocationSearch Engine = "location-search"
	EngineActivitySearch Engine = "activity-search"
	EngineWebSearch      Engine = "web-search"
)

// remote maps an engine onto the SerpAPI engine name.
func (e Engine) remote() string {
	switch e {
	case EngineFlights:
		return "google_flights"
	case EngineHotels:
		return "google_hotels"
	default:
		return "google"
	}
}

// Config configures a Client.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client issues one outbound HTTP call per search.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Client. A missing API key is a configuration error.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &travel.ConfigurationError{Key: "SERPAPI_API_KEY"}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}, nil
}

// Search runs a raw query against the given engine and returns the parsed JSON body.
func (c *Client) Search(ctx context.Context, engine Engine, params map[string]string) (gjson.Result, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return gjson.Result{}, &travel.ProviderError{Message: fmt.Sprintf("invalid base URL: %v", err)}
	}

	q := u.Query()
	q.Set("engine", engine.remote())
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	q.Set("api_key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return gjson.Result{}, &travel.ProviderError{Message: fmt.Sprintf("failed to create request: %v", err)}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("serpapi request failed", "engine", engine, "error", err)
		return gjson.Result{}, &travel.ProviderError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, &travel.ProviderError{Status: resp.StatusCode, Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	c.logger.Debug("serpapi request completed",
		"engine", engine,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(body, "error").String()
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return gjson.Result{}, &travel.ProviderError{Status: resp.StatusCode, Message: msg}
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, &travel.ProviderError{Status: resp.StatusCode, Message: "response is not valid JSON"}
	}

	return gjson.ParseBytes(body), nil
}
