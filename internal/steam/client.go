package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/rmoreira/steamwatch-bot/pkg/config"
	pkgerrors "github.com/rmoreira/steamwatch-bot/pkg/errors"
	"github.com/rmoreira/steamwatch-bot/pkg/logger"
)

const (
	searchPath  = "/api/storesearch/"
	detailsPath = "/api/appdetails"

	defaultTimeout = 15 * time.Second
	defaultRPS     = 2
	defaultBurst   = 4
)

// AppDetails is the subset of the storefront detail payload the bot uses.
// A nil FinalPriceCents means the app has no price block (free or unpriced)
// and cannot be tracked.
type AppDetails struct {
	Name            string
	FinalPriceCents *int64
}

// Catalog resolves free-text names to app ids and fetches pricing details.
type Catalog interface {
	SearchAppID(ctx context.Context, term string) (int64, error)
	AppDetails(ctx context.Context, appID int64) (AppDetails, error)
}

// Client talks to the Steam storefront API. Calls are read-only, single
// attempt, and throttled by a shared limiter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	locale     string
	region     string
	limiter    *rate.Limiter
	logger     *logger.Logger
}

// NewClient validates the configuration and builds a storefront client.
func NewClient(cfg config.SteamConfig, logg *logger.Logger) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "steam base url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = defaultBurst
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		locale:     cfg.Locale,
		region:     cfg.Region,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		logger:     logg,
	}, nil
}

type searchResponse struct {
	Total int `json:"total"`
	Items []struct {
		ID int64 `json:"id"`
	} `json:"items"`
}

// SearchAppID resolves a free-text name to the first matching app id.
// The first-result policy is deliberate; there is no ranking or fuzzy
// matching on top of what the storefront returns.
func (c *Client) SearchAppID(ctx context.Context, term string) (int64, error) {
	query := url.Values{}
	query.Set("term", term)
	query.Set("l", c.locale)
	query.Set("cc", c.region)

	var payload searchResponse
	if err := c.getJSON(ctx, searchPath, query, &payload); err != nil {
		return 0, err
	}

	if payload.Total <= 0 || len(payload.Items) == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no results for %q", term))
	}
	return payload.Items[0].ID, nil
}

type detailsEntry struct {
	Success bool `json:"success"`
	Data    struct {
		Name          string `json:"name"`
		PriceOverview *struct {
			Final int64 `json:"final"`
		} `json:"price_overview"`
	} `json:"data"`
}

// AppDetails fetches the detail payload for an app id. The per-id success
// flag is authoritative: success=false maps to not-found even when the HTTP
// call itself succeeded.
func (c *Client) AppDetails(ctx context.Context, appID int64) (AppDetails, error) {
	query := url.Values{}
	query.Set("appids", strconv.FormatInt(appID, 10))

	var payload map[string]detailsEntry
	if err := c.getJSON(ctx, detailsPath, query, &payload); err != nil {
		return AppDetails{}, err
	}

	entry, ok := payload[strconv.FormatInt(appID, 10)]
	if !ok {
		return AppDetails{}, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("details response missing app %d", appID))
	}
	if !entry.Success {
		return AppDetails{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no details for app %d", appID))
	}

	details := AppDetails{Name: entry.Data.Name}
	if entry.Data.PriceOverview != nil {
		final := entry.Data.PriceOverview.Final
		details.FinalPriceCents = &final
	}
	return details, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storefront rate limit wait")
	}

	endpoint := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "building storefront request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storefront request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("storefront returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding storefront response")
	}
	return nil
}
