package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	dashboard "github.com/goliatone/go-seller-dashboard/components/dashboard"
)

const (
	// DefaultTimeout bounds a whole request when no http.Client is supplied.
	DefaultTimeout = 10 * time.Second
	// RequestIDHeader carries the per-call correlation id.
	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 512
)

// Endpoint paths, relative to the base URL.
const (
	PathListSellers      = "/api/sellers/list_sellers/"
	PathSellerAnalytics  = "/api/sellers/%s/analytics/"
	PathSalesPerformance = "/api/sellers/%s/sales-performance/"
	PathMarketShare      = "/api/sellers/%s/market-share/"
	PathCategoryShare    = "/api/platform/category-market-share/"
	PathTopProducts      = "/api/platform/top-products/"
	PathSearchAnalytics  = "/api/platform/search-analytics/"
	PathRevenueByState   = "/api/platform/revenue-by-state/"
	sellerIDParam        = "seller_id"
)

// HTTPConfig configures the HTTP analytics client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// HTTPClient issues GET requests against the marketplace analytics API. It
// never retries and never caches.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

// NewHTTPClient builds a client for the analytics API at cfg.BaseURL.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("analytics: base url is required")
	}
	parsed, err := url.Parse(base)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("analytics: base url %q must be an absolute http(s) url", cfg.BaseURL)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	return &HTTPClient{
		baseURL: base,
		apiKey:  cfg.APIKey,
		client:  httpClient,
		log:     log.With().Str("component", "analytics").Logger(),
	}, nil
}

// BaseURL returns the normalized base URL.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

// ListSellers fetches every seller, in the order the API returns them.
func (c *HTTPClient) ListSellers(ctx context.Context) ([]dashboard.Seller, error) {
	var resp sellersResponse
	if err := c.FetchEndpoint(ctx, PathListSellers, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toSellers(), nil
}

// SellerAnalytics fetches the aggregate revenue figures of a seller.
func (c *HTTPClient) SellerAnalytics(ctx context.Context, sellerID string) (dashboard.SellerSummary, error) {
	path, err := sellerPath(PathSellerAnalytics, sellerID)
	if err != nil {
		return dashboard.SellerSummary{}, err
	}
	var resp sellerAnalyticsResponse
	if err := c.FetchEndpoint(ctx, path, nil, &resp); err != nil {
		return dashboard.SellerSummary{}, err
	}
	return resp.toSummary(), nil
}

// SalesPerformance fetches the seller revenue breakdown by category and product.
func (c *HTTPClient) SalesPerformance(ctx context.Context, sellerID string) (dashboard.SalesPerformance, error) {
	path, err := sellerPath(PathSalesPerformance, sellerID)
	if err != nil {
		return dashboard.SalesPerformance{}, err
	}
	var resp salesPerformanceResponse
	if err := c.FetchEndpoint(ctx, path, nil, &resp); err != nil {
		return dashboard.SalesPerformance{}, err
	}
	return resp.toPerformance(), nil
}

// MarketShare fetches the seller share of platform revenue per category.
func (c *HTTPClient) MarketShare(ctx context.Context, sellerID string) (dashboard.MarketShareReport, error) {
	path, err := sellerPath(PathMarketShare, sellerID)
	if err != nil {
		return dashboard.MarketShareReport{}, err
	}
	var resp marketShareResponse
	if err := c.FetchEndpoint(ctx, path, nil, &resp); err != nil {
		return dashboard.MarketShareReport{}, err
	}
	return resp.toReport(), nil
}

// CategoryShare fetches platform revenue per category.
func (c *HTTPClient) CategoryShare(ctx context.Context) (dashboard.CategoryShareReport, error) {
	var resp categoryShareResponse
	if err := c.FetchEndpoint(ctx, PathCategoryShare, nil, &resp); err != nil {
		return dashboard.CategoryShareReport{}, err
	}
	return resp.toReport(), nil
}

// TopProducts fetches the best selling products of the platform.
func (c *HTTPClient) TopProducts(ctx context.Context) (dashboard.TopProductsReport, error) {
	var resp topProductsResponse
	if err := c.FetchEndpoint(ctx, PathTopProducts, nil, &resp); err != nil {
		return dashboard.TopProductsReport{}, err
	}
	return resp.toReport(), nil
}

// SearchAnalytics fetches the most searched products.
func (c *HTTPClient) SearchAnalytics(ctx context.Context) (dashboard.SearchAnalyticsReport, error) {
	var resp searchAnalyticsResponse
	if err := c.FetchEndpoint(ctx, PathSearchAnalytics, nil, &resp); err != nil {
		return dashboard.SearchAnalyticsReport{}, err
	}
	return resp.toReport(), nil
}

// RevenueByState fetches platform revenue per customer state.
func (c *HTTPClient) RevenueByState(ctx context.Context) (dashboard.StateRevenueReport, error) {
	var resp stateRevenueResponse
	if err := c.FetchEndpoint(ctx, PathRevenueByState, nil, &resp); err != nil {
		return dashboard.StateRevenueReport{}, err
	}
	return resp.toReport(), nil
}

// FetchEndpoint issues one GET for path with params and decodes the JSON
// body into target. Transport failures, non-2xx statuses and undecodable
// bodies all come back as *dashboard.NetworkError.
func (c *HTTPClient) FetchEndpoint(ctx context.Context, path string, params url.Values, target any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &dashboard.NetworkError{Path: path, Err: fmt.Errorf("build request: %w", err)}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("request_id", requestID).Str("path", path).Msg("analytics request failed")
		return &dashboard.NetworkError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("request_id", requestID).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(started)).
		Msg("analytics request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &dashboard.NetworkError{
			Path:   path,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		}
	}
	if target == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return &dashboard.NetworkError{Path: path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func sellerPath(pattern, sellerID string) (string, error) {
	sellerID = strings.TrimSpace(sellerID)
	if sellerID == "" {
		return "", &dashboard.MissingParameterError{
			Param:    sellerIDParam,
			Endpoint: strings.Replace(pattern, "%s", "{id}", 1),
		}
	}
	return fmt.Sprintf(pattern, url.PathEscape(sellerID)), nil
}
