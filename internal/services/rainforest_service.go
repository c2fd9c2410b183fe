package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultRainforestBaseURL = "https://api.rainforestapi.com"

// SearchPrice is the displayed and numeric price of a search result.
type SearchPrice struct {
	Raw   string  `json:"raw"`
	Value float64 `json:"value"`
}

// SearchResult is one product returned by the product-search API.
type SearchResult struct {
	Title  string      `json:"title"`
	ASIN   string      `json:"asin"`
	Link   string      `json:"link"`
	Image  string      `json:"image"`
	Rating float64     `json:"rating"`
	Price  SearchPrice `json:"price"`
}

type rainforestResponse struct {
	SearchResults []SearchResult `json:"search_results"`
}

// RainforestService calls the product-search API.
type RainforestService struct {
	settings   *SettingsService
	baseURL    string
	httpClient *http.Client
}

// NewRainforestService creates a RainforestService. An empty baseURL selects
// the real API.
func NewRainforestService(settings *SettingsService, baseURL string) *RainforestService {
	if baseURL == "" {
		baseURL = defaultRainforestBaseURL
	}
	return &RainforestService{
		settings:   settings,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Search queries products by term within the given price bounds, cheapest
// first. A non-positive limit leaves the page size to the API.
func (s *RainforestService) Search(ctx context.Context, term string, minPrice, maxPrice, limit int) ([]SearchResult, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load search settings: %w", err)
	}

	query := url.Values{}
	query.Set("api_key", settings.RainforestKey)
	query.Set("type", "search")
	query.Set("amazon_domain", "amazon.com")
	query.Set("search_term", term)
	query.Set("sort_by", "price_low_to_high")
	query.Set("pr_min", strconv.Itoa(minPrice))
	query.Set("pr_max", strconv.Itoa(maxPrice))
	if limit > 0 {
		query.Set("num_results", strconv.Itoa(limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/request?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("product search returned status %d: %s", resp.StatusCode, raw)
	}

	var parsed rainforestResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	return parsed.SearchResults, nil
}
