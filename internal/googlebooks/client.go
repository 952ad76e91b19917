// Package googlebooks is a caching client for the Google Books volumes API.
//
// Transport failures and non-2xx responses are absorbed here: Search returns
// an empty result set and GetVolume returns nil. Callers cannot distinguish
// "no results" from "service down"; failures are logged with query context
// so operators can.
package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mrlokans/bookfinder/internal/cache"
	"github.com/mrlokans/bookfinder/internal/config"
)

// MaxResults is the hard maximum the volumes endpoint accepts per request.
const MaxResults = 40

// Volume is the raw payload for a single volume, decoded as-is.
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

type VolumeInfo struct {
	Title               string               `json:"title"`
	Authors             []string             `json:"authors"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers"`
	ImageLinks          ImageLinks           `json:"imageLinks"`
}

type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}

// SearchResult mirrors the volumes list response.
type SearchResult struct {
	Items      []Volume `json:"items"`
	TotalItems int      `json:"totalItems"`
}

// Client fetches volumes from the Google Books API through a TTL cache.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cache      cache.Store
	cacheTTL   time.Duration
}

// NewClient creates a Google Books client. The cache store is an injected
// dependency so tests and callers control its lifetime.
func NewClient(cfg config.GoogleBooks, store cache.Store, ttl time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		cache:    store,
		cacheTTL: ttl,
	}
}

// Search queries the volumes endpoint. The result is cached per
// (query, page, perPage); any failure yields an empty result, uncached.
func (c *Client) Search(ctx context.Context, query string, page, perPage int) *SearchResult {
	key := cache.Fingerprint("googlebooks:search", query, strconv.Itoa(page), strconv.Itoa(perPage))

	value, err := cache.Remember(c.cache, key, c.cacheTTL, func() (any, error) {
		return c.performSearch(ctx, query, page, perPage)
	})
	if err != nil {
		log.Printf("Google Books search failed: %v (query=%q page=%d per_page=%d)", err, query, page, perPage)
		return &SearchResult{Items: []Volume{}, TotalItems: 0}
	}

	return value.(*SearchResult)
}

// GetVolume fetches a single volume by ID. A not-found response is cached
// and returned as nil; transport failures also return nil but stay uncached.
func (c *Client) GetVolume(ctx context.Context, volumeID string) *Volume {
	key := cache.Fingerprint("googlebooks:volume", volumeID)

	value, err := cache.Remember(c.cache, key, c.cacheTTL, func() (any, error) {
		return c.performGetVolume(ctx, volumeID)
	})
	if err != nil {
		log.Printf("Google Books volume fetch failed: %v (volume_id=%q)", err, volumeID)
		return nil
	}

	return value.(*Volume)
}

func (c *Client) performSearch(ctx context.Context, query string, page, perPage int) (*SearchResult, error) {
	if perPage > MaxResults {
		perPage = MaxResults
	}
	startIndex := (page - 1) * perPage

	params := url.Values{}
	params.Set("q", query)
	params.Set("startIndex", strconv.Itoa(startIndex))
	params.Set("maxResults", strconv.Itoa(perPage))
	params.Set("printType", "books")
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	requestURL := fmt.Sprintf("%s/volumes?%s", c.baseURL, params.Encode())

	var result SearchResult
	if err := c.getJSON(ctx, requestURL, &result); err != nil {
		return nil, err
	}
	if result.Items == nil {
		result.Items = []Volume{}
	}

	return &result, nil
}

func (c *Client) performGetVolume(ctx context.Context, volumeID string) (*Volume, error) {
	params := url.Values{}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	requestURL := fmt.Sprintf("%s/volumes/%s", c.baseURL, url.PathEscape(volumeID))
	if encoded := params.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch volume: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Cacheable: the volume genuinely does not exist upstream
		return (*Volume)(nil), nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var volume Volume
	if err := json.NewDecoder(resp.Body).Decode(&volume); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &volume, nil
}

const userAgent = "Bookfinder/1.0"

func (c *Client) getJSON(ctx context.Context, requestURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
