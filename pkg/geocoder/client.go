package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// Address holds the subset of reverse-geocoding fields the application reads
type Address struct {
	Road         string `json:"road"`
	Suburb       string `json:"suburb"`
	CityDistrict string `json:"city_district"`
	City         string `json:"city"`
}

// PlaceName returns the most specific available name, trying
// road, suburb, city district and city in that order.
func (a *Address) PlaceName() string {
	if a == nil {
		return ""
	}
	for _, name := range []string{a.Road, a.Suburb, a.CityDistrict, a.City} {
		if name != "" {
			return name
		}
	}
	return ""
}

// Client resolves a coordinate into a human-readable address
type Client interface {
	Reverse(ctx context.Context, lon, lat float64) (*Address, error)
}

// NominatimConfig holds configuration for the Nominatim reverse geocoder
type NominatimConfig struct {
	BaseURL     string
	Timeout     time.Duration
	MinInterval time.Duration // public Nominatim instances require throttling
}

// NominatimClient implements reverse geocoding against a Nominatim-style endpoint
type NominatimClient struct {
	baseURL     string
	client      *http.Client
	minInterval time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewNominatimClient creates a new Nominatim reverse geocoding client
func NewNominatimClient(config NominatimConfig) *NominatimClient {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &NominatimClient{
		baseURL:     config.BaseURL,
		minInterval: config.MinInterval,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type reverseResponse struct {
	Address Address `json:"address"`
	Error   string  `json:"error"`
}

// Reverse looks up the address at the given coordinate
func (c *NominatimClient) Reverse(ctx context.Context, lon, lat float64) (*Address, error) {
	c.throttle()

	query := url.Values{}
	query.Set("format", "json")
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build reverse geocode request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read reverse geocode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reverse geocode returned status %d", resp.StatusCode)
	}

	var parsed reverseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse reverse geocode response: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("reverse geocode error: %s", parsed.Error)
	}

	return &parsed.Address, nil
}

// throttle enforces the minimum interval between upstream requests
func (c *NominatimClient) throttle() {
	if c.minInterval <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if delta := time.Since(c.last); delta < c.minInterval {
		time.Sleep(c.minInterval - delta)
	}
	c.last = time.Now()
}
