// Package geocode wraps the third-party geocoding provider. The outbound
// HTTP client is built with safeurl so a crafted address can never steer a
// request at loopback, private ranges or cloud metadata addresses.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/doyensec/safeurl"
)

var (
	ErrNoResult = errors.New("geocode: no result")
)

const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org"
	requestTimeout   = 10 * time.Second
	maxResponseBytes = 1 << 20
)

// Result is one geocoding hit: a coordinate plus the provider's display
// address.
type Result struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"display_name"`
	City        string  `json:"city,omitempty"`
	PostalCode  string  `json:"postal_code,omitempty"`
}

// Client talks to a Nominatim-compatible provider.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// New builds a Client. baseURL empty selects the public Nominatim
// instance; userAgent is required by the provider's usage policy.
func New(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	config := safeurl.GetConfigBuilder().
		SetTimeout(requestTimeout).
		SetAllowedSchemes("http", "https").
		SetAllowedPorts(80, 443).
		Build()

	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		http:      safeurl.Client(config).Client,
	}
}

// Search resolves a free-text address to coordinates (best hit first).
func (c *Client) Search(ctx context.Context, address string) (*Result, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "jsonv2")
	q.Set("addressdetails", "1")
	q.Set("limit", "1")

	var hits []nominatimHit
	if err := c.get(ctx, "/search", q, &hits); err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, ErrNoResult
	}
	return hits[0].toResult()
}

// Reverse resolves coordinates back to an address.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (*Result, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("format", "jsonv2")
	q.Set("addressdetails", "1")

	var hit nominatimHit
	if err := c.get(ctx, "/reverse", q, &hit); err != nil {
		return nil, err
	}
	if hit.Lat == "" {
		return nil, ErrNoResult
	}
	return hit.toResult()
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocode provider returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// nominatimHit mirrors the provider's wire shape; coordinates arrive as
// strings.
type nominatimHit struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		City     string `json:"city"`
		Town     string `json:"town"`
		Village  string `json:"village"`
		Postcode string `json:"postcode"`
	} `json:"address"`
}

func (h nominatimHit) toResult() (*Result, error) {
	lat, err := strconv.ParseFloat(h.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode: bad latitude %q", h.Lat)
	}
	lng, err := strconv.ParseFloat(h.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode: bad longitude %q", h.Lon)
	}

	city := h.Address.City
	if city == "" {
		city = h.Address.Town
	}
	if city == "" {
		city = h.Address.Village
	}

	return &Result{
		Latitude:    lat,
		Longitude:   lng,
		DisplayName: h.DisplayName,
		City:        city,
		PostalCode:  h.Address.Postcode,
	}, nil
}
