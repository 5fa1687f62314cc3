package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://nominatim.openstreetmap.org"
	requestTimeout = 5 * time.Second
	countrySuffix  = ", Switzerland"
)

// Point is a geocoded centroid in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Client resolves free-text place names to coordinates through the Nominatim
// search API. Lookups are best-effort: any upstream failure resolves to a nil
// point so that callers can degrade to non-geospatial filtering.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a Nominatim client. The user agent is mandatory under the
// Nominatim usage policy, which also caps usage at one request per second.
func NewClient(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: requestTimeout},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Geocode returns the best-guess centroid for a place name, biased to
// Switzerland. It returns (nil, nil) when the place cannot be resolved for any
// reason other than context cancellation; a single attempt, no cache.
func (c *Client) Geocode(ctx context.Context, place string) (*Point, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("q", place+countrySuffix)
	query.Set("format", "json")
	query.Set("limit", "1")
	searchURL := fmt.Sprintf("%s/search?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("geocode %q: %v", place, err)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Printf("geocode %q: status %d", place, resp.StatusCode)
		return nil, nil
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		log.Printf("geocode %q: decode response: %v", place, err)
		return nil, nil
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, nil
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, nil
	}

	return &Point{Lat: lat, Lng: lng}, nil
}
