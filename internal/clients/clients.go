// Package clients provides HTTP clients for external APIs
package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"spacescope/internal/domain"
)

const (
	DefaultNasaBaseURL      = "https://api.nasa.gov"
	DefaultOpenMeteoBaseURL = "https://api.open-meteo.com"

	userAgent = "spacescope/1.0"
)

// FeedErrorKind classifies feed failures
type FeedErrorKind int

const (
	FeedErrNetwork FeedErrorKind = iota
	FeedErrHTTPStatus
	FeedErrMalformed
	FeedErrInvalidParams
)

func (k FeedErrorKind) String() string {
	switch k {
	case FeedErrNetwork:
		return "network"
	case FeedErrHTTPStatus:
		return "http_status"
	case FeedErrMalformed:
		return "malformed"
	case FeedErrInvalidParams:
		return "invalid_params"
	default:
		return "unknown"
	}
}

// FeedError is returned by every feed client call
type FeedError struct {
	Kind   FeedErrorKind
	Feed   string
	Status int
	Err    error
}

func (e *FeedError) Error() string {
	switch e.Kind {
	case FeedErrHTTPStatus:
		return fmt.Sprintf("%s: HTTP %d", e.Feed, e.Status)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Feed, e.Kind, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Feed, e.Kind)
	}
}

func (e *FeedError) Unwrap() error { return e.Err }

// IsFeedError reports whether err is a FeedError of the given kind
func IsFeedError(err error, kind FeedErrorKind) bool {
	var fe *FeedError
	return errors.As(err, &fe) && fe.Kind == kind
}

// HTTPClient is a wrapper around http.Client with common configuration
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClient creates a new HTTP client with timeout
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Get performs a GET request and returns the response body. Transport
// failures and non-2xx statuses are reported as *FeedError tagged with feed.
func (c *HTTPClient) Get(ctx context.Context, feed, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FeedError{Kind: FeedErrInvalidParams, Feed: feed, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FeedError{Kind: FeedErrNetwork, Feed: feed, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FeedError{Kind: FeedErrNetwork, Feed: feed, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FeedError{Kind: FeedErrHTTPStatus, Feed: feed, Status: resp.StatusCode}
	}

	return body, nil
}

// NasaClient fetches data from NASA APIs
type NasaClient struct {
	http    *HTTPClient
	baseURL string
	apiKey  string
}

// NewNasaClient creates a new NASA API client. An empty baseURL selects
// the public api.nasa.gov endpoint.
func NewNasaClient(baseURL, apiKey string) *NasaClient {
	if baseURL == "" {
		baseURL = DefaultNasaBaseURL
	}
	return &NasaClient{
		http:    NewHTTPClient(),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

func (c *NasaClient) endpoint(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	return c.baseURL + path + "?" + params.Encode()
}

// FetchAPOD fetches Astronomy Picture of the Day
func (c *NasaClient) FetchAPOD(ctx context.Context) (domain.Apod, error) {
	body, err := c.http.Get(ctx, "apod", c.endpoint("/planetary/apod", nil))
	if err != nil {
		return domain.Apod{}, err
	}

	var apod domain.Apod
	if err := json.Unmarshal(body, &apod); err != nil {
		return domain.Apod{}, &FeedError{Kind: FeedErrMalformed, Feed: "apod", Err: err}
	}
	return apod, nil
}

// FetchNotifications fetches DONKI space-weather notifications with markup
// stripped from every message body
func (c *NasaClient) FetchNotifications(ctx context.Context) ([]domain.Notification, error) {
	body, err := c.http.Get(ctx, "donki", c.endpoint("/DONKI/notifications", nil))
	if err != nil {
		return nil, err
	}

	var notes []domain.Notification
	if err := json.Unmarshal(body, &notes); err != nil {
		return nil, &FeedError{Kind: FeedErrMalformed, Feed: "donki", Err: err}
	}
	for i := range notes {
		notes[i].MessageBody = StripMarkup(notes[i].MessageBody)
	}
	return notes, nil
}

// FetchNeoFeed fetches Near Earth Objects for a single day (YYYY-MM-DD).
// A feed without an entry for date yields an empty slice.
func (c *NasaClient) FetchNeoFeed(ctx context.Context, date string) ([]domain.NearEarthObject, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, &FeedError{Kind: FeedErrInvalidParams, Feed: "neo", Err: err}
	}

	params := url.Values{}
	params.Set("start_date", date)
	params.Set("end_date", date)

	body, err := c.http.Get(ctx, "neo", c.endpoint("/neo/rest/v1/feed", params))
	if err != nil {
		return nil, err
	}

	var feed struct {
		NearEarthObjects map[string][]domain.NearEarthObject `json:"near_earth_objects"`
	}
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, &FeedError{Kind: FeedErrMalformed, Feed: "neo", Err: err}
	}
	return feed.NearEarthObjects[date], nil
}

// OpenMeteoClient fetches current local atmospheric conditions
type OpenMeteoClient struct {
	http    *HTTPClient
	baseURL string
}

// NewOpenMeteoClient creates a new Open-Meteo client
func NewOpenMeteoClient(baseURL string) *OpenMeteoClient {
	if baseURL == "" {
		baseURL = DefaultOpenMeteoBaseURL
	}
	return &OpenMeteoClient{
		http:    NewHTTPClient(),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// FetchAtmosphere fetches cloud cover, visibility and humidity at lat/lon
func (c *OpenMeteoClient) FetchAtmosphere(ctx context.Context, lat, lon float64) (domain.Atmosphere, error) {
	if !finite(lat) || !finite(lon) || math.Abs(lat) > 90 || math.Abs(lon) > 180 {
		return domain.Atmosphere{}, &FeedError{
			Kind: FeedErrInvalidParams,
			Feed: "atmosphere",
			Err:  fmt.Errorf("coordinates out of range: %v,%v", lat, lon),
		}
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("current", "relative_humidity_2m,apparent_temperature,cloud_cover,visibility")
	params.Set("timezone", "auto")

	body, err := c.http.Get(ctx, "atmosphere", c.baseURL+"/v1/forecast?"+params.Encode())
	if err != nil {
		return domain.Atmosphere{}, err
	}

	var forecast struct {
		Current *domain.Atmosphere `json:"current"`
	}
	if err := json.Unmarshal(body, &forecast); err != nil {
		return domain.Atmosphere{}, &FeedError{Kind: FeedErrMalformed, Feed: "atmosphere", Err: err}
	}
	if forecast.Current == nil {
		return domain.Atmosphere{}, &FeedError{Kind: FeedErrMalformed, Feed: "atmosphere", Err: errors.New("missing current block")}
	}
	return *forecast.Current, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
