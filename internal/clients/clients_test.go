package clients

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAPOD(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/planetary/apod" {
			http.NotFound(w, r)
			return
		}
		gotKey = r.URL.Query().Get("api_key")
		fmt.Fprint(w, `{"url":"https://apod.nasa.gov/x.jpg","title":"Horsehead","explanation":"Dust.","date":"2024-01-01","media_type":"image"}`)
	}))
	defer srv.Close()

	c := NewNasaClient(srv.URL, "test-key")
	apod, err := c.FetchAPOD(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "Horsehead", apod.Title)
	assert.Equal(t, "2024-01-01", apod.Date)
	assert.Empty(t, apod.Copyright)
}

func TestFetchAPOD_HTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewNasaClient(srv.URL, "").FetchAPOD(context.Background())
	require.Error(t, err)

	var fe *FeedError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, FeedErrHTTPStatus, fe.Kind)
	assert.Equal(t, http.StatusTooManyRequests, fe.Status)
	assert.Equal(t, "apod: HTTP 429", err.Error())
}

func TestFetchAPOD_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewNasaClient(srv.URL, "").FetchAPOD(context.Background())
	assert.True(t, IsFeedError(err, FeedErrNetwork))
}

func TestFetchNotifications_StripsMarkup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/DONKI/notifications", r.URL.Path)
		fmt.Fprint(w, `[{"messageID":"20240101-AL-001","messageType":"FLR","messageIssueTime":"2024-01-01T00:00Z","messageBody":"<p>M1.2 flare &amp; CME</p>"}]`)
	}))
	defer srv.Close()

	notes, err := NewNasaClient(srv.URL, "k").FetchNotifications(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "FLR", notes[0].MessageType)
	assert.Equal(t, "M1.2 flare & CME", notes[0].MessageBody)
}

func TestFetchNotifications_NonArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"OVER_RATE_LIMIT"}`)
	}))
	defer srv.Close()

	_, err := NewNasaClient(srv.URL, "k").FetchNotifications(context.Background())
	assert.True(t, IsFeedError(err, FeedErrMalformed))
}

func TestFetchNeoFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2024-03-05", q.Get("start_date"))
		assert.Equal(t, "2024-03-05", q.Get("end_date"))
		fmt.Fprint(w, `{"element_count":1,"near_earth_objects":{"2024-03-05":[{
			"id":"3542519","neo_reference_id":"3542519","name":"(2010 PK9)",
			"estimated_diameter":{"kilometers":{"estimated_diameter_min":0.1,"estimated_diameter_max":0.3}},
			"is_potentially_hazardous_asteroid":false,
			"close_approach_data":[{"close_approach_date":"2024-03-05","miss_distance":{"kilometers":"7000000","lunar":"18.2"},"relative_velocity":{"kilometers_per_hour":"41000"}}]
		}]}}`)
	}))
	defer srv.Close()

	neos, err := NewNasaClient(srv.URL, "k").FetchNeoFeed(context.Background(), "2024-03-05")
	require.NoError(t, err)
	require.Len(t, neos, 1)
	assert.Equal(t, "(2010 PK9)", neos[0].Name)
	assert.InDelta(t, 0.3, neos[0].EstimatedDiameter.Kilometers.Max, 1e-9)
	assert.Equal(t, "41000", neos[0].CloseApproaches[0].RelativeVelocity.KilometersPerHour)
}

func TestFetchNeoFeed_MissingDateKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"near_earth_objects":{"2024-03-04":[{"id":"1"}]}}`)
	}))
	defer srv.Close()

	neos, err := NewNasaClient(srv.URL, "k").FetchNeoFeed(context.Background(), "2024-03-05")
	require.NoError(t, err)
	assert.Empty(t, neos)
}

func TestFetchNeoFeed_InvalidDate(t *testing.T) {
	_, err := NewNasaClient("http://127.0.0.1:1", "k").FetchNeoFeed(context.Background(), "03/05/2024")
	assert.True(t, IsFeedError(err, FeedErrInvalidParams))
}

func TestFetchAtmosphere(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		assert.Equal(t, "48.85", r.URL.Query().Get("latitude"))
		assert.Equal(t, "2.35", r.URL.Query().Get("longitude"))
		fmt.Fprint(w, `{"current":{"time":"2024-01-01T10:00","cloud_cover":12,"visibility":24140,"relative_humidity_2m":71,"apparent_temperature":3.4}}`)
	}))
	defer srv.Close()

	atm, err := NewOpenMeteoClient(srv.URL).FetchAtmosphere(context.Background(), 48.85, 2.35)
	require.NoError(t, err)
	assert.Equal(t, 12.0, atm.CloudCover)
	assert.Equal(t, 24140.0, atm.Visibility)
	assert.Equal(t, 71.0, atm.RelativeHumidity)
	assert.True(t, atm.ClearSkies())
}

func TestFetchAtmosphere_InvalidCoordinates(t *testing.T) {
	c := NewOpenMeteoClient("http://127.0.0.1:1")
	for _, tc := range []struct{ lat, lon float64 }{
		{math.NaN(), 0},
		{0, math.Inf(1)},
		{91, 0},
		{0, -181},
	} {
		_, err := c.FetchAtmosphere(context.Background(), tc.lat, tc.lon)
		assert.True(t, IsFeedError(err, FeedErrInvalidParams), "lat=%v lon=%v", tc.lat, tc.lon)
	}
}

func TestFetchAtmosphere_MissingCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"latitude":1}`)
	}))
	defer srv.Close()

	_, err := NewOpenMeteoClient(srv.URL).FetchAtmosphere(context.Background(), 1, 1)
	assert.True(t, IsFeedError(err, FeedErrMalformed))
}

func TestStripMarkup(t *testing.T) {
	cases := map[string]string{
		"plain text":                         "plain text",
		"  padded  ":                         "padded",
		"<b>Kp</b> index 6":                  "Kp index 6",
		"line one<br>line two":               "line one\nline two",
		"<script>alert(1)</script>safe":      "safe",
		"CME &gt; 1000 km/s":                 "CME > 1000 km/s",
		"<a href=\"https://x\">link</a> end": "link end",
	}
	for in, want := range cases {
		assert.Equal(t, want, StripMarkup(in), "input %q", in)
	}
}
