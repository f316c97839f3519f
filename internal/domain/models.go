// Package domain provides domain models for the application
package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Apod represents one NASA Astronomy Picture of the Day record
type Apod struct {
	URL         string `json:"url"`
	HDURL       string `json:"hdurl,omitempty"`
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	Date        string `json:"date"`
	MediaType   string `json:"media_type,omitempty"`
	Copyright   string `json:"copyright,omitempty"`
}

// Notification represents one DONKI space-weather bulletin
type Notification struct {
	MessageID        string `json:"messageID"`
	MessageType      string `json:"messageType"`
	MessageIssueTime string `json:"messageIssueTime"`
	MessageBody      string `json:"messageBody"`
	MessageURL       string `json:"messageURL,omitempty"`
}

// NearEarthObject represents one asteroid tracked by the NeoWs feed
type NearEarthObject struct {
	ID                   string            `json:"id"`
	ReferenceID          string            `json:"neo_reference_id"`
	Name                 string            `json:"name"`
	EstimatedDiameter    EstimatedDiameter `json:"estimated_diameter"`
	PotentiallyHazardous bool              `json:"is_potentially_hazardous_asteroid"`
	CloseApproaches      []CloseApproach   `json:"close_approach_data"`
}

// EstimatedDiameter holds the diameter ranges reported by NeoWs
type EstimatedDiameter struct {
	Kilometers DiameterRange `json:"kilometers"`
}

// DiameterRange is a min/max diameter pair
type DiameterRange struct {
	Min float64 `json:"estimated_diameter_min,omitempty"`
	Max float64 `json:"estimated_diameter_max"`
}

// CloseApproach is one close-approach record. NeoWs encodes distances and
// velocities as decimal strings.
type CloseApproach struct {
	Date             string           `json:"close_approach_date,omitempty"`
	MissDistance     MissDistance     `json:"miss_distance"`
	RelativeVelocity RelativeVelocity `json:"relative_velocity"`
}

// MissDistance holds the miss distance in kilometers and lunar distances
type MissDistance struct {
	Kilometers string `json:"kilometers"`
	Lunar      string `json:"lunar"`
}

// RelativeVelocity holds the relative velocity of a close approach
type RelativeVelocity struct {
	KilometersPerHour string `json:"kilometers_per_hour"`
}

// Atmosphere represents current local sky conditions
type Atmosphere struct {
	Time                string  `json:"time,omitempty"`
	CloudCover          float64 `json:"cloud_cover"`
	Visibility          float64 `json:"visibility"`
	RelativeHumidity    float64 `json:"relative_humidity_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
}

// ClearSkies reports whether cloud cover is low enough for observation
func (a Atmosphere) ClearSkies() bool {
	return a.CloudCover < 30
}

// Role identifies the speaker of a dialogue turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// DialogueTurn is one message of the assistant conversation
type DialogueTurn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// MissionAnalysisReport is the structured analysis of a space mission
type MissionAnalysisReport struct {
	Title                   string               `json:"title"`
	ScientificBreakthroughs []string             `json:"scientificBreakthroughs"`
	TechnicalChallenges     []TechnicalChallenge `json:"technicalChallenges"`
	LegacyImpact            string               `json:"legacyImpact"`
	TelemetrySim            []TelemetryReading   `json:"telemetrySim"`
}

// TechnicalChallenge is one engineering hurdle of a mission
type TechnicalChallenge struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TelemetryReading is a simulated sensor/value pair
type TelemetryReading struct {
	Sensor string `json:"sensor"`
	Value  string `json:"value"`
}

// WeatherThreatReport is the structured assessment of recent space weather
type WeatherThreatReport struct {
	HazardLevel        string         `json:"hazardLevel"`
	Summary            string         `json:"summary"`
	Impacts            []SystemImpact `json:"impacts"`
	AuroraPrediction   string         `json:"auroraPrediction"`
	TechnicalTelemetry string         `json:"technicalTelemetry"`
}

// SystemImpact describes the effect of space weather on one system
type SystemImpact struct {
	System   string `json:"system"`
	Severity string `json:"severity"`
	Advice   string `json:"advice"`
}

// FeedSnapshot is an archived live feed payload
type FeedSnapshot struct {
	ID        int64           `json:"id"`
	Source    string          `json:"source"`
	FetchedAt time.Time       `json:"fetched_at"`
	Payload   json.RawMessage `json:"payload"`
}

// Health represents health check response
type Health struct {
	Status string    `json:"status"`
	Now    time.Time `json:"now"`
}

// Dashboard aggregates the feeds shown on the landing page
type Dashboard struct {
	Date          string            `json:"date"`
	Apod          *Apod             `json:"apod"`
	ApodError     string            `json:"apod_error,omitempty"`
	Notifications []Notification    `json:"notifications"`
	NearEarth     []NearEarthObject `json:"near_earth_objects"`
}

// ApiResponse wraps API responses
type ApiResponse struct {
	Ok    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error *ApiError   `json:"error,omitempty"`
}

// ApiError represents an error response
type ApiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SuccessResponse creates a successful response
func SuccessResponse(data interface{}) ApiResponse {
	return ApiResponse{Ok: true, Data: data}
}

// ErrorResponse creates an error response
func ErrorResponse(code, message string) ApiResponse {
	return ApiResponse{Ok: false, Error: &ApiError{Code: code, Message: message}}
}

// RecentBodies joins the bodies of the first n notifications with a space
func RecentBodies(notes []Notification, n int) string {
	if n > len(notes) {
		n = len(notes)
	}
	bodies := make([]string, 0, n)
	for _, note := range notes[:n] {
		bodies = append(bodies, note.MessageBody)
	}
	return strings.Join(bodies, " ")
}
