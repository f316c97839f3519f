package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"spacescope/internal/domain"
	"spacescope/internal/llm"

	"go.uber.org/zap"
)

// ErrEmptyResponse is returned when the provider answers with no text
var ErrEmptyResponse = errors.New("analysis: empty response")

// recentBulletins is how many notifications feed a weather assessment
const recentBulletins = 3

var missionSchema = llm.NewSchema(
	llm.String("title"),
	llm.StringArray("scientificBreakthroughs"),
	llm.ObjectArray("technicalChallenges", "title", "description"),
	llm.String("legacyImpact"),
	llm.ObjectArray("telemetrySim", "sensor", "value"),
)

var weatherSchema = llm.NewSchema(
	llm.String("hazardLevel"),
	llm.String("summary"),
	llm.ObjectArray("impacts", "system", "severity", "advice"),
	llm.String("auroraPrediction"),
	llm.String("technicalTelemetry"),
)

// MissionPrompt builds the analysis prompt for a mission
func MissionPrompt(m domain.Mission) string {
	return fmt.Sprintf("Perform a deep technical and scientific analysis of the space mission: %s (%d). "+
		"Provide historical context, key breakthroughs, and engineering hurdles. "+
		"Finish with a short list of simulated telemetry readings as sensor/value pairs.",
		m.MissionName, m.Year)
}

// WeatherPrompt builds the threat assessment prompt for recent bulletins
func WeatherPrompt(feed string) string {
	return fmt.Sprintf("Analyze this live NASA Mission Control Feed and provide a strategic impact assessment: %s. "+
		"Use scientific and tactical terminology. Summary should be under 50 words. "+
		"Give a hazard level, the impact on each affected system with advice, an aurora prediction and one line of technical telemetry.",
		feed)
}

// generate issues req and decodes the schema-conforming answer into T
func generate[T any](ctx context.Context, gen llm.Generator, req llm.Request) (*T, error) {
	text, err := gen.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyResponse
	}
	if err := req.Schema.Validate([]byte(text)); err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Mission analyzes space missions into MissionAnalysisReport
type Mission struct {
	gen    llm.Generator
	model  string
	logger *zap.Logger
	slot   Slot[domain.MissionAnalysisReport]
}

// NewMission creates a mission analysis slot
func NewMission(gen llm.Generator, model string, logger *zap.Logger) *Mission {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mission{gen: gen, model: model, logger: logger}
}

// Analyze requests a report for m. Failures leave the slot idle with a
// failure note and are logged, never returned.
func (a *Mission) Analyze(ctx context.Context, m domain.Mission) Snapshot[domain.MissionAnalysisReport] {
	req := llm.Request{Model: a.model, Prompt: MissionPrompt(m), Schema: missionSchema}
	snap, current := a.slot.Run(ctx, m.ID, func(ctx context.Context) (*domain.MissionAnalysisReport, error) {
		report, err := generate[domain.MissionAnalysisReport](ctx, a.gen, req)
		if err != nil {
			a.logger.Warn("mission analysis failed", zap.String("mission", m.ID), zap.Error(err))
		}
		return report, err
	})
	if !current {
		a.logger.Debug("discarded stale mission analysis", zap.String("mission", m.ID))
	}
	return snap
}

// Snapshot returns the current mission analysis state
func (a *Mission) Snapshot() Snapshot[domain.MissionAnalysisReport] {
	return a.slot.Snapshot()
}

// Close discards the report and cancels any outstanding request
func (a *Mission) Close() {
	a.slot.Close()
}

// Weather produces WeatherThreatReport from DONKI bulletins. It is a
// premium feature.
type Weather struct {
	gen    llm.Generator
	model  string
	logger *zap.Logger
	slot   Slot[domain.WeatherThreatReport]
}

// NewWeather creates a weather threat analysis slot
func NewWeather(gen llm.Generator, model string, logger *zap.Logger) *Weather {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Weather{gen: gen, model: model, logger: logger}
}

// Analyze assesses the three most recent notifications. Without the
// entitlement it returns domain.ErrUpgradeRequired and leaves the slot
// untouched.
func (a *Weather) Analyze(ctx context.Context, entitled bool, notes []domain.Notification) (Snapshot[domain.WeatherThreatReport], error) {
	if !entitled {
		return a.slot.Snapshot(), domain.ErrUpgradeRequired
	}

	req := llm.Request{
		Model:  a.model,
		Prompt: WeatherPrompt(domain.RecentBodies(notes, recentBulletins)),
		Schema: weatherSchema,
	}
	snap, current := a.slot.Run(ctx, "space-weather", func(ctx context.Context) (*domain.WeatherThreatReport, error) {
		report, err := generate[domain.WeatherThreatReport](ctx, a.gen, req)
		if err != nil {
			a.logger.Warn("weather threat analysis failed", zap.Error(err))
		}
		return report, err
	})
	if !current {
		a.logger.Debug("discarded stale weather analysis")
	}
	return snap, nil
}

// Snapshot returns the current weather analysis state
func (a *Weather) Snapshot() Snapshot[domain.WeatherThreatReport] {
	return a.slot.Snapshot()
}

// Close discards the report and cancels any outstanding request
func (a *Weather) Close() {
	a.slot.Close()
}
