// Package advisory assembles the dashboard's zone advisory: the normalized
// forecast window plus the derived danger summaries, day-over-day change
// reports, and trend insights.
package advisory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/slopewise/avalanche-advisory/internal/domain"
	"github.com/slopewise/avalanche-advisory/internal/observability"
)

// defaultWindowDays matches the trend analyzer's rolling window.
const defaultWindowDays = 7

// ErrNoForecasts marks a zone with no stored forecast rows.
var ErrNoForecasts = errors.New("no forecasts stored for zone")

// RecordStore supplies the ordered (most-recent-first) forecast and weather
// rows for a zone. Implemented by the postgres adapter.
type RecordStore interface {
	RecentForecasts(ctx context.Context, zone string, limit int) ([]domain.ForecastRecord, error)
	RecentWeather(ctx context.Context, zone string, limit int) ([]domain.WeatherRecord, error)
	Ping(ctx context.Context) error
}

// Advisory is the full report served for one zone.
type Advisory struct {
	Zone        string           `json:"zone"`
	GeneratedAt time.Time        `json:"generated_at"`
	Days        []DayReport      `json:"days"`
	Insights    []domain.Insight `json:"insights"`
}

// DayReport is one day of the window, most recent first. Changes diff the
// day against the next-older day in the window; the oldest day has none.
type DayReport struct {
	ValidDate  time.Time                 `json:"valid_date"`
	Danger     domain.DangerSummary      `json:"danger"`
	BottomLine string                    `json:"bottom_line"`
	Problems   []domain.AvalancheProblem `json:"problems"`
	Changes    []string                  `json:"changes"`
}

// Builder fetches a zone's record window and runs it through the engine.
type Builder struct {
	store      RecordStore
	logger     *slog.Logger
	metrics    *observability.Metrics
	windowDays int
}

// NewBuilder creates a Builder. A non-positive windowDays falls back to the
// 7-day default.
func NewBuilder(store RecordStore, logger *slog.Logger, metrics *observability.Metrics, windowDays int) *Builder {
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	return &Builder{
		store:      store,
		logger:     logger,
		metrics:    metrics,
		windowDays: windowDays,
	}
}

// BuildAdvisory assembles the advisory for a zone. A zone with no stored
// forecasts returns ErrNoForecasts. A weather fetch failure degrades to a
// forecasts-only advisory; the engine treats the missing snapshots as
// "no data".
func (b *Builder) BuildAdvisory(ctx context.Context, zone string) (Advisory, error) {
	start := time.Now()

	records, err := b.store.RecentForecasts(ctx, zone, b.windowDays)
	if err != nil {
		b.metrics.StoreErrors.Inc()
		return Advisory{}, fmt.Errorf("fetch forecasts for zone %q: %w", zone, err)
	}
	if len(records) == 0 {
		return Advisory{}, fmt.Errorf("zone %q: %w", zone, ErrNoForecasts)
	}

	weather, err := b.store.RecentWeather(ctx, zone, b.windowDays)
	if err != nil {
		b.metrics.StoreErrors.Inc()
		b.logger.Warn("weather fetch failed, building advisory without weather",
			"zone", zone, "error", err)
		weather = nil
	}
	wxByDate := make(map[string]*domain.WeatherRecord, len(weather))
	for i := range weather {
		wxByDate[dateKey(weather[i].ValidDate)] = &weather[i]
	}

	forecasts := make([]domain.Forecast, 0, len(records))
	for _, rec := range records {
		forecasts = append(forecasts, domain.NormalizeForecast(rec, wxByDate[dateKey(rec.ValidDate)]))
	}

	days := make([]DayReport, 0, len(forecasts))
	for i, f := range forecasts {
		var previous *domain.Forecast
		if i+1 < len(forecasts) {
			previous = &forecasts[i+1]
		}
		days = append(days, DayReport{
			ValidDate:  f.ValidDate,
			Danger:     domain.SummarizeDanger(f),
			BottomLine: f.BottomLine,
			Problems:   f.Problems,
			Changes:    domain.DetectChanges(f, previous),
		})
	}

	adv := Advisory{
		Zone:        zone,
		GeneratedAt: clock.Now().UTC(),
		Days:        days,
		Insights:    domain.AnalyzeTrends(forecasts),
	}

	b.metrics.AdvisoriesBuilt.Inc()
	b.metrics.AdvisoryBuildDuration.Observe(time.Since(start).Seconds())
	return adv, nil
}

// CheckReadiness reports whether the record store is reachable.
func (b *Builder) CheckReadiness(ctx context.Context) error {
	return b.store.Ping(ctx)
}

// dateKey normalizes a valid date to its UTC calendar day for weather
// matching.
func dateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
