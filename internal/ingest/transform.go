package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/slopewise/avalanche-advisory/internal/domain"
)

// envelope is the wire shape of one forecast message: a raw forecast row
// plus an optional same-day weather snapshot.
type envelope struct {
	domain.ForecastRecord
	Weather *domain.WeatherRecord `json:"weather,omitempty"`
}

// ForecastTransformer implements Transformer by decoding and validating
// forecast envelopes. Optional fields pass through untouched; they get their
// defaults at read time, not here.
type ForecastTransformer struct{}

func NewTransformer() *ForecastTransformer {
	return &ForecastTransformer{}
}

func (t *ForecastTransformer) Transform(_ context.Context, raw RawEvent) (Record, error) {
	var env envelope
	if err := json.Unmarshal(raw.Value, &env); err != nil {
		return Record{}, fmt.Errorf("decode envelope: %w", err)
	}

	if err := validateForecast(env.ForecastRecord); err != nil {
		return Record{}, err
	}

	if env.Weather != nil {
		if env.Weather.Zone == "" {
			env.Weather.Zone = env.ForecastRecord.Zone
		}
		if env.Weather.ValidDate.IsZero() {
			env.Weather.ValidDate = env.ForecastRecord.ValidDate
		}
	}

	return Record{Forecast: env.ForecastRecord, Weather: env.Weather}, nil
}

// validateForecast enforces the required-field contract on ingested rows:
// a zone, a valid date, and three danger levels on the 1-5 scale. Everything
// optional is allowed to be missing.
func validateForecast(rec domain.ForecastRecord) error {
	if rec.Zone == "" {
		return errors.New("forecast missing zone")
	}
	if rec.ValidDate.IsZero() {
		return fmt.Errorf("forecast for zone %q missing valid date", rec.Zone)
	}
	for _, level := range []int{rec.DangerAlpine, rec.DangerTreeline, rec.DangerBelowTreeline} {
		if !domain.DangerLevel(level).Valid() {
			return fmt.Errorf("forecast for zone %q has danger level %d outside 1-5", rec.Zone, level)
		}
	}
	return nil
}
