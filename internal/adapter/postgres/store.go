// Package postgres persists forecast and weather rows and backs the
// advisory builder's record store.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slopewise/avalanche-advisory/internal/domain"
	"github.com/slopewise/avalanche-advisory/internal/ingest"
)

// Store wraps database access helpers. It implements advisory.RecordStore,
// flags.Source, and ingest.BatchLoader.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by a pgx pool.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

const recentForecastsSQL = `
    SELECT zone, issue_date, valid_date,
           danger_alpine, danger_treeline, danger_below_treeline,
           bottom_line, discussion, problems
    FROM forecasts
    WHERE zone = $1
    ORDER BY valid_date DESC
    LIMIT $2
`

// RecentForecasts returns up to limit forecast rows for a zone, newest first.
// The problems column is JSONB holding the active-cell rose encoding.
func (s *Store) RecentForecasts(ctx context.Context, zone string, limit int) ([]domain.ForecastRecord, error) {
	rows, err := s.pool.Query(ctx, recentForecastsSQL, zone, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	forecasts := make([]domain.ForecastRecord, 0)
	for rows.Next() {
		var rec domain.ForecastRecord
		var problemsJSON []byte
		if err := rows.Scan(
			&rec.Zone,
			&rec.IssueDate,
			&rec.ValidDate,
			&rec.DangerAlpine,
			&rec.DangerTreeline,
			&rec.DangerBelowTreeline,
			&rec.BottomLine,
			&rec.Discussion,
			&problemsJSON,
		); err != nil {
			return nil, err
		}
		rec.Problems, err = decodeProblems(problemsJSON)
		if err != nil {
			return nil, err
		}
		forecasts = append(forecasts, rec)
	}
	return forecasts, rows.Err()
}

const recentWeatherSQL = `
    SELECT zone, valid_date, temperature, cloud_cover,
           wind_direction, wind_speed, snowfall_12h, snowfall_24h
    FROM weather
    WHERE zone = $1
    ORDER BY valid_date DESC
    LIMIT $2
`

// RecentWeather returns up to limit weather rows for a zone, newest first.
func (s *Store) RecentWeather(ctx context.Context, zone string, limit int) ([]domain.WeatherRecord, error) {
	rows, err := s.pool.Query(ctx, recentWeatherSQL, zone, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := make([]domain.WeatherRecord, 0)
	for rows.Next() {
		var rec domain.WeatherRecord
		if err := rows.Scan(
			&rec.Zone,
			&rec.ValidDate,
			&rec.Temperature,
			&rec.CloudCover,
			&rec.WindDirection,
			&rec.WindSpeed,
			&rec.SnowfallLast12,
			&rec.SnowfallLast24,
		); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, rec)
	}
	return snapshots, rows.Err()
}

const upsertForecastSQL = `
    INSERT INTO forecasts (zone, issue_date, valid_date,
                           danger_alpine, danger_treeline, danger_below_treeline,
                           bottom_line, discussion, problems)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    ON CONFLICT (zone, valid_date) DO UPDATE SET
        issue_date            = EXCLUDED.issue_date,
        danger_alpine         = EXCLUDED.danger_alpine,
        danger_treeline       = EXCLUDED.danger_treeline,
        danger_below_treeline = EXCLUDED.danger_below_treeline,
        bottom_line           = EXCLUDED.bottom_line,
        discussion            = EXCLUDED.discussion,
        problems              = EXCLUDED.problems
`

// UpsertForecast writes a forecast row keyed by (zone, valid_date). A
// re-issued forecast for the same day replaces the earlier row.
func (s *Store) UpsertForecast(ctx context.Context, rec domain.ForecastRecord) error {
	problemsJSON, err := json.Marshal(rec.Problems)
	if err != nil {
		return fmt.Errorf("encode problems: %w", err)
	}

	_, err = s.pool.Exec(ctx, upsertForecastSQL,
		rec.Zone, rec.IssueDate, rec.ValidDate,
		rec.DangerAlpine, rec.DangerTreeline, rec.DangerBelowTreeline,
		rec.BottomLine, rec.Discussion, problemsJSON,
	)
	return err
}

const upsertWeatherSQL = `
    INSERT INTO weather (zone, valid_date, temperature, cloud_cover,
                         wind_direction, wind_speed, snowfall_12h, snowfall_24h)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    ON CONFLICT (zone, valid_date) DO UPDATE SET
        temperature    = EXCLUDED.temperature,
        cloud_cover    = EXCLUDED.cloud_cover,
        wind_direction = EXCLUDED.wind_direction,
        wind_speed     = EXCLUDED.wind_speed,
        snowfall_12h   = EXCLUDED.snowfall_12h,
        snowfall_24h   = EXCLUDED.snowfall_24h
`

// UpsertWeather writes a weather row keyed by (zone, valid_date).
func (s *Store) UpsertWeather(ctx context.Context, rec domain.WeatherRecord) error {
	_, err := s.pool.Exec(ctx, upsertWeatherSQL,
		rec.Zone, rec.ValidDate, rec.Temperature, rec.CloudCover,
		rec.WindDirection, rec.WindSpeed, rec.SnowfallLast12, rec.SnowfallLast24,
	)
	return err
}

// LoadBatch persists a batch of ingested records, forecast first so a
// mid-batch failure never leaves weather without its forecast row.
func (s *Store) LoadBatch(ctx context.Context, records []ingest.Record) error {
	for _, rec := range records {
		if err := s.UpsertForecast(ctx, rec.Forecast); err != nil {
			return fmt.Errorf("upsert forecast for zone %q: %w", rec.Forecast.Zone, err)
		}
		if rec.Weather == nil {
			continue
		}
		if err := s.UpsertWeather(ctx, *rec.Weather); err != nil {
			return fmt.Errorf("upsert weather for zone %q: %w", rec.Weather.Zone, err)
		}
	}
	return nil
}

const siteFlagsSQL = `SELECT name, enabled FROM site_flags`

// SiteFlags returns the operational flag set.
func (s *Store) SiteFlags(ctx context.Context) (map[string]bool, error) {
	rows, err := s.pool.Query(ctx, siteFlagsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flags := make(map[string]bool)
	for rows.Next() {
		var name string
		var enabled bool
		if err := rows.Scan(&name, &enabled); err != nil {
			return nil, err
		}
		flags[name] = enabled
	}
	return flags, rows.Err()
}

// decodeProblems unmarshals the JSONB problems column. A NULL or empty
// column reads as no problems.
func decodeProblems(data []byte) ([]domain.ProblemRecord, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var problems []domain.ProblemRecord
	if err := json.Unmarshal(data, &problems); err != nil {
		return nil, fmt.Errorf("decode problems: %w", err)
	}
	return problems, nil
}
