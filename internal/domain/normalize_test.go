package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeForecast(t *testing.T) {
	issued := time.Date(2026, 1, 14, 16, 0, 0, 0, time.UTC)
	valid := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("fully populated row", func(t *testing.T) {
		rec := ForecastRecord{
			Zone:                "gallatin",
			IssueDate:           issued,
			ValidDate:           valid,
			DangerAlpine:        3,
			DangerTreeline:      2,
			DangerBelowTreeline: 1,
			BottomLine:          "Wind slabs near ridgelines.",
			Discussion:          "Westerly winds moved a lot of snow overnight.",
			Problems: []ProblemRecord{
				{
					Type:       "wind_slab",
					Likelihood: "Likely",
					Size:       "D2",
					Rose: []RoseCellRecord{
						{Aspect: "N", Band: "alpine"},
						{Aspect: "NE", Band: "alpine"},
						{Aspect: "NE", Band: "treeline"},
					},
				},
			},
		}
		wx := &WeatherRecord{
			Zone:           "gallatin",
			ValidDate:      valid,
			Temperature:    "18.5",
			CloudCover:     "Mostly clear",
			WindDirection:  "W",
			WindSpeed:      "Strong W 25-35",
			SnowfallLast12: "2",
			SnowfallLast24: "4.5",
		}

		f := NormalizeForecast(rec, wx)

		assert.Equal(t, "gallatin", f.Zone)
		assert.Equal(t, issued, f.IssueDate)
		assert.Equal(t, valid, f.ValidDate)
		assert.Equal(t, DangerConsiderable, f.DangerAlpine)
		assert.Equal(t, DangerModerate, f.DangerTreeline)
		assert.Equal(t, DangerLow, f.DangerBelowTreeline)
		assert.Equal(t, "Wind slabs near ridgelines.", f.BottomLine)

		require.Len(t, f.Problems, 1)
		p := f.Problems[0]
		assert.Equal(t, ProblemWindSlab, p.Type)
		assert.Equal(t, LikelihoodLikely, p.Likelihood)
		assert.Equal(t, SizeD2, p.Size)
		assert.Equal(t, 3, p.Rose.ActiveCells())
		assert.True(t, p.Rose.Active(AspectN, BandAlpine))
		assert.True(t, p.Rose.Active(AspectNE, BandTreeline))
		assert.False(t, p.Rose.Active(AspectS, BandAlpine))

		require.NotNil(t, f.Weather)
		assert.Equal(t, 18.5, f.Weather.Temperature)
		assert.Equal(t, "Mostly clear", f.Weather.CloudCover)
		assert.Equal(t, "Strong W 25-35", f.Weather.WindSpeed)
		assert.Equal(t, 2.0, f.Weather.SnowfallLast12)
		assert.Equal(t, 4.5, f.Weather.SnowfallLast24)
	})

	t.Run("missing problem sub-fields get defaults", func(t *testing.T) {
		rec := ForecastRecord{
			Zone: "bridger", ValidDate: valid,
			DangerAlpine: 2, DangerTreeline: 2, DangerBelowTreeline: 1,
			Problems: []ProblemRecord{{Type: "storm_slab"}},
		}

		f := NormalizeForecast(rec, nil)

		require.Len(t, f.Problems, 1)
		p := f.Problems[0]
		assert.Equal(t, ProblemStormSlab, p.Type)
		assert.Equal(t, LikelihoodPossible, p.Likelihood)
		assert.Equal(t, SizeD2, p.Size)
		assert.Equal(t, AspectElevationRose{}, p.Rose)
		assert.Equal(t, 0, p.Rose.ActiveCells())
	})

	t.Run("missing weather stays nil, not zeroed", func(t *testing.T) {
		rec := ForecastRecord{
			Zone: "bridger", ValidDate: valid,
			DangerAlpine: 1, DangerTreeline: 1, DangerBelowTreeline: 1,
		}

		f := NormalizeForecast(rec, nil)

		assert.Nil(t, f.Weather)
		assert.Empty(t, f.Problems)
	})

	t.Run("unknown problem type dropped", func(t *testing.T) {
		rec := ForecastRecord{
			Zone: "bridger", ValidDate: valid,
			DangerAlpine: 2, DangerTreeline: 2, DangerBelowTreeline: 2,
			Problems: []ProblemRecord{
				{Type: "ice_fall"},
				{Type: "wet_slab"},
			},
		}

		f := NormalizeForecast(rec, nil)

		require.Len(t, f.Problems, 1)
		assert.Equal(t, ProblemWetSlab, f.Problems[0].Type)
	})

	t.Run("unknown rose cells ignored", func(t *testing.T) {
		rec := ForecastRecord{
			Zone: "bridger", ValidDate: valid,
			DangerAlpine: 2, DangerTreeline: 2, DangerBelowTreeline: 2,
			Problems: []ProblemRecord{{
				Type: "cornice",
				Rose: []RoseCellRecord{
					{Aspect: "NNE", Band: "alpine"},
					{Aspect: "E", Band: "mid"},
					{Aspect: "E", Band: "treeline"},
				},
			}},
		}

		f := NormalizeForecast(rec, nil)

		require.Len(t, f.Problems, 1)
		assert.Equal(t, 1, f.Problems[0].Rose.ActiveCells())
		assert.True(t, f.Problems[0].Rose.Active(AspectE, BandTreeline))
	})

	t.Run("unparseable weather numbers become zero", func(t *testing.T) {
		rec := ForecastRecord{
			Zone: "bridger", ValidDate: valid,
			DangerAlpine: 1, DangerTreeline: 1, DangerBelowTreeline: 1,
		}
		wx := &WeatherRecord{
			Temperature:    "n/a",
			CloudCover:     "Obscured",
			WindSpeed:      "Light",
			SnowfallLast12: "trace",
			SnowfallLast24: "--",
		}

		f := NormalizeForecast(rec, wx)

		require.NotNil(t, f.Weather)
		assert.Equal(t, 0.0, f.Weather.Temperature)
		assert.Equal(t, 0.0, f.Weather.SnowfallLast12)
		assert.Equal(t, 0.0, f.Weather.SnowfallLast24)
		assert.Equal(t, "Obscured", f.Weather.CloudCover)
	})
}

func TestParseFloatOrZero(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"integer", "12", 12},
		{"decimal", "12.5", 12.5},
		{"negative", "-4", -4},
		{"whitespace padded", "  3.25  ", 3.25},
		{"empty string", "", 0},
		{"trace sentinel", "trace", 0},
		{"dashes", "--", 0},
		{"mixed text", "6 inches", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseFloatOrZero(tt.input))
		})
	}
}

func TestParseLikelihood(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Likelihood
	}{
		{"unlikely", "Unlikely", LikelihoodUnlikely},
		{"possible", "Possible", LikelihoodPossible},
		{"likely lowercase", "likely", LikelihoodLikely},
		{"very likely", "Very Likely", LikelihoodVeryLikely},
		{"almost certain", "almost certain", LikelihoodAlmostCertain},
		{"empty defaults to possible", "", LikelihoodPossible},
		{"unknown defaults to possible", "certain-ish", LikelihoodPossible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLikelihood(tt.input))
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Size
	}{
		{"d1", "D1", SizeD1},
		{"d3 lowercase", "d3", SizeD3},
		{"d5", "D5", SizeD5},
		{"empty defaults to d2", "", SizeD2},
		{"unknown defaults to d2", "huge", SizeD2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseSize(tt.input))
		})
	}
}

func TestProblemTypeRoundTrip(t *testing.T) {
	for _, typ := range ProblemTypes() {
		parsed, ok := parseProblemType(typ.Key())
		require.True(t, ok, "key %q should parse", typ.Key())
		assert.Equal(t, typ, parsed)
		assert.NotEmpty(t, typ.Label())
	}
}
