package domain

import (
	"strconv"
	"strings"
	"time"
)

// ForecastRecord is a raw forecast row as stored. Optional problem
// sub-fields are string-typed and may be empty.
type ForecastRecord struct {
	Zone                string          `json:"zone"`
	IssueDate           time.Time       `json:"issue_date"`
	ValidDate           time.Time       `json:"valid_date"`
	DangerAlpine        int             `json:"danger_alpine"`
	DangerTreeline      int             `json:"danger_treeline"`
	DangerBelowTreeline int             `json:"danger_below_treeline"`
	BottomLine          string          `json:"bottom_line"`
	Discussion          string          `json:"discussion"`
	Problems            []ProblemRecord `json:"problems"`
}

// ProblemRecord is a raw avalanche problem as stored.
type ProblemRecord struct {
	Type       string           `json:"type"`
	Likelihood string           `json:"likelihood,omitempty"`
	Size       string           `json:"size,omitempty"`
	Rose       []RoseCellRecord `json:"rose,omitempty"` // active cells only
}

// RoseCellRecord names one active aspect/band cell of a problem's rose.
type RoseCellRecord struct {
	Aspect string `json:"aspect"`
	Band   string `json:"band"`
}

// WeatherRecord is a raw weather row as stored, keyed by zone + valid date.
// Numeric-looking columns are strings in storage and must be parsed
// defensively.
type WeatherRecord struct {
	Zone           string    `json:"zone"`
	ValidDate      time.Time `json:"valid_date"`
	Temperature    string    `json:"temperature"`
	CloudCover     string    `json:"cloud_cover"`
	WindDirection  string    `json:"wind_direction"`
	WindSpeed      string    `json:"wind_speed"`
	SnowfallLast12 string    `json:"snowfall_12h"`
	SnowfallLast24 string    `json:"snowfall_24h"`
}

// NormalizeForecast maps a raw stored row plus an optional matched weather
// row into a canonical Forecast. Missing optional sub-fields get their
// documented defaults: likelihood "Possible", size "D2", an all-false rose.
// A nil weather row leaves Weather nil so callers can tell "no data" from
// "zero value". Missing optional data never produces an error.
//
// String-typed numeric weather fields are parsed here, exactly once; a value
// that fails to parse becomes 0. Responsibility for the required fields
// (zone, dates, three in-range danger levels) sits with the ingestion
// boundary, not here.
func NormalizeForecast(rec ForecastRecord, wx *WeatherRecord) Forecast {
	f := Forecast{
		Zone:                rec.Zone,
		IssueDate:           rec.IssueDate,
		ValidDate:           rec.ValidDate,
		DangerAlpine:        DangerLevel(rec.DangerAlpine),
		DangerTreeline:      DangerLevel(rec.DangerTreeline),
		DangerBelowTreeline: DangerLevel(rec.DangerBelowTreeline),
		BottomLine:          rec.BottomLine,
		Discussion:          rec.Discussion,
		Problems:            make([]AvalancheProblem, 0, len(rec.Problems)),
	}

	for _, p := range rec.Problems {
		problemType, ok := parseProblemType(p.Type)
		if !ok {
			// Unknown types can't be labeled or diffed; drop them rather
			// than invent a bucket the rest of the site doesn't render.
			continue
		}
		f.Problems = append(f.Problems, AvalancheProblem{
			Type:       problemType,
			Likelihood: parseLikelihood(p.Likelihood),
			Size:       parseSize(p.Size),
			Rose:       parseRose(p.Rose),
		})
	}

	if wx != nil {
		f.Weather = &Weather{
			Temperature:    parseFloatOrZero(wx.Temperature),
			CloudCover:     wx.CloudCover,
			WindDirection:  wx.WindDirection,
			WindSpeed:      wx.WindSpeed,
			SnowfallLast12: parseFloatOrZero(wx.SnowfallLast12),
			SnowfallLast24: parseFloatOrZero(wx.SnowfallLast24),
		}
	}

	return f
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseProblemType(s string) (ProblemType, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, t := range ProblemTypes() {
		if key == t.Key() {
			return t, true
		}
	}
	return 0, false
}

// parseLikelihood maps a stored likelihood to its ordinal, defaulting to
// "Possible" when the field is absent or unrecognized.
func parseLikelihood(s string) Likelihood {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unlikely":
		return LikelihoodUnlikely
	case "possible":
		return LikelihoodPossible
	case "likely":
		return LikelihoodLikely
	case "very likely":
		return LikelihoodVeryLikely
	case "almost certain":
		return LikelihoodAlmostCertain
	default:
		return LikelihoodPossible
	}
}

// parseSize maps a stored destructive-size code to its ordinal, defaulting
// to D2 when the field is absent or unrecognized.
func parseSize(s string) Size {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "D1":
		return SizeD1
	case "D2":
		return SizeD2
	case "D3":
		return SizeD3
	case "D4":
		return SizeD4
	case "D5":
		return SizeD5
	default:
		return SizeD2
	}
}

// parseRose builds the 24-cell grid from the stored list of active cells.
// Cells with an unknown aspect or band are ignored; an empty or nil list
// yields the all-false grid.
func parseRose(cells []RoseCellRecord) AspectElevationRose {
	var rose AspectElevationRose
	for _, c := range cells {
		a, okA := parseAspect(c.Aspect)
		b, okB := parseBand(c.Band)
		if okA && okB {
			rose[a][b] = true
		}
	}
	return rose
}

func parseAspect(s string) (Aspect, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "N":
		return AspectN, true
	case "NE":
		return AspectNE, true
	case "E":
		return AspectE, true
	case "SE":
		return AspectSE, true
	case "S":
		return AspectS, true
	case "SW":
		return AspectSW, true
	case "W":
		return AspectW, true
	case "NW":
		return AspectNW, true
	default:
		return 0, false
	}
}

func parseBand(s string) (ElevationBand, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "alpine":
		return BandAlpine, true
	case "treeline":
		return BandTreeline, true
	case "below_treeline", "below treeline":
		return BandBelowTreeline, true
	default:
		return 0, false
	}
}
