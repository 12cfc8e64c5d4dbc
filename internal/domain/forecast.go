package domain

import "time"

// DangerLevel is a rating on the North American Public Avalanche Danger Scale.
type DangerLevel int

const (
	DangerLow DangerLevel = iota + 1
	DangerModerate
	DangerConsiderable
	DangerHigh
	DangerExtreme
)

// Valid reports whether the level is within the 1-5 scale.
func (d DangerLevel) Valid() bool {
	return d >= DangerLow && d <= DangerExtreme
}

// Label returns the scale name for the level, or "Unknown" off-scale.
func (d DangerLevel) Label() string {
	switch d {
	case DangerLow:
		return "Low"
	case DangerModerate:
		return "Moderate"
	case DangerConsiderable:
		return "Considerable"
	case DangerHigh:
		return "High"
	case DangerExtreme:
		return "Extreme"
	default:
		return "Unknown"
	}
}

// ColorKey returns the display color key the dashboard uses for the level.
func (d DangerLevel) ColorKey() string {
	switch d {
	case DangerLow:
		return "green"
	case DangerModerate:
		return "yellow"
	case DangerConsiderable:
		return "orange"
	case DangerHigh:
		return "red"
	case DangerExtreme:
		return "black"
	default:
		return "gray"
	}
}

// Aspect is one of the 8 compass directions a slope faces.
type Aspect int

const (
	AspectN Aspect = iota
	AspectNE
	AspectE
	AspectSE
	AspectS
	AspectSW
	AspectW
	AspectNW

	NumAspects = 8
)

func (a Aspect) String() string {
	names := [NumAspects]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	if a < 0 || int(a) >= NumAspects {
		return ""
	}
	return names[a]
}

// ElevationBand is one of the three independently rated elevation bands.
type ElevationBand int

const (
	BandAlpine ElevationBand = iota
	BandTreeline
	BandBelowTreeline

	NumBands = 3
)

func (b ElevationBand) String() string {
	names := [NumBands]string{"alpine", "treeline", "below_treeline"}
	if b < 0 || int(b) >= NumBands {
		return ""
	}
	return names[b]
}

// AspectElevationRose is the fixed 8x3 grid marking which aspect/band
// combinations a problem affects. The zero value is the all-false grid.
type AspectElevationRose [NumAspects][NumBands]bool

// Active reports whether the problem affects the given aspect/band cell.
func (r AspectElevationRose) Active(a Aspect, b ElevationBand) bool {
	if a < 0 || int(a) >= NumAspects || b < 0 || int(b) >= NumBands {
		return false
	}
	return r[a][b]
}

// ActiveCells returns the number of true cells, for display sizing.
func (r AspectElevationRose) ActiveCells() int {
	n := 0
	for _, row := range r {
		for _, on := range row {
			if on {
				n++
			}
		}
	}
	return n
}

// ProblemType identifies a distinct avalanche hazard mechanism.
type ProblemType int

const (
	ProblemPersistentSlab ProblemType = iota
	ProblemWindSlab
	ProblemStormSlab
	ProblemWetSlab
	ProblemLooseDry
	ProblemLooseWet
	ProblemCornice
	ProblemGlide

	numProblemTypes = 8
)

// ProblemTypes returns all problem types in their stable display order.
// Diff and history logic iterates this slice so output ordering never
// depends on map iteration.
func ProblemTypes() []ProblemType {
	return []ProblemType{
		ProblemPersistentSlab,
		ProblemWindSlab,
		ProblemStormSlab,
		ProblemWetSlab,
		ProblemLooseDry,
		ProblemLooseWet,
		ProblemCornice,
		ProblemGlide,
	}
}

// Key returns the snake_case storage key for the type.
func (p ProblemType) Key() string {
	keys := [numProblemTypes]string{
		"persistent_slab", "wind_slab", "storm_slab", "wet_slab",
		"loose_dry", "loose_wet", "cornice", "glide",
	}
	if p < 0 || int(p) >= numProblemTypes {
		return ""
	}
	return keys[p]
}

// Label returns the human-readable name for the type.
func (p ProblemType) Label() string {
	labels := [numProblemTypes]string{
		"Persistent Slab", "Wind Slab", "Storm Slab", "Wet Slab",
		"Loose Dry", "Loose Wet", "Cornice", "Glide",
	}
	if p < 0 || int(p) >= numProblemTypes {
		return ""
	}
	return labels[p]
}

// Likelihood is the ordinal chance a problem produces an avalanche.
type Likelihood int

const (
	LikelihoodUnlikely Likelihood = iota
	LikelihoodPossible
	LikelihoodLikely
	LikelihoodVeryLikely
	LikelihoodAlmostCertain
)

func (l Likelihood) String() string {
	names := [...]string{"Unlikely", "Possible", "Likely", "Very Likely", "Almost Certain"}
	if l < 0 || int(l) >= len(names) {
		return ""
	}
	return names[l]
}

// Size is an avalanche destructive-scale code, D1 through D5.
type Size int

const (
	SizeD1 Size = iota + 1
	SizeD2
	SizeD3
	SizeD4
	SizeD5
)

func (s Size) String() string {
	if s < SizeD1 || s > SizeD5 {
		return ""
	}
	return [...]string{"D1", "D2", "D3", "D4", "D5"}[s-1]
}

// AvalancheProblem is one hazard mechanism active within a forecast period.
type AvalancheProblem struct {
	Type       ProblemType         `json:"type"`
	Likelihood Likelihood          `json:"likelihood"`
	Size       Size                `json:"size"`
	Rose       AspectElevationRose `json:"rose"`
}

// Weather is the optional snapshot matched to a forecast by zone + date.
// Numeric fields are parsed once at the normalization boundary; a value
// that failed to parse is 0. Description fields stay free text.
type Weather struct {
	Temperature    float64 `json:"temperature_f"`
	CloudCover     string  `json:"cloud_cover"`
	WindDirection  string  `json:"wind_direction"`
	WindSpeed      string  `json:"wind_speed"`
	SnowfallLast12 float64 `json:"snowfall_12h_in"`
	SnowfallLast24 float64 `json:"snowfall_24h_in"`
}

// Forecast is the canonical daily forecast entity, one per zone per valid
// date. All three band ratings are always present and in [1,5]; there is no
// stored overall rating, see [Forecast.OverallDanger].
type Forecast struct {
	Zone                string             `json:"zone"`
	IssueDate           time.Time          `json:"issue_date"`
	ValidDate           time.Time          `json:"valid_date"`
	DangerAlpine        DangerLevel        `json:"danger_alpine"`
	DangerTreeline      DangerLevel        `json:"danger_treeline"`
	DangerBelowTreeline DangerLevel        `json:"danger_below_treeline"`
	BottomLine          string             `json:"bottom_line"`
	Discussion          string             `json:"discussion,omitempty"`
	Problems            []AvalancheProblem `json:"problems"`
	Weather             *Weather           `json:"weather,omitempty"`
}

// OverallDanger derives the day's single rating: the max of the three band
// ratings. Always computed, never persisted, so it cannot drift from the
// per-band values.
func (f Forecast) OverallDanger() DangerLevel {
	overall := f.DangerAlpine
	if f.DangerTreeline > overall {
		overall = f.DangerTreeline
	}
	if f.DangerBelowTreeline > overall {
		overall = f.DangerBelowTreeline
	}
	return overall
}

// HasProblem reports whether the forecast lists the given problem type.
func (f Forecast) HasProblem(t ProblemType) bool {
	for _, p := range f.Problems {
		if p.Type == t {
			return true
		}
	}
	return false
}
