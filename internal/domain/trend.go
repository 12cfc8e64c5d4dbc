package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Sentiment tags an insight for dashboard styling.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Insight is one qualitative statement about conditions over the window.
type Insight struct {
	Category  string    `json:"category"`
	Icon      string    `json:"icon"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail"`
	Sentiment Sentiment `json:"sentiment"`
}

// Trend-analysis thresholds. Product-tuned constants inherited from the
// original dashboard; do not re-derive.
const (
	trendWindowDays = 7

	snowSignificantIn = 12.0 // total window snowfall for "significant loading"
	snowModerateIn    = 6.0  // total window snowfall for "moderate accumulation"
	notableSnowIn     = 3.0  // daily 24h snowfall that resets daysSinceSnow

	windDayWords       = "moderate|strong|extreme" // substrings marking a wind day
	persistentWindDays = 3                         // wind days for "persistent wind loading"

	coldClearTempF   = 20.0 // parsed temperature below this on a clear day
	facetingMinDays  = 3    // cold-clear days for the faceting insight
	tempTrendDeltaF  = 5.0  // recent-vs-older mean difference for a trend
	tempTrendMinDays = 4    // window entries required to compare means

	stableAvgDangerMax   = 1.5 // avg overall danger for "generally stable"
	stableMaxSnowIn      = 3.0
	stableMaxWindDays    = 2
	elevatedAvgDangerMin = 3.0 // avg overall danger for "elevated instability"
)

// windowStats holds the aggregates computed over the rolling window before
// any insight is emitted.
type windowStats struct {
	days          int
	totalSnow     float64
	windDays      int
	coldClearDays int
	daysSinceSnow int
	warming       bool
	cooling       bool
	dangerUp      bool
	dangerDown    bool
	newestDanger  DangerLevel
	oldestDanger  DangerLevel
	avgDanger     float64

	// problem-type history over the window vs the most recent day
	windSlabSeen      bool
	stormSlabSeen     bool
	persistentSeen    bool
	persistentCurrent bool
	currentProblemSet map[ProblemType]bool
}

// AnalyzeTrends runs the rolling 7-day heuristic analysis over a window of
// forecasts ordered most-recent-first. Fewer than 2 entries yield an empty
// list; longer inputs are truncated to the 7 most recent. The function is
// pure: identical windows always produce identical, identically ordered
// insights.
func AnalyzeTrends(forecasts []Forecast) []Insight {
	insights := []Insight{}
	if len(forecasts) < 2 {
		return insights
	}

	window := forecasts
	if len(window) > trendWindowDays {
		window = window[:trendWindowDays]
	}

	stats := computeWindowStats(window)

	insights = appendSnowInsight(insights, stats)
	insights = appendWindInsight(insights, stats)
	insights = appendFacetingInsight(insights, stats)
	insights = appendTemperatureInsight(insights, stats)
	insights = appendDangerTrendInsight(insights, stats)
	insights = appendPersistentSlabInsight(insights, stats)
	insights = appendStabilityInsight(insights, stats)

	return insights
}

func computeWindowStats(window []Forecast) windowStats {
	stats := windowStats{
		days:              len(window),
		currentProblemSet: make(map[ProblemType]bool),
	}

	dangerSum := 0
	for _, f := range window {
		overall := f.OverallDanger()
		dangerSum += int(overall)

		// Days with no weather match contribute 0 snowfall and never count
		// as wind or cold-clear days, but they stay in the day count.
		if f.Weather != nil {
			stats.totalSnow += f.Weather.SnowfallLast24
			if isWindDay(f.Weather.WindSpeed) {
				stats.windDays++
			}
			if isColdClearDay(f.Weather) {
				stats.coldClearDays++
			}
		}

		if f.HasProblem(ProblemPersistentSlab) {
			stats.persistentSeen = true
		}
		if f.HasProblem(ProblemWindSlab) {
			stats.windSlabSeen = true
		}
		if f.HasProblem(ProblemStormSlab) {
			stats.stormSlabSeen = true
		}
	}
	stats.avgDanger = float64(dangerSum) / float64(len(window))

	for _, p := range window[0].Problems {
		stats.currentProblemSet[p.Type] = true
	}
	stats.persistentCurrent = stats.currentProblemSet[ProblemPersistentSlab]

	// Consecutive leading days below the notable-snow cutoff, stopping at
	// the first day that reached it.
	for _, f := range window {
		if snowfall24(f) >= notableSnowIn {
			break
		}
		stats.daysSinceSnow++
	}

	stats.warming, stats.cooling = temperatureTrend(window)

	stats.newestDanger = window[0].OverallDanger()
	stats.oldestDanger = window[len(window)-1].OverallDanger()
	stats.dangerUp = stats.newestDanger > stats.oldestDanger
	stats.dangerDown = stats.newestDanger < stats.oldestDanger

	return stats
}

// temperatureTrend compares the mean of the window's 3 most recent
// temperatures against the mean of the next up-to-3. It needs at least 4
// entries; the flags are mutually exclusive and both false inside the ±5°F
// dead band.
func temperatureTrend(window []Forecast) (warming, cooling bool) {
	if len(window) < tempTrendMinDays {
		return false, false
	}

	recent := meanTemperature(window[:3])
	olderEnd := 6
	if olderEnd > len(window) {
		olderEnd = len(window)
	}
	older := meanTemperature(window[3:olderEnd])

	diff := recent - older
	return diff > tempTrendDeltaF, diff < -tempTrendDeltaF
}

func meanTemperature(days []Forecast) float64 {
	sum := 0.0
	for _, f := range days {
		if f.Weather != nil {
			sum += f.Weather.Temperature
		}
	}
	return sum / float64(len(days))
}

func snowfall24(f Forecast) float64 {
	if f.Weather == nil {
		return 0
	}
	return f.Weather.SnowfallLast24
}

// isWindDay reports whether the free-text wind-speed description names a
// moderate or stronger wind, matched case-insensitively by substring.
func isWindDay(windSpeed string) bool {
	desc := strings.ToLower(windSpeed)
	for _, word := range strings.Split(windDayWords, "|") {
		if strings.Contains(desc, word) {
			return true
		}
	}
	return false
}

// isColdClearDay reports whether the day was cold (< 20°F) with a clear or
// sunny sky description — the facet-growth recipe.
func isColdClearDay(wx *Weather) bool {
	if wx.Temperature >= coldClearTempF {
		return false
	}
	sky := strings.ToLower(wx.CloudCover)
	return strings.Contains(sky, "clear") || strings.Contains(sky, "sunny")
}

func appendSnowInsight(insights []Insight, stats windowStats) []Insight {
	if stats.totalSnow > 0 {
		insight := Insight{
			Category: "snowfall",
			Icon:     "❄️",
			Title:    fmt.Sprintf("%s\" of new snow in %d days", formatInches(stats.totalSnow), stats.days),
		}
		switch {
		case stats.totalSnow >= snowSignificantIn:
			insight.Detail = "Significant loading on the snowpack. Expect heightened avalanche activity on loaded slopes."
			insight.Sentiment = SentimentNegative
		case stats.totalSnow >= snowModerateIn:
			insight.Detail = "Moderate accumulation over the period. Watch how the new snow bonds to old surfaces."
			insight.Sentiment = SentimentNeutral
		default:
			insight.Detail = "Light accumulation over the period."
			insight.Sentiment = SentimentNeutral
		}
		return append(insights, insight)
	}

	if stats.totalSnow == 0 {
		return append(insights, Insight{
			Category:  "snowfall",
			Icon:      "☀️",
			Title:     "Dry spell continues",
			Detail:    fmt.Sprintf("%d days since notable snowfall. Surface snow may be faceting or developing crusts.", stats.daysSinceSnow),
			Sentiment: SentimentNeutral,
		})
	}

	return insights
}

func appendWindInsight(insights []Insight, stats windowStats) []Insight {
	if stats.windDays >= persistentWindDays {
		return append(insights, Insight{
			Category:  "wind",
			Icon:      "💨",
			Title:     "Persistent wind loading",
			Detail:    fmt.Sprintf("Moderate or stronger winds on %d of the last %d days. Fresh wind slabs are likely on lee aspects.", stats.windDays, stats.days),
			Sentiment: SentimentNegative,
		})
	}
	if stats.windDays > 0 && stats.windSlabSeen {
		return append(insights, Insight{
			Category:  "wind",
			Icon:      "💨",
			Title:     "Recent wind event",
			Detail:    "Winds were active this week while wind slab problems were flagged. Watch for reactive slabs near ridgelines.",
			Sentiment: SentimentNegative,
		})
	}
	return insights
}

func appendFacetingInsight(insights []Insight, stats windowStats) []Insight {
	if stats.coldClearDays < facetingMinDays {
		return insights
	}
	return append(insights, Insight{
		Category:  "faceting",
		Icon:      "🧊",
		Title:     "Cold, clear faceting conditions",
		Detail:    fmt.Sprintf("%d cold, clear days this week favor near-surface facet growth. The next storm may load a weak layer.", stats.coldClearDays),
		Sentiment: SentimentNegative,
	})
}

func appendTemperatureInsight(insights []Insight, stats windowStats) []Insight {
	if stats.warming {
		return append(insights, Insight{
			Category:  "temperature",
			Icon:      "🌡️",
			Title:     "Warming trend",
			Detail:    "Temperatures are trending up compared to earlier in the week. Watch for wet-snow instability on sun-exposed aspects.",
			Sentiment: SentimentNeutral,
		})
	}
	if stats.cooling {
		return append(insights, Insight{
			Category:  "temperature",
			Icon:      "🌡️",
			Title:     "Cooling trend",
			Detail:    "Temperatures are trending down compared to earlier in the week. Buried weak layers will be slow to heal.",
			Sentiment: SentimentNeutral,
		})
	}
	return insights
}

func appendDangerTrendInsight(insights []Insight, stats windowStats) []Insight {
	if stats.dangerDown {
		return append(insights, Insight{
			Category:  "danger",
			Icon:      "📉",
			Title:     "Danger trending down",
			Detail:    fmt.Sprintf("Overall danger dropped from %d to %d over the window.", stats.oldestDanger, stats.newestDanger),
			Sentiment: SentimentPositive,
		})
	}
	if stats.dangerUp {
		return append(insights, Insight{
			Category:  "danger",
			Icon:      "📈",
			Title:     "Danger increased",
			Detail:    fmt.Sprintf("Overall danger rose from %d to %d over the window.", stats.oldestDanger, stats.newestDanger),
			Sentiment: SentimentNegative,
		})
	}
	return insights
}

func appendPersistentSlabInsight(insights []Insight, stats windowStats) []Insight {
	if !stats.persistentSeen || !stats.persistentCurrent {
		return insights
	}
	return append(insights, Insight{
		Category:  "problem",
		Icon:      "⚠️",
		Title:     "Persistent slab problem lingering",
		Detail:    "Persistent slab has been active this week and remains in today's forecast. Conservative terrain choices are warranted.",
		Sentiment: SentimentNegative,
	})
}

func appendStabilityInsight(insights []Insight, stats windowStats) []Insight {
	if stats.avgDanger <= stableAvgDangerMax && stats.totalSnow < stableMaxSnowIn && stats.windDays < stableMaxWindDays {
		return append(insights, Insight{
			Category:  "stability",
			Icon:      "✅",
			Title:     "Generally stable conditions",
			Detail:    fmt.Sprintf("Average danger %.1f with little new snow or wind. A good window for bigger objectives.", stats.avgDanger),
			Sentiment: SentimentPositive,
		})
	}
	if stats.avgDanger >= elevatedAvgDangerMin {
		return append(insights, Insight{
			Category:  "stability",
			Icon:      "🚨",
			Title:     "Elevated instability",
			Detail:    fmt.Sprintf("Average danger %.1f across the window. Dangerous avalanche conditions persist.", stats.avgDanger),
			Sentiment: SentimentNegative,
		})
	}
	return insights
}

// formatInches renders a snowfall total without trailing zeros: 15 -> "15",
// 7.5 -> "7.5".
func formatInches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
