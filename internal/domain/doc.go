// Package domain models North American avalanche advisory data and implements
// the forecast normalization and multi-day trend-analysis engine.
//
// # Data Source
//
// Daily forecast rows are written by the site's ingestion service, one per
// zone per valid date. Each row carries three danger ratings (alpine,
// treeline, below treeline), forecaster text, and a list of avalanche
// problems. Weather snapshots are stored in a separate table keyed by
// zone + date and matched to forecasts at read time; a forecast without a
// matching snapshot simply has no weather, which is distinct from a snapshot
// full of zeroes.
//
// # Storage Conventions
//
// Danger ratings:
//
//	Integers 1-5 on the North American Public Avalanche Danger Scale
//	(1=Low, 2=Moderate, 3=Considerable, 4=High, 5=Extreme). All three bands
//	are always present; the overall rating is never stored. It is derived as
//	the max of the three bands on every read so the per-band values and the
//	overall value cannot drift apart.
//
// Avalanche problems:
//
//	Problem type is one of a fixed set of snake_case keys (persistent_slab,
//	wind_slab, storm_slab, wet_slab, loose_dry, loose_wet, cornice, glide).
//	Likelihood ("Unlikely" through "Almost Certain") and destructive size
//	("D1" through "D5") are optional; absent values default to "Possible"
//	and "D2". The aspect/elevation rose is stored as a list of active
//	aspect+band cells; an absent list means the all-false 24-cell grid.
//
// Weather snapshots:
//
//	Temperature and snowfall columns are numeric-looking strings inherited
//	from the source feeds ("12.5", "28", occasionally "trace" or "--").
//	They are parsed exactly once, in [NormalizeForecast]; anything that does
//	not parse contributes 0. Cloud cover and wind descriptions stay free
//	text ("Clear skies", "Moderate W winds 15-25") and are matched by
//	case-insensitive substring in the trend analyzer.
//
// # Trend Heuristics
//
// [AnalyzeTrends] runs a rolling window of at most 7 days (most recent
// first) through fixed-threshold heuristics: 24-hour snowfall totals, wind
// and cold-clear day counts, a ±5°F temperature trend over the recent vs
// older half of the window, a first-vs-last overall danger comparison, and
// problem-type history. The thresholds are product-tuned constants; see
// trend.go. The analyzer is a pure function: the same window always yields
// the same insights in the same order.
package domain
