package domain

// DangerSummary is the per-day summary record served to the dashboard.
// Overall is derived from the bands at read time; the per-band values stay
// visible alongside it.
type DangerSummary struct {
	Overall       DangerLevel `json:"overall"`
	Label         string      `json:"label"`
	Color         string      `json:"color"`
	Alpine        DangerLevel `json:"alpine"`
	Treeline      DangerLevel `json:"treeline"`
	BelowTreeline DangerLevel `json:"below_treeline"`
}

// SummarizeDanger derives the overall danger for one day from its three
// elevation-band ratings. When bands tie at the max, the overall is simply
// that shared max; no band attribution is made here.
func SummarizeDanger(f Forecast) DangerSummary {
	overall := f.OverallDanger()
	return DangerSummary{
		Overall:       overall,
		Label:         overall.Label(),
		Color:         overall.ColorKey(),
		Alpine:        f.DangerAlpine,
		Treeline:      f.DangerTreeline,
		BelowTreeline: f.DangerBelowTreeline,
	}
}
