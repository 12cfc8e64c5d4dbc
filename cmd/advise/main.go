// Command advise runs the advisory engine offline over a JSON fixture of
// forecast envelopes (newest first, as produced by genmock) and prints the
// resulting report. Useful for eyeballing engine output without a database
// or broker.
//
// Usage:
//
//	go run ./cmd/advise -in data/mock/bridger_week.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/slopewise/avalanche-advisory/internal/domain"
)

// envelope mirrors the ingestion wire shape.
type envelope struct {
	domain.ForecastRecord
	Weather *domain.WeatherRecord `json:"weather,omitempty"`
}

func main() {
	in := flag.String("in", "", "path to a JSON array of forecast envelopes")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(*in); err != nil {
		fmt.Fprintf(os.Stderr, "advise: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var envelopes []envelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if len(envelopes) == 0 {
		return fmt.Errorf("%s: no envelopes", path)
	}

	forecasts := make([]domain.Forecast, 0, len(envelopes))
	for _, env := range envelopes {
		forecasts = append(forecasts, domain.NormalizeForecast(env.ForecastRecord, env.Weather))
	}

	fmt.Printf("Zone: %s (%d days)\n\n", forecasts[0].Zone, len(forecasts))

	for i, f := range forecasts {
		summary := domain.SummarizeDanger(f)
		fmt.Printf("%s  danger %d (%s)  alpine=%d treeline=%d below=%d\n",
			f.ValidDate.Format("2006-01-02"), summary.Overall, summary.Label,
			summary.Alpine, summary.Treeline, summary.BelowTreeline)

		if len(f.Problems) > 0 {
			names := make([]string, 0, len(f.Problems))
			for _, p := range f.Problems {
				names = append(names, fmt.Sprintf("%s (%s, %s)", p.Type.Label(), p.Likelihood, p.Size))
			}
			fmt.Printf("  problems: %s\n", strings.Join(names, ", "))
		}

		var previous *domain.Forecast
		if i+1 < len(forecasts) {
			previous = &forecasts[i+1]
		}
		for _, change := range domain.DetectChanges(f, previous) {
			fmt.Printf("  change: %s\n", change)
		}
	}

	insights := domain.AnalyzeTrends(forecasts)
	if len(insights) > 0 {
		fmt.Println("\nTrends:")
		for _, ins := range insights {
			fmt.Printf("  %s %s [%s]\n    %s\n", ins.Icon, ins.Title, ins.Sentiment, ins.Detail)
		}
	}

	return nil
}
