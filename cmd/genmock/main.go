// Command genmock generates a window of plausible forecast envelopes for a
// zone as a JSON array, suitable for seeding a dev topic or feeding the
// advise command. Output is deterministic for a given seed.
//
// Usage:
//
//	go run ./cmd/genmock -zone bridger -days 7 -seed 1 -out data/mock/bridger_week.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/slopewise/avalanche-advisory/internal/domain"
)

var baseDate = time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)

// envelope mirrors the ingestion wire shape.
type envelope struct {
	domain.ForecastRecord
	Weather *domain.WeatherRecord `json:"weather,omitempty"`
}

var windSpeeds = []string{"Light and variable", "Moderate from the SW", "Strong gusts at ridgetop"}

var cloudCovers = []string{"Clear", "Scattered", "Overcast"}

var problemPool = []string{"wind_slab", "storm_slab", "persistent_slab", "loose_dry"}

func main() {
	zone := flag.String("zone", "bridger", "forecast zone")
	days := flag.Int("days", 7, "number of days to generate")
	seed := flag.Int64("seed", 1, "random seed")
	out := flag.String("out", "", "output path for the JSON fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		log.Fatal("missing required flag: -out")
	}

	if err := run(*zone, *days, *seed, *out); err != nil {
		log.Fatal(err)
	}
}

func run(zone string, days int, seed int64, out string) error {
	rng := rand.New(rand.NewSource(seed))

	envelopes := make([]envelope, 0, days)
	for i := 0; i < days; i++ {
		envelopes = append(envelopes, makeDay(rng, zone, i))
	}

	data, err := json.MarshalIndent(envelopes, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal envelopes: %w", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	log.Printf("%s: %d days written", out, days)
	return nil
}

// makeDay builds one day's envelope, offset days before the base date so the
// first generated entry is the most recent.
func makeDay(rng *rand.Rand, zone string, offset int) envelope {
	validDate := baseDate.AddDate(0, 0, -offset)
	alpine := 1 + rng.Intn(4)
	treeline := max(1, alpine-rng.Intn(2))
	below := max(1, treeline-rng.Intn(2))

	problems := make([]domain.ProblemRecord, 0, 2)
	for _, p := range problemPool {
		if rng.Float64() < 0.4 {
			problems = append(problems, domain.ProblemRecord{
				Type:       p,
				Likelihood: "Likely",
				Size:       "D" + strconv.Itoa(1+rng.Intn(3)),
				Rose: []domain.RoseCellRecord{
					{Aspect: "N", Band: "alpine"},
					{Aspect: "NE", Band: "alpine"},
				},
			})
		}
	}

	return envelope{
		ForecastRecord: domain.ForecastRecord{
			Zone:                zone,
			IssueDate:           validDate.Add(-8 * time.Hour),
			ValidDate:           validDate,
			DangerAlpine:        alpine,
			DangerTreeline:      treeline,
			DangerBelowTreeline: below,
			BottomLine:          "Evaluate wind-loaded slopes carefully before committing.",
			Problems:            problems,
		},
		Weather: &domain.WeatherRecord{
			Zone:           zone,
			ValidDate:      validDate,
			Temperature:    strconv.Itoa(10 + rng.Intn(20)),
			CloudCover:     cloudCovers[rng.Intn(len(cloudCovers))],
			WindSpeed:      windSpeeds[rng.Intn(len(windSpeeds))],
			SnowfallLast12: strconv.Itoa(rng.Intn(4)),
			SnowfallLast24: strconv.Itoa(rng.Intn(8)),
		},
	}
}
