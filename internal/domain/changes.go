package domain

import "fmt"

// band diff statements always run alpine, treeline, below-treeline, in that
// order, before the problem rules.
var bandDiffs = []struct {
	name  string
	level func(Forecast) DangerLevel
}{
	{"Alpine", func(f Forecast) DangerLevel { return f.DangerAlpine }},
	{"Treeline", func(f Forecast) DangerLevel { return f.DangerTreeline }},
	{"Below treeline", func(f Forecast) DangerLevel { return f.DangerBelowTreeline }},
}

// DetectChanges produces the ordered day-over-day change report between a
// forecast and the immediately preceding day's. All applicable rules fire
// independently; none short-circuit another. A nil previous forecast (no
// prior data) yields an empty list, and so does an unchanged day.
func DetectChanges(current Forecast, previous *Forecast) []string {
	changes := []string{}
	if previous == nil {
		return changes
	}

	for _, band := range bandDiffs {
		prev, cur := band.level(*previous), band.level(current)
		if prev == cur {
			continue
		}
		direction := "increased"
		if cur < prev {
			direction = "decreased"
		}
		changes = append(changes, fmt.Sprintf("%s danger %s from %d to %d.", band.name, direction, prev, cur))
	}

	prevCount, curCount := len(previous.Problems), len(current.Problems)
	if curCount > prevCount {
		changes = append(changes, fmt.Sprintf("New avalanche problem added (%d total)", curCount))
	} else if curCount < prevCount {
		changes = append(changes, fmt.Sprintf("Avalanche problem resolved (%d remaining)", curCount))
	}

	// Type-level adds and removals may both appear in the same report, e.g.
	// when wind slab replaces storm slab at an unchanged count.
	for _, t := range ProblemTypes() {
		if current.HasProblem(t) && !previous.HasProblem(t) {
			changes = append(changes, fmt.Sprintf("%s added", t.Label()))
		}
	}
	for _, t := range ProblemTypes() {
		if previous.HasProblem(t) && !current.HasProblem(t) {
			changes = append(changes, fmt.Sprintf("%s removed", t.Label()))
		}
	}

	return changes
}
