package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayWithProblems(alpine, treeline, below DangerLevel, types ...ProblemType) Forecast {
	f := Forecast{
		DangerAlpine:        alpine,
		DangerTreeline:      treeline,
		DangerBelowTreeline: below,
	}
	for _, t := range types {
		f.Problems = append(f.Problems, AvalancheProblem{Type: t, Likelihood: LikelihoodPossible, Size: SizeD2})
	}
	return f
}

func TestDetectChanges(t *testing.T) {
	t.Run("no previous forecast yields empty list", func(t *testing.T) {
		current := dayWithProblems(2, 2, 1, ProblemWindSlab)

		changes := DetectChanges(current, nil)

		assert.Empty(t, changes)
		assert.NotNil(t, changes)
	})

	t.Run("identical days yield empty list", func(t *testing.T) {
		previous := dayWithProblems(2, 2, 1, ProblemWindSlab)
		current := dayWithProblems(2, 2, 1, ProblemWindSlab)

		assert.Empty(t, DetectChanges(current, &previous))
	})

	t.Run("full diff with rise, new problem, and unchanged band", func(t *testing.T) {
		previous := dayWithProblems(2, 2, 1, ProblemWindSlab)
		current := dayWithProblems(4, 2, 1, ProblemWindSlab, ProblemStormSlab)

		changes := DetectChanges(current, &previous)

		assert.Contains(t, changes, "Alpine danger increased from 2 to 4.")
		assert.Contains(t, changes, "New avalanche problem added (2 total)")
		assert.Contains(t, changes, "Storm Slab added")
		for _, c := range changes {
			assert.NotContains(t, c, "Below treeline")
			assert.NotContains(t, c, "Treeline")
		}
	})

	t.Run("decrease statements", func(t *testing.T) {
		previous := dayWithProblems(4, 3, 3)
		current := dayWithProblems(2, 3, 1)

		changes := DetectChanges(current, &previous)

		require.Len(t, changes, 2)
		assert.Equal(t, "Alpine danger decreased from 4 to 2.", changes[0])
		assert.Equal(t, "Below treeline danger decreased from 3 to 1.", changes[1])
	})

	t.Run("problem resolved", func(t *testing.T) {
		previous := dayWithProblems(2, 2, 2, ProblemWindSlab, ProblemLooseDry)
		current := dayWithProblems(2, 2, 2, ProblemWindSlab)

		changes := DetectChanges(current, &previous)

		require.Len(t, changes, 2)
		assert.Equal(t, "Avalanche problem resolved (1 remaining)", changes[0])
		assert.Equal(t, "Loose Dry removed", changes[1])
	})

	t.Run("swap emits add and removal without count change", func(t *testing.T) {
		previous := dayWithProblems(3, 3, 2, ProblemStormSlab)
		current := dayWithProblems(3, 3, 2, ProblemPersistentSlab)

		changes := DetectChanges(current, &previous)

		require.Len(t, changes, 2)
		assert.Equal(t, "Persistent Slab added", changes[0])
		assert.Equal(t, "Storm Slab removed", changes[1])
	})

	t.Run("band statements keep fixed order", func(t *testing.T) {
		previous := dayWithProblems(1, 1, 1)
		current := dayWithProblems(2, 3, 4)

		changes := DetectChanges(current, &previous)

		require.Len(t, changes, 3)
		assert.Equal(t, "Alpine danger increased from 1 to 2.", changes[0])
		assert.Equal(t, "Treeline danger increased from 1 to 3.", changes[1])
		assert.Equal(t, "Below treeline danger increased from 1 to 4.", changes[2])
	})

	t.Run("additions listed in stable type order", func(t *testing.T) {
		previous := dayWithProblems(2, 2, 2)
		current := dayWithProblems(2, 2, 2, ProblemGlide, ProblemWindSlab)

		changes := DetectChanges(current, &previous)

		require.Len(t, changes, 3)
		assert.Equal(t, "New avalanche problem added (2 total)", changes[0])
		assert.Equal(t, "Wind Slab added", changes[1])
		assert.Equal(t, "Glide added", changes[2])
	})
}
