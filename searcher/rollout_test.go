package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// resetRolloutConfig restores the process-wide defaults after a test
// that reconfigures the registry.
func resetRolloutConfig(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		require.NoError(t, SetRolloutStrategy(Random))
		require.NoError(t, SetHeuristicRatio(0.5))
	})
}

func TestRolloutConfig(t *testing.T) {
	resetRolloutConfig(t)

	t.Run("rejects an unknown strategy", func(t *testing.T) {
		require.ErrorIs(t, SetRolloutStrategy(Strategy(42)), ErrInvalidArgument,
			"Only the four known strategies are legal")
	})

	t.Run("rejects a ratio outside the unit interval", func(t *testing.T) {
		require.ErrorIs(t, SetHeuristicRatio(-0.1), ErrInvalidArgument)
		require.ErrorIs(t, SetHeuristicRatio(1.1), ErrInvalidArgument)
	})

	t.Run("setters are idempotent and readable", func(t *testing.T) {
		require.NoError(t, SetRolloutStrategy(Mixed))
		require.NoError(t, SetRolloutStrategy(Mixed))
		require.Equal(t, Mixed, RolloutStrategy())

		require.NoError(t, SetHeuristicRatio(0.25))
		require.Equal(t, 0.25, HeuristicRatio())
	})
}

// countStrategies grows a fresh tree over a counting game and returns
// how many random and heuristic rollouts ran.
func countStrategies(t *testing.T, iterations int) (random, heuristic int64) {
	t.Helper()
	counters := &rolloutCounters{}
	state := heuristicMockState{mockState{depth: 6, branch: 3, reward: 0.5, counters: counters}}
	tree := NewTree(state)
	require.NoError(t, tree.GrowTree(iterations, time.Minute))
	return counters.random.Load(), counters.heuristic.Load()
}

func TestStrategyDispatch(t *testing.T) {
	resetRolloutConfig(t)

	t.Run("random routes every simulation through Rollout", func(t *testing.T) {
		require.NoError(t, SetRolloutStrategy(Random))

		random, heuristic := countStrategies(t, 50)

		require.Equal(t, int64(50), random, "Every rollout should be random")
		require.Zero(t, heuristic, "No heuristic rollout should run")
	})

	t.Run("heuristic routes every simulation through HeuristicRollout", func(t *testing.T) {
		require.NoError(t, SetRolloutStrategy(Heuristic))

		random, heuristic := countStrategies(t, 50)

		require.Zero(t, random, "No random rollout should run")
		require.Equal(t, int64(50), heuristic, "Every rollout should be heuristic")
	})

	t.Run("heavy currently behaves like heuristic", func(t *testing.T) {
		require.NoError(t, SetRolloutStrategy(Heavy))

		random, heuristic := countStrategies(t, 50)

		require.Zero(t, random)
		require.Equal(t, int64(50), heuristic)
	})

	t.Run("mixed with ratio zero is random", func(t *testing.T) {
		require.NoError(t, SetRolloutStrategy(Mixed))
		require.NoError(t, SetHeuristicRatio(0))

		random, heuristic := countStrategies(t, 50)

		require.Equal(t, int64(50), random)
		require.Zero(t, heuristic)
	})

	t.Run("mixed with ratio one is heuristic", func(t *testing.T) {
		require.NoError(t, SetRolloutStrategy(Mixed))
		require.NoError(t, SetHeuristicRatio(1))

		random, heuristic := countStrategies(t, 50)

		require.Zero(t, random)
		require.Equal(t, int64(50), heuristic)
	})

	t.Run("heuristic strategy falls back to Rollout for plain games", func(t *testing.T) {
		require.NoError(t, SetRolloutStrategy(Heuristic))

		counters := &rolloutCounters{}
		tree := NewTree(mockState{depth: 4, branch: 2, reward: 0.5, counters: counters})
		require.NoError(t, tree.GrowTree(30, time.Minute))

		require.Equal(t, int64(30), counters.random.Load(),
			"A game without the heuristic capability still simulates through Rollout")
	})
}

func TestStrategyString(t *testing.T) {
	t.Run("names every strategy", func(t *testing.T) {
		require.Equal(t, "random", Random.String())
		require.Equal(t, "heuristic", Heuristic.String())
		require.Equal(t, "mixed", Mixed.String())
		require.Equal(t, "heavy", Heavy.String())
	})
}
