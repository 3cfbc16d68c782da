package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Lobotuerk/MonteCarloTreeSearch/searcher"
	"github.com/Lobotuerk/MonteCarloTreeSearch/tictactoe"
)

func newAgent(t *testing.T, iterations int) *searcher.Agent {
	t.Helper()
	return searcher.NewAgent(tictactoe.New(),
		searcher.WithMaxIterations(iterations),
		searcher.WithMaxTime(time.Minute),
		searcher.WithMetrics(),
	)
}

func TestRun(t *testing.T) {
	t.Run("plays a full game to a terminal state", func(t *testing.T) {
		m := New(newAgent(t, 1000), newAgent(t, 1000))

		final, err := m.Run()

		require.NoError(t, err)
		require.True(t, final.IsTerminal(), "The game must end")

		moves := m.Metrics()
		require.NotEmpty(t, moves, "Some moves were played")
		require.LessOrEqual(t, len(moves), 9, "Tic-tac-toe has at most nine moves")
		for i, pair := range moves {
			metric := pair[i%2]
			require.Greater(t, metric.Iterations, 0,
				"The mover searched before committing")
		}
	})

	t.Run("strong agents do not lose to each other", func(t *testing.T) {
		m := New(newAgent(t, 3000), newAgent(t, 3000))

		final, err := m.Run()

		require.NoError(t, err)
		require.Equal(t, byte(0), final.(tictactoe.State).Winner(),
			"Well-searched tic-tac-toe is a draw")
	})
}

func TestNew(t *testing.T) {
	t.Run("rejects nil agents", func(t *testing.T) {
		require.Panics(t, func() { New(nil, newAgent(t, 10)) })
		require.Panics(t, func() { New(newAgent(t, 10), nil) })
	})
}
