// Package match drives two agents through a complete game, relaying each
// side's move to the other.
package match

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Lobotuerk/MonteCarloTreeSearch/game"
	"github.com/Lobotuerk/MonteCarloTreeSearch/searcher"
)

// Match holds the two agents of a game. Each agent keeps its own tree
// rooted at the shared position.
type Match struct {
	agents  [2]*searcher.Agent
	metrics [][2]searcher.SearchMetric
}

// New pairs two agents built from the same starting state.
func New(first, second *searcher.Agent) *Match {
	if first == nil || second == nil {
		panic("match: nil agent")
	}
	return &Match{agents: [2]*searcher.Agent{first, second}}
}

// Run plays the game to the end and returns the final state. The first
// agent moves first; every generated move is fed to the opponent on its
// next turn.
func (m *Match) Run() (game.State, error) {
	m.metrics = nil
	var last game.Move

	for turn := 0; ; turn = 1 - turn {
		move, err := m.agents[turn].Genmove(last)
		if err != nil {
			return nil, fmt.Errorf("agent %d failed to move: %w", turn+1, err)
		}
		if move == nil {
			return m.agents[turn].CurrentState(), nil
		}

		log.Debug().Int("agent", turn+1).Str("move", move.String()).Msg("played")
		m.metrics = append(m.metrics, [2]searcher.SearchMetric{})
		m.metrics[len(m.metrics)-1][turn] = m.agents[turn].SearchMetric()
		last = move
	}
}

// Metrics returns one entry per played move; the mover's slot holds its
// search metrics. Only populated for agents built WithMetrics.
func (m *Match) Metrics() [][2]searcher.SearchMetric {
	return m.metrics
}
