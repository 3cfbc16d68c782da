package searcher

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Lobotuerk/MonteCarloTreeSearch/game"
)

const (
	DefaultMaxIterations = 100000
	DefaultMaxTime       = 30 * time.Second
)

// Agent is the game-playing facade over a Tree. It keeps the tree rooted
// at the current position across the whole game, advancing it as moves
// are played on either side.
type Agent struct {
	tree    *Tree
	maxIter int
	maxTime time.Duration
}

// Option configures an Agent at construction.
type Option func(a *Agent)

// WithMaxIterations caps the number of search iterations per move.
func WithMaxIterations(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxIter = n
		}
	}
}

// WithMaxTime caps the wall-clock search time per move.
func WithMaxTime(d time.Duration) Option {
	return func(a *Agent) {
		if d > 0 {
			a.maxTime = d
		}
	}
}

// WithExploration overrides the UCT exploration constant.
func WithExploration(c float64) Option {
	return func(a *Agent) {
		if c >= 0 {
			a.tree.exploration = c
		}
	}
}

// WithMetrics makes the agent record search statistics, available through
// SearchMetric after each move.
func WithMetrics() Option {
	return func(a *Agent) {
		a.tree.SetCollector(NewCollector())
	}
}

// NewAgent takes ownership of state and builds an agent reasoning about
// it.
func NewAgent(state game.State, options ...Option) *Agent {
	a := &Agent{
		tree:    NewTree(state),
		maxIter: DefaultMaxIterations,
		maxTime: DefaultMaxTime,
	}
	for _, option := range options {
		option(a)
	}
	return a
}

// Genmove incorporates the opponent's move, searches under the agent's
// budget, and commits to the strongest reply. A nil enemyMove means no
// opponent move preceded this call. The returned move stays owned by the
// tree; it is nil when the game is already over.
func (a *Agent) Genmove(enemyMove game.Move) (game.Move, error) {
	if enemyMove != nil {
		if err := a.tree.Advance(enemyMove); err != nil {
			return nil, err
		}
	}

	if a.tree.root.terminal {
		log.Debug().Msg("genmove on a finished game")
		return nil, nil
	}

	if err := a.tree.GrowTree(a.maxIter, a.maxTime); err != nil {
		return nil, err
	}

	best := a.tree.BestChild()
	if best == nil {
		// Cannot happen after a successful search on a non-terminal root.
		panic("searcher: search left the root without children")
	}

	move := best.move
	if err := a.tree.Advance(move); err != nil {
		return nil, err
	}
	return move, nil
}

// CurrentState returns the state the agent currently reasons about,
// still owned by the tree.
func (a *Agent) CurrentState() game.State {
	return a.tree.CurrentState()
}

// Tree exposes the underlying search tree for low-level use.
func (a *Agent) Tree() *Tree { return a.tree }

// SearchMetric returns the metrics of the agent's most recent search.
// Zero unless the agent was built WithMetrics.
func (a *Agent) SearchMetric() SearchMetric { return a.tree.LastSearch() }

// Feedback logs the root statistics of the current tree.
func (a *Agent) Feedback() {
	a.tree.PrintStats()
}
