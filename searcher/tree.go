package searcher

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Lobotuerk/MonteCarloTreeSearch/game"
)

// Tree owns the root of a search tree and grows it one iteration at a
// time: descend by UCT, expand one child, simulate a rollout batch,
// backpropagate. All tree mutations happen on the calling goroutine; only
// the rollout batch fans out to the worker pool.
type Tree struct {
	root        *Node
	exploration float64
	metrics     Collector
	lastSearch  SearchMetric
}

// NewTree takes ownership of state and builds a single-node tree around
// it.
func NewTree(state game.State) *Tree {
	if state == nil {
		panic("searcher: NewTree called with nil state")
	}
	return &Tree{
		root:        newNode(nil, state, nil),
		exploration: DefaultExploration,
		metrics:     NewNopCollector(),
	}
}

// Root returns the current root node.
func (t *Tree) Root() *Node { return t.root }

// Size returns the total number of nodes in the tree.
func (t *Tree) Size() int { return t.root.size }

// CurrentState returns the root's state, still owned by the tree.
func (t *Tree) CurrentState() game.State { return t.root.state }

// SetExploration overrides the UCT exploration constant.
func (t *Tree) SetExploration(c float64) error {
	if c < 0 {
		return fmt.Errorf("%w: exploration constant %v < 0", ErrInvalidArgument, c)
	}
	t.exploration = c
	return nil
}

// SetCollector attaches a metrics collector to subsequent searches.
func (t *Tree) SetCollector(metrics Collector) {
	if metrics != nil {
		t.metrics = metrics
	}
}

// LastSearch returns the metrics of the most recent GrowTree run.
func (t *Tree) LastSearch() SearchMetric { return t.lastSearch }

// GrowTree runs search iterations until maxIter iterations have completed
// or the wall clock exceeds maxTime. Time is sampled between iterations
// only, so a running iteration always completes. Running out of budget is
// the normal way this returns.
func (t *Tree) GrowTree(maxIter int, maxTime time.Duration) error {
	if maxIter < 1 {
		return fmt.Errorf("%w: max iterations %d < 1", ErrInvalidArgument, maxIter)
	}
	if maxTime <= 0 {
		return fmt.Errorf("%w: max time %v <= 0", ErrInvalidArgument, maxTime)
	}

	log.Debug().Int("max_iterations", maxIter).Dur("max_time", maxTime).Msg("search started")
	defer func() {
		log.Debug().Int("tree_size", t.root.size).Msg("search stopped")
	}()

	t.metrics.Start()
	start := time.Now()
	for i := 0; i < maxIter; i++ {
		if err := t.iterate(); err != nil {
			t.lastSearch = t.metrics.Complete()
			return err
		}
		t.metrics.AddIteration()
		// Sampling the clock only here keeps iterations atomic; the worst
		// case overshoot is a single iteration.
		if time.Since(start) >= maxTime {
			break
		}
	}
	t.lastSearch = t.metrics.Complete()
	return nil
}

// iterate performs one full selection/expansion/simulation/
// backpropagation cycle from the root.
func (t *Tree) iterate() error {
	var leaf *Node
	if err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: selection panicked: %v", ErrUserCallback, r)
			}
		}()
		leaf = t.selectLeaf()
		return nil
	}(); err != nil {
		return err
	}

	if !leaf.terminal {
		child, err := leaf.expand()
		if err != nil {
			return err
		}
		leaf = child
	}

	reward, count, err := leaf.rolloutBatch(RolloutStrategy(), RolloutThreads())
	if err != nil {
		return err
	}
	t.metrics.AddRollouts(count)

	leaf.backpropagate(reward, count)
	return nil
}

// selectLeaf walks down from the root by UCT, stopping at the first node
// that is terminal or still has untried moves.
func (t *Tree) selectLeaf() *Node {
	node := t.root
	for !node.terminal && node.FullyExpanded() {
		node = node.bestChild(t.exploration)
	}
	return node
}

// BestChild returns the root child with the highest visit count, ties
// broken by lowest index. Visit count is the more robust signal than
// winrate for committing to a move. Returns nil when the root has no
// children.
func (t *Tree) BestChild() *Node {
	var best *Node
	maxVisits := -1
	for _, child := range t.root.children {
		if child.visits > maxVisits {
			maxVisits = child.visits
			best = child
		}
	}
	return best
}

// Advance re-roots the tree at the child reached by move, preserving that
// child's subtree. When the move was never expanded the old tree is
// discarded and a fresh root is built from the successor state.
func (t *Tree) Advance(move game.Move) error {
	if child := t.root.advance(move); child != nil {
		t.root = child
		t.metrics.SetTreeReused(true)
		return nil
	}

	next, err := playMove(t.root.state, move)
	if err != nil {
		return err
	}
	t.root = newNode(nil, next, nil)
	t.metrics.SetTreeReused(false)
	return nil
}

// PrintStats logs the root statistics and the per-child visit
// distribution.
func (t *Tree) PrintStats() {
	root := t.root
	log.Info().
		Int("size", root.size).
		Int("visits", root.visits).
		Float64("winrate", root.winrate()).
		Bool("terminal", root.terminal).
		Msg("tree root")

	for i, child := range root.children {
		log.Info().
			Int("child", i).
			Str("move", child.move.String()).
			Int("visits", child.visits).
			Float64("winrate", child.winrate()).
			Int("size", child.size).
			Msg("root child")
	}
}
