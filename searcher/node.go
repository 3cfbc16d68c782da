package searcher

import (
	"fmt"
	"math"

	"github.com/Lobotuerk/MonteCarloTreeSearch/game"
)

// Node is a vertex of the search tree. A node owns its state, the move
// that led to it from the parent, its children, and the queue of moves not
// yet expanded. The parent pointer is followed only to update ancestors
// (backpropagation and subtree sizes); ownership runs strictly downward.
type Node struct {
	parent   *Node
	state    game.State
	move     game.Move
	children []*Node
	untried  []game.Move // FIFO, front is the next move to expand
	terminal bool
	visits   int
	score    float64
	size     int
}

// newNode takes ownership of state and move. Terminality is computed once
// here; a terminal node is born with an empty untried queue and never
// gains children.
func newNode(parent *Node, state game.State, move game.Move) *Node {
	n := &Node{
		parent:   parent,
		state:    state,
		move:     move,
		terminal: state.IsTerminal(),
		size:     1,
	}
	if !n.terminal {
		n.untried = state.LegalMoves()
	}
	return n
}

// Move returns the move that led to this node, nil at the root.
func (n *Node) Move() game.Move { return n.move }

// State returns the node's state, still owned by the node.
func (n *Node) State() game.State { return n.state }

// Visits returns how many backpropagation passes have flowed through this
// node.
func (n *Node) Visits() int { return n.visits }

// Score returns the summed rollout rewards flowed through this node,
// expressed as self-side win probability mass.
func (n *Node) Score() float64 { return n.score }

// Size returns the number of nodes in the subtree rooted here, including
// the node itself.
func (n *Node) Size() int { return n.size }

// Terminal reports whether the node's state ends the game.
func (n *Node) Terminal() bool { return n.terminal }

// FullyExpanded reports whether every legal move from this node has a
// child. Terminal nodes count as fully expanded.
func (n *Node) FullyExpanded() bool { return n.terminal || len(n.untried) == 0 }

// winrate returns the average reward, from the self side's perspective.
func (n *Node) winrate() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.score / float64(n.visits)
}

// expand dequeues the front untried move, plays it, and attaches the
// resulting child. The dequeued move's ownership transfers to the child.
// The untried queue and child list are only touched after every game
// callback has succeeded, so a failing expansion leaves the tree as it
// was.
func (n *Node) expand() (child *Node, err error) {
	if n.terminal {
		panic("expand called on a terminal node")
	}
	if len(n.untried) == 0 {
		panic("expand called on a fully expanded node")
	}

	move := n.untried[0]
	next, err := playMove(n.state, move)
	if err != nil {
		return nil, err
	}
	child, err = buildChild(n, next, move)
	if err != nil {
		return nil, err
	}

	n.untried = n.untried[1:]
	n.children = append(n.children, child)
	for p := n; p != nil; p = p.parent {
		p.size++
	}
	return child, nil
}

// buildChild constructs the child node, converting a panic from the
// state's terminal check or move generator into an error.
func buildChild(parent *Node, state game.State, move game.Move) (child *Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			child = nil
			err = fmt.Errorf("%w: expanding %s panicked: %v", ErrUserCallback, move, r)
		}
	}()
	return newNode(parent, state, move), nil
}

// bestChild returns the child maximizing the UCT score
//
//	winrate(child) + c*sqrt(ln(visits(n)) / visits(child))
//
// where winrate is taken from the self side when the self side moves at
// this node and inverted otherwise: the opponent is modeled as minimizing
// the self side's win probability. A child that has never been visited is
// returned immediately. Ties break toward the lowest child index.
func (n *Node) bestChild(c float64) *Node {
	if len(n.children) == 0 {
		panic("bestChild called on a node without children")
	}

	for _, child := range n.children {
		if child.visits == 0 {
			return child
		}
	}

	policy := newUCT(c, float64(n.visits))
	selfTurn := n.state.SelfSideTurn()

	best := n.children[0]
	bestScore := math.Inf(-1)
	for _, child := range n.children {
		winrate := child.winrate()
		if !selfTurn {
			winrate = 1 - winrate
		}
		if score := policy.evaluate(winrate, float64(child.visits)); score > bestScore {
			best = child
			bestScore = score
		}
	}
	return best
}

// backpropagate adds count visits and rewardSum score to this node and
// every ancestor. Rewards are self-side win probability mass throughout;
// no per-level flipping happens here.
func (n *Node) backpropagate(rewardSum float64, count int) {
	for p := n; p != nil; p = p.parent {
		p.visits += count
		p.score += rewardSum
	}
}

// rolloutBatch produces count independent simulation scores from this
// node's state and returns their sum together with the number of
// simulations run. A terminal node contributes its terminal reward as a
// single sample.
func (n *Node) rolloutBatch(strategy Strategy, count int) (float64, int, error) {
	if n.terminal {
		reward, err := pool.runInline(n.state, strategy)
		return reward, 1, err
	}

	scores, err := pool.runBatch(n.state, strategy, count)
	if err != nil {
		return 0, 0, err
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum, len(scores), nil
}

// advance detaches the child reached by move and returns it as a root of
// its own, or nil when the move was never expanded. The rest of the tree
// is left for the garbage collector.
func (n *Node) advance(move game.Move) *Node {
	for i, child := range n.children {
		if child.move.Equals(move) {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return child
		}
	}
	return nil
}
