package searcher

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/Lobotuerk/MonteCarloTreeSearch/game"
)

// Strategy selects how simulations are performed.
type Strategy int

const (
	// Random plays purely random rollouts through State.Rollout.
	Random Strategy = iota
	// Heuristic plays guided rollouts through HeuristicRollout.
	Heuristic
	// Mixed plays a heuristic rollout with probability HeuristicRatio and
	// a random one otherwise.
	Mixed
	// Heavy is reserved for a deeper evaluation variant; currently it
	// behaves like Heuristic.
	Heavy
)

func (s Strategy) String() string {
	switch s {
	case Random:
		return "random"
	case Heuristic:
		return "heuristic"
	case Mixed:
		return "mixed"
	case Heavy:
		return "heavy"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// Process-wide rollout configuration. Setters may be called between
// searches; changing them while a search is in flight is undefined.
var (
	rolloutStrategy = Random
	heuristicRatio  = 0.5
)

// SetRolloutStrategy selects the simulation strategy for subsequent
// searches.
func SetRolloutStrategy(s Strategy) error {
	switch s {
	case Random, Heuristic, Mixed, Heavy:
		rolloutStrategy = s
		return nil
	}
	return fmt.Errorf("%w: unknown rollout strategy %d", ErrInvalidArgument, int(s))
}

// RolloutStrategy returns the strategy simulations currently use.
func RolloutStrategy() Strategy { return rolloutStrategy }

// SetHeuristicRatio sets the probability, in [0, 1], that a Mixed rollout
// is heuristic rather than random.
func SetHeuristicRatio(ratio float64) error {
	if ratio < 0 || ratio > 1 {
		return fmt.Errorf("%w: heuristic ratio %v outside [0, 1]", ErrInvalidArgument, ratio)
	}
	heuristicRatio = ratio
	return nil
}

// HeuristicRatio returns the heuristic share of Mixed rollouts.
func HeuristicRatio() float64 { return heuristicRatio }

// simulate runs one playout from state under the given strategy. rng is
// the calling worker's own generator.
func simulate(state game.State, strategy Strategy, rng *rand.Rand) float64 {
	switch strategy {
	case Heuristic, Heavy:
		return game.HeuristicRollout(state)
	case Mixed:
		if rng.Float64() < heuristicRatio {
			return game.HeuristicRollout(state)
		}
		return state.Rollout()
	default:
		return state.Rollout()
	}
}
