package searcher

import (
	"errors"
	"fmt"

	"github.com/Lobotuerk/MonteCarloTreeSearch/game"
)

var (
	// ErrInvalidArgument reports a configuration value outside its legal
	// range. The operation it was passed to has no effect.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIllegalTransition reports that a game returned no successor state
	// for a move it generated itself. Fatal for the current search; the
	// tree is left as it was before the failing operation.
	ErrIllegalTransition = errors.New("illegal transition")

	// ErrUserCallback reports a panic inside a game callback. The search
	// aborts with the tree restored to a consistent state.
	ErrUserCallback = errors.New("user callback failure")
)

// playMove applies move to state, converting the two user-code failure
// modes into errors: a nil successor and a panicking callback.
func playMove(state game.State, move game.Move) (next game.State, err error) {
	defer func() {
		if r := recover(); r != nil {
			next = nil
			err = fmt.Errorf("%w: Play(%s) panicked: %v", ErrUserCallback, move, r)
		}
	}()

	next = state.Play(move)
	if next == nil {
		return nil, fmt.Errorf("%w: no successor state for move %s", ErrIllegalTransition, move)
	}
	return next, nil
}
