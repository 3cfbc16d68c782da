package game

// Move is a single action a player can take from some state. Moves are
// plain values: two moves describing the same action must compare equal
// through Equals, regardless of which state produced them.
type Move interface {
	Equals(other Move) bool
	String() string
}

// State is a snapshot of a game. Operations on a State never mutate it in
// place - Play and Clone always hand back an independent value the caller
// owns from then on.
type State interface {
	// LegalMoves returns every move playable from this state. The slice is
	// ordered and the order is authoritative: the engine expands moves
	// front to back. Empty exactly when IsTerminal reports true.
	LegalMoves() []Move

	// Play returns the successor state reached by move. Returning nil
	// marks the transition as illegal and aborts the running search.
	Play(move Move) State

	// IsTerminal reports whether the game is over. Pure and stable for a
	// given state.
	IsTerminal() bool

	// SelfSideTurn reports whether the self side - the side whose win
	// probability Rollout returns - moves next.
	SelfSideTurn() bool

	// Rollout simulates one completion of the game and returns the win
	// probability of the self side, in [0, 1]. On a terminal state it
	// reports the final outcome. May use randomness, and must be safe to
	// call from multiple goroutines when parallel rollouts are enabled.
	Rollout() float64

	// Clone returns a deep copy sharing no mutable memory with the
	// receiver.
	Clone() State

	String() string
}

// HeuristicRoller is implemented by states that can run a guided playout
// instead of a purely random one.
type HeuristicRoller interface {
	HeuristicRollout() float64
}

// MoveEvaluator is implemented by states that can score individual moves,
// for example to drive a prioritized expansion order.
type MoveEvaluator interface {
	EvaluateMove(move Move) float64
}

// PositionEvaluator is implemented by states that can score the position
// as a whole.
type PositionEvaluator interface {
	EvaluatePosition() float64
}

// HeuristicRollout runs a heuristic playout when the state supports one
// and falls back to Rollout otherwise.
func HeuristicRollout(s State) float64 {
	if h, ok := s.(HeuristicRoller); ok {
		return h.HeuristicRollout()
	}
	return s.Rollout()
}

// EvaluateMove scores move from s, or 0 when the state expresses no
// preference.
func EvaluateMove(s State, move Move) float64 {
	if e, ok := s.(MoveEvaluator); ok {
		return e.EvaluateMove(move)
	}
	return 0
}

// EvaluatePosition scores s, or a neutral 0.5 when the state cannot.
func EvaluatePosition(s State) float64 {
	if e, ok := s.(PositionEvaluator); ok {
		return e.EvaluatePosition()
	}
	return 0.5
}
