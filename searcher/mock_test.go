package searcher

import (
	"fmt"
	"sync/atomic"

	"github.com/Lobotuerk/MonteCarloTreeSearch/game"
)

type mockMove struct {
	id int
}

func (m mockMove) Equals(other game.Move) bool {
	o, ok := other.(mockMove)
	return ok && o.id == m.id
}

func (m mockMove) String() string {
	return fmt.Sprintf("m%d", m.id)
}

// rolloutCounters is shared by every state of one mock game so tests can
// observe which rollout path simulations took.
type rolloutCounters struct {
	random    atomic.Int64
	heuristic atomic.Int64
}

// mockState is a synthetic game: branch moves are legal at every ply,
// the game ends after depth plies, and every rollout reports reward.
type mockState struct {
	depth    int
	branch   int
	selfTurn bool
	reward   float64
	counters *rolloutCounters
}

func (s mockState) LegalMoves() []game.Move {
	if s.depth == 0 {
		return nil
	}
	moves := make([]game.Move, s.branch)
	for i := range moves {
		moves[i] = mockMove{id: i}
	}
	return moves
}

func (s mockState) Play(move game.Move) game.State {
	if _, ok := move.(mockMove); !ok {
		return nil
	}
	if s.depth == 0 {
		return nil
	}
	next := s
	next.depth--
	next.selfTurn = !s.selfTurn
	return next
}

func (s mockState) IsTerminal() bool { return s.depth == 0 }

func (s mockState) SelfSideTurn() bool { return s.selfTurn }

func (s mockState) Rollout() float64 {
	if s.counters != nil {
		s.counters.random.Add(1)
	}
	return s.reward
}

func (s mockState) Clone() game.State { return s }

func (s mockState) String() string {
	return fmt.Sprintf("mock(depth=%d)", s.depth)
}

// heuristicMockState adds the heuristic rollout capability on top of
// mockState.
type heuristicMockState struct {
	mockState
}

func (s heuristicMockState) HeuristicRollout() float64 {
	if s.counters != nil {
		s.counters.heuristic.Add(1)
	}
	return s.reward
}

func (s heuristicMockState) Play(move game.Move) game.State {
	next := s.mockState.Play(move)
	if next == nil {
		return nil
	}
	return heuristicMockState{next.(mockState)}
}

func (s heuristicMockState) Clone() game.State { return s }

// brokenPlayState returns no successor for any move.
type brokenPlayState struct {
	mockState
}

func (s brokenPlayState) Play(game.Move) game.State { return nil }

// panickingPlayState panics inside Play.
type panickingPlayState struct {
	mockState
}

func (s panickingPlayState) Play(game.Move) game.State {
	panic("Play exploded")
}

// panickingRolloutState panics inside Rollout.
type panickingRolloutState struct {
	mockState
}

func (s panickingRolloutState) Play(move game.Move) game.State {
	next := s.mockState.Play(move)
	if next == nil {
		return nil
	}
	return panickingRolloutState{next.(mockState)}
}

func (s panickingRolloutState) Clone() game.State { return s }

func (s panickingRolloutState) Rollout() float64 {
	panic("Rollout exploded")
}
