package searcher

import "math"

// DefaultExploration is the UCT exploration constant, the theoretical
// sqrt(2). Higher values favor exploration, lower values exploitation.
const DefaultExploration = math.Sqrt2

type uct struct {
	numerator float64
}

func newUCT(c float64, parentVisits float64) uct {
	if parentVisits == 0 {
		panic("cannot compute UCT: parent has 0 visits")
	}
	return uct{numerator: c * c * math.Log(parentVisits)}
}

// evaluate computes winrate + sqrt(c^2*ln(N)/n).
func (u uct) evaluate(winrate float64, visits float64) float64 {
	if visits == 0 {
		panic("cannot compute UCT: child has 0 visits")
	}
	return winrate + math.Sqrt(u.numerator/visits)
}
