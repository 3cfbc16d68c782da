package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Lobotuerk/MonteCarloTreeSearch/searcher"
	"github.com/Lobotuerk/MonteCarloTreeSearch/tictactoe"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := searcher.SetRolloutThreads(searcher.OptimalThreadCount()); err != nil {
		log.Fatal().Err(err).Msg("configuring rollout threads")
	}
	if err := searcher.SetRolloutStrategy(searcher.Mixed); err != nil {
		log.Fatal().Err(err).Msg("configuring rollout strategy")
	}

	runSelfPlay()
}

// runSelfPlay has one agent play both sides of a tic-tac-toe game,
// printing the board after every move.
func runSelfPlay() {
	agent := searcher.NewAgent(tictactoe.New(),
		searcher.WithMaxIterations(5000),
		searcher.WithMaxTime(5*time.Second),
		searcher.WithMetrics(),
	)

	log.Info().Int("threads", searcher.RolloutThreads()).
		Str("strategy", searcher.RolloutStrategy().String()).
		Msg("starting self-play")

	for {
		move, err := agent.Genmove(nil)
		if err != nil {
			log.Fatal().Err(err).Msg("search failed")
		}
		if move == nil {
			break
		}

		metric := agent.SearchMetric()
		log.Info().Str("move", move.String()).
			Int("iterations", metric.Iterations).
			Int("rollouts", metric.Rollouts).
			Dur("took", metric.Duration).
			Msg("move chosen")
		fmt.Println(agent.CurrentState())
	}

	final := agent.CurrentState().(tictactoe.State)
	if w := final.Winner(); w != 0 {
		log.Info().Str("winner", string(w)).Msg("game over")
	} else {
		log.Info().Msg("game over: draw")
	}
	agent.Feedback()
}
