// Package experiments measures how rollout parallelism affects search
// throughput by playing self-play games across thread configurations and
// recording the results as CSV.
package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Lobotuerk/MonteCarloTreeSearch/match"
	"github.com/Lobotuerk/MonteCarloTreeSearch/searcher"
	"github.com/Lobotuerk/MonteCarloTreeSearch/tictactoe"
)

// AgentConfig is one experiment arm.
type AgentConfig struct {
	ID         int
	Threads    int
	Iterations int
	MaxTime    time.Duration
}

// GameRecord summarizes one finished self-play game.
type GameRecord struct {
	ID       int
	Config   int // AgentConfig.ID
	Winner   string
	Moves    int
	Duration time.Duration
}

// MoveRecord holds one move's search metrics.
type MoveRecord struct {
	Game int // GameRecord.ID
	Step int
	searcher.SearchMetric
}

// RunSpeedup plays gamesPer self-play tic-tac-toe games for each
// configuration and writes the records through w.
func RunSpeedup(configs []AgentConfig, gamesPer int, w *Writer) error {
	if err := w.WriteAgentConfigs(configs); err != nil {
		return err
	}

	var games []GameRecord
	var moves []MoveRecord
	gameID := 0

	for _, config := range configs {
		if err := searcher.SetRolloutThreads(config.Threads); err != nil {
			return fmt.Errorf("configuring %d rollout threads: %w", config.Threads, err)
		}
		log.Info().Int("config", config.ID).Int("threads", config.Threads).Msg("running configuration")

		for i := 0; i < gamesPer; i++ {
			gameID++
			record, moveRecords, err := runGame(gameID, config)
			if err != nil {
				return err
			}
			games = append(games, record)
			moves = append(moves, moveRecords...)
			log.Info().Int("game", gameID).Str("winner", record.Winner).Msg("game over")
		}
	}

	if err := w.WriteGameRecords(games); err != nil {
		return err
	}
	return w.WriteMoveRecords(moves)
}

func runGame(id int, config AgentConfig) (GameRecord, []MoveRecord, error) {
	options := []searcher.Option{searcher.WithMetrics()}
	if config.Iterations > 0 {
		options = append(options, searcher.WithMaxIterations(config.Iterations))
	}
	if config.MaxTime > 0 {
		options = append(options, searcher.WithMaxTime(config.MaxTime))
	}

	start := tictactoe.New()
	m := match.New(
		searcher.NewAgent(start, options...),
		searcher.NewAgent(start.Clone(), options...),
	)

	began := time.Now()
	final, err := m.Run()
	if err != nil {
		return GameRecord{}, nil, fmt.Errorf("game %d: %w", id, err)
	}

	winner := "draw"
	if w := final.(tictactoe.State).Winner(); w != 0 {
		winner = string(w)
	}

	metrics := m.Metrics()
	moveRecords := make([]MoveRecord, 0, len(metrics))
	for step, pair := range metrics {
		metric := pair[step%2]
		moveRecords = append(moveRecords, MoveRecord{
			Game:         id,
			Step:         step + 1,
			SearchMetric: metric,
		})
	}

	return GameRecord{
		ID:       id,
		Config:   config.ID,
		Winner:   winner,
		Moves:    len(metrics),
		Duration: time.Since(began),
	}, moveRecords, nil
}
