package searcher

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"github.com/Lobotuerk/MonteCarloTreeSearch/game"
)

// jobQueueSize bounds the pending-rollout queue so submissions never
// block for the batch sizes the tree produces.
const jobQueueSize = 256

// rolloutJob is one simulation: read the state snapshot, run the
// strategy, write the score into the job's own slot. Workers never touch
// the search tree.
type rolloutJob struct {
	state    game.State
	strategy Strategy
	score    *float64
	failure  *error
	batch    *sync.WaitGroup
}

func (j rolloutJob) run(rng *rand.Rand) {
	defer j.batch.Done()
	defer func() {
		if r := recover(); r != nil {
			*j.failure = fmt.Errorf("%w: rollout panicked: %v", ErrUserCallback, r)
		}
	}()
	*j.score = simulate(j.state, j.strategy, rng)
}

// scheduler is a fixed pool of rollout workers over a FIFO job queue,
// started lazily on the first parallel batch. With a single worker
// batches run inline on the driver goroutine and no goroutines are
// created.
type scheduler struct {
	mu      sync.Mutex
	jobs    chan rolloutJob
	workers int
	started bool
	rng     *rand.Rand // driver-side generator for inline execution
}

var pool = &scheduler{workers: 1}

// SetRolloutThreads fixes the number of worker goroutines used for
// rollout batches, n >= 1. Must only be called while no search is in
// flight; an idle pool of a different size is torn down and restarted on
// the next batch.
func SetRolloutThreads(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: rollout threads %d < 1", ErrInvalidArgument, n)
	}
	pool.resize(n)
	return nil
}

// RolloutThreads returns the configured number of rollout workers.
func RolloutThreads() int {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	return pool.workers
}

// OptimalThreadCount reports the platform's hardware concurrency, at
// least 1.
func OptimalThreadCount() int {
	return max(runtime.NumCPU(), 1)
}

func (s *scheduler) resize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n == s.workers {
		return
	}
	s.shutdownLocked()
	s.workers = n
}

// shutdown stops the worker goroutines. The pool restarts itself on the
// next batch.
func (s *scheduler) shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdownLocked()
}

func (s *scheduler) shutdownLocked() {
	if s.started {
		close(s.jobs)
		s.jobs = nil
		s.started = false
	}
}

func (s *scheduler) startLocked() {
	s.jobs = make(chan rolloutJob, jobQueueSize)
	for id := 0; id < s.workers; id++ {
		seed := uint64(time.Now().UnixNano()) + uint64(id)
		go worker(s.jobs, rand.New(rand.NewSource(seed)))
	}
	s.started = true
}

// worker drains the job queue until the pool shuts down. Each worker owns
// its generator; no synchronization is needed during a job.
func worker(jobs <-chan rolloutJob, rng *rand.Rand) {
	for job := range jobs {
		job.run(rng)
	}
}

func (s *scheduler) driverRNG() *rand.Rand {
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return s.rng
}

// runInline performs a single simulation on the driver goroutine.
func (s *scheduler) runInline(state game.State, strategy Strategy) (score float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: rollout panicked: %v", ErrUserCallback, r)
		}
	}()
	return simulate(state, strategy, s.driverRNG()), nil
}

// runBatch executes count independent rollouts of state and returns the
// individual scores. The call blocks until every job in the batch has
// completed; a panic inside any rollout surfaces here after the barrier.
func (s *scheduler) runBatch(state game.State, strategy Strategy, count int) ([]float64, error) {
	if count < 1 {
		count = 1
	}

	s.mu.Lock()
	workers := s.workers
	if workers > 1 && !s.started {
		s.startLocked()
	}
	jobs := s.jobs
	s.mu.Unlock()

	scores := make([]float64, count)

	if workers == 1 {
		for i := range scores {
			score, err := s.runInline(state, strategy)
			if err != nil {
				return nil, err
			}
			scores[i] = score
		}
		return scores, nil
	}

	failures := make([]error, count)
	var batch sync.WaitGroup
	batch.Add(count)
	for i := range scores {
		jobs <- rolloutJob{
			state:    state,
			strategy: strategy,
			score:    &scores[i],
			failure:  &failures[i],
			batch:    &batch,
		}
	}
	batch.Wait()

	for _, err := range failures {
		if err != nil {
			return nil, err
		}
	}
	return scores, nil
}
