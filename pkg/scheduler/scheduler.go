package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Task is a unit of deferred work executed on a scheduler tick.
type Task func()

type pending struct {
	due  uint64
	seq  uint64
	task Task
}

// Scheduler is a cooperative, single-threaded tick loop. Work is deferred by a
// number of ticks and executed in FIFO order on the goroutine that calls Tick.
// A task scheduled while a tick is running never executes during that tick.
type Scheduler struct {
	mu       sync.Mutex
	now      uint64
	seq      uint64
	queue    []pending
	interval time.Duration
	logger   *slog.Logger
}

// New creates a scheduler positioned at tick zero.
func New(opts ...Option) *Scheduler {
	options := &schedulerOptions{
		interval: DefaultInterval,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(options)
	}

	return &Scheduler{
		interval: options.interval,
		logger:   options.logger,
	}
}

// After defers task by the given number of ticks. Values below one are
// treated as one: nothing runs in the tick that scheduled it.
func (s *Scheduler) After(ticks int, task Task) {
	if task == nil {
		return
	}
	if ticks < 1 {
		ticks = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.queue = append(s.queue, pending{
		due:  s.now + uint64(ticks),
		seq:  s.seq,
		task: task,
	})
}

// Tick advances the scheduler by one tick and runs every task that became due.
// It returns the number of tasks executed.
func (s *Scheduler) Tick() int {
	s.mu.Lock()
	s.now++
	now := s.now

	var due []pending
	rest := s.queue[:0]
	for _, p := range s.queue {
		if p.due <= now {
			due = append(due, p)
		} else {
			rest = append(rest, p)
		}
	}
	// Zero the tail so executed closures can be collected.
	for i := len(rest); i < len(s.queue); i++ {
		s.queue[i] = pending{}
	}
	s.queue = rest
	s.mu.Unlock()

	for _, p := range due {
		s.run(now, p.task)
	}

	return len(due)
}

func (s *Scheduler) run(now uint64, task Task) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduled task panicked",
				slog.Uint64("tick", now),
				slog.String("panic", fmt.Sprint(r)))
		}
	}()
	task()
}

// Now returns the current tick number.
func (s *Scheduler) Now() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of tasks waiting for a future tick.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// RunUntilIdle ticks until no task is pending and returns the number of ticks
// it took. It stops with ErrTickLimit after maxTicks ticks.
func (s *Scheduler) RunUntilIdle(maxTicks int) (int, error) {
	for n := 0; ; n++ {
		if s.Pending() == 0 {
			return n, nil
		}
		if n >= maxTicks {
			return n, ErrTickLimit
		}
		s.Tick()
	}
}

// Run drives ticks from a wall-clock ticker until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug("scheduler started", slog.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("scheduler stopped", slog.Uint64("tick", s.Now()))
			return ctx.Err()
		case <-ticker.C:
			s.Tick()
		}
	}
}
