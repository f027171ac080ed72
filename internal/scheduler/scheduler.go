package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is a unit of work run repeatedly by the Scheduler
type Task interface {
	Run(ctx context.Context) error
	Interval() time.Duration
	Name() string
}

// Stats counts how often a task ran and how often it failed
type Stats struct {
	Runs     int
	Failures int
}

// Scheduler runs each task on its own ticker until stopped
type Scheduler struct {
	ctx    context.Context
	cancel context.CancelFunc
	tasks  []Task
	wg     sync.WaitGroup

	mu    sync.Mutex
	stats map[string]Stats
}

// New creates a scheduler bound to ctx
func New(ctx context.Context) *Scheduler {
	ctx, cancel := context.WithCancel(ctx)
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
		tasks:  make([]Task, 0),
		stats:  make(map[string]Stats),
	}
}

// AddTask registers a task. Tasks added after Start are not run.
func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

func (s *Scheduler) Start() {
	for _, task := range s.tasks {
		s.wg.Add(1)
		go s.runTask(task)
	}
	slog.Info("Task scheduler started", "task_count", len(s.tasks))
}

// Stop cancels all tasks and waits for them to return
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Task scheduler stopped")
}

// Stats returns a snapshot of the run counters keyed by task name
func (s *Scheduler) Stats() map[string]Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]Stats, len(s.stats))
	for name, st := range s.stats {
		out[name] = st
	}
	return out
}

func (s *Scheduler) runTask(task Task) {
	defer s.wg.Done()

	ticker := time.NewTicker(task.Interval())
	defer ticker.Stop()

	// Run immediately on start
	s.runOnce(task)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(task)
		}
	}
}

func (s *Scheduler) runOnce(task Task) {
	err := task.Run(s.ctx)

	s.mu.Lock()
	st := s.stats[task.Name()]
	st.Runs++
	if err != nil && s.ctx.Err() == nil {
		st.Failures++
	}
	s.stats[task.Name()] = st
	s.mu.Unlock()

	if err != nil && s.ctx.Err() == nil {
		slog.Error("Error running task", "task", task.Name(), "error", err)
	}
}
