// Package jobs runs periodic maintenance work, such as expiring lapsed
// subscriptions, on a robfig/cron scheduler.
package jobs

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler manages background jobs using cron scheduling.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
	mu     sync.Mutex
	jobs   map[string]cron.EntryID
}

// NewScheduler creates a new job scheduler with the given logger.
// Overlapping runs of the same job are skipped and panics are recovered.
func NewScheduler(logger *zap.Logger) *Scheduler {
	cronLog := cronLogger{log: logger.Sugar()}
	return &Scheduler{
		cron: cron.New(cron.WithSeconds(), cron.WithChain(
			cron.SkipIfStillRunning(cronLog),
			cron.Recover(cronLog),
		)),
		logger: logger,
		jobs:   make(map[string]cron.EntryID),
	}
}

// Start starts the scheduler. Jobs added before this call will begin running.
func (s *Scheduler) Start() {
	s.logger.Info("starting job scheduler", zap.Int("jobs", len(s.GetJobNames())))
	s.cron.Start()
}

// Stop stops the scheduler. The returned context is done once running jobs complete.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("stopping job scheduler")
	return s.cron.Stop()
}

// AddJob adds a job with the given name and cron expression.
// Expressions carry a leading seconds field:
//   - "0 0 * * * *" - every hour on the hour
//   - "0 */15 * * * *" - every 15 minutes
//   - "@every 1h"
func (s *Scheduler) AddJob(name string, cronExpr string, job func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %s already exists", name)
	}

	entryID, err := s.cron.AddFunc(cronExpr, func() {
		s.logger.Debug("running scheduled job", zap.String("job_name", name))
		job()
		s.logger.Debug("completed scheduled job", zap.String("job_name", name))
	})
	if err != nil {
		return fmt.Errorf("failed to add job %s: %w", name, err)
	}

	s.jobs[name] = entryID
	s.logger.Info("added scheduled job",
		zap.String("job_name", name),
		zap.String("cron_expr", cronExpr))

	return nil
}

// RemoveJob removes a job by name.
func (s *Scheduler) RemoveJob(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, exists := s.jobs[name]
	if !exists {
		return fmt.Errorf("job %s not found", name)
	}

	s.cron.Remove(entryID)
	delete(s.jobs, name)

	s.logger.Info("removed scheduled job", zap.String("job_name", name))
	return nil
}

// GetJobNames returns the names of all registered jobs.
func (s *Scheduler) GetJobNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	return names
}

// cronLogger routes cron's own messages into zap
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
