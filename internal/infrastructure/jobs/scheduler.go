package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"careconnect.backend/internal/infrastructure/metrics"
	"careconnect.backend/pkg/logger"
)

// Job is a unit of background work run on a cron schedule
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler runs registered jobs with robfig/cron
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
}

// NewScheduler creates a scheduler. Panicking jobs are recovered and a run
// still in progress causes the next tick to be skipped.
func NewScheduler(timeout time.Duration) *Scheduler {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	l := cronLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(l),
			cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
		),
		timeout: timeout,
	}
}

// Register schedules job on a cron expression
func (s *Scheduler) Register(spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() { s.run(job) })
	return err
}

func (s *Scheduler) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	runJob(ctx, job)
}

// runJob executes one run and records its outcome
func runJob(ctx context.Context, job Job) {
	start := time.Now()
	if err := job.Run(ctx); err != nil {
		metrics.JobRuns.WithLabelValues(job.Name(), metrics.OutcomeError).Inc()
		logger.Error(ctx, "Job failed", zap.String("job", job.Name()), zap.Error(err))
		return
	}
	metrics.JobRuns.WithLabelValues(job.Name(), metrics.OutcomeOK).Inc()
	logger.Debug(ctx, "Job finished", zap.String("job", job.Name()), zap.Duration("took", time.Since(start)))
}

// Start begins dispatching scheduled runs
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		logger.Warn(ctx, "Scheduler stop timed out with jobs still running")
	}
}

// Entries reports the number of scheduled jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.GetLogger().Sugar().Debugw(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.GetLogger().Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
