package sweeper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/krishkpatil/getflix/internal/metrics"
)

//go:generate mockery --name=Sweepable --output=./mocks/sweeper/sweepable --filename=sweepable.go
type Sweepable interface {
	Sweep(ctx context.Context) (int64, error)
}

type Sweeper struct {
	target   Sweepable
	interval time.Duration
	logger   *slog.Logger
	sched    gocron.Scheduler
	stopOnce sync.Once
	stopErr  error
}

type Option func(*Sweeper)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Sweeper) {
		s.logger = logger
	}
}

func New(target Sweepable, interval time.Duration, opts ...Option) *Sweeper {
	s := &Sweeper{
		target:   target,
		interval: interval,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunOnce performs a single sweep and records its outcome.
func (s *Sweeper) RunOnce(ctx context.Context) (int64, error) {
	deleted, err := s.target.Sweep(ctx)
	if err != nil {
		s.logger.Error("sweep failed", slog.String("error", err.Error()))
		return 0, err
	}
	metrics.SessionsSwept.Add(float64(deleted))
	if deleted > 0 {
		s.logger.Info("expired sessions removed", slog.Int64("count", deleted))
	}
	return deleted, nil
}

// Start schedules RunOnce every interval until Stop or ctx cancellation.
func (s *Sweeper) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() {
			_, _ = s.RunOnce(ctx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	s.sched = sched
	sched.Start()
	s.logger.Info("session sweeper started", slog.Duration("interval", s.interval))

	go func() {
		<-ctx.Done()
		_ = s.Stop()
	}()
	return nil
}

func (s *Sweeper) Stop() error {
	if s.sched == nil {
		return nil
	}
	s.stopOnce.Do(func() {
		s.stopErr = s.sched.Shutdown()
	})
	return s.stopErr
}
