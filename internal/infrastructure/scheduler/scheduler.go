package scheduler

import (
	"context"
	"fmt"
	"time"

	"lamf-backoffice/internal/usecase/risk"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Sweeper interface {
	Sweep(ctx context.Context) (*risk.SweepResult, error)
}

// Scheduler runs the risk sweep on a cron schedule. Overlapping runs are skipped.
type Scheduler struct {
	spec    string
	sweeper Sweeper
	timeout time.Duration
	cron    *cron.Cron
}

func New(spec string, s Sweeper, timeout time.Duration) (*Scheduler, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("risk sweep schedule %q: %w", spec, err)
	}
	l := cronLogger{zap.L().Named("cron")}
	return &Scheduler{
		spec:    spec,
		sweeper: s,
		timeout: timeout,
		cron: cron.New(
			cron.WithLogger(l),
			cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
		),
	}, nil
}

// Run blocks until ctx is done, then waits for a running sweep to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return err
	}
	s.cron.Start()
	zap.L().Info("risk sweep scheduled", zap.String("spec", s.spec))
	<-ctx.Done()
	<-s.cron.Stop().Done()
	zap.L().Info("risk sweep scheduler stopped")
	return nil
}

func (s *Scheduler) RunOnce(ctx context.Context) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	start := time.Now()
	res, err := s.sweeper.Sweep(ctx)
	if err != nil {
		zap.L().Error("risk sweep failed", zap.Duration("took", time.Since(start)), zap.Error(err))
		return
	}
	zap.L().Debug("risk sweep run", zap.Int("checked", res.Checked), zap.Int("flagged", len(res.Flagged)), zap.Duration("took", time.Since(start)))
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct{ l *zap.Logger }

func (c cronLogger) Info(msg string, kv ...interface{}) {
	c.l.Sugar().Debugw(msg, kv...)
}

func (c cronLogger) Error(err error, msg string, kv ...interface{}) {
	c.l.Sugar().Errorw(msg, append(kv, "error", err)...)
}
