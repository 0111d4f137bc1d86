package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ExpiredSessionDeleter is implemented by *session.Manager.
type ExpiredSessionDeleter interface {
	Sweep(ctx context.Context) (int64, error)
}

// LimiterPruner is implemented by *service.AccountService.
type LimiterPruner interface {
	PruneLimiters(now time.Time) int
}

// Sweeper periodically removes expired sessions and idle login limiters.
type Sweeper struct {
	sessions ExpiredSessionDeleter
	pruners  []LimiterPruner
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	done     chan struct{}
}

func NewSweeper(sessions ExpiredSessionDeleter, interval time.Duration, logger *zap.Logger, pruners ...LimiterPruner) *Sweeper {
	return &Sweeper{
		sessions: sessions,
		pruners:  pruners,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("Starting session sweeper", zap.Duration("interval", s.interval))
	go s.run(ctx)
}

// Stop signals the loop and waits for it to exit.
func (s *Sweeper) Stop() {
	s.logger.Info("Stopping session sweeper")
	close(s.stopChan)
	<-s.done
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)

	// first sweep right away
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	now := time.Now()
	for _, p := range s.pruners {
		if n := p.PruneLimiters(now); n > 0 {
			s.logger.Debug("Idle login limiters pruned", zap.Int("count", n))
		}
	}

	n, err := s.sessions.Sweep(ctx)
	if err != nil {
		s.logger.Error("Failed to delete expired sessions", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("Expired sessions deleted", zap.Int64("count", n))
	}
}
