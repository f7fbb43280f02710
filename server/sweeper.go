package server

import (
	"context"
	"sync"
	"time"

	"github.com/himakhaitan/respkv/engine"
	"github.com/himakhaitan/respkv/pkg/config"
	"github.com/himakhaitan/respkv/pkg/metrics"
	"go.uber.org/zap"
)

// Sweeper removes expired keys from the DB on a fixed interval, whether or
// not anyone reads them.
type Sweeper struct {
	db       *engine.DB
	interval time.Duration
	metrics  *metrics.Metrics
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSweeper(cfg *config.Config, db *engine.DB, m *metrics.Metrics, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		db:       db,
		interval: cfg.SweepInterval,
		metrics:  m,
		logger:   logger.Named("sweeper"),
	}
}

// Start launches the sweep loop. Calling Start on a running sweeper is a
// no-op.
func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx, s.done)
}

// Stop ends the loop and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Sweeper) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.SweepOnce(now)
		}
	}
}

// SweepOnce removes every key due at now and returns how many were removed.
func (s *Sweeper) SweepOnce(now time.Time) int {
	expired := s.db.Sweep(now)
	if len(expired) == 0 {
		return 0
	}
	if s.metrics != nil {
		s.metrics.SweptKeys.Add(float64(len(expired)))
	}
	s.logger.Debug("swept expired keys", zap.Int("count", len(expired)))
	return len(expired)
}
