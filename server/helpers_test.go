package server

import (
	"context"
	"testing"
	"time"

	"github.com/himakhaitan/respkv/client"
	"github.com/himakhaitan/respkv/command"
	"github.com/himakhaitan/respkv/engine"
	"github.com/himakhaitan/respkv/pkg/config"
	"github.com/himakhaitan/respkv/pkg/metrics"
	"github.com/himakhaitan/respkv/store"
	"github.com/himakhaitan/respkv/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type testEnv struct {
	srv     *Server
	db      *engine.DB
	metrics *metrics.Metrics
	cfg     *config.Config
}

func testConfig() *config.Config {
	return &config.Config{
		Host:          "127.0.0.1",
		Port:          "0",
		SweepInterval: 10 * time.Millisecond,
	}
}

// startServer runs a server on a loopback port, with extra handlers
// registered up front, and shuts it down when the test ends.
func startServer(t *testing.T, extra ...command.Handler) *testEnv {
	t.Helper()

	cfg := testConfig()
	db := engine.NewDB(store.New(), store.NewExpiryIndex())
	m := metrics.New()
	registry := command.NewRegistry(m)
	for _, h := range extra {
		registry.Register(h)
	}
	srv := NewServer(cfg, db, registry, types.NewRole(""), m, zaptest.NewLogger(t))
	require.NoError(t, srv.Start())

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return &testEnv{srv: srv, db: db, metrics: m, cfg: cfg}
}

func (e *testEnv) dial(t *testing.T) *client.Client {
	t.Helper()
	c, err := client.Dial(testCtx(t), e.srv.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return ctx
}
