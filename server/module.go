package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/himakhaitan/respkv/command"
	"github.com/himakhaitan/respkv/engine"
	"github.com/himakhaitan/respkv/pkg/config"
	"github.com/himakhaitan/respkv/pkg/metrics"
	"github.com/himakhaitan/respkv/types"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the RESP server, the sweeper and the ops HTTP server wired
// with fx, together with the state and commands they serve.
func Module() fx.Option {
	return fx.Options(
		engine.Module(),
		metrics.Module,
		command.Module,
		fx.Provide(
			newRole,
			NewServer,
			NewSweeper,
			NewMux,
			NewHTTPServer,
		),
		fx.Invoke(RegisterHooks),
	)
}

func newRole(cfg *config.Config) types.Role {
	return types.NewRole(cfg.ReplicaOf)
}

// RegisterHooks starts and stops the servers and the sweeper using fx
// Lifecycle
func RegisterHooks(lc fx.Lifecycle, srv *Server, sweeper *Sweeper, httpSrv *http.Server, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sweeper.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			sweeper.Stop()
			return nil
		},
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting RESP key-value server", zap.String("addr", srv.addr))
			return srv.Start()
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping RESP key-value server")
			return srv.Shutdown(ctx)
		},
	})

	if httpSrv.Addr == "" {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", httpSrv.Addr)
			if err != nil {
				return err
			}
			logger.Info("Starting ops HTTP server", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("ops HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return httpSrv.Shutdown(ctx)
		},
	})
}
