package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/himakhaitan/respkv/command"
	"github.com/himakhaitan/respkv/engine"
	"github.com/himakhaitan/respkv/pkg/config"
	"github.com/himakhaitan/respkv/pkg/metrics"
	"github.com/himakhaitan/respkv/types"
	"go.uber.org/zap"
)

const acceptRetryDelay = 5 * time.Millisecond

// ErrServerClosed is returned by Serve after Shutdown.
var ErrServerClosed = errors.New("server: closed")

// Server accepts RESP connections and serves each on its own goroutine.
type Server struct {
	addr     string
	registry *command.Registry
	db       *engine.DB
	role     types.Role
	metrics  *metrics.Metrics
	logger   *zap.Logger

	mu      sync.Mutex
	ln      net.Listener
	conns   map[net.Conn]struct{}
	closing bool
	wg      sync.WaitGroup
}

func NewServer(cfg *config.Config, db *engine.DB, registry *command.Registry, role types.Role, m *metrics.Metrics, logger *zap.Logger) *Server {
	return &Server{
		addr:     cfg.Addr(),
		registry: registry,
		db:       db,
		role:     role,
		metrics:  m,
		logger:   logger,
		conns:    make(map[net.Conn]struct{}),
	}
}

// Start binds the configured address and serves it in the background. The
// address is bound by the time Start returns.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	if err := s.setListener(ln); err != nil {
		return err
	}
	go func() {
		if err := s.acceptLoop(ln); err != nil && !errors.Is(err, ErrServerClosed) {
			s.logger.Error("accept loop stopped", zap.Error(err))
		}
	}()
	return nil
}

// Serve accepts connections on ln until Shutdown. A failed accept is logged
// and the loop keeps going.
func (s *Server) Serve(ln net.Listener) error {
	if err := s.setListener(ln); err != nil {
		return err
	}
	return s.acceptLoop(ln)
}

func (s *Server) setListener(ln net.Listener) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		ln.Close()
		return ErrServerClosed
	}
	s.ln = ln
	return nil
}

func (s *Server) acceptLoop(ln net.Listener) error {
	s.logger.Info("listening", zap.String("addr", ln.Addr().String()), zap.String("role", string(s.role.Kind)))

	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.isClosing() {
				return ErrServerClosed
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			s.logger.Warn("accept failed", zap.Error(err))
			time.Sleep(acceptRetryDelay)
			continue
		}

		if !s.track(conn) {
			conn.Close()
			return ErrServerClosed
		}
		go func() {
			defer s.wg.Done()
			defer s.untrack(conn)
			s.newConn(conn).serve()
		}()
	}
}

// Addr returns the bound address, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown stops accepting, closes every open connection and waits for their
// goroutines to return or for ctx to end.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closing = true
	if s.ln != nil {
		s.ln.Close()
	}
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) isClosing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closing
}

func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.conns[conn] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}
