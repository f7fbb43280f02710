package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/himakhaitan/respkv/command"
	"github.com/himakhaitan/respkv/resp"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const readChunkSize = 4096

// conn serves one client. Input is accumulated until it holds complete
// frames; each frame gets exactly one reply, in order.
type conn struct {
	netConn net.Conn
	srv     *Server
	ctx     *command.Context
	logger  *zap.Logger
	pending []byte
	scan    resp.Scanner
	out     []byte
}

// errWrite ends a connection whose replies could not be written.
var errWrite = errors.New("write failed")

func (s *Server) newConn(nc net.Conn) *conn {
	logger := s.logger.With(
		zap.String("conn", ulid.Make().String()),
		zap.String("remote", nc.RemoteAddr().String()),
	)
	return &conn{
		netConn: nc,
		srv:     s,
		logger:  logger,
		ctx: &command.Context{
			DB:     s.db,
			Role:   s.role,
			Logger: logger,
		},
	}
}

func (c *conn) serve() {
	m := c.srv.metrics
	if m != nil {
		m.ConnectionsTotal.Inc()
		m.ConnectionsActive.Inc()
		defer m.ConnectionsActive.Dec()
	}
	defer c.netConn.Close()
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("connection handler panicked", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()

	c.logger.Debug("connection opened")
	chunk := make([]byte, readChunkSize)
	for {
		n, readErr := c.netConn.Read(chunk)
		if n > 0 {
			c.pending = append(c.pending, chunk[:n]...)
			if err := c.drain(); err != nil {
				if errors.Is(err, errWrite) {
					c.logger.Debug("connection closed", zap.Error(err))
					return
				}
				c.protocolError(err)
				return
			}
		}
		if readErr != nil {
			if !errors.Is(readErr, io.EOF) && !errors.Is(readErr, net.ErrClosed) {
				c.logger.Debug("read failed", zap.Error(readErr))
			}
			c.logger.Debug("connection closed")
			return
		}
	}
}

// drain executes every complete frame in the buffer and writes the replies
// in one batch. Whatever remains is an incomplete frame. Framing is checked
// by the scanner first so a frame spread over many reads is decoded once.
func (c *conn) drain() error {
	c.out = c.out[:0]
	var decodeErr error
	for {
		if !c.scan.InProgress() {
			c.pending = bytes.TrimLeft(c.pending, resp.Whitespace)
		}
		if len(c.pending) == 0 {
			break
		}
		n, err := c.scan.Scan(c.pending)
		if errors.Is(err, resp.ErrIncomplete) {
			break
		}
		if err != nil {
			decodeErr = err
			break
		}
		frame, _, err := resp.Decode(c.pending[:n])
		if err != nil {
			decodeErr = err
			break
		}
		c.pending = c.pending[n:]
		c.out = resp.AppendValue(c.out, c.srv.registry.Dispatch(frame, c.ctx))
	}

	if len(c.out) > 0 {
		if _, err := c.netConn.Write(c.out); err != nil {
			return fmt.Errorf("%w: %w", errWrite, err)
		}
	}
	if len(c.pending) == 0 {
		c.pending = nil
	}
	return decodeErr
}

// protocolError answers malformed input with one error reply and ends the
// connection.
func (c *conn) protocolError(err error) {
	if c.srv.metrics != nil {
		c.srv.metrics.ProtocolErrors.Inc()
	}
	c.logger.Warn("protocol error, closing connection", zap.Error(err))
	detail := strings.TrimPrefix(err.Error(), resp.ErrProtocol.Error()+": ")
	_, _ = c.netConn.Write(resp.Encode(resp.Error("ERR Protocol error: " + detail)))
}
