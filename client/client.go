// Package client is a minimal RESP client: one request, one reply, in order.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/himakhaitan/respkv/resp"
)

const readChunkSize = 4096

// ErrClosed is returned after the server closes the connection.
var ErrClosed = errors.New("client: connection closed")

type Client struct {
	conn    net.Conn
	pending []byte
	scan    resp.Scanner
	chunk   []byte
}

// Dial connects to a server at addr.
func Dial(ctx context.Context, addr string) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return New(conn), nil
}

// New wraps an established connection.
func New(conn net.Conn) *Client {
	return &Client{
		conn:  conn,
		chunk: make([]byte, readChunkSize),
	}
}

// Do sends one command and waits for its reply. Error replies from the
// server are returned as values, not as errors.
func (c *Client) Do(ctx context.Context, args ...string) (resp.Value, error) {
	if err := c.Send(ctx, args...); err != nil {
		return resp.Value{}, err
	}
	return c.Receive(ctx)
}

// Send writes one command without waiting for the reply.
func (c *Client) Send(ctx context.Context, args ...string) error {
	return c.WriteRaw(ctx, resp.Command(args...))
}

// WriteRaw writes b to the connection as is.
func (c *Client) WriteRaw(ctx context.Context, b []byte) error {
	if err := c.conn.SetWriteDeadline(deadline(ctx)); err != nil {
		return err
	}
	if _, err := c.conn.Write(b); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Receive reads the next reply, buffering partial input across reads.
func (c *Client) Receive(ctx context.Context) (resp.Value, error) {
	if err := c.conn.SetReadDeadline(deadline(ctx)); err != nil {
		return resp.Value{}, err
	}

	for {
		n, err := c.scan.Scan(c.pending)
		if err == nil {
			v, _, err := resp.Decode(c.pending[:n])
			if err != nil {
				return resp.Value{}, err
			}
			c.pending = c.pending[n:]
			return v, nil
		}
		if !errors.Is(err, resp.ErrIncomplete) {
			return resp.Value{}, err
		}

		read, err := c.conn.Read(c.chunk)
		c.pending = append(c.pending, c.chunk[:read]...)
		if err != nil {
			if read > 0 {
				continue
			}
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				return resp.Value{}, ErrClosed
			}
			return resp.Value{}, fmt.Errorf("read: %w", err)
		}
	}
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func deadline(ctx context.Context) time.Time {
	if d, ok := ctx.Deadline(); ok {
		return d
	}
	return time.Time{}
}
