package commands

import (
	"bytes"
	"net"
	"os"
	"testing"

	"github.com/himakhaitan/respkv/resp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the cobra command with given arguments.
// This helper is shared across all test files in the 'commands' package.
func executeCommand(t *testing.T, cmd *cobra.Command, args []string) {
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	// Only cobra errors (arg count) are returned; request failures are printed
	err := cmd.Execute()
	assert.NoError(t, err)
}

func captureOutput(f func()) string {
	var buf bytes.Buffer
	stdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = stdout
	buf.ReadFrom(r)
	return buf.String()
}

// fakeServer accepts one connection, captures the command frame it
// receives and answers with reply. RESPKV_ADDR points at it for the rest of
// the test.
func fakeServer(t *testing.T, reply resp.Value) <-chan []string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })
	t.Setenv(AddrEnv, ln.Addr().String())

	captured := make(chan []string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		var pending []byte
		chunk := make([]byte, 1024)
		for {
			n, err := conn.Read(chunk)
			if err != nil {
				return
			}
			pending = append(pending, chunk[:n]...)
			frame, _, err := resp.Decode(pending)
			if err != nil {
				continue
			}
			args := make([]string, len(frame.Elems))
			for i, e := range frame.Elems {
				args[i] = e.Str
			}
			captured <- args
			_, _ = conn.Write(resp.Encode(reply))
			return
		}
	}()
	return captured
}
