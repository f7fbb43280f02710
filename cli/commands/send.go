package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/himakhaitan/respkv/cli/output"
	"github.com/himakhaitan/respkv/client"
	"github.com/himakhaitan/respkv/resp"
	"github.com/spf13/cobra"
)

const (
	// AddrEnv names the environment variable holding the server address.
	AddrEnv     = "RESPKV_ADDR"
	DefaultAddr = "127.0.0.1:6379"

	requestTimeout = 10 * time.Second
)

// serverAddr resolves the address from --addr, then RESPKV_ADDR, then the
// default.
func serverAddr(cmd *cobra.Command) string {
	if f := cmd.Flag("addr"); f != nil && f.Changed {
		return f.Value.String()
	}
	if addr := os.Getenv(AddrEnv); addr != "" {
		return addr
	}
	return DefaultAddr
}

// send issues one command and prints the reply. Connection failures are
// reported through output rather than returned, so cobra does not print
// usage for them.
func send(cmd *cobra.Command, args ...string) (resp.Value, bool) {
	addr := serverAddr(cmd)
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	c, err := client.Dial(ctx, addr)
	if err != nil {
		output.Error(fmt.Sprintf("Failed to connect to server at %s\n %v", addr, err))
		return resp.Value{}, false
	}
	defer c.Close()

	reply, err := c.Do(ctx, args...)
	if err != nil {
		output.Error(fmt.Sprintf("Request failed: %v", err))
		return resp.Value{}, false
	}
	output.Reply(reply)
	return reply, true
}

// runCommand builds a cobra Run func that sends name followed by the
// positional arguments.
func runCommand(name string) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		send(cmd, append([]string{name}, args...)...)
	}
}
