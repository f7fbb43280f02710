package main

import (
	"fmt"
	"os"

	"github.com/himakhaitan/respkv/pkg/config"
	"github.com/himakhaitan/respkv/pkg/logger"
	"github.com/himakhaitan/respkv/server"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var host, port, replicaOf, httpAddr string

	cmd := &cobra.Command{
		Use:          "respkvd",
		Short:        "In-memory key-value server speaking RESP",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(
				logger.Module("respkvd"),
				config.Module(flagOptions(cmd, host, port, replicaOf, httpAddr)...),
				server.Module(),
			)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "address to bind")
	cmd.Flags().StringVar(&port, "port", "6379", "port to listen on")
	cmd.Flags().StringVar(&replicaOf, "replicaof", "", `report this node as a replica of "<host> <port>"`)
	cmd.Flags().StringVar(&httpAddr, "http-addr", "", "address for /health, /v1/stats and /metrics (disabled when empty)")
	return cmd
}

// flagOptions turns the flags the user set into config overrides, so unset
// flags leave environment values in place.
func flagOptions(cmd *cobra.Command, host, port, replicaOf, httpAddr string) []config.Option {
	var opts []config.Option
	if cmd.Flags().Changed("host") {
		opts = append(opts, config.WithHost(host))
	}
	if cmd.Flags().Changed("port") {
		opts = append(opts, config.WithPort(port))
	}
	if cmd.Flags().Changed("replicaof") {
		opts = append(opts, config.WithReplicaOf(replicaOf))
	}
	if cmd.Flags().Changed("http-addr") {
		opts = append(opts, config.WithHTTPAddr(httpAddr))
	}
	return opts
}
