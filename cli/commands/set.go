package commands

import (
	"strconv"

	"github.com/himakhaitan/respkv/cli/output"
	"github.com/spf13/cobra"
)

// NewSetCommand creates a new set command
func NewSetCommand() *cobra.Command {
	var px, ex int64

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a key-value pair, optionally with a time to live",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			if cmd.Flags().Changed("px") && cmd.Flags().Changed("ex") {
				output.Warn("Both --px and --ex given, the server applies --px")
			}

			req := []string{"SET", args[0], args[1]}
			if cmd.Flags().Changed("px") {
				req = append(req, "PX", strconv.FormatInt(px, 10))
			}
			if cmd.Flags().Changed("ex") {
				req = append(req, "EX", strconv.FormatInt(ex, 10))
			}
			send(cmd, req...)
		},
	}

	cmd.Flags().Int64Var(&px, "px", 0, "expire after this many milliseconds")
	cmd.Flags().Int64Var(&ex, "ex", 0, "expire after this many seconds")
	return cmd
}
