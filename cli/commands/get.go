package commands

import "github.com/spf13/cobra"

// NewGetCommand creates a new get command
func NewGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a value by key",
		Args:  cobra.ExactArgs(1),
		Run:   runCommand("GET"),
	}
}

// NewMGetCommand creates a new mget command
func NewMGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mget <key> [key...]",
		Short: "Get the values of several keys",
		Args:  cobra.MinimumNArgs(1),
		Run:   runCommand("MGET"),
	}
}
