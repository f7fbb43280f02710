package commands

import "github.com/spf13/cobra"

// NewInfoCommand creates a new info command
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [section]",
		Short: "Show server information",
		Args:  cobra.MaximumNArgs(1),
		Run:   runCommand("INFO"),
	}
}
