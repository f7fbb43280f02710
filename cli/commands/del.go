package commands

import "github.com/spf13/cobra"

// NewDelCommand creates a new del command
func NewDelCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "del <key> [key...]",
		Aliases: []string{"delete"},
		Short:   "Delete keys and print how many existed",
		Args:    cobra.MinimumNArgs(1),
		Run:     runCommand("DEL"),
	}
}
