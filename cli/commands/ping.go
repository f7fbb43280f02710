package commands

import "github.com/spf13/cobra"

// NewPingCommand creates a new ping command
func NewPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server answers",
		Args:  cobra.NoArgs,
		Run:   runCommand("PING"),
	}
}

// NewEchoCommand creates a new echo command
func NewEchoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "echo <message>",
		Short: "Have the server repeat a message",
		Args:  cobra.ExactArgs(1),
		Run:   runCommand("ECHO"),
	}
}
