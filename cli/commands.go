package cli

import (
	"github.com/himakhaitan/respkv/cli/commands"
	"github.com/spf13/cobra"
)

type CLI struct {
	root *cobra.Command
}

func NewCLI() *CLI {
	cli := &CLI{}

	rootCmd := &cobra.Command{
		Use:   "respkv-cli",
		Short: "A command-line client for the RESP key-value server",
		Long:  "respkv-cli sends single commands to a respkv server over RESP and prints the reply",
	}

	// Create command registry and register all commands
	registry := commands.NewCommandRegistry()
	registry.RegisterCommands(rootCmd)

	cli.root = rootCmd

	return cli
}

func (c *CLI) Run() error {
	return c.root.Execute()
}
