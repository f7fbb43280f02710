package commands

import (
	"github.com/spf13/cobra"
)

// CommandRegistry holds all available commands
type CommandRegistry struct {
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{}
}

// GetAllCommands returns all available commands
func (r *CommandRegistry) GetAllCommands() []*cobra.Command {
	return []*cobra.Command{
		NewVersionCommand(),
		NewPingCommand(),
		NewEchoCommand(),
		NewGetCommand(),
		NewMGetCommand(),
		NewSetCommand(),
		NewDelCommand(),
		NewKeysCommand(),
		NewInfoCommand(),
	}
}

// RegisterCommands adds all commands to the root command, along with the
// --addr flag they share.
func (r *CommandRegistry) RegisterCommands(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().String("addr", DefaultAddr, "server address, overrides "+AddrEnv)
	for _, cmd := range r.GetAllCommands() {
		rootCmd.AddCommand(cmd)
	}
}
