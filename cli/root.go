package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tessellated-io/foresight/config"
	"github.com/tessellated-io/foresight/log"
)

// NewRootCommand builds the foresight command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "foresight",
		Short:         "Simulate EVM transactions before they are broadcast",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand((&simulateCmd{}).Command())
	rootCmd.AddCommand((&encodeCmd{}).Command())
	rootCmd.AddCommand((&networksCmd{}).Command())
	rootCmd.AddCommand((&initCmd{}).Command())

	return rootCmd
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return NewRootCommand().ExecuteContext(ctx)
}

func addConfigFlag(cmd *cobra.Command, configFile *string) {
	cmd.Flags().StringVar(configFile, "config", config.DefaultConfigFile, "Path to the foresight config file")
}

func commandLogger(cmd *cobra.Command, rawLogLevel string) *log.Logger {
	return log.NewLoggerWithWriter(rawLogLevel, []string{"[foresight]"}, cmd.ErrOrStderr())
}
