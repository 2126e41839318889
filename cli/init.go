package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tessellated-io/foresight/config"
)

const configHeader = "foresight configuration. Fill in your Tenderly credentials before running `foresight simulate`."

type initCmd struct{}

func (c *initCmd) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Write a config file template",
		Long:  fmt.Sprintf("Write a commented config file template. Defaults to %s. An existing file is never overwritten.", config.DefaultConfigFile),
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.Run,
	}
}

func (c *initCmd) Run(cmd *cobra.Command, args []string) error {
	path := config.DefaultConfigFile
	if len(args) == 1 {
		path = args[0]
	}

	logger := commandLogger(cmd, "info")
	return config.WriteYamlWithComments(config.Template(), configHeader, path, logger)
}
