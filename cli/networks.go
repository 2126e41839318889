package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tessellated-io/foresight/chains"
)

type networksCmd struct {
	mainnetsOnly bool
}

func (c *networksCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List the networks simulations are supported on",
		Args:  cobra.NoArgs,
		RunE:  c.Run,
	}

	cmd.Flags().BoolVar(&c.mainnetsOnly, "mainnets", false, "Hide testnets")

	return cmd
}

func (c *networksCmd) Run(cmd *cobra.Command, _ []string) error {
	registry := chains.Default()

	networks := registry.Networks()
	if c.mainnetsOnly {
		networks = registry.Mainnets()
	}

	out := cmd.OutOrStdout()
	for _, network := range networks {
		kind := "mainnet"
		if network.Testnet {
			kind = "testnet"
		}
		_, err := fmt.Fprintf(out, "%-10d %-20s %-10s %-8s %s\n", network.ChainID, network.NetworkName, network.Family, kind, network.NativeToken)
		if err != nil {
			return err
		}
	}
	return nil
}
