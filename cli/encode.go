package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tessellated-io/foresight/calldata"
)

type encodeCmd struct {
	selectorOnly bool
}

func (c *encodeCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <signature> [args...]",
		Short: "ABI encode a contract call",
		Long: `ABI encode a contract call and print it as 0x prefixed hex.

Array and tuple arguments are given as JSON:
  foresight encode "transfer(address,uint256)" 0x5B38Da6a701c568545dCfcB03FcB875f56beddC4 1000
  foresight encode "batch(uint256[])" '[1, 2, 3]'`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.Run,
	}

	cmd.Flags().BoolVar(&c.selectorOnly, "selector", false, "Only print the 4 byte function selector")

	return cmd
}

func (c *encodeCmd) Run(cmd *cobra.Command, args []string) error {
	signature := args[0]

	var (
		encoded string
		err     error
	)
	if c.selectorOnly {
		encoded, err = calldata.Selector(signature)
	} else {
		callArgs := make([]any, 0, len(args)-1)
		for _, arg := range args[1:] {
			callArgs = append(callArgs, arg)
		}
		encoded, err = calldata.Encode(signature, callArgs)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "0x%s\n", encoded)
	return err
}
