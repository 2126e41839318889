package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/tessellated-io/foresight/config"
	"github.com/tessellated-io/foresight/log"
	"github.com/tessellated-io/foresight/simulation"
	"github.com/tessellated-io/foresight/wallet"
)

var ErrNoSender = errors.New("no sender: set account in the config file or pass --from")

type simulateCmd struct {
	configFile string

	to       string
	value    string
	data     string
	from     string
	gas      uint64
	gasPrice string
	function string
	args     string

	intent string
}

func (c *simulateCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a transaction and print the outcome",
		Long: `Simulate a transaction against Tenderly and print a report.

The transaction is given either with flags or as a JSON intent:
  foresight simulate --to 0x5B38Da6a701c568545dCfcB03FcB875f56beddC4 --value 1000
  foresight simulate --to 0x... --function "transfer(address,uint256)" --args '["0x...", 1000]'
  foresight simulate --intent '{"to": "0x...", "gas": 21000}'`,
		Args: cobra.NoArgs,
		RunE: c.Run,
	}

	addConfigFlag(cmd, &c.configFile)
	cmd.Flags().StringVar(&c.to, "to", "", "Destination address")
	cmd.Flags().StringVar(&c.value, "value", "", "Amount of native tokens to send, in wei")
	cmd.Flags().StringVar(&c.data, "data", "", "Hex encoded call data")
	cmd.Flags().StringVar(&c.from, "from", "", "Sender address. Defaults to the configured account")
	cmd.Flags().Uint64Var(&c.gas, "gas", 0, "Gas limit")
	cmd.Flags().StringVar(&c.gasPrice, "gas-price", "", "Gas price, in wei")
	cmd.Flags().StringVar(&c.function, "function", "", `Function declaration to encode as call data, ex. "transfer(address,uint256)"`)
	cmd.Flags().StringVar(&c.args, "args", "", "JSON array of arguments for --function")
	cmd.Flags().StringVar(&c.intent, "intent", "", "Full transaction intent as JSON. Cannot be combined with the other transaction flags")
	cmd.MarkFlagsMutuallyExclusive("intent", "to")
	cmd.MarkFlagsOneRequired("intent", "to")

	return cmd
}

func (c *simulateCmd) Run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return err
	}
	logger := commandLogger(cmd, cfg.LogLevel)

	sender := cfg.Account
	if cmd.Flags().Changed("from") {
		sender = c.from
	} else if sender == "" && c.intent != "" {
		// Malformed intents are reported by the provider
		if intent, err := simulation.DecodeIntent([]byte(c.intent)); err == nil && intent.From != nil {
			sender = *intent.From
		}
	}
	w, err := buildWallet(cmd.Context(), cfg, sender, logger)
	if err != nil {
		return err
	}

	client, err := simulation.NewTenderlyClient(cfg.ProviderConfig(), &http.Client{Timeout: cfg.Timeout()}, nil, logger)
	if err != nil {
		return err
	}
	provider := simulation.NewActionProvider(client, logger)

	var report string
	if c.intent != "" {
		report = provider.Invoke(cmd.Context(), w, simulation.SimulateTransactionActionName, []byte(c.intent))
	} else {
		intent, err := c.buildIntent(cmd)
		if err != nil {
			return err
		}
		report = provider.SimulateTransaction(cmd.Context(), w, intent)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), report)
	return err
}

// buildIntent only sets the optional fields whose flags were given, so that ex. `--gas 0` is sent.
func (c *simulateCmd) buildIntent(cmd *cobra.Command) (*simulation.TransactionIntent, error) {
	flags := cmd.Flags()
	intent := &simulation.TransactionIntent{To: c.to}

	if flags.Changed("value") {
		intent.Value = &c.value
	}
	if flags.Changed("data") {
		intent.Data = &c.data
	}
	if flags.Changed("from") {
		intent.From = &c.from
	}
	if flags.Changed("gas") {
		intent.Gas = &c.gas
	}
	if flags.Changed("gas-price") {
		intent.GasPrice = &c.gasPrice
	}
	if flags.Changed("function") {
		intent.Function = &c.function
	}
	if flags.Changed("args") {
		args, err := parseJSONArgs(c.args)
		if err != nil {
			return nil, err
		}
		intent.Args = args
	}

	return intent, nil
}

func parseJSONArgs(raw string) ([]any, error) {
	decoder := json.NewDecoder(bytes.NewReader([]byte(raw)))
	decoder.UseNumber()

	var args []any
	if err := decoder.Decode(&args); err != nil {
		return nil, fmt.Errorf("--args must be a JSON array: %w", err)
	}
	return args, nil
}

// buildWallet prefers a JSON-RPC node for the chain id and falls back to the configured chain_id.
func buildWallet(ctx context.Context, cfg *config.Config, sender string, logger *log.Logger) (simulation.Wallet, error) {
	if sender == "" {
		return nil, ErrNoSender
	}

	if cfg.RPCURL == "" {
		if cfg.ChainID == 0 {
			return nil, fmt.Errorf("%w: one of rpc_url or chain_id is required", config.ErrInvalidConfig)
		}
		return wallet.NewStaticWallet(sender, cfg.ChainIDBig())
	}

	rpcWallet, err := wallet.DialRPCWallet(ctx, cfg.RPCURL, sender, logger)
	if err != nil {
		return nil, err
	}
	return wallet.NewRetryableWallet(cfg.WalletAttempts, cfg.WalletRetryDelay(), rpcWallet, logger)
}
