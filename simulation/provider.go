package simulation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tessellated-io/foresight/chains"
	"github.com/tessellated-io/foresight/log"
	"github.com/tessellated-io/foresight/util"
)

const (
	ProviderName                  = "tenderly_simulation"
	SimulateTransactionActionName = "simulate_transaction"
)

const simulateTransactionDescription = `
Simulates a transaction using Tenderly's API before executing it on-chain.

Inputs:
- to: The destination address
- value: (optional) Amount of native tokens to send
- data: (optional) Transaction data
- from: (optional) Sender address
- gas: (optional) Gas limit
- gasPrice: (optional) Gas price
- function: (optional) Function declaration to encode as data, ex. "transfer(address,uint256)"
- args: (optional) Arguments for function
`

// Action describes an operation a hosting agent framework can invoke.
type Action struct {
	Name        string
	Description string
}

// ActionProvider exposes simulation to an agent framework. Its actions always return text and never fail:
// every error is rendered into the returned string.
type ActionProvider struct {
	client Client

	log *log.Logger
}

// NewActionProvider makes a provider around client. A nil logger discards output.
func NewActionProvider(client Client, logger *log.Logger) *ActionProvider {
	return &ActionProvider{
		client: client,
		log:    orDiscard(logger),
	}
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.NewLoggerWithWriter("error", []string{}, io.Discard)
	}
	return logger
}

func (ap *ActionProvider) Name() string {
	return ProviderName
}

func (ap *ActionProvider) Actions() []Action {
	return []Action{
		{
			Name:        SimulateTransactionActionName,
			Description: simulateTransactionDescription,
		},
	}
}

// SupportsNetwork is used by hosts to decide whether to offer this provider on a network.
func (ap *ActionProvider) SupportsNetwork(network *Network) bool {
	if network == nil {
		return false
	}
	return chains.SupportsNetwork(network.ChainID)
}

// SimulateTransaction runs a simulation and renders the outcome, or the failure, as text.
func (ap *ActionProvider) SimulateTransaction(ctx context.Context, wallet Wallet, intent *TransactionIntent) (report string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err := util.InterfaceToError(recovered)
			report = RenderError(err)
			ap.log.Error("recovered from panic during simulation", "error", err.Error())
		}
	}()

	if ap.client == nil {
		return RenderError(fmt.Errorf("%w: no simulation client", ErrInvalidConfig))
	}

	result, err := ap.client.Simulate(ctx, wallet, intent)
	if err != nil {
		ap.log.Warn("simulation failed", "error", err.Error())
		return RenderError(err)
	}
	return Render(result)
}

// Invoke dispatches a named action with JSON arguments, as received from an agent.
func (ap *ActionProvider) Invoke(ctx context.Context, wallet Wallet, actionName string, rawArgs []byte) string {
	if actionName != SimulateTransactionActionName {
		return RenderError(fmt.Errorf("%w: %q", ErrUnsupportedAction, actionName))
	}

	intent, err := DecodeIntent(rawArgs)
	if err != nil {
		return RenderError(err)
	}
	return ap.SimulateTransaction(ctx, wallet, intent)
}

// DecodeIntent parses a JSON transaction intent. Numbers in args are kept exact.
func DecodeIntent(rawArgs []byte) (*TransactionIntent, error) {
	decoder := json.NewDecoder(bytes.NewReader(rawArgs))
	decoder.UseNumber()

	var intent TransactionIntent
	if err := decoder.Decode(&intent); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIntent, err)
	}
	return &intent, nil
}
