package wallet

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/tessellated-io/foresight/log"
	"github.com/tessellated-io/foresight/simulation"
)

// ChainIDReader is the slice of an execution client the RPC wallet needs.
type ChainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// rpcWallet answers network questions from a node and reports a configured, watch-only account.
type rpcWallet struct {
	client  ChainIDReader
	address common.Address

	log *log.Logger
}

// Type assertion
var _ simulation.Wallet = (*rpcWallet)(nil)

// DialRPCWallet connects to the JSON-RPC endpoint of an EVM node.
func DialRPCWallet(ctx context.Context, rpcURL string, address string, logger *log.Logger) (simulation.Wallet, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", rpcURL, err)
	}
	return NewRPCWallet(client, address, logger)
}

func NewRPCWallet(client ChainIDReader, address string, logger *log.Logger) (simulation.Wallet, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid account address: %q", address)
	}

	return &rpcWallet{
		client:  client,
		address: common.HexToAddress(address),

		log: logger.ApplyPrefix("[wallet]"),
	}, nil
}

func (rw *rpcWallet) Address(_ context.Context) (string, error) {
	return rw.address.Hex(), nil
}

func (rw *rpcWallet) Network(ctx context.Context) (*simulation.Network, error) {
	chainID, err := rw.client.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	rw.log.Debug("fetched chain id from node", "chain_id", chainID.String())

	return &simulation.Network{ChainID: chainID}, nil
}
