package wallet

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tessellated-io/foresight/simulation"
)

// staticWallet reports a fixed account and chain, for hosts that already know both.
type staticWallet struct {
	address common.Address
	chainID *big.Int
}

// Type assertion
var _ simulation.Wallet = (*staticWallet)(nil)

func NewStaticWallet(address string, chainID *big.Int) (simulation.Wallet, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid account address: %q", address)
	}
	if chainID == nil || chainID.Sign() <= 0 {
		return nil, fmt.Errorf("invalid chain id: %v", chainID)
	}

	return &staticWallet{
		address: common.HexToAddress(address),
		chainID: new(big.Int).Set(chainID),
	}, nil
}

func (sw *staticWallet) Address(_ context.Context) (string, error) {
	return sw.address.Hex(), nil
}

func (sw *staticWallet) Network(_ context.Context) (*simulation.Network, error) {
	return &simulation.Network{ChainID: new(big.Int).Set(sw.chainID)}, nil
}
