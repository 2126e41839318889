package simulation

import "context"

// Wallet is the account abstraction the hosting framework supplies. It is assumed to be connected.
type Wallet interface {
	Address(ctx context.Context) (string, error)
	Network(ctx context.Context) (*Network, error)
}
