package wallet

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v4"
	"github.com/tessellated-io/foresight/log"
	"github.com/tessellated-io/foresight/simulation"
)

// Implements a retryable wallet and returns the last error. Only wallet lookups are retried; simulations never are.
type retryableWallet struct {
	wrappedWallet simulation.Wallet

	attempts retry.Option
	delay    retry.Option

	logger *log.Logger
}

// Ensure that retryableWallet implements Wallet
var _ simulation.Wallet = (*retryableWallet)(nil)

// NewRetryableWallet returns a new retryableWallet
func NewRetryableWallet(attempts uint, delay time.Duration, wallet simulation.Wallet, logger *log.Logger) (simulation.Wallet, error) {
	return &retryableWallet{
		wrappedWallet: wallet,

		attempts: retry.Attempts(attempts),
		delay:    retry.Delay(delay),

		logger: logger,
	}, nil
}

// Wallet Interface

func (r *retryableWallet) Address(ctx context.Context) (string, error) {
	var result string
	var err error

	err = retry.Do(func() error {
		result, err = r.wrappedWallet.Address(ctx)
		if err != nil {
			r.logger.Error("failed call in wallet, will retry", "error", err.Error(), "method", "address")
		}
		return err
	}, r.delay, r.attempts, retry.Context(ctx), retry.LastErrorOnly(true))

	return result, err
}

func (r *retryableWallet) Network(ctx context.Context) (*simulation.Network, error) {
	var result *simulation.Network
	var err error

	err = retry.Do(func() error {
		result, err = r.wrappedWallet.Network(ctx)
		if err != nil {
			r.logger.Error("failed call in wallet, will retry", "error", err.Error(), "method", "network")
		}
		return err
	}, r.delay, r.attempts, retry.Context(ctx), retry.LastErrorOnly(true))

	return result, err
}
