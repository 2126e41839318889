package simulation

import "errors"

var (
	ErrInvalidIntent     = errors.New("invalid transaction")
	ErrInvalidConfig     = errors.New("invalid simulation provider config")
	ErrWalletResolution  = errors.New("failed to resolve wallet details")
	ErrTransportFailure  = errors.New("simulation request failed")
	ErrResponseParse     = errors.New("failed to parse simulation response")
	ErrUnsupportedAction = errors.New("unsupported action")
)
