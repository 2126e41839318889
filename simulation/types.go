package simulation

import (
	"encoding/json"
	"math/big"
)

const DefaultBaseURL = "https://api.tenderly.co"

// TransactionIntent describes a transaction an agent proposes to send. Only To is required.
type TransactionIntent struct {
	To       string  `json:"to" validate:"required,eth_addr"`
	Value    *string `json:"value,omitempty" validate:"omitnil,wei"`
	Data     *string `json:"data,omitempty" validate:"omitnil,hexdata"`
	From     *string `json:"from,omitempty" validate:"omitnil,eth_addr"`
	Gas      *uint64 `json:"gas,omitempty"`
	GasPrice *string `json:"gasPrice,omitempty" validate:"omitnil,wei"`

	// Function and Args build Data from a declaration such as "transfer(address,uint256)".
	Function *string `json:"function,omitempty"`
	Args     []any   `json:"args,omitempty"`
}

// ProviderConfig identifies the Tenderly project simulations run in.
type ProviderConfig struct {
	Slug      string `json:"slug" validate:"required"`
	AccessKey string `json:"access_key" validate:"required"`
	ProjectID string `json:"project_id" validate:"required"`

	// Optional, defaults to DefaultBaseURL
	BaseURL string `json:"base_url" validate:"omitempty,url"`
}

// Network is what a wallet reports about the chain it is connected to.
type Network struct {
	ChainID *big.Int
}

type SimulationResult struct {
	Status  bool
	GasUsed uint64

	NetworkID string
	To        string
	Value     string
	From      string

	StateChanges json.RawMessage
}

// Wire format of the Tenderly simulate endpoint.
type simulationRequest struct {
	NetworkID string  `json:"network_id"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Input     string  `json:"input"`
	Value     string  `json:"value"`
	Gas       *uint64 `json:"gas,omitempty"`
	GasPrice  *string `json:"gas_price,omitempty"`
	Save      bool    `json:"save"`
}

type simulationResponse struct {
	Transaction *struct {
		Status  bool   `json:"status"`
		GasUsed uint64 `json:"gas_used"`
	} `json:"transaction"`
	StateChanges json.RawMessage `json:"state_changes"`
}
