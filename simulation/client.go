package simulation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tessellated-io/foresight/calldata"
	"github.com/tessellated-io/foresight/coding"
	"github.com/tessellated-io/foresight/log"
)

const (
	defaultInput = "0x"
	defaultValue = "0x0"

	// State change dumps of large transactions run to a few megabytes.
	defaultMaxResponseBytes = 32 << 20
)

// Client simulates a transaction against a remote simulation service.
type Client interface {
	Simulate(ctx context.Context, wallet Wallet, intent *TransactionIntent) (*SimulationResult, error)
}

// Default implementation, backed by the Tenderly simulation API. Each call makes exactly one request.
type tenderlyClient struct {
	config     ProviderConfig
	httpClient *http.Client
	validate   *validator.Validate
	metrics    *Metrics

	maxResponseBytes int64

	log *log.Logger
}

// Type assertion
var _ Client = (*tenderlyClient)(nil)

// NewTenderlyClient makes a new simulation client. httpClient, metrics and logger may be nil.
func NewTenderlyClient(config ProviderConfig, httpClient *http.Client, metrics *Metrics, logger *log.Logger) (Client, error) {
	validate := NewValidator()
	if err := validateConfig(validate, config); err != nil {
		return nil, err
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &tenderlyClient{
		config:     config,
		httpClient: httpClient,
		validate:   validate,
		metrics:    metrics,

		maxResponseBytes: defaultMaxResponseBytes,

		log: orDiscard(logger).ApplyPrefix("[tenderly]"),
	}, nil
}

// Client interface

func (tc *tenderlyClient) Simulate(ctx context.Context, wallet Wallet, intent *TransactionIntent) (*SimulationResult, error) {
	start := time.Now()
	result, err := tc.simulate(ctx, wallet, intent)
	tc.metrics.observe(result, err, time.Since(start))

	return result, err
}

func (tc *tenderlyClient) simulate(ctx context.Context, wallet Wallet, intent *TransactionIntent) (*SimulationResult, error) {
	if err := validateIntent(tc.validate, intent); err != nil {
		return nil, err
	}

	request, err := tc.buildRequest(ctx, wallet, intent)
	if err != nil {
		return nil, err
	}

	logger := tc.log.With("network_id", request.NetworkID, "to", request.To, "from", request.From)
	logger.Debug("simulating transaction", "input", inputFingerprint(request.Input), "value", request.Value)

	body, err := tc.makeRequest(ctx, request)
	if err != nil {
		logger.Error("simulation request failed", "error", err.Error())
		return nil, err
	}

	response, err := parseSimulationResponse(body)
	if err != nil {
		logger.Error("unable to parse simulation response", "error", err.Error())
		return nil, err
	}
	logger.Debug("received simulation", "status", response.Transaction.Status, "gas_used", response.Transaction.GasUsed)

	return &SimulationResult{
		Status:  response.Transaction.Status,
		GasUsed: response.Transaction.GasUsed,

		NetworkID: request.NetworkID,
		To:        intent.To,
		Value:     displayValue(intent),
		From:      request.From,

		StateChanges: response.StateChanges,
	}, nil
}

// Private helpers

// buildRequest resolves wallet details and fills in explicit defaults for every absent field.
func (tc *tenderlyClient) buildRequest(ctx context.Context, wallet Wallet, intent *TransactionIntent) (*simulationRequest, error) {
	if wallet == nil {
		return nil, fmt.Errorf("%w: no wallet provided", ErrWalletResolution)
	}

	network, err := wallet.Network(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: network: %w", ErrWalletResolution, err)
	}
	if network == nil || network.ChainID == nil {
		return nil, fmt.Errorf("%w: wallet reported no chain id", ErrWalletResolution)
	}

	var from string
	if intent.From != nil && *intent.From != "" {
		from = *intent.From
	} else {
		from, err = wallet.Address(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: address: %w", ErrWalletResolution, err)
		}
		tc.log.Debug("resolved sender from wallet", "from", from)
	}

	input, err := buildInput(intent)
	if err != nil {
		return nil, err
	}

	value := defaultValue
	if intent.Value != nil && strings.TrimSpace(*intent.Value) != "" {
		value = strings.TrimSpace(*intent.Value)
	}

	return &simulationRequest{
		NetworkID: network.ChainID.String(),
		From:      from,
		To:        intent.To,
		Input:     input,
		Value:     value,
		Gas:       intent.Gas,
		GasPrice:  intent.GasPrice,
		Save:      true,
	}, nil
}

func buildInput(intent *TransactionIntent) (string, error) {
	if intent.Data != nil && *intent.Data != "" {
		return coding.NormalizeHexString(*intent.Data)
	}

	if intent.Function != nil {
		encoded, err := calldata.Encode(*intent.Function, intent.Args)
		if err != nil {
			return "", err
		}
		return "0x" + encoded, nil
	}

	return defaultInput, nil
}

func (tc *tenderlyClient) simulateURL() string {
	return fmt.Sprintf(
		"%s/api/v1/account/%s/project/%s/simulate",
		tc.config.BaseURL,
		url.PathEscape(tc.config.Slug),
		url.PathEscape(tc.config.ProjectID),
	)
}

func (tc *tenderlyClient) makeRequest(ctx context.Context, payload *simulationRequest) ([]byte, error) {
	endpoint := tc.simulateURL()
	tc.log.Debug("making POST request to url", "url", endpoint)

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransportFailure, err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransportFailure, err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("X-Access-Key", tc.config.AccessKey)

	resp, err := tc.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, tc.maxResponseBytes+1))
	if readErr == nil && int64(len(data)) > tc.maxResponseBytes {
		readErr = fmt.Errorf("response exceeds %d bytes", tc.maxResponseBytes)
		data = nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if readErr == nil {
			tc.log.Debug("received bad response from simulation api", "response", string(data), "status_code", resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", ErrTransportFailure, statusText(resp))
	}
	if readErr != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrTransportFailure, readErr)
	}

	tc.log.Debug("received successful response from simulation api", "status_code", resp.StatusCode)
	return data, nil
}

func parseSimulationResponse(body []byte) (*simulationResponse, error) {
	var response simulationResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResponseParse, err)
	}
	if response.Transaction == nil {
		return nil, fmt.Errorf("%w: response has no transaction", ErrResponseParse)
	}
	return &response, nil
}

func statusText(resp *http.Response) string {
	text := http.StatusText(resp.StatusCode)
	if text == "" {
		return resp.Status
	}
	return fmt.Sprintf("%d %s", resp.StatusCode, text)
}

// displayValue is the value echoed back in reports, which defaults to "0" rather than the wire default.
func displayValue(intent *TransactionIntent) string {
	if intent.Value != nil && strings.TrimSpace(*intent.Value) != "" {
		return strings.TrimSpace(*intent.Value)
	}
	return "0"
}

func inputFingerprint(input string) string {
	decoded, err := coding.DecodeHex(input)
	if err != nil {
		return input
	}
	return coding.PayloadFingerprint(decoded)
}
