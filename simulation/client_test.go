package simulation_test

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tessellated-io/foresight/calldata"
	"github.com/tessellated-io/foresight/simulation"
)

func TestSimulate_DefaultsAbsentFields(t *testing.T) {
	fake := newFakeTenderly(t, http.StatusOK, successResponse)
	client := newTestClient(t, fake.URL)
	wallet := newMainnetWallet()

	result, err := client.Simulate(context.Background(), wallet, &simulation.TransactionIntent{To: recipient})
	require.NoError(t, err)

	request := fake.lastRequest(t)
	assert.Equal(t, http.MethodPost, request.Method)
	assert.Equal(t, "/api/v1/account/acme/project/treasury/simulate", request.Path)
	assert.Equal(t, "application/json", request.Headers.Get("Content-Type"))
	assert.Equal(t, "secret-key", request.Headers.Get("X-Access-Key"))

	assert.Equal(t, "1", request.Body["network_id"])
	assert.Equal(t, walletAddress, request.Body["from"])
	assert.Equal(t, recipient, request.Body["to"])
	assert.Equal(t, "0x", request.Body["input"])
	assert.Equal(t, "0x0", request.Body["value"])
	assert.Equal(t, true, request.Body["save"])
	assert.NotContains(t, request.Body, "gas")
	assert.NotContains(t, request.Body, "gas_price")

	assert.True(t, result.Status)
	assert.Equal(t, uint64(21000), result.GasUsed)
	assert.Equal(t, "0", result.Value)
	assert.Equal(t, walletAddress, result.From)
	assert.Equal(t, "1", result.NetworkID)
	assert.JSONEq(t, `{}`, string(result.StateChanges))

	wallet.AssertExpectations(t)
}

func TestSimulate_ExplicitFieldsAreTransmitted(t *testing.T) {
	fake := newFakeTenderly(t, http.StatusOK, successResponse)
	client := newTestClient(t, fake.URL)

	wallet := &mockWallet{}
	wallet.On("Network", mock.Anything).Return(&simulation.Network{ChainID: big.NewInt(11155111)}, nil)

	intent := &simulation.TransactionIntent{
		To:       recipient,
		Value:    ptr("1000"),
		Data:     ptr("A9059CBB"),
		From:     ptr(walletAddress),
		Gas:      ptr(uint64(0)),
		GasPrice: ptr("0x3b9aca00"),
	}

	result, err := client.Simulate(context.Background(), wallet, intent)
	require.NoError(t, err)

	body := fake.lastRequest(t).Body
	assert.Equal(t, "11155111", body["network_id"])
	assert.Equal(t, walletAddress, body["from"])
	assert.Equal(t, "0xa9059cbb", body["input"])
	assert.Equal(t, "1000", body["value"])
	// An explicit zero gas limit is present, not defaulted away
	assert.Equal(t, float64(0), body["gas"])
	assert.Equal(t, "0x3b9aca00", body["gas_price"])

	assert.Equal(t, "1000", result.Value)

	wallet.AssertNotCalled(t, "Address", mock.Anything)
}

func TestSimulate_EmptyValueAndDataUseDefaults(t *testing.T) {
	fake := newFakeTenderly(t, http.StatusOK, successResponse)
	client := newTestClient(t, fake.URL)

	intent := &simulation.TransactionIntent{To: recipient, Value: ptr(""), Data: ptr("")}
	result, err := client.Simulate(context.Background(), newMainnetWallet(), intent)
	require.NoError(t, err)

	body := fake.lastRequest(t).Body
	assert.Equal(t, "0x", body["input"])
	assert.Equal(t, "0x0", body["value"])
	assert.Equal(t, "0", result.Value)
}

func TestSimulate_EncodesFunctionCall(t *testing.T) {
	fake := newFakeTenderly(t, http.StatusOK, successResponse)
	client := newTestClient(t, fake.URL)

	intent := &simulation.TransactionIntent{
		To:       recipient,
		Function: ptr("transfer(address to, uint256 amount)"),
		Args:     []any{walletAddress, "1000"},
	}
	_, err := client.Simulate(context.Background(), newMainnetWallet(), intent)
	require.NoError(t, err)

	expected, err := calldata.Encode("transfer(address,uint256)", []any{walletAddress, "1000"})
	require.NoError(t, err)
	assert.Equal(t, "0x"+expected, fake.lastRequest(t).Body["input"])
}

func TestSimulate_EncodingErrorsAreReturned(t *testing.T) {
	fake := newFakeTenderly(t, http.StatusOK, successResponse)
	client := newTestClient(t, fake.URL)

	intent := &simulation.TransactionIntent{
		To:       recipient,
		Function: ptr("transfer(address,uint256)"),
		Args:     []any{walletAddress},
	}
	_, err := client.Simulate(context.Background(), newMainnetWallet(), intent)

	assert.ErrorIs(t, err, calldata.ErrEncodingMismatch)
	assert.Equal(t, 0, fake.requestCount())
}

func TestSimulate_InvalidIntents(t *testing.T) {
	fake := newFakeTenderly(t, http.StatusOK, successResponse)
	client := newTestClient(t, fake.URL)

	cases := map[string]*simulation.TransactionIntent{
		"nil intent":           nil,
		"missing to":           {},
		"malformed to":         {To: "0xABC"},
		"malformed from":       {To: recipient, From: ptr("bob")},
		"negative value":       {To: recipient, Value: ptr("-1")},
		"fractional value":     {To: recipient, Value: ptr("1.5")},
		"oversized value":      {To: recipient, Value: ptr("0x10000000000000000000000000000000000000000000000000000000000000000")},
		"odd length data":      {To: recipient, Data: ptr("0xabc")},
		"empty gas price":      {To: recipient, GasPrice: ptr("")},
		"invalid gas price":    {To: recipient, GasPrice: ptr("cheap")},
		"data and function":    {To: recipient, Data: ptr("0x01"), Function: ptr("f()")},
		"args and no function": {To: recipient, Args: []any{1}},
	}

	for name, intent := range cases {
		_, err := client.Simulate(context.Background(), newMainnetWallet(), intent)
		assert.ErrorIs(t, err, simulation.ErrInvalidIntent, name)
	}
	assert.Equal(t, 0, fake.requestCount())
}

func TestSimulate_WalletFailures(t *testing.T) {
	fake := newFakeTenderly(t, http.StatusOK, successResponse)
	client := newTestClient(t, fake.URL)
	intent := &simulation.TransactionIntent{To: recipient}

	_, err := client.Simulate(context.Background(), nil, intent)
	assert.ErrorIs(t, err, simulation.ErrWalletResolution)

	networkDown := &mockWallet{}
	networkDown.On("Network", mock.Anything).Return(nil, errors.New("not connected"))
	_, err = client.Simulate(context.Background(), networkDown, intent)
	assert.ErrorIs(t, err, simulation.ErrWalletResolution)
	assert.ErrorContains(t, err, "not connected")

	noChainID := &mockWallet{}
	noChainID.On("Network", mock.Anything).Return(&simulation.Network{}, nil)
	_, err = client.Simulate(context.Background(), noChainID, intent)
	assert.ErrorIs(t, err, simulation.ErrWalletResolution)

	locked := &mockWallet{}
	locked.On("Network", mock.Anything).Return(&simulation.Network{ChainID: big.NewInt(1)}, nil)
	locked.On("Address", mock.Anything).Return("", errors.New("wallet locked"))
	_, err = client.Simulate(context.Background(), locked, intent)
	assert.ErrorIs(t, err, simulation.ErrWalletResolution)

	assert.Equal(t, 0, fake.requestCount())
}

func TestSimulate_TransportFailure(t *testing.T) {
	fake := newFakeTenderly(t, http.StatusInternalServerError, `{"error":"boom"}`)
	client := newTestClient(t, fake.URL)

	result, err := client.Simulate(context.Background(), newMainnetWallet(), &simulation.TransactionIntent{To: recipient})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, simulation.ErrTransportFailure)
	assert.ErrorContains(t, err, "500 Internal Server Error")
	assert.Equal(t, 1, fake.requestCount())
}

func TestSimulate_UnreachableService(t *testing.T) {
	fake := newFakeTenderly(t, http.StatusOK, successResponse)
	baseURL := fake.URL
	fake.Close()

	client := newTestClient(t, baseURL)
	_, err := client.Simulate(context.Background(), newMainnetWallet(), &simulation.TransactionIntent{To: recipient})

	assert.ErrorIs(t, err, simulation.ErrTransportFailure)
}

func TestSimulate_ResponseParseFailures(t *testing.T) {
	responses := []string{
		`not json`,
		`{"state_changes":{}}`,
		`{"transaction":{"status":"yes","gas_used":1}}`,
	}

	for _, response := range responses {
		fake := newFakeTenderly(t, http.StatusOK, response)
		client := newTestClient(t, fake.URL)

		_, err := client.Simulate(context.Background(), newMainnetWallet(), &simulation.TransactionIntent{To: recipient})
		assert.ErrorIs(t, err, simulation.ErrResponseParse, response)
	}
}

func TestSimulate_ConcurrentCallsAreIndependent(t *testing.T) {
	fake := newFakeTenderly(t, http.StatusOK, successResponse)
	client := newTestClient(t, fake.URL)

	values := []string{"1", "2", "3", "4", "5", "6", "7", "8"}
	results := make([]*simulation.SimulationResult, len(values))
	errs := make([]error, len(values))

	var wg sync.WaitGroup
	for i, value := range values {
		wg.Add(1)
		go func(i int, value string) {
			defer wg.Done()
			results[i], errs[i] = client.Simulate(context.Background(), newMainnetWallet(), &simulation.TransactionIntent{To: recipient, Value: ptr(value)})
		}(i, value)
	}
	wg.Wait()

	for i, value := range values {
		require.NoError(t, errs[i])
		assert.Equal(t, value, results[i].Value)
	}
	assert.Equal(t, len(values), fake.requestCount())
}

func TestNewTenderlyClient_RequiresConfig(t *testing.T) {
	cases := map[string]simulation.ProviderConfig{
		"missing slug":       {AccessKey: "k", ProjectID: "p"},
		"missing access key": {Slug: "s", ProjectID: "p"},
		"missing project":    {Slug: "s", AccessKey: "k"},
		"invalid base url":   {Slug: "s", AccessKey: "k", ProjectID: "p", BaseURL: "not a url"},
	}

	for name, config := range cases {
		client, err := simulation.NewTenderlyClient(config, nil, nil, testLogger())
		assert.Nil(t, client, name)
		assert.ErrorIs(t, err, simulation.ErrInvalidConfig, name)
	}
}

func TestParseWei(t *testing.T) {
	amount, err := simulation.ParseWei("1000")
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), amount.Uint64())

	amount, err = simulation.ParseWei("0x0de0b6b3a7640000")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", amount.Dec())

	for _, invalid := range []string{"-1", "1.5", "0x", "0x-1", "ten"} {
		_, err := simulation.ParseWei(invalid)
		assert.Error(t, err, invalid)
	}
}
