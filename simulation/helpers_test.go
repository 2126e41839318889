package simulation_test

import (
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tessellated-io/foresight/log"
	"github.com/tessellated-io/foresight/simulation"
)

const (
	walletAddress = "0x5B38Da6a701c568545dCfcB03FcB875f56beddC4"
	recipient     = "0xAb8483F64d9C6d1EcF9b849Ae677dD3315835cb2"

	successResponse = `{"transaction":{"status":true,"gas_used":21000},"state_changes":{}}`
)

type mockWallet struct {
	mock.Mock
}

var _ simulation.Wallet = (*mockWallet)(nil)

func (m *mockWallet) Address(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockWallet) Network(ctx context.Context) (*simulation.Network, error) {
	args := m.Called(ctx)
	network, _ := args.Get(0).(*simulation.Network)
	return network, args.Error(1)
}

func newMainnetWallet() *mockWallet {
	wallet := &mockWallet{}
	wallet.On("Network", mock.Anything).Return(&simulation.Network{ChainID: big.NewInt(1)}, nil)
	wallet.On("Address", mock.Anything).Return(walletAddress, nil)
	return wallet
}

// capturedRequest is what the fake simulation API saw.
type capturedRequest struct {
	Method  string
	Path    string
	Headers http.Header
	Body    map[string]any
}

type fakeTenderly struct {
	*httptest.Server

	mu       sync.Mutex
	requests []capturedRequest
}

func newFakeTenderly(t *testing.T, status int, response string) *fakeTenderly {
	t.Helper()

	fake := &fakeTenderly{}
	fake.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{}
		raw, err := io.ReadAll(r.Body)
		if err == nil {
			err = json.Unmarshal(raw, &body)
		}
		if err != nil {
			t.Errorf("fake simulation api received an unreadable body: %v", err)
		}

		fake.mu.Lock()
		fake.requests = append(fake.requests, capturedRequest{
			Method:  r.Method,
			Path:    r.URL.Path,
			Headers: r.Header.Clone(),
			Body:    body,
		})
		fake.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(fake.Close)

	return fake
}

func (f *fakeTenderly) lastRequest(t *testing.T) capturedRequest {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests, "no request reached the simulation api")
	return f.requests[len(f.requests)-1]
}

func (f *fakeTenderly) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func testLogger() *log.Logger {
	return log.NewLoggerWithWriter("debug", []string{}, io.Discard)
}

func testConfig(baseURL string) simulation.ProviderConfig {
	return simulation.ProviderConfig{
		Slug:      "acme",
		AccessKey: "secret-key",
		ProjectID: "treasury",
		BaseURL:   baseURL,
	}
}

func newTestClient(t *testing.T, baseURL string) simulation.Client {
	t.Helper()

	client, err := simulation.NewTenderlyClient(testConfig(baseURL), nil, nil, testLogger())
	require.NoError(t, err)
	return client
}

func ptr[T any](v T) *T {
	return &v
}
