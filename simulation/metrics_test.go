package simulation

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessellated-io/foresight/calldata"
)

func TestMetrics_Outcomes(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := NewMetrics(registry)
	require.NoError(t, err)

	m.observe(&SimulationResult{Status: true, GasUsed: 21000}, nil, time.Millisecond)
	m.observe(&SimulationResult{Status: false, GasUsed: 50000}, nil, time.Millisecond)
	m.observe(nil, ErrTransportFailure, time.Millisecond)
	m.observe(nil, &calldata.EncodingError{Signature: "f(", Err: calldata.ErrMalformedSignature}, time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.simulationsTotal.WithLabelValues(outcomeSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.simulationsTotal.WithLabelValues(outcomeReverted)))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.simulationsTotal.WithLabelValues(outcomeError)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.simulationErrors.WithLabelValues("transport_failure")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.simulationErrors.WithLabelValues("malformed_signature")))

	families, err := registry.Gather()
	require.NoError(t, err)
	names := []string{}
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.Contains(t, names, "foresight_simulation_duration_seconds")
	assert.Contains(t, names, "foresight_simulation_gas_used")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.observe(nil, errors.New("anything"), time.Second)
	})
}

func TestMetrics_DoubleRegistrationFails(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := NewMetrics(registry)
	require.NoError(t, err)

	_, err = NewMetrics(registry)
	assert.Error(t, err)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "invalid_intent", errorKind(ErrInvalidIntent))
	assert.Equal(t, "encoding_mismatch", errorKind(&calldata.EncodingError{Err: calldata.ErrEncodingMismatch}))
	assert.Equal(t, "wallet_resolution", errorKind(ErrWalletResolution))
	assert.Equal(t, "response_parse", errorKind(ErrResponseParse))
	assert.Equal(t, "unknown", errorKind(errors.New("other")))
}
