package simulation

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tessellated-io/foresight/calldata"
)

const (
	outcomeSuccess  = "success"
	outcomeReverted = "reverted"
	outcomeError    = "error"
)

// Metrics records simulation outcomes. A nil *Metrics is valid and records nothing.
type Metrics struct {
	simulationsTotal   *prometheus.CounterVec
	simulationErrors   *prometheus.CounterVec
	simulationDuration prometheus.Histogram
	gasUsed            prometheus.Histogram
}

// NewMetrics creates the simulation collectors and registers them with the registerer.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		simulationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foresight_simulations_total",
				Help: "Simulations by outcome (success, reverted, error)",
			},
			[]string{"outcome"},
		),
		simulationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foresight_simulation_errors_total",
				Help: "Failed simulations by failure kind",
			},
			[]string{"kind"},
		),
		simulationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "foresight_simulation_duration_seconds",
				Help:    "Duration of a simulation, including wallet resolution",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
		),
		gasUsed: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "foresight_simulation_gas_used",
				Help:    "Gas used by simulated transactions",
				Buckets: prometheus.ExponentialBuckets(21000, 2, 10),
			},
		),
	}

	collectors := []prometheus.Collector{m.simulationsTotal, m.simulationErrors, m.simulationDuration, m.gasUsed}
	for _, collector := range collectors {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(result *SimulationResult, err error, duration time.Duration) {
	if m == nil {
		return
	}
	m.simulationDuration.Observe(duration.Seconds())

	if err != nil {
		m.simulationsTotal.WithLabelValues(outcomeError).Inc()
		m.simulationErrors.WithLabelValues(errorKind(err)).Inc()
		return
	}

	m.gasUsed.Observe(float64(result.GasUsed))
	if result.Status {
		m.simulationsTotal.WithLabelValues(outcomeSuccess).Inc()
	} else {
		m.simulationsTotal.WithLabelValues(outcomeReverted).Inc()
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidIntent):
		return "invalid_intent"
	case errors.Is(err, calldata.ErrMalformedSignature):
		return "malformed_signature"
	case errors.Is(err, calldata.ErrEncodingMismatch):
		return "encoding_mismatch"
	case errors.Is(err, ErrWalletResolution):
		return "wallet_resolution"
	case errors.Is(err, ErrTransportFailure):
		return "transport_failure"
	case errors.Is(err, ErrResponseParse):
		return "response_parse"
	default:
		return "unknown"
	}
}
