package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()
	require.NotNil(t, m)

	m.CounterSetsLogged.Inc()
	m.CounterSetsLogged.Inc()
	m.CounterPersonalRecords.Inc()
	m.GaugeLifeSignal.Set(1)

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		byName[mf.GetName()] = mf
	}

	setsLogged, ok := byName["backend_test_server_sets_logged"]
	require.True(t, ok)
	require.Len(t, setsLogged.GetMetric(), 1)
	assert.Equal(t, float64(2), setsLogged.GetMetric()[0].GetCounter().GetValue())

	prs, ok := byName["backend_test_server_personal_records_updated"]
	require.True(t, ok)
	assert.Equal(t, float64(1), prs.GetMetric()[0].GetCounter().GetValue())

	lifeSignal, ok := byName["backend_test_server_life_signal"]
	require.True(t, ok)
	assert.Equal(t, float64(1), lifeSignal.GetMetric()[0].GetGauge().GetValue())
}

func TestSetupPrometheus(t *testing.T) {
	reg := SetupPrometheus()
	require.NotNil(t, reg)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
