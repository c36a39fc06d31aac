package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_RegistersCollectors(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.CounterRequests.With(prometheus.Labels{"method": "GET", "status": "200"}).Inc()
	m.CounterPlanToggles.WithLabelValues("exercise").Inc()
	m.CounterPlanToggles.WithLabelValues("exercise").Inc()
	m.CounterPlanRegenerations.Inc()
	m.GaugeRequests.Set(3)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["fitplan_test_server_requests_total"])
	assert.True(t, names["fitplan_test_server_plan_toggles_total"])
	assert.True(t, names["fitplan_test_server_plan_regenerations_total"])
	assert.True(t, names["fitplan_test_server_current_requests"])
	assert.True(t, names["fitplan_test_server_request_duration_seconds"])
	assert.True(t, names["fitplan_test_server_handle_request_panic_total"])
	assert.True(t, names["fitplan_test_server_goal_fallbacks_total"])
	assert.True(t, names["fitplan_test_server_sessions_purged_total"])

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterPlanToggles.WithLabelValues("exercise")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.GaugeRequests))
}

func TestNewTestManager_Isolated(t *testing.T) {
	a := NewTestManager()
	b := NewTestManager()
	a.CounterGoalFallbacks.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.CounterGoalFallbacks))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.CounterGoalFallbacks))
}
