package metrics

import (
	"errors"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, m *Metrics) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

func counterValue(f *dto.MetricFamily, labels map[string]string) float64 {
	for _, metric := range f.GetMetric() {
		match := true
		for _, pair := range metric.GetLabel() {
			if want, ok := labels[pair.GetName()]; ok && want != pair.GetValue() {
				match = false
				break
			}
		}
		if match {
			return metric.GetCounter().GetValue()
		}
	}
	return 0
}

func TestReorderCountersCarryKindLabel(t *testing.T) {
	m := New()
	m.RecordReorder("columns")
	m.RecordReorder("tasks")
	m.RecordReorder("tasks")
	m.RecordReorderReject("tasks")

	families := gather(t, m)

	reorders := families["kanban_api_reorders_total"]
	require.NotNil(t, reorders)
	assert.Equal(t, float64(1), counterValue(reorders, map[string]string{"kind": "columns"}))
	assert.Equal(t, float64(2), counterValue(reorders, map[string]string{"kind": "tasks"}))

	rejects := families["kanban_api_reorder_rejects_total"]
	require.NotNil(t, rejects)
	assert.Equal(t, float64(1), counterValue(rejects, map[string]string{"kind": "tasks"}))
}

func TestHTTPRequestStatusCollapsedToClass(t *testing.T) {
	m := New()
	m.RecordHTTPRequest("GET", "/api/boards", 200, 5*time.Millisecond)
	m.RecordHTTPRequest("GET", "/api/boards", 204, 5*time.Millisecond)
	m.RecordHTTPRequest("POST", "/api/boards", 404, 5*time.Millisecond)

	families := gather(t, m)
	requests := families["kanban_api_http_requests_total"]
	require.NotNil(t, requests)
	assert.Equal(t, float64(2), counterValue(requests, map[string]string{"status": "2xx"}))
	assert.Equal(t, float64(1), counterValue(requests, map[string]string{"status": "4xx"}))
}

func TestDBQueryErrorOnlyCountedOnFailure(t *testing.T) {
	m := New()
	m.RecordDBQuery("query", "tasks", time.Millisecond, nil)
	m.RecordDBQuery("update", "tasks", time.Millisecond, errors.New("boom"))

	families := gather(t, m)
	errs := families["kanban_api_db_query_errors_total"]
	require.NotNil(t, errs)
	assert.Equal(t, float64(0), counterValue(errs, map[string]string{"operation": "query"}))
	assert.Equal(t, float64(1), counterValue(errs, map[string]string{"operation": "update"}))
}

func TestShouldSkipEndpoint(t *testing.T) {
	assert.True(t, ShouldSkipEndpoint("/metrics"))
	assert.True(t, ShouldSkipEndpoint("/health"))
	assert.False(t, ShouldSkipEndpoint("/api/boards"))
}
