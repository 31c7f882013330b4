package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/goals/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := Middleware(mux)

	matched := RequestCounter.WithLabelValues(http.MethodGet, "GET /api/goals/{id}", "418")
	unmatched := RequestCounter.WithLabelValues(http.MethodGet, "unmatched", "404")
	beforeMatched := counterValue(t, matched)
	beforeUnmatched := counterValue(t, unmatched)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/goals/g1", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/goals/g2", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, beforeMatched+2, counterValue(t, matched))
	assert.Equal(t, beforeUnmatched+1, counterValue(t, unmatched))
}

func TestObserveMilestone(t *testing.T) {
	before := counterValue(t, HoursLogged)
	beforeCount := counterValue(t, MilestonesCreated)

	ObserveMilestone(1.5)

	assert.Equal(t, before+1.5, counterValue(t, HoursLogged))
	assert.Equal(t, beforeCount+1, counterValue(t, MilestonesCreated))
}
