package stats

import (
	"encoding/json"
	"expvar"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatsUpdater(t *testing.T) {
	mux := http.NewServeMux()
	su := NewStatsUpdater(mux)
	assert.NotNil(t, su, "expected StatsUpdater to be non-nil")
	assert.NotNil(t, su.updateChan, "expected updateChan to be initialized")

	handler, pattern := mux.Handler(&http.Request{URL: &url.URL{Path: "/debug/vars"}, Method: http.MethodGet})
	assert.NotNil(t, handler, "expected handler for /debug/vars to be set")
	assert.Equal(t, "GET /debug/vars", pattern, "expected handler to be registered for GET method on /debug/vars")

	t.Run("registers and updates counters", func(t *testing.T) {
		su.RegisterMetric("TestCounter")
		// a second registration must not reset the counter
		su.RegisterMetric("TestCounter")

		su.Run()
		defer su.Stop()

		su.Incr("TestCounter")
		su.Incr("TestCounter")
		su.Decr("TestCounter")

		assert.Eventually(t, func() bool {
			return su.vars.Get("TestCounter").(*expvar.Int).Value() == 1
		}, time.Second, 10*time.Millisecond, "expected counter to settle at 1")
	})

	t.Run("serves counters over the debug endpoint", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/debug/vars", nil)
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var data map[string]any
		err := json.NewDecoder(rr.Body).Decode(&data)
		assert.NoError(t, err, "failed to decode stats payload")
		assert.Contains(t, data, "TestCounter")
		assert.Contains(t, data, "Uptime")
	})
}
