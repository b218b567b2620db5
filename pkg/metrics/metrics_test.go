package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetricsExposition(t *testing.T) {
	m := New()

	m.ObserveQuery(0x004C, "SUCCESS", 50*time.Microsecond)
	m.ObserveQuery(0x004C, "SUCCESS", 80*time.Microsecond)
	m.ObserveQuery(0x004F, "TRANSIENT_FAILURE", time.Millisecond)
	m.IncClamped(0x004F)
	m.SetBootstrapState(3)
	m.SetRegisteredProfiles(1)

	body := scrape(t, m)

	assert.Contains(t, body, `meshsense_sensor_queries_total{property="0x004C",status="SUCCESS"} 2`)
	assert.Contains(t, body, `meshsense_sensor_queries_total{property="0x004F",status="TRANSIENT_FAILURE"} 1`)
	assert.Contains(t, body, `meshsense_sensor_clamped_total{property="0x004F"} 1`)
	assert.Contains(t, body, `meshsense_sensor_query_duration_seconds_count 3`)
	assert.Contains(t, body, `meshsense_bootstrap_state 3`)
	assert.Contains(t, body, `meshsense_bootstrap_registered_profiles 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestIndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.IncClamped(1)

	assert.NotContains(t, scrape(t, b), "meshsense_sensor_clamped_total{")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	m.ObserveQuery(1, "SUCCESS", time.Millisecond)
	m.IncClamped(1)
	m.SetBootstrapState(1)
	m.SetRegisteredProfiles(1)
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServerServesMetrics(t *testing.T) {
	m := New()
	m.SetBootstrapState(2)

	srv := NewServer("127.0.0.1:0", "", m, nil)
	require.NoError(t, srv.Start())
	t.Cleanup(func() { _ = srv.Stop(context.Background()) })

	assert.Error(t, srv.Start(), "second Start should fail")

	resp, err := http.Get("http://" + srv.Addr() + DefaultPath)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "meshsense_bootstrap_state 2"))

	require.NoError(t, srv.Stop(context.Background()))
	assert.Equal(t, "", srv.Addr())
	assert.NoError(t, srv.Stop(context.Background()))
}

func TestServerRequiresMetrics(t *testing.T) {
	srv := NewServer("127.0.0.1:0", "/m", nil, nil)
	assert.Error(t, srv.Start())
}
