// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/booknotes/internal/platform/metrics"
)

func TestObserveRequest(t *testing.T) {
	m := metrics.New()

	m.ObserveRequest(http.MethodGet, "/books", http.StatusOK, 5*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/books", http.StatusOK, 7*time.Millisecond)
	m.ObserveRequest(http.MethodDelete, "/books/{id}", http.StatusNotFound, time.Millisecond)

	count, err := testutil.GatherAndCount(m.Registry(), "booknotes_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRegisterPool_AndHandler(t *testing.T) {
	m := metrics.New()
	m.RegisterPool("postgres", func() metrics.PoolStats {
		return metrics.PoolStats{Acquired: 3, Idle: 2, Total: 5, Max: 20}
	})

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, `booknotes_store_pool_acquired_connections{driver="postgres"} 3`)
	assert.Contains(t, body, `booknotes_store_pool_max_connections{driver="postgres"} 20`)
}
