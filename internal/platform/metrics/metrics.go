// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics owns the Prometheus registry of the API process.

It exposes request counters and latency histograms fed by the HTTP middleware,
plus gauges that sample the store connection pool on every scrape.

Each [Metrics] value carries its own registry so tests never share global state.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "booknotes"

// PoolStats is a point-in-time view of a connection pool.
type PoolStats struct {
	// Acquired is the number of connections currently checked out.
	Acquired int
	// Idle is the number of idle connections held by the pool.
	Idle int
	// Total is the number of open connections.
	Total int
	// Max is the configured upper bound.
	Max int
}

// Metrics groups the collectors and their registry.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// New builds a registry with process/runtime collectors and the HTTP collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	registry.MustRegister(requests, latency)

	return &Metrics{registry: registry, requests: requests, latency: latency}
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RegisterPool exposes pool gauges sampled from stats on every scrape.
func (m *Metrics) RegisterPool(driver string, stats func() PoolStats) {
	labels := prometheus.Labels{"driver": driver}

	gauge := func(name, help string, value func(PoolStats) int) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "store_pool",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		}, func() float64 { return float64(value(stats())) })
	}

	m.registry.MustRegister(
		gauge("acquired_connections", "Connections currently checked out.", func(s PoolStats) int { return s.Acquired }),
		gauge("idle_connections", "Idle connections held by the pool.", func(s PoolStats) int { return s.Idle }),
		gauge("total_connections", "Open connections.", func(s PoolStats) int { return s.Total }),
		gauge("max_connections", "Configured connection limit.", func(s PoolStats) int { return s.Max }),
	)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
