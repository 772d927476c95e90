package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "deploy_config"

var (
	// Registry holds every collector exposed on /metrics.
	Registry = prometheus.NewRegistry()

	ProbesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rpc_probes_total",
		Help:      "RPC endpoint probes by network and outcome.",
	}, []string{"network", "status"})

	ProbeDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_probe_duration_seconds",
		Help:      "Time spent probing an RPC endpoint.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network"})

	ProbeCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rpc_probe_cache_hits_total",
		Help:      "Probe results served from cache.",
	})

	ExplorerChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "explorer_key_checks_total",
		Help:      "Explorer credential checks by explorer and outcome.",
	}, []string{"explorer", "status"})

	ConfigVariablesSet = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "env_variables_set",
		Help:      "Number of deploy environment variables with a non-empty value.",
	})

	registerOnce sync.Once
)

// MustRegisterMetrics registers all collectors once. Safe to call repeatedly.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			ProbesTotal,
			ProbeDuration,
			ProbeCacheHits,
			ExplorerChecksTotal,
			ConfigVariablesSet,
		)
	})
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
