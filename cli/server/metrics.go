package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var nodeVersion = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Help:      "zecd node version",
		Name:      "version",
		Namespace: "zecd",
	},
	[]string{"version"})

func setNodeVersion(v string) {
	nodeVersion.WithLabelValues(v).Add(1)
}

func init() {
	prometheus.MustRegister(nodeVersion)
}

// newMetricsServer builds the HTTP server exposing the process's
// registered Prometheus gauges (mempool size/cost/actions, this node's
// version) on addr. It is started and stopped by bracketing the node's
// lifetime, started on node startup and shut down during node teardown.
func newMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{Addr: addr, Handler: mux}
}
