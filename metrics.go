package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"
)

// serveMetrics exposes the process's default Prometheus registry
// (populated by mih's query/train counters, see mih/metrics.go) over
// HTTP, for CLI invocations that want to scrape alongside a build or
// query run.
func serveMetrics(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			klog.Errorf("metrics server on %s stopped: %v", addr, err)
		}
	}()
	klog.Infof("serving Prometheus metrics on %s/metrics", addr)
}
