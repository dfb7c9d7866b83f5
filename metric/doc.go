// Package metric provides the Prometheus metrics for prefix registries and
// their stream transports, plus an HTTP server exposing them.
//
// The registry counts resolve/shrink hits and misses and every import or
// export it runs:
//
//	registry := metric.NewMetricsRegistry()
//	prefixes, err := prefixmap.New(term.NewDataFactory(), nil,
//	    prefixmap.WithMetrics(registry.CoreMetrics()))
//
//	server := metric.NewServer(9090, "/metrics", registry)
//	go func() { _ = server.Start() }()
//	defer server.Stop()
//
// Additional collectors can be attached per owner with the Register methods;
// duplicates are rejected with an invalid-class error.
package metric
