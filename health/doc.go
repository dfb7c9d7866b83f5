// Package health tracks the health of the prefixmap command's moving parts
// and serves the aggregate over HTTP.
//
// Components report one of three states: healthy, degraded or unhealthy.
// The Monitor keeps the latest status per component and aggregates them;
// any unhealthy component makes the aggregate unhealthy.
//
//	monitor := health.NewMonitor("prefixmap")
//	client, _ := natsclient.NewClient(url,
//		natsclient.WithHealthChangeCallback(monitor.Tracker("nats")))
//	server.SetHealthHandler(monitor.Handler())
//
// Messages built from errors are sanitized so URLs, addresses and
// credentials from connection errors never reach the endpoint.
package health
