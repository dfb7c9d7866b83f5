// Package prefixmap is the root of a CURIE prefix registry for RDF tooling.
//
// The registry maps short labels such as "rdf" or "schema" to namespace
// IRIs. It expands compact IRIs ("rdf:type") to full ones and compacts full
// IRIs back, choosing the longest matching namespace.
//
// # Layout
//
//   - term: RDF term model and the data factory that builds terms
//   - environment: a factory plus composable modules that can be cloned
//   - prefixmap: the ordered registry, resolve/shrink and stream import/export
//   - stream: the event source/sink contract and an in-memory pipe
//   - stream/natsstream, stream/wsstream: the same contract over NATS and WebSocket
//   - vocabulary: well-known vocabularies used to seed a registry
//   - config: layered JSON/YAML configuration with schema validation
//   - natsclient: NATS connection management with a circuit breaker
//   - metric, health: Prometheus metrics and the health endpoint
//   - errors, pkg/retry: error classification and backoff
//
// The prefixmap command in cmd/prefixmap wires these together.
package prefixmap
