// Package config loads the prefixmap configuration from JSON or YAML files.
//
// Files are read in layers: each later file is deep-merged over the earlier
// ones (lists are replaced, not appended). The merged document is checked
// against an embedded JSON schema, environment overrides are applied and the
// result is validated.
//
// Example YAML:
//
//	prefixes:
//	  - prefix: ex
//	    namespace: http://example.org/
//	standard_prefixes: true
//	nats:
//	  url: nats://localhost:4222
//	  subject: rdf.prefixes
//	  timeout: 5s
//	metrics:
//	  port: 9090
//	log:
//	  level: info
//	  format: json
//
// Environment overrides:
//
//	PREFIXMAP_NATS_URL      nats.url
//	PREFIXMAP_NATS_SUBJECT  nats.subject
//	PREFIXMAP_NATS_TOKEN    nats.token
//	PREFIXMAP_LOG_LEVEL     log.level
package config
