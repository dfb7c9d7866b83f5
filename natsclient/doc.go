// Package natsclient provides the NATS connection used by the prefix event
// transport, with circuit breaker protection and automatic reconnection.
//
// # Circuit Breaker
//
// Connection failures are counted. After a threshold of consecutive
// failures (default 5) the circuit opens and Connect fails fast with
// ErrCircuitOpen. After the current backoff the circuit half-opens and the
// next Connect may try again. Backoff doubles per open round up to a maximum
// (default one minute). A successful connect or reconnect resets it.
//
// # Basic Usage
//
//	client, err := natsclient.NewClient("nats://localhost:4222",
//	    natsclient.WithName("prefixmap"),
//	    natsclient.WithLogger(natsclient.NewSlogLogger(logger)),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := client.Connect(ctx); err != nil {
//	    return err
//	}
//	defer client.Close(ctx)
//
//	sub, err := client.SubscribeSync("prefixes")
//
// # Testing
//
// NewTestClient starts a NATS server in a container through
// testcontainers-go and returns a connected Client. Tests using it carry the
// integration build tag.
package natsclient
