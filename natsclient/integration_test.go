//go:build integration

package natsclient

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_PublishSubscribe(t *testing.T) {
	tc := NewTestClient(t, WithNATSVersion("2.11.7-alpine"), WithStartTimeout(time.Minute))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.True(t, tc.Client.IsHealthy())

	sub, err := tc.Client.SubscribeSync("prefixes.test")
	require.NoError(t, err)

	msg := nats.NewMsg("prefixes.test")
	msg.Header.Set("Rdf-Event", "prefix")
	msg.Data = []byte(`{"label":"ex"}`)
	require.NoError(t, tc.Client.PublishMsg(ctx, msg))
	require.NoError(t, tc.Client.Flush(ctx))

	got, err := sub.NextMsgWithContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "prefix", got.Header.Get("Rdf-Event"))
	assert.JSONEq(t, `{"label":"ex"}`, string(got.Data))

	rtt, err := tc.Client.RTT()
	require.NoError(t, err)
	assert.Greater(t, rtt, time.Duration(0))
}

func TestIntegration_CloseUnsubscribes(t *testing.T) {
	tc := NewTestClient(t)
	client := tc.NewClient(t)

	sub, err := client.SubscribeSync("prefixes.close")
	require.NoError(t, err)

	require.NoError(t, client.Close(context.Background()))
	assert.False(t, sub.IsValid())
	assert.Equal(t, StatusDisconnected, client.Status())
}

func TestIntegration_PublishRaw(t *testing.T) {
	tc := NewTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn := tc.Client.GetConnection()
	require.NotNil(t, conn)
	assert.True(t, conn.IsConnected())

	sub, err := tc.Client.SubscribeSync("prefixes.raw")
	require.NoError(t, err)

	require.NoError(t, tc.Client.Publish(ctx, "prefixes.raw", []byte("ping")))
	require.NoError(t, tc.Client.Flush(ctx))

	got, err := sub.NextMsgWithContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(got.Data))
}
