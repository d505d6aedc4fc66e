package progress

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelopeRoundTrip(t *testing.T) {
	msg, err := NewEnvelope(TypeSolveResult, SolveResultPayload{Feasible: true, FinalUtility: 12.5, StepCount: 3})
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(msg, &env))
	assert.Equal(t, TypeSolveResult, env.Type)

	var payload SolveResultPayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.True(t, payload.Feasible)
	assert.Equal(t, 3, payload.StepCount)
}

// testClient bypasses NewClient's write pump so Broadcast can be exercised
// without a live websocket connection.
func testClient(hub *Hub, buf int) *Client {
	return &Client{hub: hub, send: make(chan []byte, buf)}
}

func TestBroadcastDeliversToAllClients(t *testing.T) {
	hub := NewHub()
	a := testClient(hub, 4)
	b := testClient(hub, 4)
	hub.Register(a)
	hub.Register(b)
	assert.Equal(t, 2, hub.ClientCount())

	hub.Broadcast([]byte("hello"))

	assert.Equal(t, []byte("hello"), <-a.send)
	assert.Equal(t, []byte("hello"), <-b.send)
}

func TestBroadcastDropsOnFullBuffer(t *testing.T) {
	hub := NewHub()
	c := testClient(hub, 1)
	hub.Register(c)

	hub.Broadcast([]byte("first"))
	hub.Broadcast([]byte("second")) // buffer already full, should be dropped silently

	assert.Equal(t, []byte("first"), <-c.send)
	assert.Len(t, c.send, 0)
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()
	c := testClient(hub, 1)
	hub.Register(c)
	hub.Unregister(c)
	assert.Equal(t, 0, hub.ClientCount())

	_, open := <-c.send
	assert.False(t, open)
}

func TestEmitDSSRIterationNoopWithoutClients(t *testing.T) {
	hub := NewHub()
	// No registered clients: must not panic or block.
	hub.EmitDSSRIteration(DSSRIterationPayload{Iteration: 1, BestUtility: 3.0, CycleFound: true})
	assert.Equal(t, 0, hub.ClientCount())
}
