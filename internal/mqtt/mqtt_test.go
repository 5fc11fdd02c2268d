package mqtt

import (
	"context"
	"errors"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

type fakeToken struct {
	err      error
	complete bool
}

func (t *fakeToken) Wait() bool                       { return t.complete }
func (t *fakeToken) WaitTimeout(_ time.Duration) bool { return t.complete }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

// fakeClient implements only what Publisher uses.
type fakeClient struct {
	paho.Client
	sent         []message
	token        *fakeToken
	disconnected bool
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	c.sent = append(c.sent, message{topic: topic, qos: qos, retained: retained, payload: payload.([]byte)})
	return c.token
}

func (c *fakeClient) Disconnect(uint) { c.disconnected = true }

func TestTopic(t *testing.T) {
	assert.Equal(t, "carescreen/lobby/content", Topic("lobby"))
}

func TestPublisherSendsRetainedFrames(t *testing.T) {
	client := &fakeClient{token: &fakeToken{complete: true}}
	p := NewPublisher(client, "wohnbereich-2")

	require.NoError(t, p.Publish(context.Background(), []byte(`{"decision":{"kind":"meal"}}`)))
	require.Len(t, client.sent, 1)
	assert.Equal(t, "carescreen/wohnbereich-2/content", client.sent[0].topic)
	assert.Equal(t, byte(1), client.sent[0].qos)
	assert.True(t, client.sent[0].retained)
	assert.JSONEq(t, `{"decision":{"kind":"meal"}}`, string(client.sent[0].payload))

	p.Close()
	assert.True(t, client.disconnected)
}

func TestPublisherReportsFailures(t *testing.T) {
	client := &fakeClient{token: &fakeToken{complete: true, err: errors.New("not connected")}}
	err := NewPublisher(client, "lobby").Publish(context.Background(), []byte("{}"))
	assert.ErrorContains(t, err, "not connected")

	client.token = &fakeToken{complete: false}
	err = NewPublisher(client, "lobby").Publish(context.Background(), []byte("{}"))
	assert.ErrorContains(t, err, "timed out")
}
