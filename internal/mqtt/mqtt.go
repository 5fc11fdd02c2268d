package mqtt

import (
	"context"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const (
	qos            = 1
	publishTimeout = 5 * time.Second
	quiesceMillis  = 250
)

// Topic is where frames for displayID are published.
func Topic(displayID string) string {
	return fmt.Sprintf("carescreen/%s/content", displayID)
}

var connectHandler paho.OnConnectHandler = func(client paho.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler paho.ConnectionLostHandler = func(client paho.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// Connect dials brokerURL and keeps reconnecting in the background after
// the first successful connection.
func Connect(brokerURL, clientID string) (paho.Client, error) {
	opts := paho.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(10 * time.Second)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	log.Info().Str("broker", brokerURL).Str("client_id", clientID).Msg("MQTT client initialized")
	return client, nil
}

// Publisher sends retained frames to one display topic, so a display that
// (re)connects immediately receives the current content.
type Publisher struct {
	client paho.Client
	topic  string
}

func NewPublisher(client paho.Client, displayID string) *Publisher {
	return &Publisher{client: client, topic: Topic(displayID)}
}

func (p *Publisher) Publish(ctx context.Context, payload []byte) error {
	token := p.client.Publish(p.topic, qos, true, payload)

	timeout := publishTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("timed out publishing to %s", p.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.topic, err)
	}
	log.Debug().Str("topic", p.topic).Int("bytes", len(payload)).Msg("frame published via MQTT")
	return nil
}

// Close disconnects the underlying client.
func (p *Publisher) Close() {
	p.client.Disconnect(quiesceMillis)
	log.Info().Str("topic", p.topic).Msg("MQTT publisher disconnected")
}
