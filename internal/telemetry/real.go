package telemetry

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	paho "github.com/eclipse/paho.mqtt.golang"
)

// Broker join policy: a fixed number of attempts at a fixed interval, no
// exponential growth. Matches the bounded network join at boot.
const (
	connectAttempts = 10
	connectInterval = time.Second
)

// outboxCapacity bounds how many messages are held while disconnected.
const outboxCapacity = 64

// RealPublisher publishes to an actual MQTT broker. Messages published
// while disconnected are held in an outbox and replayed on reconnect.
type RealPublisher struct {
	client paho.Client

	mu  sync.Mutex
	out *outbox
}

// NewRealPublisher creates a publisher for the given broker. It does not
// connect; call Connect once at boot.
func NewRealPublisher(broker string) *RealPublisher {
	p := &RealPublisher{out: newOutbox(outboxCapacity)}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("plant-monitor").
		SetAutoReconnect(true).
		SetOnConnectHandler(p.onConnect)

	p.client = paho.NewClient(opts)
	return p
}

// Connect attempts the initial broker connection with a bounded retry:
// connectAttempts tries, connectInterval apart. The daemon continues
// without telemetry if all attempts fail; auto-reconnect keeps trying in
// the background.
func (p *RealPublisher) Connect() error {
	attempt := func() error {
		token := p.client.Connect()
		if !token.WaitTimeout(5 * time.Second) {
			return fmt.Errorf("connection timeout")
		}
		return token.Error()
	}

	bo := backoff.WithMaxRetries(backoff.NewConstantBackOff(connectInterval), connectAttempts-1)
	if err := backoff.Retry(attempt, bo); err != nil {
		return fmt.Errorf("connect to broker: %w", err)
	}
	return nil
}

// onConnect drains any messages held while disconnected.
func (p *RealPublisher) onConnect(client paho.Client) {
	p.mu.Lock()
	msgs := p.out.drain()
	p.mu.Unlock()

	for _, m := range msgs {
		token := client.Publish(m.topic, m.qos, m.retained, m.payload)
		if !token.WaitTimeout(5 * time.Second) {
			log.Printf("telemetry: replay timeout on %s", m.topic)
			return
		}
		if err := token.Error(); err != nil {
			log.Printf("telemetry: replay failed on %s: %v", m.topic, err)
			return
		}
	}
	if len(msgs) > 0 {
		log.Printf("telemetry: replayed %d buffered messages", len(msgs))
	}
}

// publish sends one message, queueing it in the outbox when disconnected.
func (p *RealPublisher) publish(topic string, qos byte, retained bool, payload []byte) error {
	if !p.client.IsConnected() {
		p.mu.Lock()
		p.out.add(queuedMsg{topic: topic, payload: payload, qos: qos, retained: retained})
		p.mu.Unlock()
		return nil
	}

	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// PublishHealth sends a health transition to the MQTT broker.
func (p *RealPublisher) PublishHealth(event HealthEvent) error {
	payload, err := FormatHealthPayload(event)
	if err != nil {
		return fmt.Errorf("format health payload: %w", err)
	}

	// QoS 0 (at-most-once); the next transition supersedes a lost one
	return p.publish(TopicHealth, 0, false, payload)
}

// PublishSystem sends a system lifecycle event to the MQTT broker.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}

	// QoS 1 (at-least-once) for lifecycle events - we want to ensure delivery
	return p.publish(TopicSystem, 1, event.Retained, payload)
}

// IsConnected reports whether the broker connection is up.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
