package mqtt

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/require"
)

type fakeToken struct{ err error }

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{}          { ch := make(chan struct{}); close(ch); return ch }
func (t *fakeToken) Error() error                   { return t.err }

type fakeClient struct {
	mu         sync.Mutex
	connected  bool
	published  [][]byte
	topics     []string
	publishErr error
	failures   int
}

func (c *fakeClient) IsConnected() bool { return c.connected }

func (c *fakeClient) Connect() paho.Token {
	c.connected = true
	return &fakeToken{}
}

func (c *fakeClient) Disconnect(uint) { c.connected = false }

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failures > 0 {
		c.failures--
		return &fakeToken{err: c.publishErr}
	}
	c.published = append(c.published, payload.([]byte))
	c.topics = append(c.topics, topic)
	return &fakeToken{}
}

func withFakeClient(t *testing.T, c *fakeClient) {
	t.Helper()
	orig := newMQTTClient
	newMQTTClient = func(*paho.ClientOptions) pahoClient { return c }
	t.Cleanup(func() { newMQTTClient = orig })
}

func TestPublishResult(t *testing.T) {
	fake := &fakeClient{}
	withFakeClient(t, fake)

	pub, err := NewPahoPublisher(Config{Broker: "tcp://localhost:1883", ClientID: "test"})
	require.NoError(t, err)
	defer pub.Disconnect()

	require.NoError(t, pub.PublishResult(map[string]any{"roi": 42.5}))
	require.Len(t, fake.published, 1)
	require.Equal(t, "v2g/analysis/result", fake.topics[0])

	var decoded map[string]float64
	require.NoError(t, json.Unmarshal(fake.published[0], &decoded))
	require.InDelta(t, 42.5, decoded["roi"], 1e-9)
}

func TestPublishResultRetries(t *testing.T) {
	fake := &fakeClient{failures: 2, publishErr: errors.New("broker gone")}
	withFakeClient(t, fake)

	pub, err := NewPahoPublisher(Config{Broker: "tcp://localhost:1883", ClientID: "test", BackoffMS: 1})
	require.NoError(t, err)

	require.NoError(t, pub.PublishResult("payload"))
	require.Len(t, fake.published, 1)
}

func TestPublishResultExhaustsRetries(t *testing.T) {
	fake := &fakeClient{failures: 10, publishErr: errors.New("broker gone")}
	withFakeClient(t, fake)

	pub, err := NewPahoPublisher(Config{Broker: "tcp://localhost:1883", ClientID: "test", MaxRetries: 2, BackoffMS: 1})
	require.NoError(t, err)
	require.Error(t, pub.PublishResult("payload"))
}

func TestDisconnect(t *testing.T) {
	fake := &fakeClient{}
	withFakeClient(t, fake)

	pub, err := NewPahoPublisher(Config{Broker: "tcp://localhost:1883", ClientID: "test"})
	require.NoError(t, err)
	pub.Disconnect()
	require.False(t, fake.connected)
}

func TestConfigTLSRequiresAllPaths(t *testing.T) {
	cfg := Config{ClientCert: "cert.pem"}
	_, err := cfg.LoadTLSConfig()
	require.Error(t, err)
}
