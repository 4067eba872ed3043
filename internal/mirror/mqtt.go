// internal/mirror/mqtt.go
package mirror

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/tamzrod/giga-relay/internal/command"
	"github.com/tamzrod/giga-relay/internal/logging"
)

const (
	DefaultPrefix = "giga"

	statusOnline  = "online"
	statusOffline = "offline"

	connectTimeout = 5 * time.Second
	quiesceMillis  = 250
)

// Config is the mirror's view of the mirror: config block.
type Config struct {
	Broker      string
	TopicPrefix string
	ClientID    string
}

// publisher is the slice of mqtt.Client the mirror uses.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTT copies decoded device messages to a broker.
// It implements session.Mirror. Publish never waits on the broker.
type MQTT struct {
	prefix string
	pub    publisher
	client mqtt.Client // nil in tests
}

// Dial connects to the broker. The retained status topic doubles as the
// last will, so subscribers see "offline" if the relay dies.
func Dial(cfg Config) (*MQTT, error) {
	if cfg.Broker == "" {
		return nil, errors.New("mirror: broker required")
	}
	prefix := cfg.TopicPrefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("gigarelay_%d", time.Now().Unix())
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetWill(StatusTopic(prefix), statusOffline, 1, true)

	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logging.Warningf("mirror: broker connection lost: %v", err)
	})

	client := mqtt.NewClient(opts)
	tok := client.Connect()
	if !tok.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("mirror: connect %s: timeout", cfg.Broker)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mirror: connect %s: %w", cfg.Broker, err)
	}

	logging.Infof("mirror: connected to %s as %s (prefix %s)", cfg.Broker, clientID, prefix)
	return &MQTT{prefix: prefix, pub: client, client: client}, nil
}

// ---- session.Mirror ----

func (m *MQTT) Publish(msg command.DeviceMessage) {
	body, err := Encode(msg)
	if err != nil {
		logging.Warningf("mirror: encode %s %s: %v", msg.Action, msg.Kind, err)
		return
	}
	m.pub.Publish(MessageTopic(m.prefix, msg), 0, false, body)
}

func (m *MQTT) SetOnline(online bool) {
	state := statusOffline
	if online {
		state = statusOnline
	}
	m.pub.Publish(StatusTopic(m.prefix), 1, true, state)
}

// Close marks the device offline and disconnects.
func (m *MQTT) Close() {
	if m.client == nil {
		return
	}
	tok := m.pub.Publish(StatusTopic(m.prefix), 1, true, statusOffline)
	tok.WaitTimeout(time.Second)
	m.client.Disconnect(quiesceMillis)
}

// ---- topics / payloads ----

// MessageTopic is <prefix>/<action>/<kind>, lower case.
func MessageTopic(prefix string, msg command.DeviceMessage) string {
	return fmt.Sprintf("%s/%s/%s", prefix, strings.ToLower(msg.Action.String()), strings.ToLower(msg.Kind.String()))
}

func StatusTopic(prefix string) string {
	return prefix + "/status"
}

type wireMessage struct {
	Action  string         `json:"action"`
	Kind    string         `json:"cmd"`
	Code    string         `json:"error,omitempty"`
	Payload map[string]any `json:"payload"`
	At      time.Time      `json:"at"`
}

// Encode renders msg as JSON. NAck frames carry the decoded error name.
func Encode(msg command.DeviceMessage) ([]byte, error) {
	w := wireMessage{
		Action:  msg.Action.String(),
		Kind:    msg.Kind.String(),
		Payload: msg.Payload,
		At:      time.Now().UTC(),
	}
	if w.Payload == nil {
		w.Payload = map[string]any{}
	}
	if msg.Kind == command.KindNAck {
		if code, ok := command.ErrorCodeOf(msg.Payload); ok {
			w.Code = code.Describe()
		}
	}
	return json.Marshal(w)
}
