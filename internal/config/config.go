// internal/config/config.go
package config

import "time"

type Config struct {
	Relay RelayConfig `yaml:"relay"`
}

type RelayConfig struct {
	Serial  SerialConfig  `yaml:"serial"`
	Session SessionConfig `yaml:"session"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
	Mirror  MirrorConfig  `yaml:"mirror"`
}

// ---- SERIAL ----

type SerialConfig struct {
	Port      string `yaml:"port"`
	BaudRate  int    `yaml:"baud_rate"`
	TimeoutMs int    `yaml:"timeout_ms"` // read timeout per receive
}

// ---- SESSION ----

type SessionConfig struct {
	// 0 = reconnect only on operator request
	RetryIntervalMs int `yaml:"retry_interval_ms"`
}

// ---- DISPLAY ----

type DisplayConfig struct {
	// 0 = show every telemetry message
	TelemetryIntervalMs *int `yaml:"telemetry_interval_ms"`
}

// ---- LOG ----

type LogConfig struct {
	Dir           string `yaml:"dir"` // empty = console only
	RotateMinutes int    `yaml:"rotate_minutes"`
	Verbose       bool   `yaml:"verbose"`
	Debug         bool   `yaml:"debug"`
	ShowBytes     bool   `yaml:"show_bytes"`
}

// ---- MIRROR ----

type MirrorConfig struct {
	Broker      string `yaml:"broker"` // empty = disabled
	TopicPrefix string `yaml:"topic_prefix"`
	ClientID    string `yaml:"client_id"`
}

// ---- defaults ----

const (
	DefaultBaudRate            = 460800
	DefaultTimeoutMs           = 100
	DefaultTelemetryIntervalMs = 500
	DefaultRotateMinutes       = 24 * 60
	DefaultTopicPrefix         = "giga"
)

// ---- derived durations ----

func (s SerialConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutMs) * time.Millisecond
}

func (s SessionConfig) RetryInterval() time.Duration {
	return time.Duration(s.RetryIntervalMs) * time.Millisecond
}

func (d DisplayConfig) TelemetryInterval() time.Duration {
	if d.TelemetryIntervalMs == nil {
		return DefaultTelemetryIntervalMs * time.Millisecond
	}
	return time.Duration(*d.TelemetryIntervalMs) * time.Millisecond
}

func (l LogConfig) Rotate() time.Duration {
	return time.Duration(l.RotateMinutes) * time.Minute
}
