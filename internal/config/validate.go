// internal/config/validate.go
package config

import (
	"fmt"
	"strings"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Zero values are legal where Normalize supplies a default.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	r := cfg.Relay

	// ------------------------------------------------------------
	// SERIAL
	// ------------------------------------------------------------

	if strings.TrimSpace(r.Serial.Port) == "" {
		return fmt.Errorf("relay.serial.port is required")
	}
	if r.Serial.BaudRate < 0 {
		return fmt.Errorf("relay.serial.baud_rate must be > 0 (got %d)", r.Serial.BaudRate)
	}
	if r.Serial.TimeoutMs < 0 {
		return fmt.Errorf("relay.serial.timeout_ms must be > 0 (got %d)", r.Serial.TimeoutMs)
	}

	// ------------------------------------------------------------
	// SESSION / DISPLAY
	// ------------------------------------------------------------

	if r.Session.RetryIntervalMs < 0 {
		return fmt.Errorf("relay.session.retry_interval_ms must be >= 0 (got %d)", r.Session.RetryIntervalMs)
	}
	if v := r.Display.TelemetryIntervalMs; v != nil && *v < 0 {
		return fmt.Errorf("relay.display.telemetry_interval_ms must be >= 0 (got %d)", *v)
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	if r.Log.RotateMinutes < 0 {
		return fmt.Errorf("relay.log.rotate_minutes must be >= 0 (got %d)", r.Log.RotateMinutes)
	}

	// ------------------------------------------------------------
	// MIRROR (OPT-IN)
	// ------------------------------------------------------------

	if r.Mirror.Broker == "" {
		if r.Mirror.TopicPrefix != "" || r.Mirror.ClientID != "" {
			return fmt.Errorf("relay.mirror: topic_prefix/client_id set but broker is empty")
		}
		return nil
	}
	if !strings.Contains(r.Mirror.Broker, "://") {
		return fmt.Errorf("relay.mirror.broker %q must include a scheme (tcp://, ssl://, ws://)", r.Mirror.Broker)
	}
	if strings.ContainsAny(r.Mirror.TopicPrefix, "+#") {
		return fmt.Errorf("relay.mirror.topic_prefix %q must not contain MQTT wildcards", r.Mirror.TopicPrefix)
	}
	if strings.HasSuffix(r.Mirror.TopicPrefix, "/") {
		return fmt.Errorf("relay.mirror.topic_prefix %q must not end with '/'", r.Mirror.TopicPrefix)
	}

	return nil
}
