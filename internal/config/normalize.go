// internal/config/normalize.go
package config

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	r := &cfg.Relay

	if r.Serial.BaudRate == 0 {
		r.Serial.BaudRate = DefaultBaudRate
	}
	if r.Serial.TimeoutMs == 0 {
		r.Serial.TimeoutMs = DefaultTimeoutMs
	}

	if r.Display.TelemetryIntervalMs == nil {
		v := DefaultTelemetryIntervalMs
		r.Display.TelemetryIntervalMs = &v
	}

	if r.Log.RotateMinutes == 0 {
		r.Log.RotateMinutes = DefaultRotateMinutes
	}
	// show_bytes output goes through Debugf
	if r.Log.ShowBytes {
		r.Log.Debug = true
	}

	if r.Mirror.Broker != "" && r.Mirror.TopicPrefix == "" {
		r.Mirror.TopicPrefix = DefaultTopicPrefix
	}
}
