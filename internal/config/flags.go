// internal/config/flags.go
package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Flag names shared by the CLI and ApplyFlags.
const (
	FlagConfig     = "config"
	FlagPort       = "port"
	FlagBaud       = "baud"
	FlagTimeout    = "timeout"
	FlagInterval   = "interval"
	FlagRetry      = "retry"
	FlagLogDir     = "log-dir"
	FlagDebug      = "debug"
	FlagShowBytes  = "show-bytes"
	FlagMQTTBroker = "mqtt-broker"
)

// RegisterFlags declares the override flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagConfig, "c", "", "YAML config file")
	fs.StringP(FlagPort, "p", "", "serial port (e.g. /dev/ttyACM0, COM3)")
	fs.Int(FlagBaud, DefaultBaudRate, "serial baud rate")
	fs.Duration(FlagTimeout, DefaultTimeoutMs*time.Millisecond, "serial read timeout")
	fs.Duration(FlagInterval, DefaultTelemetryIntervalMs*time.Millisecond, "minimum spacing between displayed telemetry messages (0 shows all)")
	fs.Duration(FlagRetry, 0, "automatic reconnect interval while disconnected (0 disables)")
	fs.String(FlagLogDir, "", "directory for rotating log files")
	fs.Bool(FlagDebug, false, "enable debug logging")
	fs.Bool(FlagShowBytes, false, "log raw serial bytes (implies --debug)")
	fs.String(FlagMQTTBroker, "", "mirror device messages to this MQTT broker (tcp://host:1883)")
}

// ApplyFlags copies explicitly set flags over file values.
func ApplyFlags(cfg *Config, fs *pflag.FlagSet) error {
	r := &cfg.Relay

	if fs.Changed(FlagPort) {
		v, err := fs.GetString(FlagPort)
		if err != nil {
			return err
		}
		r.Serial.Port = v
	}
	if fs.Changed(FlagBaud) {
		v, err := fs.GetInt(FlagBaud)
		if err != nil {
			return err
		}
		r.Serial.BaudRate = v
	}
	if fs.Changed(FlagTimeout) {
		v, err := fs.GetDuration(FlagTimeout)
		if err != nil {
			return err
		}
		r.Serial.TimeoutMs = int(v / time.Millisecond)
	}
	if fs.Changed(FlagInterval) {
		v, err := fs.GetDuration(FlagInterval)
		if err != nil {
			return err
		}
		ms := int(v / time.Millisecond)
		r.Display.TelemetryIntervalMs = &ms
	}
	if fs.Changed(FlagRetry) {
		v, err := fs.GetDuration(FlagRetry)
		if err != nil {
			return err
		}
		r.Session.RetryIntervalMs = int(v / time.Millisecond)
	}
	if fs.Changed(FlagLogDir) {
		v, err := fs.GetString(FlagLogDir)
		if err != nil {
			return err
		}
		r.Log.Dir = v
	}
	if fs.Changed(FlagDebug) {
		v, err := fs.GetBool(FlagDebug)
		if err != nil {
			return err
		}
		r.Log.Debug = v
	}
	if fs.Changed(FlagShowBytes) {
		v, err := fs.GetBool(FlagShowBytes)
		if err != nil {
			return err
		}
		r.Log.ShowBytes = v
	}
	if fs.Changed(FlagMQTTBroker) {
		v, err := fs.GetString(FlagMQTTBroker)
		if err != nil {
			return err
		}
		r.Mirror.Broker = v
	}
	return nil
}
