// internal/status/snapshot.go
package status

// Snapshot is a point-in-time copy of the session task's counters.
// It carries no behaviour; the session task is the only producer.
type Snapshot struct {
	State State

	Sent         uint64 // commands written to the link
	Received     uint64 // messages decoded from the link
	Suppressed   uint64 // telemetry hidden by the display limiter
	DecodeErrors uint64 // frames that failed COBS/CRC/CBOR
	Reconnects   uint64 // successful opens after the first

	Triggered bool // last sensor trigger state reported by the device
}
