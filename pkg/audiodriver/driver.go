package audiodriver

import "time"

// Callback produces one device period of audio. The driver invokes it
// on its own real-time thread, never on the goroutine that opened the
// stream. out is the device's interleaved float32 output buffer for
// the period, and scheduledAt is the device-clock time at which the
// first sample of out will leave the speaker.
//
// Implementations of Callback must be bounded-time: no allocation, no
// locks, no I/O. Anything unbounded here is an audible glitch.
type Callback func(out []float32, scheduledAt time.Duration)

// OutputStream is a running (or startable) audio output stream on some
// hardware device.
//
// Start, Stop and Close may fail; Time may not. Time reports the
// device clock in the same domain as the scheduledAt values handed to
// the Callback, and keeps advancing while the stream runs.
type OutputStream interface {
	Start() error
	Stop() error
	Close() error
	Time() time.Duration
}

// DeviceAPI abstracts the host audio backend.
//
// Intended to be a small wrapper around PortAudio or a similar
// callback-driven host API. A dummy implementation driven by tests
// lives alongside the real one.
type DeviceAPI interface {
	// OpenDefaultOutput opens an output stream on the default device.
	// The driver will invoke cb once per period with framesPerPeriod
	// frames until the stream is stopped.
	OpenDefaultOutput(channels, sampleRate, framesPerPeriod int, cb Callback) (OutputStream, error)

	// Close releases the backend. No stream may be used afterwards.
	Close() error
}
