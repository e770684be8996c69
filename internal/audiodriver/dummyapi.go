package audiodriver

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Honorable-Knights-of-the-Roundtable/spkr/pkg/audiodriver"
)

// DummyDeviceAPI is an audiodriver.DeviceAPI with no hardware behind
// it. Streams it opens do nothing until a test calls Pump, which
// invokes the registered callback once on a synthetic device clock.
//
// This API is intended to be used in testing only!
type DummyDeviceAPI struct {
	// OpenErr, when set, is returned by OpenDefaultOutput so tests can
	// exercise the driver-failure path.
	OpenErr error

	opened chan *DummyStream
}

func NewDummyDeviceAPI() *DummyDeviceAPI {
	return &DummyDeviceAPI{
		opened: make(chan *DummyStream, 4),
	}
}

func (api *DummyDeviceAPI) OpenDefaultOutput(channels, sampleRate, framesPerPeriod int, cb audiodriver.Callback) (audiodriver.OutputStream, error) {
	if api.OpenErr != nil {
		return nil, api.OpenErr
	}
	s := &DummyStream{
		cb:               cb,
		samplesPerPeriod: framesPerPeriod * channels,
		period:           time.Duration(framesPerPeriod) * time.Second / time.Duration(sampleRate),
	}
	api.opened <- s
	return s, nil
}

// Opened yields every stream this API has opened, in order.
func (api *DummyDeviceAPI) Opened() <-chan *DummyStream {
	return api.opened
}

func (api *DummyDeviceAPI) Close() error {
	return nil
}

// PlayedPeriod is one device period as the callback produced it.
type PlayedPeriod struct {
	Samples     []float32
	ScheduledAt time.Duration
}

// DummyStream records everything the callback writes. The test thread
// stands in for the device's real-time thread by calling Pump.
type DummyStream struct {
	cb               audiodriver.Callback
	samplesPerPeriod int
	period           time.Duration

	clock     atomic.Int64 // device clock, nanoseconds
	started   atomic.Bool
	stopped   atomic.Bool
	stoppedAt atomic.Int64

	mu     sync.Mutex
	played []PlayedPeriod
}

func (s *DummyStream) Start() error {
	s.started.Store(true)
	return nil
}

func (s *DummyStream) Stop() error {
	s.stopped.Store(true)
	s.stoppedAt.Store(s.clock.Load())
	return nil
}

func (s *DummyStream) Close() error {
	return nil
}

func (s *DummyStream) Time() time.Duration {
	return time.Duration(s.clock.Load())
}

// Pump invokes the callback for one period at the current device time,
// records the output, and advances the clock by one period. Reports
// false once the stream has been stopped (or was never started).
func (s *DummyStream) Pump() bool {
	if !s.started.Load() || s.stopped.Load() {
		return false
	}
	out := make([]float32, s.samplesPerPeriod)
	at := time.Duration(s.clock.Load())
	s.cb(out, at)
	s.mu.Lock()
	s.played = append(s.played, PlayedPeriod{Samples: out, ScheduledAt: at})
	s.mu.Unlock()
	s.clock.Add(int64(s.period))
	return true
}

// Played returns a snapshot of every period pumped so far.
func (s *DummyStream) Played() []PlayedPeriod {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PlayedPeriod(nil), s.played...)
}

// StoppedAt returns the device time at which Stop was called.
func (s *DummyStream) StoppedAt() time.Duration {
	return time.Duration(s.stoppedAt.Load())
}

// Stopped reports whether Stop has been called.
func (s *DummyStream) Stopped() bool {
	return s.stopped.Load()
}
