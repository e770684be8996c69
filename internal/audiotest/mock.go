package audiotest

import (
	"io"
	"math"
)

// MockSource is a test helper that generates interleaved float32 audio.
// It satisfies the source.Source interface without importing it.
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int
	generated   int

	// maxPerRead caps the samples returned by one ReadSamples call so
	// tests can force short reads. Zero means no cap.
	maxPerRead int

	waveform func(frame, channel int) float32
}

// NewMockSource generates totalFrames frames from the given waveform
// function.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSineSource generates a sine wave on every channel.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame, channel int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewCountingSource numbers every sample sequentially (scaled down to
// stay in [-1, 1] for realistic sample counts), which lets tests check
// ordering across chunk boundaries.
func NewCountingSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame, channel int) float32 {
		return float32(frame*channels+channel) / (1 << 24)
	})
}

// NewEmptySource yields EOF on the first read.
func NewEmptySource(sampleRate, channels int) *MockSource {
	return NewMockSource(sampleRate, channels, 0, nil)
}

// SetMaxPerRead caps how many samples a single ReadSamples call may
// return, to simulate decoders that deliver less than asked.
func (m *MockSource) SetMaxPerRead(samples int) {
	m.maxPerRead = samples
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) Close() error    { return nil }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	request := len(dst)
	if m.maxPerRead > 0 && request > m.maxPerRead {
		request = m.maxPerRead
	}

	frames := request / m.channels
	if remaining := m.totalFrames - m.generated; frames > remaining {
		frames = remaining
	}

	for frame := 0; frame < frames; frame++ {
		for ch := 0; ch < m.channels; ch++ {
			dst[frame*m.channels+ch] = m.waveform(m.generated+frame, ch)
		}
	}
	m.generated += frames
	return frames * m.channels, nil
}
