package player

import (
	"os"
	"time"
)

const defaultPollInterval = 10 * time.Millisecond

// Config is the immutable playback configuration, constructed once at
// startup and shared by reference with the producer loop and the audio
// callback.
type Config struct {
	Channels       int
	SampleRate     int
	FramesPerChunk int
	PoolSize       int

	// PollInterval is how long the producer sleeps between attempts to
	// reclaim a chunk or to check the device clock. It bounds producer
	// wakeup latency only; the callback never waits on anything.
	PollInterval time.Duration
}

// NewConfig validates the playback parameters and derives the chunk
// geometry: one chunk holds one page worth of float32 samples, so
// framesPerChunk = pageSize / sizeof(float32) / channels.
func NewConfig(channels, sampleRate, poolSize int, pollInterval time.Duration) (Config, error) {
	if channels <= 0 {
		return Config{}, ErrNonPositiveChannels
	}
	if sampleRate <= 0 {
		return Config{}, ErrNonPositiveSampleRate
	}
	if poolSize <= 0 {
		return Config{}, ErrNonPositivePoolSize
	}
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	return Config{
		Channels:       channels,
		SampleRate:     sampleRate,
		FramesPerChunk: os.Getpagesize() / 4 / channels,
		PoolSize:       poolSize,
		PollInterval:   pollInterval,
	}, nil
}

// SamplesPerChunk is the fixed sample count of every chunk.
func (c Config) SamplesPerChunk() int {
	return c.FramesPerChunk * c.Channels
}

// ChunkDuration is the real-world playback time one chunk represents.
func (c Config) ChunkDuration() time.Duration {
	return time.Duration(c.FramesPerChunk) * time.Second / time.Duration(c.SampleRate)
}
