package chunk

import "time"

// Chunk is a fixed-size buffer of interleaved float32 samples, the
// unit of ownership handed between the producer and the audio
// callback. At any instant exactly one holder may touch it: the
// producer, one of the two handoff queues, or (transiently) the
// callback itself.
type Chunk struct {
	// Samples holds framesPerChunk * channels interleaved values.
	// The length never changes over the chunk's lifetime.
	Samples []float32

	// OutTime is the device-clock time at which these samples are
	// scheduled to leave the speaker. Written only by the audio
	// callback; read only by the producer after the chunk has been
	// reclaimed through the return queue.
	OutTime time.Duration
}

// New allocates a single chunk sized for one device period.
func New(framesPerChunk, channels int) *Chunk {
	return &Chunk{
		Samples: make([]float32, framesPerChunk*channels),
	}
}

// NewPool allocates the fixed set of n chunks used for the lifetime of
// a playback run. No chunk is created or destroyed after this while
// the device stream is active; that is what keeps the callback thread
// free of allocation.
func NewPool(n, framesPerChunk, channels int) []*Chunk {
	pool := make([]*Chunk, n)
	for i := range pool {
		pool[i] = New(framesPerChunk, channels)
	}
	return pool
}
