package player

import "errors"

var (
	ErrNonPositiveChannels   = errors.New("channel count must be positive")
	ErrNonPositiveSampleRate = errors.New("sample rate must be positive")
	ErrNonPositivePoolSize   = errors.New("pool size must be positive")

	// ErrChunkAccounting means a queue send that the pool sizing
	// guarantees room for was rejected anyway. The chunk bookkeeping is
	// broken at that point and retrying would only mask it.
	ErrChunkAccounting = errors.New("playback queue rejected a chunk; pool accounting is broken")
)
