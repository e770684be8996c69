// Package player streams a sample source to an audio output device
// with gap-free pacing.
//
// Two threads share a fixed pool of pre-allocated chunks. The producer
// (an ordinary goroutine) fills chunks from the source and pushes them
// onto the playback queue; the device driver's real-time thread pops
// them in the audio callback, copies them to the hardware buffer, and
// hands them back through the return queue for refilling. Both queues
// are sized to hold the entire pool, so producer-side sends always
// have room and the callback side never needs to wait, allocate, or
// free.
package player

import (
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Honorable-Knights-of-the-Roundtable/spkr/internal/chunk"
	"github.com/Honorable-Knights-of-the-Roundtable/spkr/internal/source"
	"github.com/Honorable-Knights-of-the-Roundtable/spkr/pkg/audiodriver"
	"github.com/Honorable-Knights-of-the-Roundtable/spkr/pkg/spsc"
	"github.com/google/uuid"
)

// State of the producer. Transitions only ever move forward.
type State int32

const (
	StatePreload State = iota
	StateStreaming
	StateDraining
	StateWaitingForPlaybackEnd
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StatePreload:
		return "preload"
	case StateStreaming:
		return "streaming"
	case StateDraining:
		return "draining"
	case StateWaitingForPlaybackEnd:
		return "waiting for playback end"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Player owns one playback run: the chunk pool, the two handoff
// queues, the producer loop and the shutdown sequencing.
type Player struct {
	logger *slog.Logger
	uuid   uuid.UUID

	cfg Config
	src source.Source
	api audiodriver.DeviceAPI

	// playback carries filled chunks producer -> callback; returns
	// carries played chunks callback -> producer. Each is single
	// producer, single consumer.
	playback *spsc.Queue[*chunk.Chunk]
	returns  *spsc.Queue[*chunk.Chunk]

	state atomic.Int32

	// Producer-side bookkeeping, touched only by Run's goroutine.
	inFlight  int
	watermark time.Duration
}

// New builds a player for one run. The source's sample rate and
// channel count must match cfg; the player does no conversion.
func New(cfg Config, src source.Source, api audiodriver.DeviceAPI) *Player {
	uuid := uuid.New()
	logger := slog.Default().With(
		"player uuid", uuid,
	)

	return &Player{
		logger:   logger,
		uuid:     uuid,
		cfg:      cfg,
		src:      src,
		api:      api,
		playback: spsc.New[*chunk.Chunk](cfg.PoolSize),
		returns:  spsc.New[*chunk.Chunk](cfg.PoolSize),
	}
}

// State reports the producer's current phase. Safe from any goroutine.
func (p *Player) State() State {
	return State(p.state.Load())
}

func (p *Player) setState(s State) {
	p.state.Store(int32(s))
	p.logger.Debug("state change", "state", s)
}

// Run plays the source to completion and returns once every accepted
// chunk has fully left the speaker. A source that yields no samples at
// all is not an error: the device stream is never opened and Run
// returns nil immediately.
func (p *Player) Run() error {
	preloaded, err := p.preload()
	if err != nil {
		p.setState(StateTerminated)
		return err
	}
	if preloaded == 0 {
		p.logger.Info("source produced no samples, nothing to play")
		p.setState(StateTerminated)
		return nil
	}
	p.inFlight = preloaded

	stream, err := p.api.OpenDefaultOutput(p.cfg.Channels, p.cfg.SampleRate, p.cfg.FramesPerChunk, p.callback)
	if err != nil {
		p.setState(StateTerminated)
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		p.setState(StateTerminated)
		return err
	}

	p.setState(StateStreaming)
	p.logger.Info("playback started",
		"channels", p.cfg.Channels,
		"sampleRate", p.cfg.SampleRate,
		"framesPerChunk", p.cfg.FramesPerChunk,
		"chunksPreloaded", preloaded,
	)

	if err := p.produce(); err != nil {
		stream.Stop()
		stream.Close()
		p.setState(StateTerminated)
		return err
	}

	// Every chunk is back in producer hands, but the last one handed to
	// the device is still playing. Wait until the device clock passes
	// the moment its final sample leaves the speaker.
	p.setState(StateWaitingForPlaybackEnd)
	end := p.watermark + p.cfg.ChunkDuration()
	for stream.Time() < end {
		time.Sleep(p.cfg.PollInterval)
	}

	if err := stream.Stop(); err != nil {
		p.logger.Error("error stopping output stream", "err", err)
	}
	if err := stream.Close(); err != nil {
		p.logger.Error("error closing output stream", "err", err)
	}
	p.setState(StateTerminated)
	p.logger.Info("playback finished", "lastOutTime", p.watermark)
	return nil
}

// preload allocates the chunk pool and fills as much of it as the
// source allows, queueing every filled chunk for playback before the
// stream starts. Returns the number of chunks actually in circulation;
// the rest of the pool is dropped.
func (p *Player) preload() (int, error) {
	pool := chunk.NewPool(p.cfg.PoolSize, p.cfg.FramesPerChunk, p.cfg.Channels)
	for i, c := range pool {
		if !p.fill(c) {
			return i, nil
		}
		if !p.playback.TrySend(c) {
			return i, ErrChunkAccounting
		}
	}
	return len(pool), nil
}

// produce runs the steady-state refill loop, then the drain phase.
func (p *Player) produce() error {
	for {
		c := p.reclaim()
		if !p.fill(c) {
			// Source exhausted. The chunk just reclaimed has already
			// been played; its stamp seeds the drain watermark.
			p.watermark = c.OutTime
			p.inFlight--
			p.setState(StateDraining)
			break
		}
		if !p.playback.TrySend(c) {
			return ErrChunkAccounting
		}
	}

	// No refills past this point. Collect the chunks still circulating
	// and keep the watermark at the latest scheduled output time seen.
	for p.inFlight > 0 {
		c := p.reclaim()
		if c.OutTime > p.watermark {
			p.watermark = c.OutTime
		}
		p.inFlight--
	}
	return nil
}

// reclaim spin-waits for the callback to hand back a chunk. Only the
// producer idles here; nothing ever waits on the callback thread.
func (p *Player) reclaim() *chunk.Chunk {
	for {
		if c, ok := p.returns.TryReceive(); ok {
			return c
		}
		time.Sleep(p.cfg.PollInterval)
	}
}

// fill loads one chunk from the source, zero-padding a short final
// read. Reports false when the source yielded nothing at all, which is
// the exhaustion signal.
func (p *Player) fill(c *chunk.Chunk) bool {
	total := 0
	for total < len(c.Samples) {
		n, err := p.src.ReadSamples(c.Samples[total:])
		total += n
		if err != nil {
			if err != io.EOF {
				p.logger.Warn("error reading sample source, treating as end of input", "err", err)
			}
			break
		}
		if n == 0 {
			break
		}
	}
	if total == 0 {
		return false
	}
	clear(c.Samples[total:])
	return true
}

// callback runs on the device driver's real-time thread, once per
// output period. It is the only code in the system with a hard timing
// bound: no allocation, no locks, no logging, no I/O.
func (p *Player) callback(out []float32, scheduledAt time.Duration) {
	c, ok := p.playback.TryReceive()
	if !ok {
		// Starved. The device still needs a full period, so play
		// silence rather than stale memory.
		clear(out)
		return
	}
	if len(c.Samples) != len(out) {
		// Chunks are sized to exactly one device period. A mismatch is
		// a broken contract, not a runtime condition.
		panic("player: chunk size does not match device period")
	}
	copy(out, c.Samples)
	c.OutTime = scheduledAt

	// The return queue holds the whole pool, so this send cannot fail
	// while the accounting is sound. If it fails anyway the chunk is
	// abandoned: the callback cannot free memory or report an error
	// without breaking its real-time contract, and the pool bounds the
	// loss. The producer notices one fewer chunk only at drain, never
	// as an error.
	p.returns.TrySend(c)
}
