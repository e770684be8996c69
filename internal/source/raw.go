package source

import (
	"encoding/binary"
	"io"
	"math"
)

// rawSource reads interleaved little-endian float32 PCM straight from
// an io.Reader, typically stdin. The rate and channel count cannot be
// derived from the bytes, so the caller supplies them.
type rawSource struct {
	r          io.Reader
	sampleRate int
	channels   int
	buf        []byte
	eof        bool
}

// NewRaw wraps r as a raw float32 PCM source.
func NewRaw(r io.Reader, sampleRate, channels int) Source {
	return &rawSource{
		r:          r,
		sampleRate: sampleRate,
		channels:   channels,
	}
}

func (s *rawSource) SampleRate() int { return s.sampleRate }
func (s *rawSource) Channels() int   { return s.channels }
func (s *rawSource) Close() error    { return nil }

func (s *rawSource) ReadSamples(dst []float32) (int, error) {
	if s.eof {
		return 0, io.EOF
	}
	want := len(dst) * 4
	if cap(s.buf) < want {
		s.buf = make([]byte, want)
	}

	n, err := io.ReadFull(s.r, s.buf[:want])
	samples := n / 4
	for i := 0; i < samples; i++ {
		bits := binary.LittleEndian.Uint32(s.buf[4*i:])
		dst[i] = math.Float32frombits(bits)
	}

	if err != nil {
		// A short read means the stream is about to end; whatever was
		// decoded is still delivered and the next call reports EOF.
		s.eof = true
		if samples == 0 {
			return 0, io.EOF
		}
	}
	return samples, nil
}
