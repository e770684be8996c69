package source

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavSource decodes a .WAV file incrementally, one chunk's worth of
// samples per read, converting integer PCM to float32.
type wavSource struct {
	dec    *wav.Decoder
	closer io.Closer
	data   []int
	scale  float32
	eof    bool
}

func newWAVSource(f io.ReadSeeker) (*wavSource, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		return nil, ErrNotWavFile
	}

	src := &wavSource{
		dec:   dec,
		scale: float32(int(1) << (dec.BitDepth - 1)),
	}
	if closer, ok := f.(io.Closer); ok {
		src.closer = closer
	}
	return src, nil
}

func (s *wavSource) SampleRate() int { return int(s.dec.SampleRate) }
func (s *wavSource) Channels() int   { return int(s.dec.NumChans) }

func (s *wavSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	if s.eof {
		return 0, io.EOF
	}
	if cap(s.data) < len(dst) {
		s.data = make([]int, len(dst))
	}
	buf := &goaudio.IntBuffer{Data: s.data[:len(dst)]}

	// PCMBuffer swallows io.EOF and reports a short (possibly zero)
	// sample count instead.
	n, err := s.dec.PCMBuffer(buf)
	if err != nil {
		return 0, fmt.Errorf("wav decode: %w", err)
	}
	if n == 0 {
		s.eof = true
		return 0, io.EOF
	}

	for i := 0; i < n; i++ {
		dst[i] = float32(buf.Data[i]) / s.scale
	}
	return n, nil
}
