package source

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// vorbisDecoder is the slice of oggvorbis.Reader this package uses,
// kept as an interface so tests can substitute a fake.
type vorbisDecoder interface {
	Read([]float32) (int, error)
	SampleRate() int
	Channels() int
}

// vorbisSource decodes Ogg Vorbis. The decoder already yields
// interleaved float32, so samples pass through untouched.
type vorbisSource struct {
	dec    vorbisDecoder
	closer io.Closer
	eof    bool
}

func newVorbisSource(f io.ReadCloser) (*vorbisSource, error) {
	dec, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ogg vorbis: %w", err)
	}
	return &vorbisSource{
		dec:    dec,
		closer: f,
	}, nil
}

func (s *vorbisSource) SampleRate() int { return s.dec.SampleRate() }
func (s *vorbisSource) Channels() int   { return s.dec.Channels() }

func (s *vorbisSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *vorbisSource) ReadSamples(dst []float32) (int, error) {
	if s.eof {
		return 0, io.EOF
	}

	n, err := s.dec.Read(dst)
	if err != nil {
		s.eof = true
		if n == 0 {
			if err == io.EOF {
				return 0, io.EOF
			}
			return 0, fmt.Errorf("ogg vorbis decode: %w", err)
		}
	}
	return n, nil
}
