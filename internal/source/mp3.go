package source

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// mp3Decoder is the slice of gomp3.Decoder this package uses, kept as
// an interface so tests can substitute a fake.
type mp3Decoder interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// mp3Source decodes MP3 to float32. go-mp3 emits 16-bit little-endian
// stereo PCM regardless of the file's own channel layout.
type mp3Source struct {
	dec    mp3Decoder
	closer io.Closer
	buf    []byte
	eof    bool
}

func newMP3Source(f io.ReadCloser) (*mp3Source, error) {
	dec, err := gomp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode mp3: %w", err)
	}
	return &mp3Source{
		dec:    dec,
		closer: f,
	}, nil
}

func (s *mp3Source) SampleRate() int { return s.dec.SampleRate() }
func (s *mp3Source) Channels() int   { return 2 }

func (s *mp3Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *mp3Source) ReadSamples(dst []float32) (int, error) {
	if s.eof {
		return 0, io.EOF
	}
	want := len(dst) * 2
	if cap(s.buf) < want {
		s.buf = make([]byte, want)
	}

	n, err := s.dec.Read(s.buf[:want])
	samples := n / 2
	for i := 0; i < samples; i++ {
		v := int16(uint16(s.buf[2*i]) | uint16(s.buf[2*i+1])<<8)
		dst[i] = float32(v) / 32768.0
	}

	if err != nil {
		s.eof = true
		if samples == 0 {
			if err == io.EOF {
				return 0, io.EOF
			}
			return 0, fmt.Errorf("mp3 decode: %w", err)
		}
	}
	return samples, nil
}
