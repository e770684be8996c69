package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source is a sequential stream of interleaved float32 PCM samples in
// [-1, 1]. The producer reads it in fixed-size requests of one chunk's
// worth of samples.
//
// ReadSamples fills dst and returns the number of values written. A
// finished stream returns (0, io.EOF), and keeps returning it on every
// subsequent call.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved samples. May return fewer
	// than len(dst) values without the stream being finished.
	ReadSamples(dst []float32) (int, error)
	// Close releases the underlying file or reader, if any.
	Close() error
}

// File opens an audio file and selects a decoder by extension.
// Supported: .wav, .mp3, .ogg/.oga. The file's own sample rate and
// channel count take precedence over any configured values.
func File(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open audio file: %w", err)
	}

	var src Source
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		src, err = newWAVSource(f)
	case ".mp3":
		src, err = newMP3Source(f)
	case ".ogg", ".oga":
		src, err = newVorbisSource(f)
	default:
		f.Close()
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	return src, nil
}
