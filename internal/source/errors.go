package source

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported audio file format")
	ErrNotWavFile        = errors.New("not a valid wav file")
)
