package audiodriver

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Honorable-Knights-of-the-Roundtable/spkr/pkg/audiodriver"
	"github.com/google/uuid"
	"github.com/gordonklaus/portaudio"
)

// PortAudioAPI implements audiodriver.DeviceAPI on top of PortAudio.
// PortAudio owns the real-time thread that invokes the registered
// callback, and supplies both the per-period DAC timestamps and the
// stream clock used by the drain sequencer.
type PortAudioAPI struct {
	logger *slog.Logger
	uuid   uuid.UUID
}

// NewPortAudioAPI initializes the PortAudio library. The returned API
// must be closed to release it.
func NewPortAudioAPI() (*PortAudioAPI, error) {
	uuid := uuid.New()
	logger := slog.Default().With(
		"portaudio api uuid", uuid,
	)

	if err := portaudio.Initialize(); err != nil {
		logger.Error("failed to initialize portaudio", "err", err)
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	logger.Debug("portaudio initialized", "version", portaudio.VersionText())

	return &PortAudioAPI{
		logger: logger,
		uuid:   uuid,
	}, nil
}

// OpenDefaultOutput opens a float32 callback stream on the default
// output device. PortAudio hands the callback an interleaved output
// buffer and the DAC time of its first sample, which map directly onto
// the audiodriver.Callback contract.
func (api *PortAudioAPI) OpenDefaultOutput(channels, sampleRate, framesPerPeriod int, cb audiodriver.Callback) (audiodriver.OutputStream, error) {
	stream, err := portaudio.OpenDefaultStream(
		0, channels, float64(sampleRate), framesPerPeriod,
		func(out []float32, timeInfo portaudio.StreamCallbackTimeInfo) {
			cb(out, timeInfo.OutputBufferDacTime)
		},
	)
	if err != nil {
		api.logger.Error("failed to open default output stream",
			"err", err,
			"channels", channels,
			"sampleRate", sampleRate,
			"framesPerPeriod", framesPerPeriod,
		)
		return nil, fmt.Errorf("failed to open output stream: %w", err)
	}

	api.logger.Debug("opened default output stream",
		"channels", channels,
		"sampleRate", sampleRate,
		"framesPerPeriod", framesPerPeriod,
	)

	return &portAudioStream{stream: stream}, nil
}

// Close terminates the PortAudio library.
func (api *PortAudioAPI) Close() error {
	api.logger.Debug("terminating portaudio")
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("failed to terminate portaudio: %w", err)
	}
	return nil
}

type portAudioStream struct {
	stream *portaudio.Stream
}

func (s *portAudioStream) Start() error {
	return s.stream.Start()
}

func (s *portAudioStream) Stop() error {
	return s.stream.Stop()
}

func (s *portAudioStream) Close() error {
	return s.stream.Close()
}

func (s *portAudioStream) Time() time.Duration {
	return s.stream.Time()
}
