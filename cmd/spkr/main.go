// spkr plays interleaved 32-bit float pcm from stdin, or decodes and
// plays a .wav, .mp3 or .ogg file given with -input.
//
//	$ acat foo.wav bar.wav | spkr
//	$ acat mono-48000.wav | spkr -c 1 -r 48000
//	$ spkr -input foo.wav
//
// The primary goal is smooth playback: all file I/O, decoding and
// memory management happen on the main goroutine, and the audio
// device's real-time thread only ever exchanges pre-allocated chunks
// with it through bounded non-blocking queues.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Honorable-Knights-of-the-Roundtable/spkr/cmd/spkr/config"
	internaldriver "github.com/Honorable-Knights-of-the-Roundtable/spkr/internal/audiodriver"
	"github.com/Honorable-Knights-of-the-Roundtable/spkr/internal/player"
	"github.com/Honorable-Knights-of-the-Roundtable/spkr/internal/source"
	"github.com/Honorable-Knights-of-the-Roundtable/spkr/internal/utils"
	"github.com/spf13/viper"
)

func main() {
	configFilePath := flag.String("config", "", "path to an optional config file")
	channels := flag.Int("c", 0, "number of channels of the input audio")
	sampleRate := flag.Int("r", 0, "sample rate of the input audio in Hz")
	inputFile := flag.String("input", "", "audio file to play (.wav, .mp3, .ogg); raw float32 PCM is read from stdin when empty")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-c <nchannels>] [-r <sample_rate>] [-input <file>] [-config <path>]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := config.LoadConfig(*configFilePath); err != nil {
		os.Exit(1)
	}

	// Command-line flags take precedence over config file values.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "c":
			viper.Set("channels", *channels)
		case "r":
			viper.Set("samplerate", *sampleRate)
		}
	})

	logFilePointer, err := utils.ConfigureDefaultLogger(
		viper.GetString("loglevel"),
		viper.GetString("logfile"),
		slog.HandlerOptions{},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error while configuring default logger:", err)
		os.Exit(1)
	}
	if logFilePointer != nil {
		defer logFilePointer.Close()
	}

	// --------------------------------------------------------------------------------

	var src source.Source
	if *inputFile != "" {
		src, err = source.File(*inputFile)
		if err != nil {
			slog.Error("could not open input file", "input", *inputFile, "err", err)
			os.Exit(1)
		}
		// A decoded file knows its own format; it overrides the
		// configured values.
		viper.Set("channels", src.Channels())
		viper.Set("samplerate", src.SampleRate())
	} else {
		src = source.NewRaw(os.Stdin, viper.GetInt("samplerate"), viper.GetInt("channels"))
	}
	defer src.Close()

	cfg, err := player.NewConfig(
		viper.GetInt("channels"),
		viper.GetInt("samplerate"),
		viper.GetInt("poolsize"),
		viper.GetDuration("pollinterval"),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	// --------------------------------------------------------------------------------

	api, err := internaldriver.NewPortAudioAPI()
	if err != nil {
		slog.Error("failed to initialize audio backend", "err", err)
		os.Exit(1)
	}
	defer api.Close()

	if err := player.New(cfg, src, api).Run(); err != nil {
		slog.Error("playback failed", "err", err)
		api.Close()
		os.Exit(1)
	}
}
