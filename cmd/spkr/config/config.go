package config

import (
	"log/slog"

	"github.com/spf13/viper"
)

func setViperDefaults() {
	viper.SetDefault("loglevel", "info")
	viper.SetDefault("logfile", "")
	viper.SetDefault("channels", 2)
	viper.SetDefault("samplerate", 44100)
	viper.SetDefault("poolsize", 16)
	viper.SetDefault("pollinterval", "10ms")
}

// LoadConfig sets the defaults and, when configFilePath is not empty,
// layers the config file on top. A missing file at an explicitly given
// path is an error; all settings have workable defaults otherwise.
func LoadConfig(configFilePath string) error {
	setViperDefaults()

	if configFilePath == "" {
		return nil
	}

	viper.SetConfigFile(configFilePath)
	if err := viper.ReadInConfig(); err != nil {
		slog.Error("error during config read", "configFilePath", configFilePath, "err", err)
		return err
	}
	return nil
}
