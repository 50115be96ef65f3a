package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Settings mirrors command line flags, flags set explicitly win
type Settings struct {
	Addr     string `yaml:"addr"`
	Dir      string `yaml:"dir"`
	Pack     string `yaml:"pack"`
	Encoding string `yaml:"encoding"`
	LogDir   string `yaml:"log_dir"`
}

func DefaultSettings() Settings {
	return Settings{
		Addr:     ":8000",
		Encoding: GetEncoding().String(),
	}
}

func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, errors.Wrapf(err, "Failed to read settings %q", path)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, errors.Wrapf(err, "Failed to parse settings %q", path)
	}
	return s, nil
}

// Apply activates global parts of the settings
func (s Settings) Apply() error {
	if s.Encoding != "" {
		if err := SetEncoding(s.Encoding); err != nil {
			return err
		}
	}
	logDir = s.LogDir
	return nil
}

var logDir string

// LogDir is where per-file decode traces go, empty disables them
func LogDir() string {
	return logDir
}
