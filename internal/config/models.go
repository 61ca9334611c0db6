package config

import "github.com/muurk/formguard/internal/wrapper"

// Settings is the whole settings file.
type Settings struct {
	Version  int                    `yaml:"version"`
	LogLevel string                 `yaml:"log_level,omitempty" env:"LOG_LEVEL"`
	Scroll   wrapper.ScrollSettings `yaml:"scroll" envPrefix:"SCROLL_"`
	Server   ServerSettings         `yaml:"server" envPrefix:"SERVER_"`
}

// ServerSettings configures `formguard serve`.
type ServerSettings struct {
	Host      string `yaml:"host" env:"HOST"`
	Port      int    `yaml:"port" env:"PORT"`
	Advertise bool   `yaml:"advertise" env:"ADVERTISE"` // announce over mDNS
}

// Defaults
const (
	DefaultTerminalOffset = 2 // rows kept above a field scrolled into view
	DefaultServerHost     = "127.0.0.1"
	DefaultServerPort     = 8765
)

// NewSettings returns settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Scroll: wrapper.ScrollSettings{
			VerticalOffset: DefaultTerminalOffset,
		},
		Server: ServerSettings{
			Host: DefaultServerHost,
			Port: DefaultServerPort,
		},
	}
}
