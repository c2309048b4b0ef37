// Package config handles editor configuration loading and management.
package config

// Config holds all editor settings.
type Config struct {
	Pack    PackConfig    `yaml:"pack"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// PackConfig holds the resource pack location and reload behavior.
type PackConfig struct {
	// Root is the resource pack directory, the one containing assets/.
	Root string `yaml:"root"`

	// Watch reloads the pack when files change on disk.
	Watch bool `yaml:"watch"`
}

// ViewerConfig holds display settings for the texture viewer.
type ViewerConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	VSync  bool `yaml:"vsync"`

	// Zoom is the starting texel size in pixels, 1 to 64.
	Zoom int `yaml:"zoom"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Pack: PackConfig{
			Root:  "",
			Watch: true,
		},
		Viewer: ViewerConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
			Zoom:   8,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
