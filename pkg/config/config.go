// Package config loads application configuration from defaults and
// environment variables.
package config

// Config is the application configuration.
type Config struct {
	Log    LogConfig    `koanf:"log"    validate:"required"`
	Output OutputConfig `koanf:"output" validate:"required"`
	Limits LimitsConfig `koanf:"limits" validate:"required"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `koanf:"json"`
}

// OutputConfig controls definition output formatting.
type OutputConfig struct {
	// Indent pretty-prints the emitted definition JSON.
	Indent bool `koanf:"indent"`
}

// LimitsConfig bounds document shape to keep serialization predictable on
// hostile or corrupted input files.
type LimitsConfig struct {
	// MaxNodes caps the number of nodes a document may declare.
	MaxNodes int `koanf:"max_nodes" validate:"min=1"`
	// MaxValueSegments caps the segments of a single parameter value.
	MaxValueSegments int `koanf:"max_value_segments" validate:"min=1"`
	// MaxPathDepth caps the segment count of a parameter path.
	MaxPathDepth int `koanf:"max_path_depth" validate:"min=1"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info"},
		Output: OutputConfig{Indent: true},
		Limits: LimitsConfig{
			MaxNodes:         1000,
			MaxValueSegments: 500,
			MaxPathDepth:     32,
		},
	}
}
