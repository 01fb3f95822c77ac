// Package config handles importer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/pixstrip/pkg/math"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all importer settings.
type Config struct {
	Import  ImportConfig  `yaml:"import"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ImportConfig holds the mesh reconstruction options.
type ImportConfig struct {
	MirrorX     bool    `yaml:"mirror_x"`     // Negate X of every position
	VertexOrder bool    `yaml:"vertex_order"` // Reverse triangle corner order
	AxisForward string  `yaml:"axis_forward"` // Forward axis of the capture
	AxisUp      string  `yaml:"axis_up"`      // Up axis of the capture
	GlobalScale float64 `yaml:"global_scale"`
	MaxIdentity uint32  `yaml:"max_identity"` // Largest vertex ID accepted
	DecodeMode  string  `yaml:"decode_mode"`  // "strip" or "phased"
}

// OutputConfig holds converter output settings.
type OutputConfig struct {
	Format string `yaml:"format"` // obj, stl, stl-ascii, yaml
	Path   string `yaml:"path"`   // Empty or "-" writes to stdout
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Decode mode names.
const (
	DecodeModeStrip  = "strip"
	DecodeModePhased = "phased"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			MirrorX:     true,
			VertexOrder: true,
			AxisForward: "Z",
			AxisUp:      "Y",
			GlobalScale: 1.0,
			MaxIdentity: 1<<24 - 1,
			DecodeMode:  DecodeModeStrip,
		},
		Output: OutputConfig{
			Format: "obj",
			Path:   "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that cannot be checked by YAML decoding alone.
func (c *Config) Validate() error {
	if _, err := math.AxisConversionNames(c.Import.AxisForward, c.Import.AxisUp); err != nil {
		return fmt.Errorf("%w: import axes: %v", ErrInvalidConfig, err)
	}
	if c.Import.GlobalScale <= 0 {
		return fmt.Errorf("%w: global_scale must be positive, got %g", ErrInvalidConfig, c.Import.GlobalScale)
	}
	switch strings.ToLower(c.Import.DecodeMode) {
	case DecodeModeStrip, DecodeModePhased:
	default:
		return fmt.Errorf("%w: unknown decode_mode %q", ErrInvalidConfig, c.Import.DecodeMode)
	}
	return nil
}
