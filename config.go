package morsetree

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every error Config.Validate returns.
var ErrInvalidConfig = errors.New("invalid config")

// Recommended UI ranges for the adjustable parameters. Validate does not
// enforce them; they bound sliders and key adjustments.
const (
	MinBranchAngle = 5.0
	MaxBranchAngle = 80.0
	MinDecay       = 0.5
	MaxDecay       = 0.95
)

// Config holds the growth parameters read by deriveChild and the admission
// check. A Config change only affects branches derived after it.
type Config struct {
	// BranchAngle is the fan spread in degrees.
	BranchAngle float64 `yaml:"branch_angle"`
	// LengthDecay and WidthDecay scale each child relative to its parent.
	LengthDecay float64 `yaml:"length_decay"`
	WidthDecay  float64 `yaml:"width_decay"`
	// MinLength and MinWidth are the floors decay clamps to.
	MinLength float64 `yaml:"min_length"`
	MinWidth  float64 `yaml:"min_width"`
	// Clearance is the gap required between a candidate branch and any
	// existing non-parent branch, on top of half their combined widths.
	Clearance float64 `yaml:"clearance"`
}

// DefaultConfig returns the parameters of the reference tree.
func DefaultConfig() Config {
	return Config{
		BranchAngle: 40,
		LengthDecay: 0.72,
		WidthDecay:  0.8,
		MinLength:   10,
		MinWidth:    0.6,
		Clearance:   2.0,
	}
}

// Validate reports the first parameter outside its legal domain.
func (c Config) Validate() error {
	switch {
	case math.IsNaN(c.BranchAngle) || math.IsInf(c.BranchAngle, 0):
		return fmt.Errorf("%w: branch_angle must be finite", ErrInvalidConfig)
	case !(c.LengthDecay > 0 && c.LengthDecay < 1):
		return fmt.Errorf("%w: length_decay %v not in (0,1)", ErrInvalidConfig, c.LengthDecay)
	case !(c.WidthDecay > 0 && c.WidthDecay < 1):
		return fmt.Errorf("%w: width_decay %v not in (0,1)", ErrInvalidConfig, c.WidthDecay)
	case !(c.MinLength > 0):
		return fmt.Errorf("%w: min_length %v must be positive", ErrInvalidConfig, c.MinLength)
	case !(c.MinWidth > 0):
		return fmt.Errorf("%w: min_width %v must be positive", ErrInvalidConfig, c.MinWidth)
	case !(c.Clearance >= 0) || math.IsInf(c.Clearance, 0):
		return fmt.Errorf("%w: clearance %v must be non-negative", ErrInvalidConfig, c.Clearance)
	}
	return nil
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
// Keys absent from data keep their default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}
