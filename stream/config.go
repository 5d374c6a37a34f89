// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the construction parameters of a Processor. Capacity is
// expressed in multiples of the window size so the sizing invariant
// (capacity at least twice the window) is visible in the configuration
// itself.
type Config struct {
	// WindowSize is the block length handed to the transform. Power
	// of two, at least 16.
	WindowSize int `yaml:"window_size"`
	// HopSize is the number of new samples consumed per window,
	// between 1 and WindowSize. WindowSize-HopSize samples overlap
	// between successive windows.
	HopSize int `yaml:"hop_size"`
	// Window selects the weighting applied before overlap-add.
	Window WindowFunc `yaml:"window_function"`
	// TukeyTaper is the taper fraction when Window is Tukey.
	TukeyTaper float64 `yaml:"tukey_taper"`

	// Ring capacity bounds as multiples of WindowSize. Each must be
	// a power of two; the minimum multiplier is 2 so a full ring
	// always contains at least one complete window.
	InitialCapacityMultiplier int `yaml:"initial_capacity_multiplier"`
	MinCapacityMultiplier     int `yaml:"min_capacity_multiplier"`
	MaxCapacityMultiplier     int `yaml:"max_capacity_multiplier"`

	// AdaptiveResize enables the capacity controller.
	AdaptiveResize bool `yaml:"adaptive_resize"`
	// CheckIntervalMs is the minimum wall-time spacing between
	// capacity evaluations, in milliseconds.
	CheckIntervalMs int `yaml:"check_interval_ms"`
	// HighUtilization and LowUtilization are the grow/shrink
	// thresholds.
	HighUtilization float64 `yaml:"high_utilization"`
	LowUtilization  float64 `yaml:"low_utilization"`
}

// DefaultConfig returns the documented defaults: a 1024-sample Hann
// window at 50% overlap, capacity 4x the window adaptable between 2x
// and 16x, checked once per second.
func DefaultConfig() Config {
	return Config{
		WindowSize:                1024,
		HopSize:                   512,
		Window:                    Hann,
		TukeyTaper:                DefaultTukeyTaper,
		InitialCapacityMultiplier: 4,
		MinCapacityMultiplier:     2,
		MaxCapacityMultiplier:     16,
		AdaptiveResize:            true,
		CheckIntervalMs:           1000,
		HighUtilization:           0.9,
		LowUtilization:            0.1,
	}
}

// LoadConfig reads a YAML file into a Config. Missing keys keep their
// defaults; the result is validated before it is returned.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// CheckInterval returns CheckIntervalMs as a duration.
func (c Config) CheckInterval() time.Duration {
	return time.Duration(c.CheckIntervalMs) * time.Millisecond
}

// InitialCapacity returns the ring capacity in samples.
func (c Config) InitialCapacity() int {
	return c.InitialCapacityMultiplier * c.WindowSize
}

// MinCapacity returns the lower capacity bound in samples.
func (c Config) MinCapacity() int {
	return c.MinCapacityMultiplier * c.WindowSize
}

// MaxCapacity returns the upper capacity bound in samples.
func (c Config) MaxCapacity() int {
	return c.MaxCapacityMultiplier * c.WindowSize
}

// Validate checks every construction invariant. A non-nil result is
// fatal to construction: NewProcessor never returns a partially built
// instance.
func (c Config) Validate() error {
	if c.WindowSize < MinWindowSize || !isPowerOfTwo(c.WindowSize) {
		return fmt.Errorf("%w: got %d", ErrInvalidWindowSize, c.WindowSize)
	}
	if c.HopSize < 1 || c.HopSize > c.WindowSize {
		return fmt.Errorf("%w: got %d for window %d", ErrInvalidHopSize, c.HopSize, c.WindowSize)
	}
	if c.Window == Tukey && (c.TukeyTaper < 0 || c.TukeyTaper > 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidTaper, c.TukeyTaper)
	}

	// Multipliers must be powers of two so capacities stay powers of
	// two, and the minimum is 2 so a full ring always holds a window.
	for _, m := range []int{c.MinCapacityMultiplier, c.InitialCapacityMultiplier, c.MaxCapacityMultiplier} {
		if m < 2 || !isPowerOfTwo(m) {
			return fmt.Errorf("%w: multiplier %d", ErrInvalidCapacity, m)
		}
	}
	if c.MinCapacityMultiplier > c.InitialCapacityMultiplier ||
		c.InitialCapacityMultiplier > c.MaxCapacityMultiplier {
		return fmt.Errorf("%w: multipliers %d/%d/%d out of order",
			ErrInvalidCapacity,
			c.MinCapacityMultiplier, c.InitialCapacityMultiplier, c.MaxCapacityMultiplier)
	}

	if c.AdaptiveResize {
		if c.LowUtilization <= 0 || c.HighUtilization >= 1 ||
			c.LowUtilization >= c.HighUtilization {
			return fmt.Errorf("%w: low %v, high %v",
				ErrInvalidThresholds, c.LowUtilization, c.HighUtilization)
		}
		if c.CheckIntervalMs <= 0 {
			return fmt.Errorf("%w: check interval %dms",
				ErrInvalidThresholds, c.CheckIntervalMs)
		}
	}

	return nil
}
