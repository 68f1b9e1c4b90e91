// Package config holds the settings of the cycleprof command.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/cycleprof"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("config: invalid setting")

// Config drives `cycleprof demo`.
type Config struct {
	// Calibration is the frequency estimation window.
	Calibration time.Duration `yaml:"calibration"`
	// Capacity sizes each slot table; 0 sizes it to the registry.
	Capacity int `yaml:"capacity"`
	// Workers is the number of goroutines, each with its own Profiler.
	Workers int `yaml:"workers"`
	// Depth is the recursion depth of the fibonacci workload.
	Depth int `yaml:"depth"`
	// Pin locks each worker to CPU (worker index mod NumCPU).
	Pin bool `yaml:"pin"`

	Output Output `yaml:"output"`
}

// Output selects where reports go besides stdout.
type Output struct {
	// Pprof is a file path; worker reports are written to <path>.<worker>.
	Pprof string `yaml:"pprof"`
	// MetricsAddr serves /metrics until interrupted when non-empty.
	MetricsAddr string `yaml:"metrics_addr"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Calibration: cycleprof.DefaultCalibration,
		Workers:     1,
		Depth:       20,
	}
}

// Load reads a YAML file on top of Default.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}

	defer f.Close()

	return Decode(f)
}

// Decode reads YAML from r on top of Default and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks ranges.
func (c Config) Validate() error {
	switch {
	case c.Calibration <= 0:
		return fmt.Errorf("%w: calibration %v must be positive", ErrInvalid, c.Calibration)
	case c.Capacity < 0 || c.Capacity > cycleprof.MaxRegions+1:
		return fmt.Errorf("%w: capacity %d outside [0, %d]", ErrInvalid, c.Capacity, cycleprof.MaxRegions+1)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers %d must be at least 1", ErrInvalid, c.Workers)
	case c.Depth < 1 || c.Depth > 40:
		return fmt.Errorf("%w: depth %d outside [1, 40]", ErrInvalid, c.Depth)
	}

	return nil
}
