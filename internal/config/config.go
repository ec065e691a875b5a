package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/algorithms"
)

const (
	DefaultSpeedMs  = 300
	DefaultSize     = 24
	DefaultMaxValue = 100
	DefaultSeed     = 1
	MaxSize         = 512
)

var (
	ErrInvalidSpeed  = errors.New("config: speed_ms must be positive")
	ErrInvalidSize   = errors.New("config: size out of range")
	ErrInvalidMax    = errors.New("config: max_value must be positive")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

type Config struct {
	Algorithm string    `yaml:"algorithm" env:"ALGOVIZ_ALGORITHM"`
	SpeedMs   int       `yaml:"speed_ms" env:"ALGOVIZ_SPEED_MS"`
	Size      int       `yaml:"size" env:"ALGOVIZ_SIZE"`
	MaxValue  int       `yaml:"max_value" env:"ALGOVIZ_MAX_VALUE"`
	Seed      int64     `yaml:"seed" env:"ALGOVIZ_SEED"`
	Preset    string    `yaml:"preset" env:"ALGOVIZ_PRESET"`
	Values    []float64 `yaml:"values,omitempty"`
	Target    *float64  `yaml:"target,omitempty"`
	Theme     string    `yaml:"theme" env:"ALGOVIZ_THEME"`
	LogLevel  string    `yaml:"log_level" env:"ALGOVIZ_LOG_LEVEL"`
	LogFile   string    `yaml:"log_file,omitempty" env:"ALGOVIZ_LOG_FILE"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm: algorithms.IDBubbleSort,
		SpeedMs:   DefaultSpeedMs,
		Size:      DefaultSize,
		MaxValue:  DefaultMaxValue,
		Seed:      DefaultSeed,
		Preset:    PresetRandom,
		Theme:     "default",
		LogLevel:  "info",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Resolve layers defaults, the optional file at path and the environment,
// then validates the result. Flags are applied by the caller afterwards.
func Resolve(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SpeedMs <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSpeed, c.SpeedMs)
	}
	if c.Size < 0 || c.Size > MaxSize {
		return fmt.Errorf("%w: %d (0..%d)", ErrInvalidSize, c.Size, MaxSize)
	}
	if c.MaxValue <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMax, c.MaxValue)
	}
	if _, ok := Presets[c.Preset]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, c.Preset)
	}
	return nil
}

func (c *Config) Speed() time.Duration {
	return time.Duration(c.SpeedMs) * time.Millisecond
}

// Input returns the explicit values if any, otherwise the preset's output.
func (c *Config) Input() []float64 {
	if len(c.Values) > 0 {
		out := make([]float64, len(c.Values))
		copy(out, c.Values)
		return out
	}
	return Generate(c.Preset, c.Size, c.MaxValue, c.Seed)
}

// TargetFor returns the configured search target, or the middle element of
// input so that a default search succeeds.
func (c *Config) TargetFor(input []float64) *float64 {
	if c.Target != nil {
		v := *c.Target
		return &v
	}
	if len(input) == 0 {
		return nil
	}
	v := input[len(input)/2]
	return &v
}
