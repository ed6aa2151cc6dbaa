package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Judgment struct {
	Difficulty    string  `yaml:"difficulty"` // "Lenient" | "Normal" | "Strict"
	InputOffsetMs float64 `yaml:"input_offset_ms"`
}

type Config struct {
	Addr     string `yaml:"addr"`
	FPS      int    `yaml:"fps"`
	Chart    string `yaml:"chart"` // path to a .adofai file
	LogLevel string `yaml:"log_level"`

	Loop                bool `yaml:"loop"`
	DisableAnimateTrack bool `yaml:"disable_animate_track"`

	Judgment Judgment `yaml:"judgment"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
