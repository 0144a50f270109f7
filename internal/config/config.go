// Package config loads the grapher settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/p6nj/bpptng-grapher/formula"
	"github.com/p6nj/bpptng-grapher/plot"
	"github.com/p6nj/bpptng-grapher/tone"
)

// DefaultPath is read when no path is given.
const DefaultPath = "~/.config/grapher/config.yaml"

type Domain struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Config holds the settings. Zero fields of a file take their default.
type Config struct {
	// Resolution is the number of points per plotted curve.
	Resolution int    `yaml:"resolution"`
	Domain     Domain `yaml:"domain"`
	// Listen starts playback as soon as formulas are loaded.
	Listen bool `yaml:"listen"`
	// SampleRate of the audio output. Signals are resampled to it.
	SampleRate int `yaml:"sample_rate"`
}

// Default returns the settings used without file.
func Default() Config {
	return Config{
		Resolution: formula.DefaultResolution,
		Domain:     Domain{Min: plot.DefaultDomain.Min, Max: plot.DefaultDomain.Max},
		Listen:     true,
		SampleRate: tone.SampleRate,
	}
}

// PlotDomain converts the configured domain.
func (c Config) PlotDomain() plot.Domain {
	return plot.Domain{Min: c.Domain.Min, Max: c.Domain.Max}
}

// Load reads the YAML file at path, "~" expanded. A missing file
// yields Default().
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath
	}
	p, err := homedir.Expand(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not expand %s: %w", path, err)
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Parse decodes YAML settings over the defaults and normalizes them.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if err := c.Normalize(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Normalize clamps the resolution and checks the domain and sample
// rate.
func (c *Config) Normalize() error {
	c.Resolution = formula.ClampResolution(c.Resolution)
	if !(c.Domain.Min < c.Domain.Max) {
		return fmt.Errorf("invalid domain [%g, %g]", c.Domain.Min, c.Domain.Max)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", c.SampleRate)
	}
	return nil
}
