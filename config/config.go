// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package config holds the run configuration of the point generator and
// loads it from YAML or JSON files.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

var (
	ErrEmptyPath         = errors.New("config: empty config path")
	ErrUnsupportedFormat = errors.New("config: unsupported config format")
	ErrLoadFailed        = errors.New("config: failed to load config")
	ErrParseFailed       = errors.New("config: failed to parse config")
	ErrUnmarshalFailed   = errors.New("config: failed to unmarshal config")
	ErrInvalid           = errors.New("config: invalid config")
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Output names the files written by a run. Empty names disable the
// optional outputs.
type Output struct {
	Dir       string `koanf:"dir"`
	Spherical string `koanf:"spherical"`
	Cartesian string `koanf:"cartesian"`
	Scatter   string `koanf:"scatter"`
	Map       string `koanf:"map"`
	Bands     string `koanf:"bands"`
	Angles    string `koanf:"angles"`
}

type Config struct {
	Points           int     `koanf:"points"`
	Radius           float64 `koanf:"radius"`
	RadiusCorrection bool    `koanf:"radius_correction"`
	// LegacyRoundTrip derives the Cartesian output from the rounded
	// spherical file instead of the exact angles.
	LegacyRoundTrip bool   `koanf:"legacy_roundtrip"`
	Quality         bool   `koanf:"quality"`
	Output          Output `koanf:"output"`
}

// Default returns the configuration of the reference run.
func Default() Config {
	return Config{
		Points:           630,
		Radius:           0.67,
		RadiusCorrection: true,
		Output: Output{
			Dir:       ".",
			Spherical: "spherical_coordinates.csv",
			Cartesian: "cartesian_coordinates.csv",
			Scatter:   "scatter.svg",
		},
	}
}

// Load reads the file at path over the defaults. The format follows the
// file extension.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, ErrEmptyPath
	}

	format, err := detectFormat(path)
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return Parse(data, format)
}

// Parse decodes data over the defaults.
func Parse(data []byte, format Format) (Config, error) {
	k := koanf.New(".")
	if len(data) > 0 {
		if err := loadData(k, data, format); err != nil {
			return Config{}, err
		}
	} else if !isValidFormat(format) {
		return Config{}, ErrUnsupportedFormat
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}
	return cfg, nil
}

// Validate reports the first setting a run cannot start with.
func (c Config) Validate() error {
	switch {
	case c.Points <= 0:
		return fmt.Errorf("%w: points must be positive, got %d", ErrInvalid, c.Points)
	case !(c.Radius > 0) || math.IsInf(c.Radius, 0):
		return fmt.Errorf("%w: radius must be positive and finite, got %v", ErrInvalid, c.Radius)
	case c.Output.Spherical == "":
		return fmt.Errorf("%w: output.spherical is empty", ErrInvalid)
	case c.Output.Cartesian == "":
		return fmt.Errorf("%w: output.cartesian is empty", ErrInvalid)
	}
	return nil
}

// Path places name in the output directory. Absolute names are kept.
func (c Config) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Output.Dir, name)
}

func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %s", ErrUnsupportedFormat, ext)
	}
}

func isValidFormat(format Format) bool {
	return format == FormatYAML || format == FormatJSON
}

func loadData(k *koanf.Koanf, data []byte, format Format) error {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return ErrUnsupportedFormat
	}

	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return nil
}
