// Package config loads quickhash settings from a single YAML file.
//
// The file is taken from the QUICKHASH_CONFIG environment variable or the
// --config flag; there is no automatic discovery, so runs are deterministic.
// Flags override file values, file values override built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"quickhash/internal/digest"
	"quickhash/internal/engine"
)

// EnvVar names the environment variable pointing at the config file.
const EnvVar = "QUICKHASH_CONFIG"

// Config holds the tunable defaults for hashing runs.
type Config struct {
	// Algorithm is the default digest algorithm.
	Algorithm string `yaml:"algorithm"`
	// ShakeLength is the output byte count for variable-length algorithms.
	ShakeLength int `yaml:"shake_length"`
	// Workers bounds hashing parallelism. Zero means one less than the
	// number of CPUs, reserving a core for the consumer.
	Workers int `yaml:"workers"`
	// ChunkSize is the read size in bytes for ordinary files.
	ChunkSize int `yaml:"chunk_size"`
	// LargeChunkSize is the read size for files above LargeFileThreshold.
	LargeChunkSize int `yaml:"large_chunk_size"`
	// LargeFileThreshold is the file size in bytes that selects the large
	// chunk size.
	LargeFileThreshold int64 `yaml:"large_file_threshold"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Algorithm:          digest.DefaultAlgorithm,
		ShakeLength:        digest.DefaultLength,
		Workers:            0,
		ChunkSize:          engine.DefaultChunkSize,
		LargeChunkSize:     engine.DefaultLargeChunkSize,
		LargeFileThreshold: engine.DefaultLargeFileThreshold,
		LogLevel:           "info",
	}
}

// Load reads the config file at path and overlays it on the defaults.
// An empty path falls back to QUICKHASH_CONFIG; if that is also unset, the
// defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	if err := unmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("validate config file %s: %w", path, err)
	}
	return cfg, nil
}

// unmarshalStrict decodes YAML over the defaults already present in cfg and
// rejects unknown keys so typos surface instead of being ignored.
func unmarshalStrict(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c Config) validate() error {
	if c.Algorithm != "" && !digest.IsSupported(c.Algorithm) {
		return fmt.Errorf("unknown algorithm %q", c.Algorithm)
	}
	if c.ShakeLength < 0 {
		return fmt.Errorf("shake_length must not be negative")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if c.ChunkSize < 0 || c.LargeChunkSize < 0 || c.LargeFileThreshold < 0 {
		return fmt.Errorf("chunk sizes must not be negative")
	}
	return nil
}
