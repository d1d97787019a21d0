// Package config resolves the slipgen bridge configuration for the CLI:
// built-in defaults, then an optional YAML file, then SLIPGEN_* variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"slipgen/pkg/slipgen"
)

// EnvConfigPath names a config file when --config is not given.
const EnvConfigPath = "SLIPGEN_CONFIG"

// Load builds the configuration. path may be empty, in which case
// $SLIPGEN_CONFIG is consulted; no file at all is fine. lookup is usually
// os.LookupEnv.
func Load(path string, lookup func(string) (string, bool)) (slipgen.Config, error) {
	cfg := slipgen.DefaultConfig()

	if path == "" {
		path, _ = lookup(EnvConfigPath)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := Decode(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg, err := cfg.FromEnv(lookup)
	if err != nil {
		return cfg, fmt.Errorf("config from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode applies YAML data on top of cfg. Unknown keys are rejected so a
// misspelled library_path does not silently fall back to the default.
func Decode(data []byte, cfg *slipgen.Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Write renders cfg as YAML.
func Write(w io.Writer, cfg slipgen.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
