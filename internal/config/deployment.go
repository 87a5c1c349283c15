package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/WebHash-eth/sui-domain/internal/suins"
	"gopkg.in/yaml.v3"
)

// LoadDeployment reads a YAML SuiNS deployment profile. Keys missing from the
// file keep their value from base, so a profile may override only the
// controller, for example:
//
//	package_id: "0x..."
//	controller:
//	  object_id: "0x..."
//	  initial_version: 13
//	  mutable: true
func LoadDeployment(path string, base suins.ChainConfig) (suins.ChainConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return suins.ChainConfig{}, fmt.Errorf("read deployment file: %w", err)
	}
	return ParseDeployment(raw, base)
}

func ParseDeployment(raw []byte, base suins.ChainConfig) (suins.ChainConfig, error) {
	cfg := base
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return suins.ChainConfig{}, fmt.Errorf("parse deployment file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return suins.ChainConfig{}, fmt.Errorf("deployment file: %w", err)
	}
	return cfg, nil
}
