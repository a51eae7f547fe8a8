package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// siblingsFile is the on-disk shape of SIBLINGS_FILE:
//
//	timeout: 3s
//	endpoints:
//	  m2: {host: m2.internal, port: 80, path_prefix: /api/m2/}
type siblingsFile struct {
	Timeout   string              `yaml:"timeout"`
	Endpoints map[string]Endpoint `yaml:"endpoints"`
}

// loadSiblingsFile overlays the endpoints found in path on top of cfg.
// Fields left empty in the file keep their environment values.
func loadSiblingsFile(path string, cfg *SiblingsConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading siblings file: %w", err)
	}

	var f siblingsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing siblings file: %w", err)
	}

	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return fmt.Errorf("parsing siblings file: timeout: %w", err)
		}
		cfg.Timeout = d
	}

	if cfg.Endpoints == nil {
		cfg.Endpoints = make(map[string]Endpoint)
	}
	for kind, override := range f.Endpoints {
		if !isKnownKind(kind) {
			return fmt.Errorf("parsing siblings file: unknown sibling %q", kind)
		}
		ep := cfg.Endpoints[kind]
		if override.Scheme != "" {
			ep.Scheme = override.Scheme
		}
		if override.Host != "" {
			ep.Host = override.Host
		}
		if override.Port != 0 {
			ep.Port = override.Port
		}
		if override.PathPrefix != "" {
			ep.PathPrefix = normalizePrefix(override.PathPrefix)
		}
		cfg.Endpoints[kind] = ep
	}
	return nil
}

func isKnownKind(kind string) bool {
	for _, k := range SiblingKinds {
		if k == kind {
			return true
		}
	}
	return false
}
