// Package config loads compositions declared in YAML and builds them from a registry of named units.
//
// A composition is a tree of specs:
//
//	root: checkout
//	compositions:
//	  checkout:
//	    kind: pipeline
//	    name: checkout
//	    units:
//	      - ref: auth
//	      - kind: branch
//	        condition: {ref: is-admin}
//	        action: {ref: audit}
//
// Environment variables prefixed with COMPOSE_ override the file, nested keys being separated by a
// double underscore (COMPOSE_ROOT=other).
package config

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const envPrefix = "COMPOSE_"

// Config is a set of named compositions, one of them being the root.
type Config struct {
	Root         string          `koanf:"root"`
	Compositions map[string]Spec `koanf:"compositions"`
}

// Spec declares one unit. A spec with a ref and no kind is a leaf taken from the registry.
type Spec struct {
	Kind string `koanf:"kind"`
	// Name wraps the unit so that observers report it.
	Name      string `koanf:"name"`
	Ref       string `koanf:"ref"`
	Units     []Spec `koanf:"units"`
	Condition *Spec  `koanf:"condition"`
	Action    *Spec  `koanf:"action"`
	First     *Spec  `koanf:"first"`
	Second    *Spec  `koanf:"second"`
}

// Load reads the YAML file at path, then applies COMPOSE_ environment overrides. An empty path
// loads the environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		err := k.Load(file.Provider(path), yaml.Parser())
		if err != nil {
			return nil, errors.Wrapf(err, "unable to load %s", path)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load environment")
	}

	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode configuration")
	}

	return &cfg, nil
}
