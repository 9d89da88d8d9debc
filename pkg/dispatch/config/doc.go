/*
Package config provides type-safe extraction of registry settings from
map[string]any, loaded from YAML or JSON.

# Overview

Config wraps a map and offers typed accessors that return a default when a
key is missing or holds a value of the wrong type, so settings files can be
read without chains of type assertions.

	cfg, err := config.FromFile("dispatch.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	name := cfg.String("name", "default")
	metrics := cfg.Bool("metrics", false)
	catalogPath := cfg.Section("catalog").String("path", "")

A typical settings file:

	name: codecs
	metrics: true
	tracing: true
	catalog:
	  path: ./dispatch.db

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
