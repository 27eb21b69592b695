/*
Package config loads startup configuration for the autoreg registry.

# Overview

A deployment can re-order or suppress registrations without touching the
registration sites: a small YAML or JSON file declares priority overrides,
a default priority, and disabled keys, and the registry consults it at
registration time.

# File Format

	default_priority: 5
	priorities:
	  "db.Conn#primary": 1
	  "cache.Store": 2
	disabled:
	  - "debug.Probe"

Keys use the registry's key syntax: the fully qualified type name,
optionally followed by "#" and an instance name. Priorities outside the
registry's [0, 10] range are clamped when applied.

# File Loading

	cfg, err := config.FromFile("autoreg.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	r := autoreg.New(autoreg.WithConfig(cfg))

FromYAML and FromJSON load from bytes; FromFile dispatches on the file
extension. Fields absent from the input keep the defaults from Default().

# Thread Safety

Config is a value and safe for concurrent read access once loaded.
*/
package config
