// Package config loads, normalizes, and validates maldreth configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from ~/.config/maldreth/config.toml or a
// project-local maldreth.toml. The Config type centralizes every knob the
// server and CLI need: data/log directories, the HTTP bind address, the
// diagram layout style, and log formatting.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical layout styles, and clear validation errors.
package config
