package config

import _ "embed"

// DefaultConfigYAML is the built-in configuration, always loaded first and
// overridable by an external file or FINTRACK_* environment variables.
//
//go:embed config.yaml
var DefaultConfigYAML []byte
