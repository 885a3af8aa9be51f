// Package config manages user-level settings stored at ~/.wsgen/config.yaml.
// Values can be overridden with WSGEN_* environment variables and are decoded
// into Settings for the create workflow (env key prefix, placeholder host and
// org, submodule branches, reachability backend, template source).
package config
