// Package config loads, validates, and normalizes the TOML configuration
// for the recording pipeline. The Config struct is built once at process
// start and handed to component constructors by reference.
package config
