// Package config loads application configuration from defaults, an optional
// YAML file and MOODATLAS_* environment variables, in increasing order of
// precedence. Command-line flags are applied on top by the CLI.
package config
