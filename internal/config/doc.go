// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config.yaml. Environment
// variables use the CAMPUS_ prefix and take precedence over the file.
package config
