// Package config manages stoke configuration.
//
// It handles:
//   - The optional .stoke.yaml file in the working directory
//   - Built-in defaults merged under file values
//   - Command-line overrides merged over file values
package config
