// Package config provides configuration structures and utilities for signboard.
// It defines the request settings, the sheet sources to load and the report
// output preferences, plus the optional .signboard YAML file.
package config
