// Package config defines the emitter settings and helpers to load, validate
// and save them in YAML format.
//
// A settings file is optional: command-line flags and defaults cover every
// field, and no environment variables are consulted.
package config
