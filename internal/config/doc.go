// Package config turns resolved settings into a typed deployment configuration.
// Precedence: CLI flags > process environment > environment settings file > defaults.
// It also owns the required-setting contract: the ordered list of names that
// must be present before any remote operation is attempted.
package config
