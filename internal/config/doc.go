// Package config manages the persistent user configuration for the loan
// client.
//
// Settings are stored as a single YAML file in the platform-appropriate
// user configuration directory ($XDG_CONFIG_HOME/kredit on Linux,
// ~/.config/kredit on macOS, %LOCALAPPDATA%\kredit on Windows). A missing
// file is not an error: defaults are returned so the wizard works out of
// the box against a local backend.
//
// The file holds connection preferences only. Access tokens and OTP codes
// are never written to disk.
package config
