// Package cli provides command-line interface setup and configuration
// for the ttsuz application. It handles flag parsing, command creation,
// and configuration management using cobra and viper, and turns the
// resulting settings into an audio provider configuration.
package cli
