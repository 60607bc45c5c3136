// Package models lists the speech models an OpenAI compatible endpoint
// offers for the configured key.
package models
