// Package processor runs one conversion end to end: it rejects blank
// input, normalizes the script, asks the speech provider for audio, saves
// the audio and records the attempt in the history store. The CLI, GUI and
// HTTP server all go through it.
package processor
