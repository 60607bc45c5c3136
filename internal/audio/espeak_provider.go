package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// ESpeakConfig holds configuration for espeak-ng audio generation
type ESpeakConfig struct {
	Binary    string // Executable name or path (default: "espeak-ng")
	Voice     string // Voice variant (e.g., "uz", "uz+m1", "uz+f1")
	Speed     int    // Speech speed in words per minute (default: 150)
	Pitch     int    // Pitch adjustment, 0 to 99 (default: 50)
	Amplitude int    // Volume/amplitude, 0 to 200 (default: 100)
	WordGap   int    // Gap between words in 10ms units (default: 0)
}

// DefaultESpeakConfig returns the default configuration for the Uzbek voice
func DefaultESpeakConfig() *ESpeakConfig {
	return &ESpeakConfig{
		Binary:    "espeak-ng",
		Voice:     "uz",
		Speed:     150,
		Pitch:     50,
		Amplitude: 100,
	}
}

// ESpeakProvider implements Provider interface for espeak-ng. It works
// offline, which makes it the usual fallback.
type ESpeakProvider struct {
	config *ESpeakConfig
}

// NewESpeakProvider creates a new espeak-ng provider. Out of range
// settings are clamped.
func NewESpeakProvider(config *ESpeakConfig) (Provider, error) {
	if config == nil {
		config = DefaultESpeakConfig()
	}

	c := *config
	if c.Binary == "" {
		c.Binary = "espeak-ng"
	}
	if c.Voice == "" {
		c.Voice = "uz"
	}
	if c.Speed == 0 {
		c.Speed = 150
	}
	if c.Amplitude == 0 {
		c.Amplitude = 100
	}
	c.Speed = clamp(c.Speed, 80, 450)
	c.Pitch = clamp(c.Pitch, 0, 99)
	c.Amplitude = clamp(c.Amplitude, 0, 200)
	if c.WordGap < 0 {
		c.WordGap = 0
	}

	return &ESpeakProvider{config: &c}, nil
}

// Synthesize runs espeak-ng and captures the WAV it writes to stdout
func (p *ESpeakProvider) Synthesize(ctx context.Context, req Request) (*Result, error) {
	if err := ValidateText(req.Text); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, p.config.Binary, p.args(req.Text)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &SpeechError{
			Kind:     KindTransport,
			Provider: p.Name(),
			Err:      fmt.Errorf("espeak-ng failed: %w (stderr: %s)", err, stderr.String()),
		}
	}

	if !IsWAV(stdout.Bytes()) {
		return nil, &SpeechError{Kind: KindResponse, Provider: p.Name(), Err: fmt.Errorf("espeak-ng produced no WAV output")}
	}

	return &Result{
		StatusCode: 200,
		Text:       req.Text,
		Audio:      stdout.Bytes(),
		Format:     FormatWAV,
	}, nil
}

func (p *ESpeakProvider) args(text string) []string {
	args := []string{
		"-v", p.config.Voice,
		"-s", strconv.Itoa(p.config.Speed),
		"-p", strconv.Itoa(p.config.Pitch),
		"-a", strconv.Itoa(p.config.Amplitude),
	}

	if p.config.WordGap > 0 {
		args = append(args, "-g", strconv.Itoa(p.config.WordGap))
	}

	return append(args, "--stdout", text)
}

// Name returns the provider name
func (p *ESpeakProvider) Name() string {
	return "espeak-ng"
}

// IsAvailable checks if espeak-ng is installed
func (p *ESpeakProvider) IsAvailable() error {
	if _, err := exec.LookPath(p.config.Binary); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}

// ListVoices returns the Uzbek voice variants
func ListVoices() []string {
	return []string{
		"uz",    // Default Uzbek voice
		"uz+m1", // Uzbek male voice 1
		"uz+m2", // Uzbek male voice 2
		"uz+m3", // Uzbek male voice 3
		"uz+f1", // Uzbek female voice 1
		"uz+f2", // Uzbek female voice 2
		"uz+f3", // Uzbek female voice 3
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
