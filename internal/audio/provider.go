package audio

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"codeberg.org/snonux/ttsuz/internal/logging"
)

// Provider defines the interface for text-to-speech backends
type Provider interface {
	// Synthesize sends text to the backend and returns the audio it produced
	Synthesize(ctx context.Context, req Request) (*Result, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Provider names accepted by NewProvider
const (
	ProviderInference = "huggingface"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderESpeak    = "espeak"
)

// DefaultInferenceURL is the hosted Uzbek text-to-audio model
const DefaultInferenceURL = "https://api-inference.huggingface.co/models/shohabbosdev/text-to-audio"

// Config holds configuration for every audio provider. Credentials live
// here and nowhere else.
type Config struct {
	Provider string // "huggingface", "openai", "gemini" or "espeak"
	Fallback string // Optional provider used when the primary fails
	Breaker  bool   // Wrap the primary provider in a circuit breaker

	// Timeout for a single HTTP request. Zero leaves the request bounded
	// only by its context.
	Timeout time.Duration

	// Inference endpoint settings
	APIURL   string
	APIToken string

	// OpenAI-specific settings
	OpenAIKey         string
	OpenAIBaseURL     string
	OpenAIModel       string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice       string  // "alloy", "ash", "coral", "echo", "nova", ...
	OpenAISpeed       float64 // 0.25 to 4.0
	OpenAIInstruction string  // Voice instructions for gpt-4o-mini-tts model

	// Gemini-specific settings
	GeminiKey     string
	GeminiBaseURL string
	GeminiModel   string
	GeminiVoice   string

	// espeak-ng settings
	ESpeak *ESpeakConfig

	Logger *zap.Logger
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:          ProviderInference,
		APIURL:            DefaultInferenceURL,
		OpenAIModel:       "gpt-4o-mini-tts",
		OpenAIVoice:       "alloy",
		OpenAISpeed:       1.0,
		OpenAIInstruction: "You are speaking Uzbek (o'zbek tili). The text is written in Uzbek Cyrillic. Pronounce it with natural Uzbek phonetics, clearly and at a calm pace.",
		GeminiModel:       "gemini-2.5-flash-preview-tts",
		GeminiVoice:       "Kore",
		ESpeak:            DefaultESpeakConfig(),
	}
}

// Names lists the providers NewProvider understands
func Names() []string {
	return []string{ProviderInference, ProviderOpenAI, ProviderGemini, ProviderESpeak}
}

// NewProvider creates the provider chain described by config: the primary
// provider, optionally behind a circuit breaker, optionally with a fallback.
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	primary, err := newSingleProvider(config.Provider, config)
	if err != nil {
		return nil, err
	}

	if config.Breaker {
		primary = NewBreakerProvider(primary, DefaultBreakerSettings(), config.Logger)
	}

	if config.Fallback == "" || config.Fallback == config.Provider {
		return primary, nil
	}

	fallback, err := newSingleProvider(config.Fallback, config)
	if err != nil {
		return nil, fmt.Errorf("fallback provider: %w", err)
	}

	return NewProviderWithFallback(primary, fallback, config.Logger), nil
}

func newSingleProvider(name string, config *Config) (Provider, error) {
	switch name {
	case ProviderInference:
		if config.APIToken == "" {
			return nil, fmt.Errorf("API token is required")
		}
		return NewInferenceProvider(config)

	case ProviderOpenAI:
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(config)

	case ProviderGemini:
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return NewGeminiProvider(config)

	case ProviderESpeak:
		return NewESpeakProvider(config.ESpeak)

	default:
		return nil, fmt.Errorf("unknown audio provider: %s", name)
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
	logger   *zap.Logger
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider, logger *zap.Logger) Provider {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
		logger:   logging.OrNop(logger),
	}
}

// Synthesize tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) Synthesize(ctx context.Context, req Request) (*Result, error) {
	result, err := p.primary.Synthesize(ctx, req)
	if err == nil {
		return result, nil
	}

	p.logger.Warn("primary provider failed, falling back",
		zap.String("primary", p.primary.Name()),
		zap.String("fallback", p.fallback.Name()),
		zap.Error(err))

	result, fallbackErr := p.fallback.Synthesize(ctx, req)
	if fallbackErr != nil {
		// Both errors stay in the chain. The fallback's comes first, so
		// KindOf and StatusCode describe the answer that was returned.
		return result, fmt.Errorf("fallback %s: %w (primary %s: %w)",
			p.fallback.Name(), fallbackErr, p.primary.Name(), err)
	}
	return result, nil
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
