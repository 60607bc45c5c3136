package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"codeberg.org/snonux/ttsuz/internal/logging"
)

// OpenAIProvider implements Provider interface for OpenAI TTS
type OpenAIProvider struct {
	client *openai.Client
	config *Config
	logger *zap.Logger
}

// NewOpenAIProvider creates a new OpenAI TTS provider
func NewOpenAIProvider(config *Config) (Provider, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
		logger: logging.OrNop(config.Logger),
	}, nil
}

// Synthesize generates WAV audio using OpenAI TTS
func (p *OpenAIProvider) Synthesize(ctx context.Context, req Request) (*Result, error) {
	if err := ValidateText(req.Text); err != nil {
		return nil, err
	}

	model := p.config.OpenAIModel
	if model == "" {
		model = "gpt-4o-mini-tts"
	}
	voice := p.config.OpenAIVoice
	if voice == "" {
		voice = "alloy"
	}

	p.logger.Debug("openai speech request",
		zap.String("model", model),
		zap.String("voice", voice),
		zap.Float64("speed", p.config.OpenAISpeed))

	speechReq := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(model),
		Input:          req.Text,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormatWav,
	}
	if p.config.OpenAISpeed > 0 {
		speechReq.Speed = p.config.OpenAISpeed
	}

	// Only the gpt-4o family understands instructions
	if p.config.OpenAIInstruction != "" && strings.HasPrefix(model, "gpt-4o") {
		speechReq.Instructions = p.config.OpenAIInstruction
	}

	response, err := p.client.CreateSpeech(ctx, speechReq)
	if err != nil {
		if status := openAIStatus(err); status != 0 {
			return &Result{StatusCode: status, Text: req.Text},
				&SpeechError{Kind: KindStatus, Provider: p.Name(), StatusCode: status, Err: err}
		}
		return nil, &SpeechError{Kind: KindTransport, Provider: p.Name(), Err: err}
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return nil, &SpeechError{Kind: KindResponse, Provider: p.Name(), Err: err}
	}

	if len(data) == 0 {
		return nil, &SpeechError{Kind: KindResponse, Provider: p.Name(), Err: fmt.Errorf("no audio data received from OpenAI")}
	}

	return &Result{
		StatusCode: 200,
		Text:       req.Text,
		Audio:      data,
		Format:     FormatWAV,
	}, nil
}

// openAIStatus returns the HTTP status carried by a go-openai error
func openAIStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}

	return 0
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

// IsAvailable checks if the OpenAI API is accessible
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}

	// We could make a test API call here, but that would use credits
	return nil
}
