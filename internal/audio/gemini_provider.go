package audio

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"codeberg.org/snonux/ttsuz/internal/logging"
)

// Gemini returns 16-bit mono PCM at this rate unless the MIME type says otherwise
const geminiSampleRate = 24000

// GeminiProvider implements Provider using Gemini speech generation
type GeminiProvider struct {
	client *genai.Client
	config *Config
	logger *zap.Logger
}

// NewGeminiProvider creates a new Gemini TTS provider
func NewGeminiProvider(config *Config) (Provider, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.GeminiBaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.GeminiBaseURL}
	}

	client, err := genai.NewClient(context.Background(), clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		config: config,
		logger: logging.OrNop(config.Logger),
	}, nil
}

// Synthesize asks Gemini for an audio response and wraps the PCM in WAV
func (p *GeminiProvider) Synthesize(ctx context.Context, req Request) (*Result, error) {
	if err := ValidateText(req.Text); err != nil {
		return nil, err
	}

	model := p.config.GeminiModel
	if model == "" {
		model = "gemini-2.5-flash-preview-tts"
	}
	voice := p.config.GeminiVoice
	if voice == "" {
		voice = "Kore"
	}

	p.logger.Debug("gemini speech request", zap.String("model", model), zap.String("voice", voice))

	resp, err := p.client.Models.GenerateContent(ctx, model, genai.Text(req.Text), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	})
	if err != nil {
		if status := geminiStatus(err); status != 0 {
			return &Result{StatusCode: status, Text: req.Text},
				&SpeechError{Kind: KindStatus, Provider: p.Name(), StatusCode: status, Err: err}
		}
		return nil, &SpeechError{Kind: KindTransport, Provider: p.Name(), Err: err}
	}

	pcm, mimeType := firstInlineAudio(resp)
	if len(pcm) == 0 {
		return nil, &SpeechError{Kind: KindResponse, Provider: p.Name(), Err: fmt.Errorf("no audio in Gemini response")}
	}

	return &Result{
		StatusCode: 200,
		Text:       req.Text,
		Audio:      WrapPCM(pcm, sampleRateFromMIME(mimeType), 1, 16),
		Format:     FormatWAV,
	}, nil
}

// geminiStatus returns the HTTP status carried by a genai error
func geminiStatus(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

func firstInlineAudio(resp *genai.GenerateContentResponse) ([]byte, string) {
	if resp == nil {
		return nil, ""
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, part.InlineData.MIMEType
			}
		}
	}
	return nil, ""
}

// sampleRateFromMIME reads the rate parameter of e.g. "audio/L16;codec=pcm;rate=24000"
func sampleRateFromMIME(mimeType string) int {
	for _, param := range strings.Split(mimeType, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if ok && key == "rate" {
			if rate, err := strconv.Atoi(value); err == nil && rate > 0 {
				return rate
			}
		}
	}
	return geminiSampleRate
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return ProviderGemini
}

// IsAvailable checks that a key is configured
func (p *GeminiProvider) IsAvailable() error {
	if p.config.GeminiKey == "" {
		return fmt.Errorf("Gemini API key not configured")
	}
	return nil
}
