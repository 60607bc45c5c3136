package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"codeberg.org/snonux/ttsuz/internal/logging"
)

// InferenceProvider posts text to a hosted inference endpoint and returns
// the raw response body as audio.
type InferenceProvider struct {
	url    string
	token  string
	client *http.Client
	logger *zap.Logger
}

type inferencePayload struct {
	Inputs string `json:"inputs"`
}

// NewInferenceProvider creates a provider for the configured endpoint
func NewInferenceProvider(config *Config) (Provider, error) {
	if config.APIToken == "" {
		return nil, fmt.Errorf("API token is required")
	}

	url := config.APIURL
	if url == "" {
		url = DefaultInferenceURL
	}

	return &InferenceProvider{
		url:    url,
		token:  config.APIToken,
		client: &http.Client{Timeout: config.Timeout},
		logger: logging.OrNop(config.Logger),
	}, nil
}

// Synthesize issues exactly one POST. A 200 yields the body as audio, any
// other status yields a Result without audio plus a KindStatus error, and
// a failed round trip yields no Result.
func (p *InferenceProvider) Synthesize(ctx context.Context, req Request) (*Result, error) {
	body, err := json.Marshal(inferencePayload{Inputs: req.Text})
	if err != nil {
		return nil, p.fail(KindTransport, fmt.Errorf("failed to encode request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, p.fail(KindTransport, fmt.Errorf("failed to create request: %w", err))
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.token)
	httpReq.Header.Set("Content-Type", "application/json")

	p.logger.Debug("sending inference request",
		zap.String("url", p.url),
		zap.Int("chars", len([]rune(req.Text))))

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, p.fail(KindTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// The body carries no contract on failure
		_, _ = io.Copy(io.Discard, resp.Body)
		p.logger.Warn("inference request rejected", zap.Int("status", resp.StatusCode))
		return &Result{StatusCode: resp.StatusCode, Text: req.Text},
			&SpeechError{Kind: KindStatus, Provider: p.Name(), StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, p.fail(KindResponse, fmt.Errorf("failed to read audio: %w", err))
	}

	p.logger.Debug("inference request done", zap.Int("bytes", len(data)))

	return &Result{
		StatusCode: resp.StatusCode,
		Text:       req.Text,
		Audio:      data,
		Format:     FormatWAV,
	}, nil
}

func (p *InferenceProvider) fail(kind ErrorKind, err error) error {
	p.logger.Warn("inference request failed", zap.Stringer("kind", kind), zap.Error(err))
	return &SpeechError{Kind: kind, Provider: p.Name(), Err: err}
}

// Name returns the provider name
func (p *InferenceProvider) Name() string {
	return ProviderInference
}

// IsAvailable checks that a token is configured. It does not call the
// endpoint, every call is billed against the token.
func (p *InferenceProvider) IsAvailable() error {
	if p.token == "" {
		return fmt.Errorf("API token not configured")
	}
	return nil
}
