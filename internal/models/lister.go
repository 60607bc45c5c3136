package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister. baseURL may be empty for the
// official endpoint.
func NewLister(apiKey, baseURL string) *Lister {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
	}
}

// SpeechModels returns the sorted IDs of models that produce audio
func (l *Lister) SpeechModels(ctx context.Context) ([]string, error) {
	if l.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY or openai.key in .ttsuz.yaml")
	}

	list, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var speech []string
	for _, model := range list.Models {
		if isSpeechModel(model.ID) {
			speech = append(speech, model.ID)
		}
	}
	sort.Strings(speech)

	return speech, nil
}

// PrintSpeechModels writes the speech models to w
func (l *Lister) PrintSpeechModels(ctx context.Context, w io.Writer) error {
	speech, err := l.SpeechModels(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "OpenAI speech models:")
	if len(speech) == 0 {
		fmt.Fprintln(w, "  No speech models found")
		return nil
	}
	for _, model := range speech {
		fmt.Fprintf(w, "  %s\n", model)
	}
	return nil
}

func isSpeechModel(id string) bool {
	id = strings.ToLower(id)
	if strings.Contains(id, "transcribe") || strings.Contains(id, "whisper") {
		return false
	}
	return strings.Contains(id, "tts") || strings.Contains(id, "audio")
}
