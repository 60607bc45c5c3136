package testutil

import (
	"context"
	"sync"

	"codeberg.org/snonux/ttsuz/internal/audio"
)

// FakeProvider is a scriptable audio.Provider. Unless a response is
// registered for a text it answers 200 with WAVFixture audio.
type FakeProvider struct {
	ProviderName string
	Responses    map[string]*audio.Result
	Errors       map[string]error
	// Err, when set, is returned for every text without its own entry
	Err          error
	AvailableErr error

	mu    sync.Mutex
	calls []audio.Request
}

// NewFakeProvider returns a provider named "fake"
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		ProviderName: "fake",
		Responses:    make(map[string]*audio.Result),
		Errors:       make(map[string]error),
	}
}

// Synthesize records the request and returns the scripted answer
func (f *FakeProvider) Synthesize(ctx context.Context, req audio.Request) (*audio.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, &audio.SpeechError{Kind: audio.KindTransport, Provider: f.Name(), Err: err}
	}

	result, hasResult := f.Responses[req.Text]
	if err, ok := f.Errors[req.Text]; ok {
		return result, err
	}
	if hasResult {
		return result, nil
	}
	if f.Err != nil {
		return nil, f.Err
	}

	return &audio.Result{
		StatusCode: 200,
		Text:       req.Text,
		Audio:      WAVFixture(),
		Format:     audio.FormatWAV,
	}, nil
}

// Name returns the provider name
func (f *FakeProvider) Name() string {
	if f.ProviderName == "" {
		return "fake"
	}
	return f.ProviderName
}

// IsAvailable returns AvailableErr
func (f *FakeProvider) IsAvailable() error {
	return f.AvailableErr
}

// Calls returns the requests seen so far
func (f *FakeProvider) Calls() []audio.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]audio.Request(nil), f.calls...)
}

// StatusFailure scripts a non-200 answer for text the way the inference
// provider reports it
func (f *FakeProvider) StatusFailure(text string, status int) {
	f.Responses[text] = &audio.Result{StatusCode: status, Text: text}
	f.Errors[text] = &audio.SpeechError{Kind: audio.KindStatus, Provider: f.Name(), StatusCode: status}
}
