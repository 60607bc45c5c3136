package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestInference(t *testing.T, url string) Provider {
	t.Helper()
	provider, err := NewInferenceProvider(&Config{APIURL: url, APIToken: "hf_test"})
	if err != nil {
		t.Fatalf("NewInferenceProvider() error = %v", err)
	}
	return provider
}

func TestInferenceProviderSuccess(t *testing.T) {
	audioBytes := []byte("RIFF....WAVEaudio bytes")

	var gotAuth, gotContentType string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotBody); err != nil {
			t.Errorf("Request body is not JSON: %v", err)
		}
		w.Header().Set("Content-Type", "audio/wav")
		w.Write(audioBytes)
	}))
	defer server.Close()

	provider := newTestInference(t, server.URL)
	result, err := provider.Synthesize(context.Background(), Request{Text: "Салом дунё", Language: "uz"})
	if err != nil {
		t.Fatalf("Synthesize() unexpected error: %v", err)
	}

	if result.StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200", result.StatusCode)
	}
	if result.Text != "Салом дунё" {
		t.Errorf("Text = %q, want %q", result.Text, "Салом дунё")
	}
	if !bytes.Equal(result.Audio, audioBytes) {
		t.Errorf("Audio = %q, want %q", result.Audio, audioBytes)
	}
	if !result.OK() {
		t.Error("OK() = false for a 200 response")
	}

	if gotAuth != "Bearer hf_test" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer hf_test")
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if len(gotBody) != 1 || gotBody["inputs"] != "Салом дунё" {
		t.Errorf("Payload = %v, want only the inputs field", gotBody)
	}
}

func TestInferenceProviderNonOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Model is loading"}`))
	}))
	defer server.Close()

	provider := newTestInference(t, server.URL)
	result, err := provider.Synthesize(context.Background(), Request{Text: "Салом"})
	if err == nil {
		t.Fatal("Synthesize() expected error for status 500")
	}
	if !IsStatus(err) {
		t.Errorf("Expected status error, got %v", err)
	}
	if result == nil {
		t.Fatal("Expected a result carrying the status code")
	}
	if result.StatusCode != 500 {
		t.Errorf("StatusCode = %d, want 500", result.StatusCode)
	}
	if result.Text != "Салом" {
		t.Errorf("Text = %q, want %q", result.Text, "Салом")
	}
	if result.Audio != nil {
		t.Errorf("Audio = %q, want nil", result.Audio)
	}
	if result.OK() {
		t.Error("OK() = true for a 500 response")
	}
}

func TestInferenceProviderNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	provider := newTestInference(t, url)
	result, err := provider.Synthesize(context.Background(), Request{Text: "Салом"})
	if err == nil {
		t.Fatal("Synthesize() expected error for closed server")
	}
	if result != nil {
		t.Errorf("Expected nil result, got %+v", result)
	}
	if !IsTransport(err) {
		t.Errorf("Expected transport error, got %v", err)
	}
}

func TestInferenceProviderTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	provider, err := NewInferenceProvider(&Config{APIURL: server.URL, APIToken: "hf_test", Timeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewInferenceProvider() error = %v", err)
	}

	result, err := provider.Synthesize(context.Background(), Request{Text: "Салом"})
	if result != nil || !IsTransport(err) {
		t.Errorf("Expected transport error and no result, got %+v, %v", result, err)
	}
}

func TestInferenceProviderCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("RIFF"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := newTestInference(t, server.URL)
	result, err := provider.Synthesize(ctx, Request{Text: "Салом"})
	if result != nil || !IsTransport(err) {
		t.Errorf("Expected transport error and no result, got %+v, %v", result, err)
	}
}

func TestNewInferenceProvider(t *testing.T) {
	if _, err := NewInferenceProvider(&Config{}); err == nil {
		t.Error("Expected error without token")
	}

	provider, err := NewInferenceProvider(&Config{APIToken: "hf_test"})
	if err != nil {
		t.Fatalf("NewInferenceProvider() error = %v", err)
	}

	p := provider.(*InferenceProvider)
	if p.url != DefaultInferenceURL {
		t.Errorf("url = %q, want default", p.url)
	}
	if p.client.Timeout != 0 {
		t.Errorf("Timeout = %v, want none", p.client.Timeout)
	}
	if err := p.IsAvailable(); err != nil {
		t.Errorf("IsAvailable() = %v", err)
	}
}
