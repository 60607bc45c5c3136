package audio

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func TestNewGeminiProviderRequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(&Config{}); err == nil {
		t.Error("NewGeminiProvider() expected error without key")
	}
}

func TestFirstInlineAudio(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			nil,
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "no audio"}}}},
			{Content: &genai.Content{Parts: []*genai.Part{
				{InlineData: &genai.Blob{Data: []byte{1, 2, 3, 4}, MIMEType: "audio/L16;rate=16000"}},
			}}},
		},
	}

	data, mime := firstInlineAudio(resp)
	if len(data) != 4 {
		t.Errorf("firstInlineAudio() data = %v", data)
	}
	if mime != "audio/L16;rate=16000" {
		t.Errorf("firstInlineAudio() mime = %q", mime)
	}

	if data, _ := firstInlineAudio(nil); data != nil {
		t.Errorf("firstInlineAudio(nil) = %v, want nil", data)
	}
}

func newGeminiTestProvider(t *testing.T, handler http.HandlerFunc) Provider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	provider, err := NewGeminiProvider(&Config{
		GeminiKey:     "test-key",
		GeminiBaseURL: srv.URL + "/",
		GeminiModel:   "gemini-test-tts",
		GeminiVoice:   "Kore",
	})
	if err != nil {
		t.Fatalf("NewGeminiProvider() error = %v", err)
	}
	return provider
}

func TestGeminiSynthesize(t *testing.T) {
	pcm := []byte{1, 2, 3, 4}

	provider := newGeminiTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-test-tts:generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"candidates":[{"content":{"role":"model","parts":[{"inlineData":{"mimeType":"audio/L16;codec=pcm;rate=16000","data":%q}}]}}]}`,
			base64.StdEncoding.EncodeToString(pcm))
	})

	result, err := provider.Synthesize(context.Background(), Request{Text: "Салом"})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if result.StatusCode != 200 || result.Text != "Салом" {
		t.Errorf("Synthesize() = %d %q", result.StatusCode, result.Text)
	}
	if !bytes.Equal(result.Audio, WrapPCM(pcm, 16000, 1, 16)) {
		t.Error("Synthesize() audio is not the wrapped PCM")
	}
}

func TestGeminiSynthesizeStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"quota", http.StatusTooManyRequests, `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`},
		{"bad request", http.StatusBadRequest, `{"error":{"code":400,"message":"invalid voice","status":"INVALID_ARGUMENT"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newGeminiTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			result, err := provider.Synthesize(context.Background(), Request{Text: "Салом"})
			if !IsStatus(err) {
				t.Fatalf("Synthesize() error = %v, want a status error", err)
			}
			if code, ok := StatusCode(err); !ok || code != tt.status {
				t.Errorf("StatusCode() = %d, %v, want %d", code, ok, tt.status)
			}
			if result == nil || result.StatusCode != tt.status || result.Text != "Салом" || result.Audio != nil {
				t.Errorf("Synthesize() result = %+v", result)
			}
			if !countsAsSuccess(err) {
				t.Error("4xx answers should not count against the breaker")
			}
		})
	}
}

func TestGeminiSynthesizeNoAudio(t *testing.T) {
	provider := newGeminiTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"no audio"}]}}]}`))
	})

	if _, err := provider.Synthesize(context.Background(), Request{Text: "Салом"}); KindOf(err) != KindResponse {
		t.Errorf("Synthesize() error = %v, want a response error", err)
	}
}
