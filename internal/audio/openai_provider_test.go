package audio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewOpenAIProvider(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "missing API key",
			config: &Config{
				OpenAIKey: "",
			},
			wantErr: true,
			errMsg:  "OpenAI API key is required",
		},
		{
			name: "valid config",
			config: &Config{
				OpenAIKey: "test-key",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewOpenAIProvider(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewOpenAIProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != nil && err.Error() != tt.errMsg {
				t.Errorf("NewOpenAIProvider() error = %v, want %v", err.Error(), tt.errMsg)
			}

			if !tt.wantErr && provider != nil {
				if provider.Name() != "openai" {
					t.Errorf("Name() = %v, want %v", provider.Name(), "openai")
				}
			}
		})
	}
}

func TestOpenAIProviderIsAvailable(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "with API key",
			config:  &Config{OpenAIKey: "test-key"},
			wantErr: false,
		},
		{
			name:    "without API key",
			config:  &Config{OpenAIKey: ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &OpenAIProvider{
				config: tt.config,
			}
			err := provider.IsAvailable()
			if (err != nil) != tt.wantErr {
				t.Errorf("IsAvailable() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func newOpenAITestServer(t *testing.T, status int, body string, got *map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/audio/speech") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got != nil {
			json.NewDecoder(r.Body).Decode(got)
		}
		if status != http.StatusOK {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestOpenAIProviderSynthesize(t *testing.T) {
	var payload map[string]interface{}
	server := newOpenAITestServer(t, http.StatusOK, "RIFF0000WAVEdata", &payload)
	defer server.Close()

	provider, err := NewOpenAIProvider(&Config{
		OpenAIKey:         "test-key",
		OpenAIBaseURL:     server.URL + "/v1",
		OpenAIModel:       "tts-1",
		OpenAIVoice:       "nova",
		OpenAIInstruction: "ignored for tts-1",
	})
	if err != nil {
		t.Fatalf("NewOpenAIProvider() error = %v", err)
	}

	result, err := provider.Synthesize(context.Background(), Request{Text: "Салом"})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if result.StatusCode != 200 || string(result.Audio) != "RIFF0000WAVEdata" || result.Text != "Салом" {
		t.Errorf("unexpected result %+v", result)
	}
	if payload["response_format"] != "wav" {
		t.Errorf("response_format = %v, want wav", payload["response_format"])
	}
	if payload["voice"] != "nova" || payload["model"] != "tts-1" {
		t.Errorf("unexpected payload %v", payload)
	}
	if _, ok := payload["instructions"]; ok {
		t.Error("instructions must not be sent to tts-1")
	}
}

func TestOpenAIProviderStatusError(t *testing.T) {
	server := newOpenAITestServer(t, http.StatusTooManyRequests, `{"error":{"message":"rate limited","type":"requests"}}`, nil)
	defer server.Close()

	provider, err := NewOpenAIProvider(&Config{
		OpenAIKey:     "test-key",
		OpenAIBaseURL: server.URL + "/v1",
		OpenAIModel:   "tts-1",
		OpenAIVoice:   "alloy",
	})
	if err != nil {
		t.Fatalf("NewOpenAIProvider() error = %v", err)
	}

	result, err := provider.Synthesize(context.Background(), Request{Text: "Салом"})
	code, ok := StatusCode(err)
	if !ok || code != http.StatusTooManyRequests {
		t.Fatalf("StatusCode(err) = %d, %v; err = %v", code, ok, err)
	}
	if result == nil || result.Audio != nil || result.StatusCode != http.StatusTooManyRequests {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestOpenAIProviderRejectsBlankText(t *testing.T) {
	provider, err := NewOpenAIProvider(&Config{OpenAIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewOpenAIProvider() error = %v", err)
	}

	if _, err := provider.Synthesize(context.Background(), Request{Text: " "}); err != ErrEmptyText {
		t.Errorf("Synthesize() error = %v, want ErrEmptyText", err)
	}
}
