package audio

import (
	"context"
	"os/exec"
	"reflect"
	"testing"
)

func TestNewESpeakProviderClamps(t *testing.T) {
	provider, err := NewESpeakProvider(&ESpeakConfig{
		Voice:     "uz+f1",
		Speed:     1000,
		Pitch:     -5,
		Amplitude: 500,
		WordGap:   -1,
	})
	if err != nil {
		t.Fatalf("NewESpeakProvider() error = %v", err)
	}

	config := provider.(*ESpeakProvider).config
	if config.Speed != 450 {
		t.Errorf("Speed = %d, want 450", config.Speed)
	}
	if config.Pitch != 0 {
		t.Errorf("Pitch = %d, want 0", config.Pitch)
	}
	if config.Amplitude != 200 {
		t.Errorf("Amplitude = %d, want 200", config.Amplitude)
	}
	if config.WordGap != 0 {
		t.Errorf("WordGap = %d, want 0", config.WordGap)
	}
	if config.Binary != "espeak-ng" {
		t.Errorf("Binary = %q, want espeak-ng", config.Binary)
	}
}

func TestESpeakProviderArgs(t *testing.T) {
	provider, _ := NewESpeakProvider(&ESpeakConfig{Voice: "uz", Speed: 140, Pitch: 40, Amplitude: 90, WordGap: 2})

	got := provider.(*ESpeakProvider).args("салом")
	want := []string{"-v", "uz", "-s", "140", "-p", "40", "-a", "90", "-g", "2", "--stdout", "салом"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("args() = %v, want %v", got, want)
	}
}

func TestESpeakProviderMissingBinary(t *testing.T) {
	provider, _ := NewESpeakProvider(&ESpeakConfig{Binary: "espeak-ng-does-not-exist"})

	if err := provider.IsAvailable(); err == nil {
		t.Error("IsAvailable() expected error for missing binary")
	}

	result, err := provider.Synthesize(context.Background(), Request{Text: "салом"})
	if result != nil || !IsTransport(err) {
		t.Errorf("Expected transport error, got %+v, %v", result, err)
	}
}

func TestESpeakProviderSynthesize(t *testing.T) {
	if _, err := exec.LookPath("espeak-ng"); err != nil {
		t.Skip("Skipping test: espeak-ng not installed")
	}

	provider, _ := NewESpeakProvider(nil)
	result, err := provider.Synthesize(context.Background(), Request{Text: "салом дунё"})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if !IsWAV(result.Audio) {
		t.Error("Expected WAV output")
	}
}

func TestListVoices(t *testing.T) {
	voices := ListVoices()
	if len(voices) == 0 || voices[0] != "uz" {
		t.Errorf("ListVoices() = %v", voices)
	}
}
