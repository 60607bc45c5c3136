package audio

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker"
)

func TestBreakerProviderOpensAfterFailures(t *testing.T) {
	inner := &mockProvider{
		name:        "inner",
		generateErr: &SpeechError{Kind: KindTransport, Provider: "inner", Err: errors.New("connection refused")},
	}

	settings := DefaultBreakerSettings()
	settings.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 2
	}
	provider := NewBreakerProvider(inner, settings, nil)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := provider.Synthesize(ctx, Request{Text: "салом"}); !IsTransport(err) {
			t.Fatalf("call %d: expected transport error, got %v", i, err)
		}
	}

	breaker := provider.(*BreakerProvider)
	if breaker.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", breaker.State())
	}

	_, err := provider.Synthesize(ctx, Request{Text: "салом"})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Expected open state error, got %v", err)
	}
	if !IsTransport(err) {
		t.Errorf("Open breaker should report a transport error, got %v", err)
	}
	if inner.generateCalls != 2 {
		t.Errorf("Expected 2 calls to reach the provider, got %d", inner.generateCalls)
	}
	if provider.IsAvailable() == nil {
		t.Error("IsAvailable() should fail while the breaker is open")
	}
}

func TestBreakerProviderIgnoresClientErrors(t *testing.T) {
	inner := &mockProvider{
		name:        "inner",
		result:      &Result{StatusCode: 400, Text: "салом"},
		generateErr: &SpeechError{Kind: KindStatus, Provider: "inner", StatusCode: 400},
	}

	settings := DefaultBreakerSettings()
	settings.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 1
	}
	provider := NewBreakerProvider(inner, settings, nil)

	for i := 0; i < 3; i++ {
		result, err := provider.Synthesize(context.Background(), Request{Text: "салом"})
		if code, _ := StatusCode(err); code != 400 {
			t.Fatalf("call %d: expected status 400, got %v", i, err)
		}
		if result == nil || result.StatusCode != 400 {
			t.Fatalf("call %d: expected result with status, got %+v", i, result)
		}
	}

	if state := provider.(*BreakerProvider).State(); state != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", state)
	}
}

func TestCountsAsSuccess(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"canceled", context.Canceled, true},
		{"client error", &SpeechError{Kind: KindStatus, StatusCode: 422}, true},
		{"server error", &SpeechError{Kind: KindStatus, StatusCode: 503}, false},
		{"transport", &SpeechError{Kind: KindTransport, Err: errors.New("eof")}, false},
	}

	for _, tt := range tests {
		if got := countsAsSuccess(tt.err); got != tt.want {
			t.Errorf("%s: countsAsSuccess() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
