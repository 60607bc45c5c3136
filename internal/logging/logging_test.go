package logging

import (
	"testing"

	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		verbose bool
		debug   bool
	}{
		{verbose: true, debug: true},
		{verbose: false, debug: false},
	}

	for _, tt := range tests {
		logger, err := New(tt.verbose)
		if err != nil {
			t.Fatalf("New(%v) error = %v", tt.verbose, err)
		}
		if got := logger.Core().Enabled(zap.DebugLevel); got != tt.debug {
			t.Errorf("New(%v) debug enabled = %v, want %v", tt.verbose, got, tt.debug)
		}
		if !logger.Core().Enabled(zap.ErrorLevel) {
			t.Errorf("New(%v) should log errors", tt.verbose)
		}
	}
}

func TestNewProduction(t *testing.T) {
	logger, err := NewProduction(false)
	if err != nil {
		t.Fatalf("NewProduction() error = %v", err)
	}
	if !logger.Core().Enabled(zap.InfoLevel) {
		t.Error("NewProduction() should log info")
	}
	if logger.Core().Enabled(zap.DebugLevel) {
		t.Error("NewProduction() should not log debug")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Error("OrNop(nil) returned nil")
	}

	logger := zap.NewExample()
	if OrNop(logger) != logger {
		t.Error("OrNop() should return the given logger")
	}
}
