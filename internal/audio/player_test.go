package audio

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestPlayerCommandLinux(t *testing.T) {
	p := &Player{
		goos: "linux",
		lookPath: func(name string) (string, error) {
			if name == "aplay" {
				return "/usr/bin/aplay", nil
			}
			return "", errors.New("not found")
		},
	}

	cmd, err := p.Command(context.Background(), "speech.wav")
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}
	if filepath.Base(cmd.Path) != "aplay" && cmd.Args[0] != "aplay" {
		t.Errorf("Command() = %v, want aplay", cmd.Args)
	}
	if cmd.Args[len(cmd.Args)-1] != "speech.wav" {
		t.Errorf("Command() args = %v", cmd.Args)
	}
}

func TestPlayerCommandNoPlayer(t *testing.T) {
	p := &Player{
		goos:     "linux",
		lookPath: func(string) (string, error) { return "", errors.New("not found") },
	}

	if _, err := p.Command(context.Background(), "speech.wav"); err == nil {
		t.Error("Command() expected error without any player")
	}
}

func TestPlayerCommandUnsupported(t *testing.T) {
	p := &Player{goos: "plan9", lookPath: func(string) (string, error) { return "", nil }}

	if _, err := p.Command(context.Background(), "speech.wav"); err == nil {
		t.Error("Command() expected error for unsupported platform")
	}
}
