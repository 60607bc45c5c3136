package audio

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Player plays audio files with whatever command line player the
// platform offers.
type Player struct {
	lookPath func(string) (string, error)
	goos     string
}

// NewPlayer creates a player for the current platform
func NewPlayer() *Player {
	return &Player{
		lookPath: exec.LookPath,
		goos:     runtime.GOOS,
	}
}

// Command returns the command that plays file
func (p *Player) Command(ctx context.Context, file string) (*exec.Cmd, error) {
	switch p.goos {
	case "darwin": // macOS
		return exec.CommandContext(ctx, "afplay", file), nil
	case "linux":
		// Try multiple commands in order of preference
		candidates := [][]string{
			{"paplay", file},
			{"aplay", "-q", file},
			{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", file},
			{"play", "-q", file}, // SoX
		}
		for _, c := range candidates {
			if _, err := p.lookPath(c[0]); err == nil {
				return exec.CommandContext(ctx, c[0], c[1:]...), nil
			}
		}
		return nil, fmt.Errorf("no audio player found. Install paplay, aplay, ffplay, or sox")
	case "windows":
		return exec.CommandContext(ctx, "cmd", "/c", "start", "/min", file), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", p.goos)
	}
}

// Play blocks until file finished playing or ctx is cancelled
func (p *Player) Play(ctx context.Context, file string) error {
	cmd, err := p.Command(ctx, file)
	if err != nil {
		return err
	}
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("playback failed: %w\nOutput: %s", err, string(output))
	}
	return nil
}
