package gui

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/ttsuz/internal/audio"
)

// AudioPlayer is a custom widget for playing audio files
type AudioPlayer struct {
	widget.BaseWidget

	container   *fyne.Container
	playButton  *ttwidget.Button
	stopButton  *ttwidget.Button
	statusLabel *widget.Label

	player    *audio.Player
	audioFile string
	duration  string
	// cleanup removes a temporary audioFile
	cleanup func()

	mu        sync.Mutex
	isPlaying bool
	cancel    context.CancelFunc
}

// NewAudioPlayer creates a new audio player widget
func NewAudioPlayer() *AudioPlayer {
	p := &AudioPlayer{player: audio.NewPlayer()}

	p.playButton = ttwidget.NewButton("", p.onPlay)
	p.playButton.Icon = theme.MediaPlayIcon()

	p.stopButton = ttwidget.NewButton("", p.onStop)
	p.stopButton.Icon = theme.MediaStopIcon()

	p.statusLabel = widget.NewLabel("")

	p.playButton.Disable()
	p.stopButton.Disable()

	p.container = container.NewHBox(
		p.playButton,
		p.stopButton,
		layout.NewSpacer(),
		p.statusLabel,
	)

	p.ExtendBaseWidget(p)
	return p
}

// CreateRenderer implements fyne.Widget
func (p *AudioPlayer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.container)
}

// SetPlayTooltip sets the tooltip of the play button
func (p *AudioPlayer) SetPlayTooltip(text string) {
	p.playButton.SetToolTip(text)
}

// SetAudioFile sets the audio file to play. cleanup, if not nil, runs when
// the file is replaced or the player is cleared.
func (p *AudioPlayer) SetAudioFile(audioFile string, cleanup func()) {
	p.stopPlayback()
	p.releaseFile()
	p.audioFile = audioFile
	p.cleanup = cleanup
	p.duration = ""

	if audioFile == "" {
		p.Clear()
		return
	}

	if data, err := os.ReadFile(audioFile); err == nil {
		if d := audio.Duration(data); d > 0 {
			p.duration = fmt.Sprintf(" (%s)", d.Round(100*time.Millisecond))
		}
	}

	p.playButton.Enable()
	p.statusLabel.SetText(fmt.Sprintf("%s%s", filepath.Base(audioFile), p.duration))
}

// AudioFile returns the loaded file
func (p *AudioPlayer) AudioFile() string {
	return p.audioFile
}

// Clear clears the audio player
func (p *AudioPlayer) Clear() {
	p.stopPlayback()
	p.releaseFile()
	p.audioFile = ""
	p.duration = ""
	p.playButton.SetIcon(theme.MediaPlayIcon())
	p.playButton.Disable()
	p.stopButton.Disable()
	p.statusLabel.SetText("")
}

func (p *AudioPlayer) releaseFile() {
	if p.cleanup != nil {
		p.cleanup()
		p.cleanup = nil
	}
}

// Play triggers audio playback
func (p *AudioPlayer) Play() {
	if !p.playButton.Disabled() {
		p.onPlay()
	}
}

// onPlay handles play button click
func (p *AudioPlayer) onPlay() {
	if p.audioFile == "" {
		return
	}

	p.mu.Lock()
	playing := p.isPlaying
	p.mu.Unlock()

	if playing {
		p.onStop()
		return
	}

	if err := p.startPlayback(); err != nil {
		p.statusLabel.SetText(fmt.Sprintf("Error: %v", err))
		return
	}

	p.playButton.SetIcon(theme.MediaPauseIcon())
	p.stopButton.Enable()
	p.statusLabel.SetText(fmt.Sprintf("▶ %s%s", filepath.Base(p.audioFile), p.duration))
}

// onStop handles stop button click
func (p *AudioPlayer) onStop() {
	p.stopPlayback()
	p.playButton.SetIcon(theme.MediaPlayIcon())
	p.stopButton.Disable()
	p.statusLabel.SetText(fmt.Sprintf("%s%s", filepath.Base(p.audioFile), p.duration))
}

func (p *AudioPlayer) stopPlayback() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.isPlaying = false
}

// startPlayback starts the platform player in the background
func (p *AudioPlayer) startPlayback() error {
	ctx, cancel := context.WithCancel(context.Background())

	cmd, err := p.player.Command(ctx, p.audioFile)
	if err != nil {
		cancel()
		return err
	}

	p.mu.Lock()
	p.cancel = cancel
	p.isPlaying = true
	p.mu.Unlock()

	go p.wait(ctx, cmd)
	return nil
}

func (p *AudioPlayer) wait(ctx context.Context, cmd *exec.Cmd) {
	err := cmd.Run()
	if ctx.Err() != nil {
		// Stopped by the user
		return
	}

	p.mu.Lock()
	p.isPlaying = false
	p.cancel = nil
	p.mu.Unlock()

	fyne.Do(func() {
		p.playButton.SetIcon(theme.MediaPlayIcon())
		p.stopButton.Disable()
		if err != nil {
			p.statusLabel.SetText(fmt.Sprintf("Error: %v", err))
			return
		}
		p.statusLabel.SetText(fmt.Sprintf("%s%s", filepath.Base(p.audioFile), p.duration))
	})
}
