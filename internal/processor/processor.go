package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"codeberg.org/snonux/ttsuz/internal"
	"codeberg.org/snonux/ttsuz/internal/audio"
	"codeberg.org/snonux/ttsuz/internal/history"
	"codeberg.org/snonux/ttsuz/internal/logging"
	"codeberg.org/snonux/ttsuz/internal/translit"
)

// ErrEmptyInput is returned when the input is blank after trimming
var ErrEmptyInput = errors.New("input text is empty")

// DefaultLanguage is used when no language is given
const DefaultLanguage = "uz"

// Options control what happens around a conversion
type Options struct {
	OutputDir string
	SaveAudio bool
	// Play plays the audio after a CLI conversion
	Play bool
}

// Player plays an audio file
type Player interface {
	Play(ctx context.Context, file string) error
}

// Outcome is the result of one conversion
type Outcome struct {
	// Result is nil when the request never got an answer
	Result     *audio.Result
	Normalized translit.Result
	// AudioFile is the saved audio, empty when nothing was saved
	AudioFile string
}

// PlaybackFile returns a file holding the audio of a successful
// conversion. Without a saved file the audio goes to a temporary file that
// cleanup removes.
func (o *Outcome) PlaybackFile() (string, func(), error) {
	if o.AudioFile != "" {
		return o.AudioFile, func() {}, nil
	}
	if o.Result == nil || len(o.Result.Audio) == 0 {
		return "", func() {}, fmt.Errorf("no audio to play")
	}

	format := o.Result.Format
	if format == "" {
		format = audio.FormatWAV
	}

	f, err := os.CreateTemp("", "ttsuz-*."+format)
	if err != nil {
		return "", func() {}, fmt.Errorf("failed to create temporary audio file: %w", err)
	}
	path := f.Name()
	cleanup := func() { os.Remove(path) }

	if _, err := f.Write(o.Result.Audio); err != nil {
		f.Close()
		cleanup()
		return "", func() {}, fmt.Errorf("failed to write temporary audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("failed to write temporary audio file: %w", err)
	}

	return path, cleanup, nil
}

// Processor handles conversions
type Processor struct {
	provider audio.Provider
	history  *history.Store
	player   Player
	options  Options
	logger   *zap.Logger
}

// NewProcessor creates a processor. store may be nil to disable history.
func NewProcessor(provider audio.Provider, store *history.Store, options Options, logger *zap.Logger) *Processor {
	return &Processor{
		provider: provider,
		history:  store,
		player:   audio.NewPlayer(),
		options:  options,
		logger:   logging.OrNop(logger),
	}
}

// SetPlayer replaces the audio player
func (p *Processor) SetPlayer(player Player) {
	p.player = player
}

// Provider returns the speech provider in use
func (p *Processor) Provider() audio.Provider {
	return p.provider
}

// History returns the history store, nil when history is disabled
func (p *Processor) History() *history.Store {
	return p.history
}

// Options returns the processor options
func (p *Processor) Options() Options {
	return p.options
}

// Convert turns input into speech. On a request failure the outcome is
// still returned with the normalized text and, for non-200 answers, the
// status code.
func (p *Processor) Convert(ctx context.Context, input, language string) (*Outcome, error) {
	return p.convert(ctx, input, language, "")
}

// ConvertFile reads the whole file as one input
func (p *Processor) ConvertFile(ctx context.Context, path, language string) (*Outcome, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return p.Convert(ctx, string(content), language)
}

func (p *Processor) convert(ctx context.Context, input, language, label string) (*Outcome, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}
	if language == "" {
		language = DefaultLanguage
	}

	normalized := translit.Normalize(input)
	outcome := &Outcome{Normalized: normalized}

	p.logger.Debug("speech request",
		zap.String("provider", p.provider.Name()),
		zap.Bool("transliterated", normalized.Transliterated),
		zap.Int("words", translit.WordCount(normalized.Text)))

	result, err := p.provider.Synthesize(ctx, audio.Request{Text: normalized.Text, Language: language})
	outcome.Result = result

	if err == nil && p.options.SaveAudio {
		outcome.AudioFile, err = p.saveAudio(result, label)
	}

	p.record(ctx, input, language, outcome, err)

	return outcome, err
}

func (p *Processor) saveAudio(result *audio.Result, label string) (string, error) {
	dir := p.options.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := internal.GenerateClipID(result.Text)
	if label != "" {
		name = internal.SanitizeFilename(label)
	}
	format := result.Format
	if format == "" {
		format = audio.FormatWAV
	}

	audioFile := freePath(dir, name, format)
	if base := filepath.Join(dir, name+"."+format); audioFile != base {
		p.logger.Warn("audio file exists, saving under a new name",
			zap.String("file", base), zap.String("saved", audioFile))
	}

	if err := os.WriteFile(audioFile, result.Audio, 0644); err != nil {
		return "", fmt.Errorf("failed to save audio: %w", err)
	}

	// The spoken text next to the audio
	textFile := strings.TrimSuffix(audioFile, filepath.Ext(audioFile)) + ".txt"
	if err := os.WriteFile(textFile, []byte(result.Text+"\n"), 0644); err != nil {
		p.logger.Warn("failed to save processed text", zap.String("file", textFile), zap.Error(err))
	}

	return audioFile, nil
}

// freePath returns dir/name.format, or dir/name-N.format with the first N
// from 2 up that names no existing file
func freePath(dir, name, format string) string {
	path := filepath.Join(dir, name+"."+format)
	for i := 2; fileExists(path); i++ {
		path = filepath.Join(dir, fmt.Sprintf("%s-%d.%s", name, i, format))
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (p *Processor) record(ctx context.Context, input, language string, outcome *Outcome, err error) {
	if p.history == nil {
		return
	}

	entry := &history.Entry{
		Input:      input,
		Normalized: outcome.Normalized.Text,
		Language:   language,
		Provider:   p.provider.Name(),
		AudioFile:  outcome.AudioFile,
	}
	if outcome.Result != nil {
		entry.StatusCode = outcome.Result.StatusCode
	}
	if err != nil {
		entry.Error = err.Error()
	}

	// Record even when the request context is gone
	if ctx.Err() != nil {
		ctx = context.Background()
	}
	if herr := p.history.Add(ctx, entry); herr != nil {
		p.logger.Warn("failed to record history", zap.Error(herr))
	}
}
