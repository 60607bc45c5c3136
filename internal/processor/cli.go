package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"codeberg.org/snonux/ttsuz/internal/audio"
	"codeberg.org/snonux/ttsuz/internal/batch"
	"codeberg.org/snonux/ttsuz/internal/translit"
)

// Summary counts the results of a batch run
type Summary struct {
	Total     int
	Converted int
	Failed    int
}

// ProcessSingle converts text given on the command line and reports
// progress on stdout
func (p *Processor) ProcessSingle(ctx context.Context, text, language string) error {
	if translit.ExceedsWordLimit(text) {
		fmt.Printf("Warning: the text has %d words, more than the suggested %d\n",
			translit.WordCount(text), translit.WordLimitHint)
	}

	fmt.Printf("\nProcessing with %s...\n", p.provider.Name())
	outcome, err := p.Convert(ctx, text, language)
	return p.report(ctx, outcome, err)
}

// ProcessFile converts the content of a file as one text
func (p *Processor) ProcessFile(ctx context.Context, path, language string) error {
	fmt.Printf("\nProcessing file %s with %s...\n", path, p.provider.Name())
	outcome, err := p.ConvertFile(ctx, path, language)
	return p.report(ctx, outcome, err)
}

func (p *Processor) report(ctx context.Context, outcome *Outcome, err error) error {
	if errors.Is(err, ErrEmptyInput) {
		return err
	}
	if outcome == nil {
		return err
	}

	if outcome.Normalized.Transliterated {
		fmt.Printf("  Transliterated to Cyrillic\n")
	}
	fmt.Printf("  Processed text: %s\n", outcome.Normalized.Text)

	if err != nil {
		return describe(err)
	}

	fmt.Printf("  ✅ Text converted to speech successfully (%s)\n", audio.Duration(outcome.Result.Audio).Round(10*time.Millisecond))
	if outcome.AudioFile != "" {
		fmt.Printf("  Saved audio: %s\n", outcome.AudioFile)
	}

	if p.options.Play {
		p.play(ctx, outcome)
	}

	return nil
}

// play plays the outcome's audio, from a temporary file when nothing was saved
func (p *Processor) play(ctx context.Context, outcome *Outcome) {
	file, cleanup, err := outcome.PlaybackFile()
	if err != nil {
		fmt.Printf("  Warning: playback failed: %v\n", err)
		return
	}
	defer cleanup()

	if err := p.player.Play(ctx, file); err != nil {
		fmt.Printf("  Warning: playback failed: %v\n", err)
	}
}

// ProcessBatch converts every entry of a batch file. Failing lines are
// reported and counted but do not stop the batch.
func (p *Processor) ProcessBatch(ctx context.Context, path, language string) (*Summary, error) {
	entries, err := batch.ReadBatchFile(path)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Total: len(entries)}

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		fmt.Printf("\nProcessing %d/%d: %s\n", i+1, len(entries), entry.Text)

		outcome, err := p.convert(ctx, entry.Text, language, entry.Label)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error on line %d: %v\n", entry.Line, describe(err))
			p.logger.Debug("batch entry failed", zap.Int("line", entry.Line), zap.Error(err))
			summary.Failed++
			continue
		}

		summary.Converted++
		if outcome.AudioFile != "" {
			fmt.Printf("  Saved audio: %s\n", outcome.AudioFile)
		}
	}

	fmt.Printf("\n=== Batch Processing Summary ===\n")
	fmt.Printf("Total texts: %d\n", summary.Total)
	fmt.Printf("Converted: %d\n", summary.Converted)
	if summary.Failed > 0 {
		fmt.Printf("Errors: %d\n", summary.Failed)
	}
	fmt.Printf("================================\n")

	return summary, nil
}

// describe turns a conversion error into the message shown to users
func describe(err error) error {
	if code, ok := audio.StatusCode(err); ok {
		return fmt.Errorf("❌ Error occurred with status code: %d", code)
	}
	return fmt.Errorf("❌ Error in text-to-speech conversion: %w", err)
}
