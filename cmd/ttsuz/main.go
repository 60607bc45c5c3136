package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"codeberg.org/snonux/ttsuz/internal/archive"
	"codeberg.org/snonux/ttsuz/internal/audio"
	"codeberg.org/snonux/ttsuz/internal/cli"
	"codeberg.org/snonux/ttsuz/internal/gui"
	"codeberg.org/snonux/ttsuz/internal/history"
	"codeberg.org/snonux/ttsuz/internal/logging"
	"codeberg.org/snonux/ttsuz/internal/models"
	"codeberg.org/snonux/ttsuz/internal/processor"
	"codeberg.org/snonux/ttsuz/internal/server"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create commands
	rootCmd := cli.CreateRootCommand(flags)
	serveCmd := cli.CreateServeCommand(flags)
	historyCmd := cli.CreateHistoryCommand(flags)
	rootCmd.AddCommand(serveCmd, historyCmd)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run functions
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd.Context(), args, flags)
	}
	serveCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), flags)
	}
	historyCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runHistory(cmd.Context(), flags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, args []string, flags *cli.Flags) error {
	// Handle --archive flag
	if flags.Archive {
		dest, err := archive.ArchiveDir(cli.OutputDir(flags))
		if err != nil {
			return fmt.Errorf("failed to archive output: %w", err)
		}
		fmt.Printf("Archived output to: %s\n", dest)
		return nil
	}

	// Handle --list-providers flag
	if flags.ListProviders {
		fmt.Println("Speech providers:")
		for _, name := range audio.Names() {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println("\nespeak-ng voices:")
		for _, voice := range audio.ListVoices() {
			fmt.Printf("  %s\n", voice)
		}
		return nil
	}

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey(), viper.GetString("openai.base_url"))
		return lister.PrintSpeechModels(ctx, os.Stdout)
	}

	logger, err := logging.New(flags.Verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	proc, closeFn, err := newProcessor(flags, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	language := viper.GetString("language")
	if language == "" {
		language = flags.Language
	}

	switch {
	case flags.BatchFile != "":
		summary, err := proc.ProcessBatch(ctx, flags.BatchFile, language)
		if err != nil {
			return err
		}
		if summary.Converted == 0 && summary.Total > 0 {
			return fmt.Errorf("no text could be converted")
		}
	case flags.InputFile != "":
		if err := proc.ProcessFile(ctx, flags.InputFile, language); err != nil {
			return err
		}
	case len(args) > 0:
		if err := proc.ProcessSingle(ctx, strings.Join(args, " "), language); err != nil {
			return err
		}
	default:
		// No input provided - launch GUI mode by default
		app := gui.New(proc, &gui.Config{
			Language: language,
			AutoPlay: true,
			Logger:   logger,
		})
		app.Run()
		return nil
	}

	if proc.Options().SaveAudio {
		fmt.Printf("\nDone! Audio saved to: %s\n", proc.Options().OutputDir)
	}
	return nil
}

func runServe(ctx context.Context, flags *cli.Flags) error {
	logger, err := logging.NewProduction(flags.Verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	proc, closeFn, err := newProcessor(flags, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := proc.Provider().IsAvailable(); err != nil {
		logger.Warn("speech provider not ready", zap.Error(err))
	}

	srv := server.New(proc, proc.History(), server.DefaultOptions(), logger)
	return srv.ListenAndServe(ctx, cli.ServerAddr(flags))
}

func runHistory(ctx context.Context, flags *cli.Flags) error {
	path := cli.HistoryPath(flags)
	if path == "" {
		return fmt.Errorf("history is disabled")
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(ctx, flags.HistoryLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No conversions recorded yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tPROVIDER\tSTATUS\tTEXT\tAUDIO")
	for _, e := range entries {
		status := fmt.Sprintf("%d", e.StatusCode)
		if !e.OK() && e.StatusCode == 0 {
			status = "failed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.Provider,
			status,
			shorten(e.Normalized, 40),
			e.AudioFile)
	}
	return w.Flush()
}

// newProcessor wires the provider and history store from configuration
func newProcessor(flags *cli.Flags, logger *zap.Logger) (*processor.Processor, func(), error) {
	provider, err := audio.NewProvider(cli.AudioConfig(logger))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create speech provider: %w", err)
	}

	var store *history.Store
	closeFn := func() {}
	if path := cli.HistoryPath(flags); path != "" {
		store, err = history.Open(path)
		if err != nil {
			// Conversions still work without history
			logger.Warn("history disabled", zap.String("path", path), zap.Error(err))
			store = nil
		} else {
			closeFn = func() { store.Close() }
		}
	}

	proc := processor.NewProcessor(provider, store, processor.Options{
		OutputDir: cli.OutputDir(flags),
		SaveAudio: !flags.NoSave,
		Play:      flags.Play,
	}, logger)

	return proc, closeFn, nil
}

func shorten(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
