package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/ttsuz/internal"
	"codeberg.org/snonux/ttsuz/internal/audio"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ttsuz [text]",
		Short: "Uzbek text-to-speech converter",
		Long: `ttsuz converts Uzbek text to speech.

Latin script input is transliterated to Uzbek Cyrillic before it is sent
to the speech model. Text that already contains Cyrillic is sent as is.

Examples:
  ttsuz                              # Launch interactive GUI (default)
  ttsuz "Salom dunyo"                # Convert text via CLI
  ttsuz --file matn.txt              # Convert a whole file as one text
  ttsuz --batch lines.txt            # Convert every line of a file
  ttsuz serve --addr :8080           # Serve the HTTP API
  ttsuz history                      # Show recent conversions`,
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

// CreateServeCommand creates the "serve" subcommand. The caller sets RunE.
func CreateServeCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the text-to-speech HTTP API",
		Args:  cobra.NoArgs,
	}

	cmd.Flags().StringVar(&flags.ServerAddr, "addr", flags.ServerAddr, "Listen address")
	viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

// CreateHistoryCommand creates the "history" subcommand. The caller sets RunE.
func CreateHistoryCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent conversions",
		Args:  cobra.NoArgs,
	}

	cmd.Flags().IntVarP(&flags.HistoryLimit, "limit", "n", flags.HistoryLimit, "Number of entries to show")

	return cmd
}

// DefaultStateDir is where output and history live unless configured
func DefaultStateDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "ttsuz")
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	stateDir := DefaultStateDir()

	// Global flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.ttsuz.yaml)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "Verbose diagnostic logging")
	pf.StringVarP(&flags.OutputDir, "output", "o", filepath.Join(stateDir, "speech"), "Output directory for audio files")
	pf.StringVar(&flags.HistoryPath, "history-db", filepath.Join(stateDir, "history.db"), "History database file")
	pf.BoolVar(&flags.NoHistory, "no-history", false, "Do not record conversions")

	// Provider flags
	pf.StringVarP(&flags.Provider, "provider", "p", flags.Provider, "Speech provider: "+strings.Join(audio.Names(), ", "))
	pf.StringVar(&flags.Fallback, "fallback", "", "Provider to try when the primary one fails")
	pf.BoolVar(&flags.Breaker, "breaker", false, "Stop calling a failing provider for a while")
	pf.DurationVar(&flags.Timeout, "timeout", 0, "Request timeout (0 means none)")
	pf.StringVar(&flags.APIURL, "api-url", flags.APIURL, "Inference endpoint URL")

	// OpenAI flags
	pf.StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	pf.StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, ballad, coral, echo, fable, onyx, nova, sage, shimmer, verse")
	pf.Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0)")
	pf.StringVar(&flags.OpenAIInstruction, "openai-instruction", "", "Voice instructions for gpt-4o-mini-tts")

	// Gemini flags
	pf.StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini speech model")
	pf.StringVar(&flags.GeminiVoice, "gemini-voice", flags.GeminiVoice, "Gemini prebuilt voice")

	// espeak-ng flags
	pf.StringVar(&flags.ESpeakVoice, "espeak-voice", flags.ESpeakVoice, "espeak-ng voice: "+strings.Join(audio.ListVoices(), ", "))
	pf.IntVar(&flags.ESpeakSpeed, "espeak-speed", flags.ESpeakSpeed, "espeak-ng speed in words per minute (80 to 450)")

	// Local flags
	cmd.Flags().StringVarP(&flags.InputFile, "file", "f", "", "Convert the whole file as one text")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Convert every line of a file (label = text names the output)")
	cmd.Flags().StringVarP(&flags.Language, "language", "l", flags.Language, "Language code (uz or en)")
	cmd.Flags().BoolVar(&flags.NoSave, "no-save", false, "Do not save audio files")
	cmd.Flags().BoolVar(&flags.Play, "play", false, "Play the audio after conversion")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move the output directory to the archive and exit")
	cmd.Flags().BoolVar(&flags.ListProviders, "list-providers", false, "List speech providers and espeak-ng voices")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List the OpenAI speech models available for your key")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	viper.BindPFlag("output.directory", pf.Lookup("output"))
	viper.BindPFlag("history.path", pf.Lookup("history-db"))
	viper.BindPFlag("history.disabled", pf.Lookup("no-history"))
	viper.BindPFlag("api.url", pf.Lookup("api-url"))
	viper.BindPFlag("audio.provider", pf.Lookup("provider"))
	viper.BindPFlag("audio.fallback", pf.Lookup("fallback"))
	viper.BindPFlag("audio.breaker", pf.Lookup("breaker"))
	viper.BindPFlag("audio.timeout", pf.Lookup("timeout"))
	viper.BindPFlag("openai.model", pf.Lookup("openai-model"))
	viper.BindPFlag("openai.voice", pf.Lookup("openai-voice"))
	viper.BindPFlag("openai.speed", pf.Lookup("openai-speed"))
	viper.BindPFlag("openai.instruction", pf.Lookup("openai-instruction"))
	viper.BindPFlag("gemini.model", pf.Lookup("gemini-model"))
	viper.BindPFlag("gemini.voice", pf.Lookup("gemini-voice"))
	viper.BindPFlag("espeak.voice", pf.Lookup("espeak-voice"))
	viper.BindPFlag("espeak.speed", pf.Lookup("espeak-speed"))
	viper.BindPFlag("language", cmd.Flags().Lookup("language"))
}

// InitConfig initializes viper configuration. A .env file in the working
// directory is loaded first; it never overrides variables already set.
func InitConfig(cfgFile string) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".ttsuz" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ttsuz")
	}

	// Environment variables: api.token is read from TTSUZ_API_TOKEN
	viper.SetEnvPrefix("TTSUZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
