package cli

import (
	"time"

	"codeberg.org/snonux/ttsuz/internal/audio"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile     string
	Verbose     bool
	OutputDir   string
	HistoryPath string
	NoHistory   bool

	// Conversion flags
	InputFile     string
	BatchFile     string
	Language      string
	NoSave        bool
	Play          bool
	Archive       bool
	ListProviders bool
	ListModels    bool

	// Provider flags
	Provider string
	Fallback string
	Breaker  bool
	Timeout  time.Duration
	APIURL   string

	// OpenAI flags
	OpenAIModel       string
	OpenAIVoice       string
	OpenAISpeed       float64
	OpenAIInstruction string

	// Gemini flags
	GeminiModel string
	GeminiVoice string

	// espeak-ng flags
	ESpeakVoice string
	ESpeakSpeed int

	// Subcommand flags
	ServerAddr   string
	HistoryLimit int
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	defaults := audio.DefaultProviderConfig()

	return &Flags{
		Language:     "uz",
		Provider:     defaults.Provider,
		APIURL:       defaults.APIURL,
		OpenAIModel:  defaults.OpenAIModel,
		OpenAIVoice:  defaults.OpenAIVoice,
		OpenAISpeed:  defaults.OpenAISpeed,
		GeminiModel:  defaults.GeminiModel,
		GeminiVoice:  defaults.GeminiVoice,
		ESpeakVoice:  defaults.ESpeak.Voice,
		ESpeakSpeed:  defaults.ESpeak.Speed,
		ServerAddr:   ":8080",
		HistoryLimit: 20,
	}
}
