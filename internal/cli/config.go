package cli

import (
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"codeberg.org/snonux/ttsuz/internal/audio"
)

// GetAPIToken retrieves the inference bearer token. API_TOKEN wins over
// TTSUZ_API_TOKEN and the api.token config key.
func GetAPIToken() string {
	if token := os.Getenv("API_TOKEN"); token != "" {
		return token
	}
	return viper.GetString("api.token")
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("openai.key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}
	return viper.GetString("gemini.key")
}

// AudioConfig builds the provider configuration from viper. Unset keys
// keep the defaults of audio.DefaultProviderConfig.
func AudioConfig(logger *zap.Logger) *audio.Config {
	config := audio.DefaultProviderConfig()

	setString(&config.Provider, "audio.provider")
	setString(&config.Fallback, "audio.fallback")
	config.Breaker = viper.GetBool("audio.breaker")
	config.Timeout = viper.GetDuration("audio.timeout")

	setString(&config.APIURL, "api.url")
	config.APIToken = GetAPIToken()

	config.OpenAIKey = GetOpenAIKey()
	setString(&config.OpenAIBaseURL, "openai.base_url")
	setString(&config.OpenAIModel, "openai.model")
	setString(&config.OpenAIVoice, "openai.voice")
	setString(&config.OpenAIInstruction, "openai.instruction")
	if speed := viper.GetFloat64("openai.speed"); speed > 0 {
		config.OpenAISpeed = speed
	}

	config.GeminiKey = GetGeminiKey()
	setString(&config.GeminiBaseURL, "gemini.base_url")
	setString(&config.GeminiModel, "gemini.model")
	setString(&config.GeminiVoice, "gemini.voice")

	setString(&config.ESpeak.Binary, "espeak.binary")
	setString(&config.ESpeak.Voice, "espeak.voice")
	if speed := viper.GetInt("espeak.speed"); speed > 0 {
		config.ESpeak.Speed = speed
	}

	config.Logger = logger
	return config
}

// OutputDir returns the configured output directory
func OutputDir(flags *Flags) string {
	if dir := viper.GetString("output.directory"); dir != "" {
		return dir
	}
	return flags.OutputDir
}

// HistoryPath returns the history database path, or "" when history is
// disabled
func HistoryPath(flags *Flags) string {
	if viper.GetBool("history.disabled") || flags.NoHistory {
		return ""
	}
	if path := viper.GetString("history.path"); path != "" {
		return path
	}
	return flags.HistoryPath
}

// ServerAddr returns the listen address for the HTTP API
func ServerAddr(flags *Flags) string {
	if addr := viper.GetString("server.addr"); addr != "" {
		return addr
	}
	return flags.ServerAddr
}

func setString(field *string, key string) {
	if v := viper.GetString(key); v != "" {
		*field = v
	}
}
