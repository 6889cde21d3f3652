package config

const (
	defaultDataDir             = "~/.local/share/caption"
	defaultLogDir              = "~/.local/share/caption/logs"
	defaultAPIBind             = "127.0.0.1:7519"
	defaultOpenAIBaseURL       = "https://api.openai.com/v1"
	defaultWhisperModel        = "whisper-1"
	defaultTranslationModel    = "gpt-4o"
	defaultFallbackModel       = "gpt-4-turbo"
	defaultOpenAITimeout       = 300
	defaultMyMemoryBaseURL     = "https://api.mymemory.translated.net"
	defaultMyMemoryThrottle    = 100
	defaultMaxVideoMiB         = 500
	defaultMaxAudioMiB         = 100
	defaultInlineThresholdMiB  = 5
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		OpenAI: OpenAI{
			BaseURL:          defaultOpenAIBaseURL,
			WhisperModel:     defaultWhisperModel,
			TranslationModel: defaultTranslationModel,
			FallbackModel:    defaultFallbackModel,
			TimeoutSeconds:   defaultOpenAITimeout,
		},
		MyMemory: MyMemory{
			BaseURL:        defaultMyMemoryBaseURL,
			ThrottleMillis: defaultMyMemoryThrottle,
		},
		Upload: Upload{
			MaxVideoMiB:        defaultMaxVideoMiB,
			MaxAudioMiB:        defaultMaxAudioMiB,
			InlineThresholdMiB: defaultInlineThresholdMiB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
