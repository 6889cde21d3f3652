package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	DataDir  string `toml:"data_dir"`
	LogDir   string `toml:"log_dir"`
	APIBind  string `toml:"api_bind"`
	LockFile string `toml:"lock_file"`
}

// OpenAI contains connection settings for the speech-to-text and
// chat-completion translation provider.
type OpenAI struct {
	APIKey           string `toml:"api_key"`
	BaseURL          string `toml:"base_url"`
	WhisperModel     string `toml:"whisper_model"`
	TranslationModel string `toml:"translation_model"`
	FallbackModel    string `toml:"fallback_model"`
	TimeoutSeconds   int    `toml:"timeout_seconds"`
}

// Configured reports whether an API key is present at all.
func (o OpenAI) Configured() bool {
	return strings.TrimSpace(o.APIKey) != ""
}

// KeyLooksValid reports whether the configured key matches the provider's
// published key format. Used for health reporting, never enforced at load.
func (o OpenAI) KeyLooksValid() bool {
	return strings.HasPrefix(strings.TrimSpace(o.APIKey), "sk-")
}

// MyMemory contains settings for the free dictionary translation service.
// The service needs no API key; an optional contact email raises its daily
// quota.
type MyMemory struct {
	BaseURL        string `toml:"base_url"`
	Email          string `toml:"email"`
	ThrottleMillis int    `toml:"throttle_millis"`
}

// Blob contains settings for the object storage backend that absorbs
// uploads too large for inline request bodies.
type Blob struct {
	BaseURL string `toml:"base_url"`
	Token   string `toml:"token"`
}

// Configured reports whether the blob backend can accept uploads.
func (b Blob) Configured() bool {
	return strings.TrimSpace(b.BaseURL) != "" && strings.TrimSpace(b.Token) != ""
}

// Upload contains validation limits applied before any network call.
type Upload struct {
	MaxVideoMiB        int64 `toml:"max_video_mib"`
	MaxAudioMiB        int64 `toml:"max_audio_mib"`
	InlineThresholdMiB int64 `toml:"inline_threshold_mib"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for caption.
type Config struct {
	Paths    Paths    `toml:"paths"`
	OpenAI   OpenAI   `toml:"openai"`
	MyMemory MyMemory `toml:"mymemory"`
	Blob     Blob     `toml:"blob"`
	Upload   Upload   `toml:"upload"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/caption/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. A missing file is not
// an error; defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o600); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("caption.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if c.Paths.LockFile, err = expandPath(c.Paths.LockFile); err != nil {
		return err
	}

	c.OpenAI.APIKey = strings.TrimSpace(c.OpenAI.APIKey)
	c.OpenAI.BaseURL = strings.TrimRight(strings.TrimSpace(c.OpenAI.BaseURL), "/")
	c.MyMemory.BaseURL = strings.TrimRight(strings.TrimSpace(c.MyMemory.BaseURL), "/")
	c.Blob.BaseURL = strings.TrimRight(strings.TrimSpace(c.Blob.BaseURL), "/")
	c.Blob.Token = strings.TrimSpace(c.Blob.Token)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// MyMemoryThrottle returns the pacing interval between MyMemory calls.
func (c *Config) MyMemoryThrottle() time.Duration {
	if c.MyMemory.ThrottleMillis <= 0 {
		return 0
	}
	return time.Duration(c.MyMemory.ThrottleMillis) * time.Millisecond
}

// UploadDBPath returns the SQLite path backing the upload registry.
func (c *Config) UploadDBPath() string {
	return filepath.Join(c.Paths.DataDir, "uploads.db")
}

// LockFilePath returns the daemon lock file location.
func (c *Config) LockFilePath() string {
	if strings.TrimSpace(c.Paths.LockFile) != "" {
		return c.Paths.LockFile
	}
	return filepath.Join(c.Paths.DataDir, "captiond.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
