package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is internally consistent. Provider API
// keys are deliberately not required here: the daemon starts without them and
// reports degraded feature availability through the health endpoint instead.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateOpenAI(); err != nil {
		return err
	}
	if err := c.validateMyMemory(); err != nil {
		return err
	}
	if err := c.validateBlob(); err != nil {
		return err
	}
	if err := c.validateUpload(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.APIBind) == "" {
		return errors.New("paths.api_bind must be set")
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateOpenAI() error {
	if strings.TrimSpace(c.OpenAI.BaseURL) == "" {
		return errors.New("openai.base_url must be set")
	}
	if strings.TrimSpace(c.OpenAI.WhisperModel) == "" {
		return errors.New("openai.whisper_model must be set")
	}
	if strings.TrimSpace(c.OpenAI.TranslationModel) == "" {
		return errors.New("openai.translation_model must be set")
	}
	if c.OpenAI.TimeoutSeconds <= 0 {
		return errors.New("openai.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateMyMemory() error {
	if strings.TrimSpace(c.MyMemory.BaseURL) == "" {
		return errors.New("mymemory.base_url must be set")
	}
	if c.MyMemory.ThrottleMillis < 0 {
		return errors.New("mymemory.throttle_millis must not be negative")
	}
	return nil
}

func (c *Config) validateBlob() error {
	if strings.TrimSpace(c.Blob.BaseURL) != "" && strings.TrimSpace(c.Blob.Token) == "" {
		return errors.New("blob.token must be set when blob.base_url is configured")
	}
	return nil
}

func (c *Config) validateUpload() error {
	if c.Upload.MaxVideoMiB <= 0 {
		return errors.New("upload.max_video_mib must be positive")
	}
	if c.Upload.MaxAudioMiB <= 0 {
		return errors.New("upload.max_audio_mib must be positive")
	}
	if c.Upload.MaxAudioMiB > c.Upload.MaxVideoMiB {
		return errors.New("upload.max_audio_mib must not exceed upload.max_video_mib")
	}
	if c.Upload.InlineThresholdMiB <= 0 {
		return errors.New("upload.inline_threshold_mib must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
