package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Paths.APIBind != "127.0.0.1:7519" {
		t.Fatalf("APIBind = %q", cfg.Paths.APIBind)
	}
	if cfg.Upload.MaxVideoMiB != 500 || cfg.Upload.MaxAudioMiB != 100 || cfg.Upload.InlineThresholdMiB != 5 {
		t.Fatalf("upload limits = %+v", cfg.Upload)
	}
	if cfg.OpenAI.TranslationModel != "gpt-4o" || cfg.OpenAI.FallbackModel != "gpt-4-turbo" {
		t.Fatalf("models = %q, %q", cfg.OpenAI.TranslationModel, cfg.OpenAI.FallbackModel)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("exists = true for missing file")
	}
	if path == "" {
		t.Fatal("resolved path empty")
	}
	if cfg.OpenAI.WhisperModel != "whisper-1" {
		t.Fatalf("WhisperModel = %q", cfg.OpenAI.WhisperModel)
	}
}

func TestLoadOverridesFromTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "caption.toml")
	content := `
[openai]
api_key = "sk-test-key"
translation_model = "gpt-4o-mini"

[upload]
max_video_mib = 250

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("exists=%v resolved=%q", exists, resolved)
	}
	if !cfg.OpenAI.Configured() || !cfg.OpenAI.KeyLooksValid() {
		t.Fatal("api key not picked up")
	}
	if cfg.OpenAI.TranslationModel != "gpt-4o-mini" {
		t.Fatalf("TranslationModel = %q", cfg.OpenAI.TranslationModel)
	}
	if cfg.Upload.MaxVideoMiB != 250 {
		t.Fatalf("MaxVideoMiB = %d", cfg.Upload.MaxVideoMiB)
	}
	// Untouched sections keep their defaults.
	if cfg.MyMemory.ThrottleMillis != 100 {
		t.Fatalf("ThrottleMillis = %d", cfg.MyMemory.ThrottleMillis)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "caption.toml")
	content := `
[upload]
max_video_mib = 10
max_audio_mib = 50
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected validation error for audio cap above video cap")
	}
}

func TestKeyLooksValid(t *testing.T) {
	o := OpenAI{APIKey: "sk-abc"}
	if !o.KeyLooksValid() {
		t.Fatal("sk- prefix should look valid")
	}
	o.APIKey = "not-a-key"
	if o.KeyLooksValid() {
		t.Fatal("arbitrary string should not look valid")
	}
}

func TestMyMemoryThrottle(t *testing.T) {
	cfg := Default()
	if got := cfg.MyMemoryThrottle(); got != 100*time.Millisecond {
		t.Fatalf("throttle = %v, want 100ms", got)
	}
	cfg.MyMemory.ThrottleMillis = 0
	if got := cfg.MyMemoryThrottle(); got != 0 {
		t.Fatalf("throttle = %v, want 0", got)
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := Default()
	cfg.Paths.DataDir = "/tmp/caption-test"
	if got := cfg.UploadDBPath(); got != filepath.Join("/tmp/caption-test", "uploads.db") {
		t.Fatalf("UploadDBPath = %q", got)
	}
	if got := cfg.LockFilePath(); !strings.HasSuffix(got, "captiond.lock") {
		t.Fatalf("LockFilePath = %q", got)
	}
	cfg.Paths.LockFile = "/run/caption.lock"
	if got := cfg.LockFilePath(); got != "/run/caption.lock" {
		t.Fatalf("LockFilePath override = %q", got)
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("expected error overwriting existing config")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[openai]") {
		t.Fatal("sample config missing [openai] section")
	}
}
