package transcription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"caption/internal/language"
	"caption/internal/logging"
	"caption/internal/services"
	"caption/internal/services/blobstore"
	"caption/internal/services/openai"
	"caption/internal/translation"
)

// defaultSegmentWindow pads segments whose end time the provider omitted.
const defaultSegmentWindow = 3.0

// Segment is one timed subtitle unit produced from provider output.
type Segment struct {
	ID                    string  `json:"id"`
	Text                  string  `json:"text"`
	Translation           string  `json:"translation,omitempty"`
	TranslationConfidence float64 `json:"translationConfidence,omitempty"`
	StartTime             float64 `json:"startTime"`
	EndTime               float64 `json:"endTime"`
	Confidence            float64 `json:"confidence"`
}

// Request describes one transcription run. Exactly one of Payload or BlobURL
// must be set.
type Request struct {
	Filename       string
	Payload        []byte
	BlobURL        string
	Language       string
	TargetLanguage string
}

// Result is the normalized transcription outcome.
type Result struct {
	Segments []Segment
	Duration float64
	Language string
	// FileSizeMB reports the processed payload size for the API response.
	FileSizeMB float64
}

// Orchestrator drives the transcription pipeline.
type Orchestrator struct {
	speech     *openai.Client
	blobs      *blobstore.Client
	translator *translation.Orchestrator
	logger     *slog.Logger
	scratchDir string
}

// Option customizes the orchestrator.
type Option func(*Orchestrator)

// WithScratchDir overrides where provider payloads are staged (defaults to
// the system temp directory).
func WithScratchDir(dir string) Option {
	return func(o *Orchestrator) {
		if strings.TrimSpace(dir) != "" {
			o.scratchDir = dir
		}
	}
}

// NewOrchestrator constructs a transcription orchestrator with explicitly
// injected provider clients.
func NewOrchestrator(speech *openai.Client, blobs *blobstore.Client, translator *translation.Orchestrator, logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		speech:     speech,
		blobs:      blobs,
		translator: translator,
		logger:     logging.NewComponentLogger(logger, "transcription"),
		scratchDir: os.TempDir(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Transcribe runs the full pipeline: resolve the payload, stage it, call the
// speech provider, normalize segments, and optionally translate them.
// Failures here are terminal for the whole request.
func (o *Orchestrator) Transcribe(ctx context.Context, req Request) (Result, error) {
	var empty Result

	payload := req.Payload
	if len(payload) == 0 {
		if strings.TrimSpace(req.BlobURL) == "" {
			return empty, services.Wrap(services.ErrValidation, "transcription", "transcribe", "payload or blob url required", nil)
		}
		fetched, err := o.blobs.Fetch(ctx, req.BlobURL)
		if err != nil {
			return empty, services.Wrap(services.ErrUpstream, "transcription", "download payload", "", err)
		}
		payload = fetched
	}
	if len(payload) == 0 {
		return empty, services.Wrap(services.ErrValidation, "transcription", "transcribe", "empty payload", nil)
	}
	if !o.speech.Configured() {
		return empty, services.Wrap(services.ErrConfiguration, "transcription", "transcribe", "speech provider api key missing", nil)
	}

	transcription, err := o.callSpeechProvider(ctx, req, payload)
	if err != nil {
		return empty, err
	}

	segments := o.normalizeSegments(transcription.Segments)
	o.translateSegments(ctx, segments, transcription.Language, req)

	detected := strings.TrimSpace(transcription.Language)
	if detected == "" {
		detected = language.Normalize(req.Language)
	}
	if detected == "" {
		detected = "unknown"
	}

	return Result{
		Segments:   segments,
		Duration:   transcription.Duration,
		Language:   detected,
		FileSizeMB: float64(len(payload)) / (1024 * 1024),
	}, nil
}

// callSpeechProvider stages the payload in a scratch file and issues the
// transcription call. The scratch file is removed on every path.
func (o *Orchestrator) callSpeechProvider(ctx context.Context, req Request, payload []byte) (openai.Transcription, error) {
	var empty openai.Transcription

	scratch, err := os.CreateTemp(o.scratchDir, fmt.Sprintf("whisper-audio-%d-*%s", time.Now().UnixNano(), scratchSuffix(req.Filename)))
	if err != nil {
		return empty, fmt.Errorf("transcribe: create scratch file: %w", err)
	}
	scratchPath := scratch.Name()
	defer func() {
		if err := os.Remove(scratchPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			o.logger.Warn("scratch file cleanup failed",
				logging.String("path", scratchPath),
				logging.Error(err),
			)
		}
	}()

	if _, err := scratch.Write(payload); err != nil {
		scratch.Close()
		return empty, fmt.Errorf("transcribe: stage payload: %w", err)
	}
	if err := scratch.Close(); err != nil {
		return empty, fmt.Errorf("transcribe: close scratch file: %w", err)
	}

	media, err := os.Open(scratchPath)
	if err != nil {
		return empty, fmt.Errorf("transcribe: reopen scratch file: %w", err)
	}
	defer media.Close()

	hint := ""
	if language.WhisperSupported(req.Language) {
		hint = language.Normalize(req.Language)
	}

	started := time.Now()
	transcription, err := o.speech.Transcribe(ctx, providerFilename(req.Filename), media, hint)
	if err != nil {
		marker := services.ErrUpstream
		if errors.Is(err, context.DeadlineExceeded) {
			marker = services.ErrTimeout
		}
		return empty, services.Wrap(marker, "transcription", "speech provider", "", err)
	}
	o.logger.Debug("speech provider call complete",
		logging.Duration("elapsed", time.Since(started)),
		logging.Int("segments", len(transcription.Segments)),
	)
	return transcription, nil
}

// normalizeSegments drops empty provider segments and derives per-segment
// confidence from the log-probability score.
func (o *Orchestrator) normalizeSegments(raw []openai.TranscriptionSegment) []Segment {
	segments := make([]Segment, 0, len(raw))
	for _, seg := range raw {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		end := seg.End
		if end <= 0 {
			end = seg.Start + defaultSegmentWindow
		}
		confidence := 0.9
		if seg.AvgLogProb != 0 {
			confidence = math.Exp(seg.AvgLogProb)
		}
		segments = append(segments, Segment{
			ID:         fmt.Sprintf("segment-%d", len(segments)),
			Text:       text,
			StartTime:  seg.Start,
			EndTime:    end,
			Confidence: confidence,
		})
	}
	return segments
}

// translateSegments runs sequential per-segment translation when a distinct
// target language was requested. Individual failures are logged and the
// segment stays untranslated; they never abort the batch.
func (o *Orchestrator) translateSegments(ctx context.Context, segments []Segment, detectedLanguage string, req Request) {
	target := language.Normalize(req.TargetLanguage)
	if language.IsAuto(target) {
		return
	}
	source := language.Normalize(detectedLanguage)
	if source == "" {
		source = language.Normalize(req.Language)
	}
	if source == target {
		return
	}

	for i := range segments {
		var prior []string
		if i > 0 {
			prior = []string{segments[i-1].Text}
		}
		result, err := o.translator.TranslateChecked(ctx, translation.Request{
			Text:           segments[i].Text,
			SourceLanguage: source,
			TargetLanguage: target,
			Context:        prior,
		}, translation.ProviderChatGPT)
		if err != nil {
			o.logger.Warn("segment translation failed",
				logging.String("segment_id", segments[i].ID),
				logging.String("target_language", target),
				logging.Error(err),
			)
			continue
		}
		segments[i].Translation = result.Text
		segments[i].TranslationConfidence = result.Confidence
	}
}

func scratchSuffix(filename string) string {
	ext := filepath.Ext(filepath.Base(strings.TrimSpace(filename)))
	if ext == "" {
		return ".mp3"
	}
	return ext
}

func providerFilename(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "audio.mp3"
	}
	return base
}
