package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"caption/internal/language"
	"caption/internal/logging"
	"caption/internal/services/mymemory"
	"caption/internal/services/openai"
)

// Provider selects which strategy chain serves a request.
type Provider string

const (
	// ProviderChatGPT runs the full chain: primary model, fallback model,
	// then MyMemory.
	ProviderChatGPT Provider = "chatgpt"
	// ProviderMyMemory skips the chat models entirely.
	ProviderMyMemory Provider = "mymemory"
)

// ParseProvider validates a provider name from an API request.
func ParseProvider(value string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(value))) {
	case ProviderChatGPT, "":
		return ProviderChatGPT, nil
	case ProviderMyMemory:
		return ProviderMyMemory, nil
	default:
		return "", fmt.Errorf("invalid translation provider %q", value)
	}
}

// Request describes a single translation.
type Request struct {
	Text           string
	SourceLanguage string
	TargetLanguage string
	// Context carries neighbouring subtitle texts for prompt grounding.
	Context []string
}

// Result is the outcome of one translation. Always populated: when every
// strategy fails the original text comes back with MinConfidence.
type Result struct {
	Text                string
	Confidence          float64
	CulturalAdaptations []string
	// Strategy names the chain entry that produced the text, or "none".
	Strategy string
}

// Config captures orchestrator settings.
type Config struct {
	PrimaryModel  string
	FallbackModel string
}

// Orchestrator evaluates the strategy chain for single and batch requests.
type Orchestrator struct {
	cfg    Config
	openai *openai.Client
	memory *mymemory.Client
	logger *slog.Logger
}

// NewOrchestrator constructs a translation orchestrator. Both clients are
// injected explicitly; there is no ambient provider state.
func NewOrchestrator(cfg Config, openaiClient *openai.Client, memoryClient *mymemory.Client, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:    cfg,
		openai: openaiClient,
		memory: memoryClient,
		logger: logging.NewComponentLogger(logger, "translation"),
	}
}

// AIAvailable reports whether the chat strategies can run at all.
func (o *Orchestrator) AIAvailable() bool {
	return o.openai.Configured()
}

// strategy is one entry in the ordered fallback chain.
type strategy struct {
	name string
	run  func(ctx context.Context, req Request) (Result, error)
}

func (o *Orchestrator) strategiesFor(provider Provider) []strategy {
	if provider == ProviderMyMemory {
		return []strategy{{name: "mymemory", run: o.translateWithMemory}}
	}
	return []strategy{
		{name: "primary", run: o.translateWithPrimary},
		{name: "fallback", run: o.translateWithFallback},
		{name: "mymemory", run: o.translateWithMemory},
	}
}

// Translate runs the chain for one request and always returns a usable
// result. Errors never propagate past this boundary.
func (o *Orchestrator) Translate(ctx context.Context, req Request, provider Provider) Result {
	result, err := o.TranslateChecked(ctx, req, provider)
	if err != nil {
		return Result{Text: req.Text, Confidence: MinConfidence, Strategy: "none"}
	}
	return result
}

var errChainExhausted = errors.New("translation: all strategies failed")

// TranslateChecked runs the chain and reports an error only when every
// strategy failed. Batch processing uses the error to populate its errors
// list while still recording the fallback result; the transcription
// orchestrator uses it to keep a segment untranslated rather than storing
// the original text as its own translation.
func (o *Orchestrator) TranslateChecked(ctx context.Context, req Request, provider Provider) (Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return Result{Text: req.Text, Confidence: MinConfidence, Strategy: "none"}, nil
	}

	// Same-language requests are a no-op: nothing is sent to any provider.
	// MaxConfidence rather than 1.0 keeps every reported confidence inside
	// the [MinConfidence, MaxConfidence] band.
	source := language.Normalize(req.SourceLanguage)
	target := language.Normalize(req.TargetLanguage)
	if !language.IsAuto(source) && source == target {
		return Result{Text: req.Text, Confidence: MaxConfidence, Strategy: "noop"}, nil
	}

	var lastErr error
	for _, s := range o.strategiesFor(provider) {
		result, err := s.run(ctx, req)
		if err == nil {
			result.Strategy = s.name
			o.logger.Debug("translation complete",
				logging.String("strategy", s.name),
				logging.Float64("confidence", result.Confidence),
			)
			return result, nil
		}
		lastErr = err
		o.logger.Warn("translation strategy failed",
			logging.String("strategy", s.name),
			logging.String("target_language", target),
			logging.Error(err),
		)
		if ctx.Err() != nil {
			break
		}
	}
	if lastErr == nil {
		lastErr = errors.New("no strategies configured")
	}
	return Result{}, fmt.Errorf("%w: %w", errChainExhausted, lastErr)
}

func (o *Orchestrator) translateWithPrimary(ctx context.Context, req Request) (Result, error) {
	return o.translateWithModel(ctx, req, openai.CompletionRequest{
		Model:            o.cfg.PrimaryModel,
		SystemPrompt:     primarySystemPrompt(req.TargetLanguage, req.Context),
		UserPrompt:       primaryUserPrompt(req.Text),
		MaxTokens:        400,
		Temperature:      0.1,
		PresencePenalty:  0.05,
		FrequencyPenalty: 0.1,
	}, true)
}

func (o *Orchestrator) translateWithFallback(ctx context.Context, req Request) (Result, error) {
	return o.translateWithModel(ctx, req, openai.CompletionRequest{
		Model:        o.cfg.FallbackModel,
		SystemPrompt: fallbackSystemPrompt(req.TargetLanguage),
		UserPrompt:   req.Text,
		MaxTokens:    250,
		Temperature:  0.2,
	}, false)
}

func (o *Orchestrator) translateWithModel(ctx context.Context, req Request, completion openai.CompletionRequest, scoreHeuristically bool) (Result, error) {
	content, err := o.openai.Complete(ctx, completion)
	if err != nil {
		return Result{}, err
	}
	translated := strings.Trim(strings.TrimSpace(content), `"`)
	if translated == "" {
		return Result{}, errors.New("model returned empty translation")
	}
	if !scoreHeuristically {
		return Result{Text: translated, Confidence: FallbackConfidence}, nil
	}
	return Result{
		Text:                translated,
		Confidence:          confidenceScore(req.Text, translated),
		CulturalAdaptations: detectCulturalAdaptations(req.Text, translated),
	}, nil
}

func (o *Orchestrator) translateWithMemory(ctx context.Context, req Request) (Result, error) {
	source := language.Normalize(req.SourceLanguage)
	if language.IsAuto(source) {
		// MyMemory has no detection; assume English when the source is
		// unknown, matching the upload form default.
		source = "en"
	}
	memoryResult, err := o.memory.Translate(ctx, req.Text, source, language.Normalize(req.TargetLanguage))
	if err != nil {
		return Result{}, err
	}
	match := memoryResult.Match
	if match <= 0 {
		match = 0.5
	}
	return Result{
		Text:       memoryResult.TranslatedText,
		Confidence: min(MemoryConfidenceCap, match),
	}, nil
}

// BatchResult is the positional outcome for one batch item.
type BatchResult struct {
	Index               int
	Success             bool
	Text                string
	Confidence          float64
	CulturalAdaptations []string
}

// BatchError records a failed batch item alongside its fallback result.
type BatchError struct {
	Index   int
	Message string
}

// Batch aggregates a batch translation run. Results always align
// positionally with the input texts.
type Batch struct {
	Results []BatchResult
	Errors  []BatchError
}

// TranslateBatch translates texts sequentially, one provider call at a time.
// A failed item is recorded in Errors and its result falls back to the
// original text with minimum confidence; subsequent items always proceed.
func (o *Orchestrator) TranslateBatch(ctx context.Context, texts []string, sourceLanguage, targetLanguage string, provider Provider) Batch {
	batch := Batch{Results: make([]BatchResult, 0, len(texts))}
	for i, text := range texts {
		result, err := o.TranslateChecked(ctx, Request{
			Text:           text,
			SourceLanguage: sourceLanguage,
			TargetLanguage: targetLanguage,
		}, provider)
		if err != nil {
			batch.Errors = append(batch.Errors, BatchError{Index: i, Message: err.Error()})
			batch.Results = append(batch.Results, BatchResult{
				Index:      i,
				Success:    false,
				Text:       text,
				Confidence: MinConfidence,
			})
			continue
		}
		batch.Results = append(batch.Results, BatchResult{
			Index:               i,
			Success:             true,
			Text:                result.Text,
			Confidence:          result.Confidence,
			CulturalAdaptations: result.CulturalAdaptations,
		})
	}
	return batch
}
