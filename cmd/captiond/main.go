package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"

	"caption/internal/config"
	"caption/internal/logging"
	"caption/internal/server"
	"caption/internal/services/blobstore"
	"caption/internal/services/mymemory"
	"caption/internal/services/openai"
	"caption/internal/transcription"
	"caption/internal/translation"
	"caption/internal/uploads"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	lock := flock.New(cfg.LockFilePath())
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("acquire lock: %v", err)
	}
	if !locked {
		log.Fatalf("another captiond instance already holds %s", cfg.LockFilePath())
	}
	defer lock.Unlock() //nolint:errcheck

	registry, err := uploads.Open(cfg)
	if err != nil {
		logger.Error("open upload registry", logging.Error(err))
		return
	}
	defer registry.Close()

	speech := openai.NewClient(openai.Config{
		APIKey:         cfg.OpenAI.APIKey,
		BaseURL:        cfg.OpenAI.BaseURL,
		WhisperModel:   cfg.OpenAI.WhisperModel,
		TimeoutSeconds: cfg.OpenAI.TimeoutSeconds,
	})
	memory := mymemory.NewClient(mymemory.Config{
		BaseURL:     cfg.MyMemory.BaseURL,
		Email:       cfg.MyMemory.Email,
		MinInterval: cfg.MyMemoryThrottle(),
	})
	blobs := blobstore.NewClient(blobstore.Config{
		BaseURL: cfg.Blob.BaseURL,
		Token:   cfg.Blob.Token,
	})

	translator := translation.NewOrchestrator(translation.Config{
		PrimaryModel:  cfg.OpenAI.TranslationModel,
		FallbackModel: cfg.OpenAI.FallbackModel,
	}, speech, memory, logger)
	transcriber := transcription.NewOrchestrator(speech, blobs, translator, logger)

	server.Version = version
	srv := server.New(cfg, transcriber, translator, speech, blobs, registry, logger)
	if err := srv.Start(ctx); err != nil {
		logger.Error("start api server", logging.Error(err))
		return
	}
	defer srv.Stop()

	if !speech.Configured() {
		logger.Warn("openai api key missing; transcription and AI translation are disabled")
	}
	if !blobs.Configured() {
		logger.Warn("blob storage unconfigured; large uploads are disabled")
	}

	<-ctx.Done()
	logger.Info("captiond shutting down")
}
