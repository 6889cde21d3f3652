package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"caption/internal/config"
	"caption/internal/logging"
	"caption/internal/services/blobstore"
	"caption/internal/services/openai"
	"caption/internal/session"
	"caption/internal/transcription"
	"caption/internal/translation"
	"caption/internal/uploads"
)

// transcribeTimeout bounds one whole transcription request, matching the
// hosting platform limit the original deployment ran under.
const transcribeTimeout = 300 * time.Second

// Server is the caption HTTP API.
type Server struct {
	cfg         *config.Config
	logger      *slog.Logger
	transcriber *transcription.Orchestrator
	translator  *translation.Orchestrator
	speech      *openai.Client
	blobs       *blobstore.Client
	registry    *uploads.Store
	editor      *session.Store

	listener net.Listener
	server   *http.Server
}

// New assembles the API server around already constructed orchestrators.
func New(cfg *config.Config, transcriber *transcription.Orchestrator, translator *translation.Orchestrator, speech *openai.Client, blobs *blobstore.Client, registry *uploads.Store, logger *slog.Logger) *Server {
	srv := &Server{
		cfg:         cfg,
		logger:      logging.NewComponentLogger(logger, "api-server"),
		transcriber: transcriber,
		translator:  translator,
		speech:      speech,
		blobs:       blobs,
		registry:    registry,
		editor:      session.NewStore(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/transcribe", srv.handleTranscribe)
	mux.HandleFunc("/api/translate", srv.handleTranslate)
	mux.HandleFunc("/api/upload", srv.handleUpload)
	mux.HandleFunc("/api/uploads", srv.handleUploads)
	mux.HandleFunc("/api/segments", srv.handleSegments)
	mux.HandleFunc("/api/segments/", srv.handleSegmentDetail)
	mux.HandleFunc("/api/health", srv.handleHealth)

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       transcribeTimeout,
		WriteTimeout:      transcribeTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

// Handler exposes the route mux for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins serving on the configured bind address and shuts down when
// ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	bind := strings.TrimSpace(s.cfg.Paths.APIBind)
	if bind == "" {
		return errors.New("api bind address not configured")
	}
	listener, err := net.Listen("tcp", bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down outside of context cancellation.
func (s *Server) Stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr reports the bound listen address, empty before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// errorResponse is the uniform failure shape.
type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

func (s *Server) writeErrorDetail(w http.ResponseWriter, status int, message, details, suggestion string) {
	s.writeJSON(w, status, errorResponse{Error: message, Details: details, Suggestion: suggestion})
}
