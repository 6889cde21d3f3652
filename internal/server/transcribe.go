package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"caption/internal/logging"
	"caption/internal/services"
	"caption/internal/transcription"
)

type transcribeRequest struct {
	BlobURL        string `json:"blobUrl"`
	Language       string `json:"language"`
	TargetLanguage string `json:"targetLanguage"`
}

type transcribeResponse struct {
	Success               bool                    `json:"success"`
	Segments              []transcription.Segment `json:"segments"`
	Duration              float64                 `json:"duration"`
	Language              string                  `json:"language"`
	SegmentCount          int                     `json:"segmentCount"`
	ProcessingTimeSeconds float64                 `json:"processingTimeSeconds"`
	FileSizeMB            float64                 `json:"fileSizeMB"`
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.speech.Configured() {
		s.writeErrorDetail(w, http.StatusServiceUnavailable,
			"transcription is not configured",
			"no speech provider API key is set",
			"set openai.api_key in the config file and restart captiond")
		return
	}

	req, err := s.parseTranscribeRequest(w, r)
	if err != nil {
		// parseTranscribeRequest already wrote the response.
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), transcribeTimeout)
	defer cancel()

	started := time.Now()
	result, err := s.transcriber.Transcribe(ctx, req)
	if err != nil {
		status := services.HTTPStatus(err)
		suggestion := ""
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		if status == http.StatusGatewayTimeout {
			suggestion = "try a smaller file or a shorter recording"
		}
		s.logger.Error("transcription failed", logging.Error(err))
		s.writeErrorDetail(w, status, "transcription failed", err.Error(), suggestion)
		return
	}

	// A fresh transcription becomes the daemon's working set so the segment
	// editing endpoints operate on it.
	s.editor.Replace(sessionSegments(result.Segments))

	s.logger.Info("transcription complete",
		logging.Int("segments", len(result.Segments)),
		logging.String("language", result.Language),
	)
	s.writeJSON(w, http.StatusOK, transcribeResponse{
		Success:               true,
		Segments:              result.Segments,
		Duration:              result.Duration,
		Language:              result.Language,
		SegmentCount:          len(result.Segments),
		ProcessingTimeSeconds: time.Since(started).Seconds(),
		FileSizeMB:            result.FileSizeMB,
	})
}

// parseTranscribeRequest accepts either a JSON body referencing a stored blob
// or a multipart form carrying the media inline. On failure it writes the
// error response and returns a non-nil error.
func (s *Server) parseTranscribeRequest(w http.ResponseWriter, r *http.Request) (transcription.Request, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		limit := s.cfg.Upload.MaxVideoMiB << 20
		if r.ContentLength > limit {
			s.writeErrorDetail(w, http.StatusRequestEntityTooLarge,
				"file too large",
				fmt.Sprintf("request body is %d bytes, limit is %d MiB", r.ContentLength, s.cfg.Upload.MaxVideoMiB),
				"try a smaller file, or upload to blob storage and pass blobUrl")
			return transcription.Request{}, fmt.Errorf("body too large")
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid multipart form")
			return transcription.Request{}, err
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "missing file field")
			return transcription.Request{}, err
		}
		defer file.Close()
		payload, err := io.ReadAll(io.LimitReader(file, limit+1))
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "failed to read file")
			return transcription.Request{}, err
		}
		if int64(len(payload)) > limit {
			s.writeErrorDetail(w, http.StatusRequestEntityTooLarge,
				"file too large",
				fmt.Sprintf("limit is %d MiB", s.cfg.Upload.MaxVideoMiB),
				"try a smaller file")
			return transcription.Request{}, fmt.Errorf("file too large")
		}
		return transcription.Request{
			Filename:       header.Filename,
			Payload:        payload,
			Language:       r.FormValue("language"),
			TargetLanguage: r.FormValue("targetLanguage"),
		}, nil
	}

	var body transcribeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return transcription.Request{}, err
	}
	if strings.TrimSpace(body.BlobURL) == "" {
		s.writeError(w, http.StatusBadRequest, "blobUrl is required when no file is attached")
		return transcription.Request{}, fmt.Errorf("missing blobUrl")
	}
	return transcription.Request{
		BlobURL:        body.BlobURL,
		Language:       body.Language,
		TargetLanguage: body.TargetLanguage,
	}, nil
}
