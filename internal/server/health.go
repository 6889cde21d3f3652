package server

import "net/http"

type healthFeatures struct {
	Transcription   bool `json:"transcription"`
	AITranslation   bool `json:"aiTranslation"`
	FreeTranslation bool `json:"freeTranslation"`
	Uploads         bool `json:"uploads"`
}

type healthResponse struct {
	Status           string         `json:"status"`
	OpenAIConfigured bool           `json:"openaiConfigured"`
	OpenAIKeyValid   bool           `json:"openaiKeyValid"`
	BlobConfigured   bool           `json:"blobConfigured"`
	Features         healthFeatures `json:"features"`
	UploadCount      int            `json:"uploadCount"`
	Version          string         `json:"version,omitempty"`
}

// Version is stamped by the daemon at startup for health reporting.
var Version = "dev"

// handleHealth reports provider configuration validity and which features
// can currently serve requests. Nothing here contacts a provider.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	openaiConfigured := s.cfg.OpenAI.Configured()
	keyValid := s.cfg.OpenAI.KeyLooksValid()
	blobConfigured := s.cfg.Blob.Configured()

	status := "ok"
	if !openaiConfigured || !keyValid {
		status = "degraded"
	}

	uploadCount := 0
	if records, err := s.registry.List(r.Context(), 0); err == nil {
		uploadCount = len(records)
	}

	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:           status,
		OpenAIConfigured: openaiConfigured,
		OpenAIKeyValid:   keyValid,
		BlobConfigured:   blobConfigured,
		Features: healthFeatures{
			Transcription:   openaiConfigured,
			AITranslation:   openaiConfigured,
			FreeTranslation: true,
			Uploads:         blobConfigured,
		},
		UploadCount: uploadCount,
		Version:     Version,
	})
}
