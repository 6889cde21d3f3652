package server

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"caption/internal/logging"
)

type uploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
	Filename string `json:"filename"`
}

type uploadListResponse struct {
	Uploads []uploadRecordView `json:"uploads"`
	Count   int                `json:"count"`
}

type uploadRecordView struct {
	ID          int64  `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
	URL         string `json:"url"`
	CreatedAt   string `json:"createdAt"`
}

// handleUpload validates and forwards a media file to blob storage, then
// records it in the registry. All validation happens before any network call.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.blobs.Configured() {
		s.writeErrorDetail(w, http.StatusServiceUnavailable,
			"blob storage is not configured",
			"no blob base URL or token is set",
			"set blob.base_url and blob.token in the config file")
		return
	}

	maxBytes := s.cfg.Upload.MaxVideoMiB << 20
	if r.ContentLength > maxBytes {
		s.writeErrorDetail(w, http.StatusRequestEntityTooLarge,
			"file too large",
			fmt.Sprintf("request body is %d bytes, limit is %d MiB", r.ContentLength, s.cfg.Upload.MaxVideoMiB),
			"try a smaller file")
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	kind := classifyMedia(header.Filename, contentType)
	if kind == mediaUnknown {
		s.writeErrorDetail(w, http.StatusBadRequest,
			"unsupported file type",
			fmt.Sprintf("%q is not a recognized video or audio file", header.Filename),
			"upload a common video (mp4, mov, mkv, webm) or audio (mp3, wav, m4a) file")
		return
	}

	limitMiB := s.cfg.Upload.MaxVideoMiB
	if kind == mediaAudio {
		limitMiB = s.cfg.Upload.MaxAudioMiB
	}
	if header.Size > limitMiB<<20 {
		s.writeErrorDetail(w, http.StatusRequestEntityTooLarge,
			"file too large",
			fmt.Sprintf("file is %d bytes, limit is %d MiB", header.Size, limitMiB),
			"try a smaller file")
		return
	}

	pathname := fmt.Sprintf("uploads/%d-%s", time.Now().UnixMilli(), sanitizeFilename(header.Filename))
	handle, err := s.blobs.Upload(r.Context(), pathname, contentType, file, header.Size)
	if err != nil {
		s.logger.Error("blob upload failed",
			logging.String("filename", header.Filename),
			logging.Error(err),
		)
		s.writeErrorDetail(w, http.StatusInternalServerError, "upload failed", err.Error(), "")
		return
	}

	if _, err := s.registry.Add(r.Context(), header.Filename, contentType, header.Size, handle.URL); err != nil {
		// The blob exists; a registry failure should not hide the URL.
		s.logger.Error("upload registry write failed", logging.Error(err))
	}

	s.writeJSON(w, http.StatusOK, uploadResponse{
		Success:  true,
		URL:      handle.URL,
		Size:     header.Size,
		Type:     contentType,
		Filename: header.Filename,
	})
}

// handleUploads lists registry rows newest first.
func (s *Server) handleUploads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	records, err := s.registry.List(r.Context(), 100)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	views := make([]uploadRecordView, 0, len(records))
	for _, rec := range records {
		views = append(views, uploadRecordView{
			ID:          rec.ID,
			Filename:    rec.Filename,
			ContentType: rec.ContentType,
			SizeBytes:   rec.SizeBytes,
			URL:         rec.URL,
			CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
		})
	}
	s.writeJSON(w, http.StatusOK, uploadListResponse{Uploads: views, Count: len(views)})
}

func sanitizeFilename(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}
