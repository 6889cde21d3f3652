package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"caption/internal/logging"
	"caption/internal/session"
	"caption/internal/transcription"
)

type segmentListResponse struct {
	Segments []session.Segment `json:"segments"`
	Count    int               `json:"count"`
}

type segmentAddRequest struct {
	Text string `json:"text"`
}

type segmentUpdateRequest struct {
	Text        *string  `json:"text"`
	Translation *string  `json:"translation"`
	StartTime   *float64 `json:"startTime"`
	EndTime     *float64 `json:"endTime"`
}

// handleSegments serves the daemon's editing session as a whole: the working
// set seeded by the last transcription, bulk replacement, manual additions,
// and reset.
func (s *Server) handleSegments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.writeSegmentList(w)
	case http.MethodPut:
		var segments []session.Segment
		if err := json.NewDecoder(r.Body).Decode(&segments); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		s.editor.Replace(segments)
		s.editor.SortByStart()
		s.writeSegmentList(w)
	case http.MethodPost:
		var req segmentAddRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		s.writeJSON(w, http.StatusOK, s.editor.Add(req.Text))
	case http.MethodDelete:
		s.editor.Reset()
		s.writeSegmentList(w)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleSegmentDetail serves one segment by ID under /api/segments/{id}, plus
// the SRT export of the whole session under /api/segments/export.
func (s *Server) handleSegmentDetail(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/segments/")
	if rest == "export" {
		s.handleSegmentsExport(w, r)
		return
	}
	id := strings.TrimSpace(rest)
	if id == "" || strings.Contains(id, "/") {
		s.writeError(w, http.StatusNotFound, "segment not found")
		return
	}

	switch r.Method {
	case http.MethodPatch:
		var req segmentUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		segment, err := s.editor.Apply(id, session.Update{
			Text:        req.Text,
			Translation: req.Translation,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
		})
		if err != nil {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		// Timing edits can move a segment past its neighbours.
		if req.StartTime != nil {
			s.editor.SortByStart()
		}
		s.writeJSON(w, http.StatusOK, segment)
	case http.MethodDelete:
		if err := s.editor.Delete(id); err != nil {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeSegmentList(w)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleSegmentsExport renders the current session as an SRT document.
func (s *Server) handleSegmentsExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	mode, err := session.ParseExportMode(r.URL.Query().Get("mode"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.editor.SortByStart()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(session.FormatSRT(s.editor.List(), mode))); err != nil {
		s.logger.Error("failed to write srt export", logging.Error(err))
	}
}

func (s *Server) writeSegmentList(w http.ResponseWriter) {
	segments := s.editor.List()
	s.writeJSON(w, http.StatusOK, segmentListResponse{Segments: segments, Count: len(segments)})
}

// sessionSegments converts transcription output into editable session
// segments, preserving IDs so API clients can address them.
func sessionSegments(segments []transcription.Segment) []session.Segment {
	out := make([]session.Segment, len(segments))
	for i, segment := range segments {
		out[i] = session.Segment{
			ID:                    segment.ID,
			Text:                  segment.Text,
			Translation:           segment.Translation,
			TranslationConfidence: segment.TranslationConfidence,
			StartTime:             segment.StartTime,
			EndTime:               segment.EndTime,
			Confidence:            segment.Confidence,
		}
	}
	return out
}
