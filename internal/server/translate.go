package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"caption/internal/translation"
)

type translateRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
	Provider       string `json:"provider"`
}

type translateResponse struct {
	Success             bool     `json:"success"`
	TranslatedText      string   `json:"translatedText"`
	Confidence          float64  `json:"confidence"`
	CulturalAdaptations []string `json:"culturalAdaptations,omitempty"`
	Provider            string   `json:"provider"`
}

type translateBatchRequest struct {
	Texts          []string `json:"texts"`
	SourceLanguage string   `json:"sourceLanguage"`
	TargetLanguage string   `json:"targetLanguage"`
	Provider       string   `json:"provider"`
}

type batchItemResult struct {
	Index               int      `json:"index"`
	Success             bool     `json:"success"`
	TranslatedText      string   `json:"translatedText"`
	Confidence          float64  `json:"confidence"`
	CulturalAdaptations []string `json:"culturalAdaptations,omitempty"`
}

type batchItemError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type translateBatchResponse struct {
	Success          bool              `json:"success"`
	Results          []batchItemResult `json:"results"`
	Errors           []batchItemError  `json:"errors"`
	TotalProcessed   int               `json:"totalProcessed"`
	SuccessCount     int               `json:"successCount"`
	ErrorCount       int               `json:"errorCount"`
	ProcessingTimeMs int64             `json:"processingTimeMs"`
	Provider         string            `json:"provider"`
}

// handleTranslate serves single translations on POST and batches on PUT.
func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleTranslateSingle(w, r)
	case http.MethodPut:
		s.handleTranslateBatch(w, r)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleTranslateSingle(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	if strings.TrimSpace(req.TargetLanguage) == "" {
		s.writeError(w, http.StatusBadRequest, "targetLanguage is required")
		return
	}
	provider, err := translation.ParseProvider(req.Provider)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := s.translator.Translate(r.Context(), translation.Request{
		Text:           req.Text,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
	}, provider)

	s.writeJSON(w, http.StatusOK, translateResponse{
		Success:             true,
		TranslatedText:      result.Text,
		Confidence:          result.Confidence,
		CulturalAdaptations: result.CulturalAdaptations,
		Provider:            string(provider),
	})
}

func (s *Server) handleTranslateBatch(w http.ResponseWriter, r *http.Request) {
	var req translateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Texts) == 0 {
		s.writeError(w, http.StatusBadRequest, "texts is required")
		return
	}
	if strings.TrimSpace(req.TargetLanguage) == "" {
		s.writeError(w, http.StatusBadRequest, "targetLanguage is required")
		return
	}
	provider, err := translation.ParseProvider(req.Provider)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	started := time.Now()
	batch := s.translator.TranslateBatch(r.Context(), req.Texts, req.SourceLanguage, req.TargetLanguage, provider)

	results := make([]batchItemResult, 0, len(batch.Results))
	successCount := 0
	for _, item := range batch.Results {
		if item.Success {
			successCount++
		}
		results = append(results, batchItemResult{
			Index:               item.Index,
			Success:             item.Success,
			TranslatedText:      item.Text,
			Confidence:          item.Confidence,
			CulturalAdaptations: item.CulturalAdaptations,
		})
	}
	batchErrors := make([]batchItemError, 0, len(batch.Errors))
	for _, item := range batch.Errors {
		batchErrors = append(batchErrors, batchItemError{Index: item.Index, Error: item.Message})
	}

	s.writeJSON(w, http.StatusOK, translateBatchResponse{
		Success:          true,
		Results:          results,
		Errors:           batchErrors,
		TotalProcessed:   len(results),
		SuccessCount:     successCount,
		ErrorCount:       len(batchErrors),
		ProcessingTimeMs: time.Since(started).Milliseconds(),
		Provider:         string(provider),
	})
}
