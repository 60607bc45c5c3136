package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"codeberg.org/snonux/ttsuz/internal/audio"
	"codeberg.org/snonux/ttsuz/internal/processor"
	"codeberg.org/snonux/ttsuz/internal/translit"
)

type textRequest struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

type normalizeResponse struct {
	Text           string `json:"text"`
	Normalized     string `json:"normalized"`
	Transliterated bool   `json:"transliterated"`
	Latin          string `json:"latin"`
	Words          int    `json:"words"`
}

type errorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code,omitempty"`
}

type historyEntry struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Input      string    `json:"input"`
	Normalized string    `json:"normalized"`
	Language   string    `json:"language"`
	Provider   string    `json:"provider"`
	StatusCode int       `json:"status_code"`
	AudioFile  string    `json:"audio_file,omitempty"`
	Error      string    `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	provider := s.proc.Provider()
	resp := map[string]interface{}{
		"status":   "ok",
		"provider": provider.Name(),
	}
	if err := provider.IsAvailable(); err != nil {
		resp["provider_error"] = err.Error()
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !s.decode(w, r, &req) {
		return
	}

	result := translit.Normalize(req.Text)
	respondJSON(w, http.StatusOK, normalizeResponse{
		Text:           req.Text,
		Normalized:     result.Text,
		Transliterated: result.Transliterated,
		Latin:          translit.ToLatin(result.Text),
		Words:          translit.WordCount(result.Text),
	})
}

func (s *Server) handleSpeech(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !s.decode(w, r, &req) {
		return
	}

	outcome, err := s.proc.Convert(r.Context(), req.Text, req.Language)
	if errors.Is(err, processor.ErrEmptyInput) {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}
	if err != nil {
		resp := errorResponse{Error: err.Error()}
		if code, ok := audio.StatusCode(err); ok {
			resp.StatusCode = code
			resp.Error = "upstream returned status " + strconv.Itoa(code)
		}
		s.logger.Warn("speech request failed",
			zap.String("kind", audio.KindOf(err).String()),
			zap.Int("status_code", resp.StatusCode),
			zap.Error(err))
		respondJSON(w, http.StatusBadGateway, resp)
		return
	}

	result := outcome.Result
	contentType := "audio/wav"
	if result.Format != "" && result.Format != audio.FormatWAV {
		contentType = "audio/" + result.Format
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Audio)))
	w.Header().Set("X-Status-Code", strconv.Itoa(result.StatusCode))
	w.Header().Set("X-Transliterated", strconv.FormatBool(outcome.Normalized.Transliterated))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Audio)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		respondError(w, http.StatusNotFound, "history is disabled")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to read history", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to read history")
		return
	}

	resp := make([]historyEntry, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, historyEntry{
			ID:         e.ID.String(),
			CreatedAt:  e.CreatedAt.UTC(),
			Input:      e.Input,
			Normalized: e.Normalized,
			Language:   e.Language,
			Provider:   e.Provider,
			StatusCode: e.StatusCode,
			AudioFile:  e.AudioFile,
			Error:      e.Error,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

// decode reads a JSON body and answers 400 when it is malformed
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, s.options.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
