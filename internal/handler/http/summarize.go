package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

func (h *Handler) summarize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	summary, err := h.services.SummarizerService.Summarize(ctx, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("empty text provided for summarization")
			http.Error(w, "empty text provided", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrSummarizerDisabled):
			log.Err(err).Msg("summarizer is not configured")
			utils.WriteJSON(w, models.SummarizeResponse{Error: service.ErrSummarizerDisabled.Error()}, http.StatusServiceUnavailable)
			return
		default:
			log.Err(err).Msg("summarization failed")
			utils.WriteJSON(w, models.SummarizeResponse{Error: "summarization failed"}, http.StatusBadGateway)
			return
		}
	}

	utils.WriteJSON(w, models.SummarizeResponse{Summary: summary}, http.StatusOK)
}
