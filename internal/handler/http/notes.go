package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var fields models.NoteFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	note, err := h.services.NotesService.CreateNote(ctx, userID, fields)
	if err != nil {
		log.Err(err).Msg("failed to create note")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, note, http.StatusCreated)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	noteID := chi.URLParam(r, "id")
	note, err := h.services.NotesService.GetNote(ctx, userID, noteID)
	if err != nil {
		log.Err(err).Str("note_id", noteID).Msg("failed to get note")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	filter := noteFilterFromQuery(r)
	notes, err := h.services.NotesService.ListNotes(ctx, userID, filter)
	if err != nil {
		log.Err(err).Msg("failed to list notes")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}

	utils.WriteJSON(w, notes, http.StatusOK)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var fields models.NoteFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	noteID := chi.URLParam(r, "id")
	note, err := h.services.NotesService.UpdateNote(ctx, userID, noteID, fields)
	if err != nil {
		log.Err(err).Str("note_id", noteID).Msg("failed to update note")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	noteID := chi.URLParam(r, "id")
	if err := h.services.NotesService.DeleteNote(ctx, userID, noteID); err != nil {
		log.Err(err).Str("note_id", noteID).Msg("failed to delete note")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// noteFilterFromQuery reads the optional list filters from the URL query.
// Unparseable values are ignored rather than rejected.
func noteFilterFromQuery(r *http.Request) models.NoteFilter {
	var filter models.NoteFilter

	filter.TitleContains = r.URL.Query().Get("title_contains")
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		if limit, err := strconv.ParseUint(rawLimit, 10, 64); err == nil {
			filter.Limit = limit
		}
	}

	return filter
}
