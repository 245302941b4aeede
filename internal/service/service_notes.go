package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

// notesService is the server-side implementation of NotesService. Every
// operation is scoped to the authenticated user's ID; cross-user access is
// impossible by construction.
type notesService struct {
	noteRepository store.NoteRepository
	logger         *logger.Logger
}

// NewNotesService constructs a NotesService backed by the given repository.
func NewNotesService(noteRepository store.NoteRepository, logger *logger.Logger) NotesService {
	return &notesService{
		noteRepository: noteRepository,
		logger:         logger,
	}
}

// CreateNote validates the fields, assigns a permanent server-side ID and
// persists the note. Client-supplied IDs (including provisional temp IDs)
// are never accepted.
func (s *notesService) CreateNote(ctx context.Context, userID int64, fields models.NoteFields) (models.Note, error) {
	log := logger.FromContext(ctx)

	if err := validateFields(fields); err != nil {
		return models.Note{}, err
	}

	note := models.Note{
		ID:      uuid.NewString(),
		UserID:  userID,
		Title:   strings.TrimSpace(fields.Title),
		Content: fields.Content,
		Summary: fields.Summary,
	}

	created, err := s.noteRepository.CreateNote(ctx, note)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("note creation ended with error")
		return models.Note{}, fmt.Errorf("note creation ended with error: %w", err)
	}

	return created, nil
}

func (s *notesService) GetNote(ctx context.Context, userID int64, noteID string) (models.Note, error) {
	note, err := s.noteRepository.GetNote(ctx, userID, noteID)
	if err != nil {
		return models.Note{}, fmt.Errorf("note lookup failed: %w", err)
	}

	return note, nil
}

func (s *notesService) ListNotes(ctx context.Context, userID int64, filter models.NoteFilter) ([]models.Note, error) {
	notes, err := s.noteRepository.ListNotes(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("note listing failed: %w", err)
	}

	return notes, nil
}

func (s *notesService) UpdateNote(ctx context.Context, userID int64, noteID string, fields models.NoteFields) (models.Note, error) {
	log := logger.FromContext(ctx)

	if err := validateFields(fields); err != nil {
		return models.Note{}, err
	}

	updated, err := s.noteRepository.UpdateNote(ctx, models.Note{
		ID:      noteID,
		UserID:  userID,
		Title:   strings.TrimSpace(fields.Title),
		Content: fields.Content,
		Summary: fields.Summary,
	})
	if err != nil {
		log.Err(err).Int64("user_id", userID).Str("note_id", noteID).Msg("note update ended with error")
		return models.Note{}, fmt.Errorf("note update ended with error: %w", err)
	}

	return updated, nil
}

func (s *notesService) DeleteNote(ctx context.Context, userID int64, noteID string) error {
	if err := s.noteRepository.DeleteNote(ctx, userID, noteID); err != nil {
		return fmt.Errorf("note deletion ended with error: %w", err)
	}

	return nil
}

func validateFields(fields models.NoteFields) error {
	if strings.TrimSpace(fields.Title) == "" {
		return ErrTitleRequired
	}

	return nil
}
