package service

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type NotesService interface {
	CreateNote(ctx context.Context, userID int64, fields models.NoteFields) (models.Note, error)
	GetNote(ctx context.Context, userID int64, noteID string) (models.Note, error)
	ListNotes(ctx context.Context, userID int64, filter models.NoteFilter) ([]models.Note, error)
	UpdateNote(ctx context.Context, userID int64, noteID string, fields models.NoteFields) (models.Note, error)
	DeleteNote(ctx context.Context, userID int64, noteID string) error
}

// SummarizerService produces short summaries of note content.
type SummarizerService interface {
	Summarize(ctx context.Context, text string) (string, error)
}
