package service

import (
	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
)

type Services struct {
	AuthService       AuthService
	NotesService      NotesService
	SummarizerService SummarizerService
}

func NewServices(repos *store.Repositories, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:       NewAuthService(repos.UserRepository, cfg.App, logger),
		NotesService:      NewNotesService(repos.NoteRepository, logger),
		SummarizerService: NewSummarizerService(cfg.Summarizer, logger),
	}
}
