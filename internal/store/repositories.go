package store

import "github.com/MKhiriev/go-note-keeper/internal/logger"

type Repositories struct {
	UserRepository UserRepository
	NoteRepository NoteRepository
}

func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository: NewUserRepository(db, log),
		NoteRepository: NewNoteRepository(db, log),
	}
}
