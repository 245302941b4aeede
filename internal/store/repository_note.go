package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

// noteRepository is the SQL-backed implementation of [NoteRepository].
// Every operation is scoped to the owning user; a note id belonging to a
// different user behaves exactly like a missing note.
type noteRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		db:     db,
		logger: logger,
	}
}

// CreateNote persists a new note and returns the canonical database
// representation including server-assigned timestamps. The caller supplies
// the note ID.
func (r *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	var created models.Note
	row := r.db.QueryRowContext(ctx, createNote, note.ID, note.UserID, note.Title, note.Content, note.Summary)

	if err := row.Scan(&created.ID, &created.UserID, &created.Title, &created.Content, &created.Summary, &created.CreatedAt, &created.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotSaved
		}
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("error: scanning error")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// GetNote retrieves a single note owned by userID.
func (r *noteRepository) GetNote(ctx context.Context, userID int64, noteID string) (models.Note, error) {
	log := logger.FromContext(ctx)

	var note models.Note
	row := r.db.QueryRowContext(ctx, getNote, userID, noteID)

	if err := row.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.Summary, &note.CreatedAt, &note.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}
		log.Err(err).Str("func", "*noteRepository.GetNote").Msg("error: scanning error")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return note, nil
}

// ListNotes returns the user's notes newest first, narrowed by the filter.
// The query is assembled dynamically because both filter clauses are
// optional.
func (r *noteRepository) ListNotes(ctx context.Context, userID int64, filter models.NoteFilter) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	builder := sq.
		Select("id", "user_id", "title", "content", "summary", "created_at", "updated_at").
		From(models.Note{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.TitleContains != "" {
		builder = builder.Where(sq.ILike{"title": "%" + filter.TitleContains + "%"})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.ListNotes").Msg("error building list query")
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.ListNotes").Msg("error executing list query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.Summary, &note.CreatedAt, &note.UpdatedAt); err != nil {
			log.Err(err).Str("func", "*noteRepository.ListNotes").Msg("error scanning note row")
			return nil, errors.Join(ErrScanningRows, err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}

	return notes, nil
}

// UpdateNote overwrites the editable fields of an existing note and returns
// the stored row with the server-assigned updated_at.
func (r *noteRepository) UpdateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	var updated models.Note
	row := r.db.QueryRowContext(ctx, updateNote, note.UserID, note.ID, note.Title, note.Content, note.Summary)

	if err := row.Scan(&updated.ID, &updated.UserID, &updated.Title, &updated.Content, &updated.Summary, &updated.CreatedAt, &updated.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}
		log.Err(err).Str("func", "*noteRepository.UpdateNote").Msg("error: scanning error")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

// DeleteNote removes a note owned by userID. Deleting a missing note
// returns [ErrNoteNotFound].
func (r *noteRepository) DeleteNote(ctx context.Context, userID int64, noteID string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteNote, userID, noteID)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.DeleteNote").Msg("error executing delete")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}
