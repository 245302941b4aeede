// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/notecache"
	"github.com/MKhiriev/go-note-keeper/models"
)

type noteMutator struct {
	cache  *notecache.Cache
	store  adapter.NoteStore
	logger *logger.Logger
}

// NewNoteMutator constructs the [NoteMutator] operating on the shared cache
// and the given note store transport.
func NewNoteMutator(cache *notecache.Cache, store adapter.NoteStore, logger *logger.Logger) NoteMutator {
	return &noteMutator{cache: cache, store: store, logger: logger}
}

// snapshot is an immutable capture of the cache state touched by one
// optimistic write. It exists only for the duration of the in-flight remote
// call: discarded on success, restored verbatim on failure.
type snapshot struct {
	key           notecache.Key
	id            string
	collection    []models.Note
	hadCollection bool
	note          models.Note
	hadNote       bool
}

func (m *noteMutator) takeSnapshot(key notecache.Key, id string) snapshot {
	snap := snapshot{key: key, id: id}
	snap.collection = m.cache.GetCollection(key)
	snap.hadCollection = snap.collection != nil
	snap.note, snap.hadNote = m.cache.GetNote(id)
	return snap
}

// restore reapplies the snapshot exactly, undoing the optimistic write.
func (m *noteMutator) restore(snap snapshot) {
	if snap.hadCollection {
		m.cache.SetCollection(snap.key, snap.collection)
	} else {
		m.cache.RemoveFromCollection(snap.key, snap.id)
	}
	if snap.hadNote {
		m.cache.SetNote(snap.note)
	}
}

func (m *noteMutator) Create(ctx context.Context, userID int64, fields models.NoteFields) (models.Note, error) {
	now := time.Now().UTC()
	provisional := models.Note{
		ID:        models.TempIDPrefix + uuid.NewString(),
		UserID:    userID,
		Title:     fields.Title,
		Content:   fields.Content,
		Summary:   fields.Summary,
		CreatedAt: now,
		UpdatedAt: now,
	}

	key := notecache.AllNotesKey(userID)
	m.cache.UpsertIntoCollection(key, provisional)

	confirmed, err := m.store.Create(ctx, fields)
	if err != nil {
		// empty-state rollback: dropping the provisional note restores the
		// cache exactly as it was before the call
		m.cache.Remove(provisional.ID)
		return models.Note{}, fmt.Errorf("create note: %w", mapStoreError(err))
	}

	// the temporary and server-assigned IDs differ: reconcile by ID
	// substitution, never by value equality
	m.cache.ReplaceID(key, provisional.ID, confirmed)

	m.logger.Debug().Str("note_id", confirmed.ID).Msg("note created")
	return confirmed, nil
}

func (m *noteMutator) Update(ctx context.Context, userID int64, id string, fields models.NoteFields) (models.Note, error) {
	key := notecache.AllNotesKey(userID)
	snap := m.takeSnapshot(key, id)

	if snap.hadNote {
		optimistic := snap.note
		optimistic.Title = fields.Title
		optimistic.Content = fields.Content
		optimistic.Summary = fields.Summary
		optimistic.UpdatedAt = time.Now().UTC()
		m.cache.UpsertIntoCollection(key, optimistic)
	}

	confirmed, err := m.store.Update(ctx, id, fields)
	if err != nil {
		if snap.hadNote {
			m.restore(snap)
		}
		return models.Note{}, fmt.Errorf("update note %s: %w", id, mapStoreError(err))
	}

	// server-computed fields (updated_at at minimum) win over the
	// optimistic value
	m.cache.UpsertIntoCollection(key, confirmed)

	m.logger.Debug().Str("note_id", id).Msg("note updated")
	return confirmed, nil
}

func (m *noteMutator) Delete(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil {
		// the note was only hidden, never removed: leaving the cache
		// untouched restores it the moment the scheduler drops the entry
		return fmt.Errorf("delete note %s: %w", id, mapStoreError(err))
	}

	m.cache.Remove(id)

	m.logger.Debug().Str("note_id", id).Msg("note deleted")
	return nil
}

func (m *noteMutator) Get(ctx context.Context, id string) (models.Note, error) {
	if note, ok := m.cache.GetNote(id); ok {
		return note, nil
	}

	note, err := m.store.Get(ctx, id)
	if err != nil {
		return models.Note{}, fmt.Errorf("get note %s: %w", id, mapStoreError(err))
	}

	m.cache.SetNote(note)
	return note, nil
}

func (m *noteMutator) Refresh(ctx context.Context, userID int64) error {
	notes, err := m.store.List(ctx)
	if err != nil {
		return fmt.Errorf("refresh notes: %w", mapStoreError(err))
	}

	m.cache.SetCollection(notecache.AllNotesKey(userID), notes)
	return nil
}
