// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/notecache"
	"github.com/MKhiriev/go-note-keeper/models"
)

// DefaultGracePeriod is how long a deletion stays undoable before it is
// committed to the server.
const DefaultGracePeriod = 5 * time.Second

// TrashEventKind enumerates scheduler notifications.
type TrashEventKind int

const (
	// TrashScheduled: a grace-period timer started (or restarted) for a note.
	TrashScheduled TrashEventKind = iota
	// TrashUndone: the user cancelled the deletion within the grace period.
	TrashUndone
	// TrashCommitted: the timer fired and the server confirmed the delete.
	TrashCommitted
	// TrashCommitFailed: the timer fired but the server delete failed; the
	// note is visible again and Err carries the recoverable failure.
	TrashCommitFailed
)

// TrashEvent is a scheduler notification delivered on [TrashScheduler.Events].
type TrashEvent struct {
	NoteID string
	Kind   TrashEventKind
	Err    error
}

// entryState tracks the per-note deletion state machine. A note with no
// entry is Active. The transition pending → committing happens atomically
// under the scheduler mutex before the remote call is dispatched, so an
// undo racing a fired timer is rejected deterministically.
type entryState int

const (
	statePending entryState = iota
	stateCommitting
)

// pendingEntry is owned exclusively by the scheduler; UI surfaces only
// trigger and observe it.
type pendingEntry struct {
	saved models.Note
	timer *time.Timer
	state entryState
	gen   uint64 // invalidates callbacks of replaced timers
}

type trashScheduler struct {
	mutator NoteMutator
	cache   *notecache.Cache
	grace   time.Duration
	logger  *logger.Logger

	// commitCtx drives the remote delete when a timer fires. Commits
	// outlive the RequestDelete call, so they must not borrow the
	// requester's context.
	commitCtx context.Context

	mu      sync.Mutex
	pending map[string]*pendingEntry

	events chan TrashEvent
}

// NewTrashScheduler constructs the deferred deletion scheduler. A
// non-positive grace falls back to [DefaultGracePeriod].
func NewTrashScheduler(mutator NoteMutator, cache *notecache.Cache, grace time.Duration, logger *logger.Logger) TrashScheduler {
	if grace <= 0 {
		grace = DefaultGracePeriod
	}
	return &trashScheduler{
		mutator:   mutator,
		cache:     cache,
		grace:     grace,
		logger:    logger,
		commitCtx: context.Background(),
		pending:   make(map[string]*pendingEntry),
		events:    make(chan TrashEvent, 16),
	}
}

func (s *trashScheduler) RequestDelete(ctx context.Context, id string) error {
	s.mu.Lock()

	if e, ok := s.pending[id]; ok {
		if e.state == statePending {
			// one live timer per ID: restart the existing grace period
			// instead of stacking a second timer
			e.timer.Stop()
			e.gen++
			gen := e.gen
			e.timer = time.AfterFunc(s.grace, func() { s.fire(id, gen) })
			s.mu.Unlock()

			s.emit(TrashEvent{NoteID: id, Kind: TrashScheduled})
			return ErrAlreadyPending
		}
		// commit already dispatched; too late to extend
		s.mu.Unlock()
		return ErrAlreadyPending
	}

	saved, ok := s.cache.GetNote(id)
	if !ok {
		s.mu.Unlock()
		return ErrNoteNotFound
	}

	e := &pendingEntry{saved: saved, state: statePending}
	// capture the generation under the lock; the callback must never read
	// e.gen at fire time, a restart may be incrementing it concurrently
	gen := e.gen
	e.timer = time.AfterFunc(s.grace, func() { s.fire(id, gen) })
	s.pending[id] = e
	s.mu.Unlock()

	s.logger.Debug().Str("note_id", id).Dur("grace", s.grace).Msg("deletion scheduled")
	s.emit(TrashEvent{NoteID: id, Kind: TrashScheduled})
	return nil
}

// fire commits a pending deletion once its grace period elapsed.
func (s *trashScheduler) fire(id string, gen uint64) {
	s.mu.Lock()
	e, ok := s.pending[id]
	if !ok || e.state != statePending || e.gen != gen {
		// undone, already committing, or superseded by a restarted timer
		s.mu.Unlock()
		return
	}
	// leave PendingDeletion before the remote call goes out; from here an
	// undo is rejected
	e.state = stateCommitting
	s.mu.Unlock()

	err := s.mutator.Delete(s.commitCtx, id)

	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()

	if err != nil {
		// recoverable: the note was only hidden, dropping the entry makes
		// it visible again with its data intact
		s.logger.Warn().Err(err).Str("note_id", id).Msg("deletion commit failed, note restored")
		s.emit(TrashEvent{NoteID: id, Kind: TrashCommitFailed, Err: err})
		return
	}

	s.emit(TrashEvent{NoteID: id, Kind: TrashCommitted})
}

func (s *trashScheduler) Undo(id string) error {
	s.mu.Lock()
	e, ok := s.pending[id]
	if !ok || e.state != statePending {
		s.mu.Unlock()
		return ErrNotPending
	}

	e.timer.Stop()
	e.gen++ // a stopped timer that already fired must find a stale gen
	saved := e.saved
	delete(s.pending, id)
	s.mu.Unlock()

	// the note was never removed from the cache; re-insert only if a
	// concurrent refresh evicted it while the deletion was pending
	if _, ok := s.cache.GetNote(id); !ok {
		s.cache.UpsertIntoCollection(notecache.AllNotesKey(saved.UserID), saved)
	}

	s.logger.Debug().Str("note_id", id).Msg("deletion undone")
	s.emit(TrashEvent{NoteID: id, Kind: TrashUndone})
	return nil
}

func (s *trashScheduler) IsPending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[id]
	return ok
}

func (s *trashScheduler) Events() <-chan TrashEvent {
	return s.events
}

func (s *trashScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.pending {
		if e.state == statePending {
			e.timer.Stop()
			e.gen++
			delete(s.pending, id)
		}
	}
}

func (s *trashScheduler) emit(ev TrashEvent) {
	select {
	case s.events <- ev:
	default:
		s.logger.Warn().Str("note_id", ev.NoteID).Msg("trash event dropped, consumer too slow")
	}
}
